package display

import "fmt"

// Color is a 24-bit RGB value.
type Color uint32

// NoColor marks an absent fill or outline.
const NoColor Color = 0xFF000000

// Hex returns the color as "#rrggbb", or "" for NoColor.
func (c Color) Hex() string {
	if c == NoColor {
		return ""
	}
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// RGBA8 splits the color into 8-bit channels.
func (c Color) RGBA8() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// ElementID names a drawable registered with a Scene.
type ElementID string

// Kind is the shape of an element.
type Kind int

const (
	KindText Kind = iota
	KindRect
	KindCircle
	KindTile
	KindImage
)

var kindNames = [...]string{"text", "rect", "circle", "tile", "image"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name for the mirror's JSON snapshots.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Element is the full state of one drawable. X and Y are the top-left corner
// except for text, where Y is the vertical center of the line, and circles,
// where X, Y is the center and W the radius.
type Element struct {
	ID      ElementID `json:"id"`
	Kind    Kind      `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Scale   int       `json:"scale,omitempty"`
	Color   Color     `json:"color"`
	Outline Color     `json:"outline"`
	Hidden  bool      `json:"hidden"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
	W       int       `json:"w"`
	H       int       `json:"h"`
	Tile    int       `json:"tile"`
	// Asset is an optional image path for tiles and images.
	Asset string `json:"asset,omitempty"`
	// Key is the transparent color of Asset.
	Key Color `json:"key,omitempty"`
}

// Surface is what the presentation loop draws on. Setters never fail; using
// an unregistered element is reported by Flush.
type Surface interface {
	SetText(id ElementID, text string)
	SetColor(id ElementID, c Color)
	SetOutline(id ElementID, c Color)
	SetHidden(id ElementID, hidden bool)
	SetRect(id ElementID, x, y, w, h int)
	SetTile(id ElementID, frame int)
	Flush() error
}

// Canvas is a Surface whose elements can be registered up front.
type Canvas interface {
	Surface
	Add(e Element)
	Size() (w, h int)
}

// Sink receives the scene after every flush.
type Sink interface {
	Present(s *Scene) error
}
