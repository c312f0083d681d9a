package presenter

import (
	"github.com/theoremus-urban-solutions/telltale/arrivals"
	"github.com/theoremus-urban-solutions/telltale/config"
	"github.com/theoremus-urban-solutions/telltale/display"
)

// Element identifiers of the station screen.
const (
	IDTitle        display.ElementID = "title"
	IDStatus       display.ElementID = "status"
	IDLine         display.ElementID = "line"
	IDManhattan    display.ElementID = "to-manhattan"
	IDQueens       display.ElementID = "to-queens"
	IDDotManhattan display.ElementID = "dot-manhattan"
	IDDotQueens    display.ElementID = "dot-queens"
)

var (
	clipIDs = [...]display.ElementID{ClipWait: "clip-wait", ClipGo: "clip-go", ClipArrival: "clip-arrival"}
	iconIDs = [...]display.ElementID{IconGrey: "icon-grey", IconBlack: "icon-black", IconBlue: "icon-blue", IconOrange: "icon-orange"}
)

// Screen geometry, in pixels.
const (
	margin     = 5
	textX      = margin + 5
	rowTitle   = 22
	rowLine    = 55
	rowMan     = 85
	rowQueens  = 115
	dotRadius  = 4
	dotTextGap = 12

	iconSize = 32

	frameSize   = 32
	animScale   = 2
	animRight   = 13
	animBottom  = 30
	statusGap   = 10
	statusNudge = 12

	sheetKey display.Color = 0xFF00FF
	iconKey  display.Color = 0xFFFFFF
)

// Layout is the geometry of the station screen for one display size.
type Layout struct {
	Width, Height int

	AnimX, AnimY int
	StatusY      int
	IconX, IconY int
}

// NewLayout computes the geometry for a width×height display.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:   width,
		Height:  height,
		AnimX:   width - animRight - frameSize*animScale,
		AnimY:   height - animBottom - frameSize*animScale,
		StatusY: height - animBottom - frameSize + frameSize + statusGap,
		IconX:   width - margin - iconSize + 3,
		IconY:   margin,
	}
}

// StatusX centers text of the status line under the animation, nudged left.
func (l Layout) StatusX(text string) int {
	w := frameSize * animScale
	return l.AnimX + floorDiv(w-display.TextWidth(text, 2), 2) - statusNudge
}

func clipState(c Clip) arrivals.State {
	switch c {
	case ClipGo:
		return arrivals.Go
	case ClipArrival:
		return arrivals.Arrival
	default:
		return arrivals.Wait
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Build registers every element of the station screen on canvas, bottom
// layer first, and returns the edge flow that animates the border.
func (l Layout) Build(canvas display.Canvas, title string, assets config.AssetsConfig) *EdgeFlow {
	edge := NewEdgeFlow(canvas, BuildBorderPath(l.Width, l.Height, EdgeMargin, EdgeSpacing))

	sheets := [...]string{ClipWait: assets.SheetWait, ClipGo: assets.SheetGo, ClipArrival: assets.SheetArrival}
	for c, id := range clipIDs {
		canvas.Add(display.Element{
			ID:     id,
			Kind:   display.KindTile,
			X:      l.AnimX,
			Y:      l.AnimY,
			W:      frameSize,
			H:      frameSize,
			Scale:  animScale,
			Color:  StateColor(clipState(Clip(c))),
			Asset:  sheets[c],
			Key:    sheetKey,
			Hidden: Clip(c) != ClipWait,
		})
	}

	canvas.Add(display.Element{ID: IDTitle, Kind: display.KindText, Text: title, Scale: 2, X: textX, Y: rowTitle, Color: ColorWait})
	canvas.Add(display.Element{ID: IDStatus, Kind: display.KindText, Text: "--", Scale: 2, X: l.StatusX("--"), Y: l.StatusY, Color: ColorWait})
	canvas.Add(display.Element{ID: IDLine, Kind: display.KindText, Text: "Line: --", Scale: 1, X: textX, Y: rowLine, Color: ColorText})
	canvas.Add(display.Element{ID: IDManhattan, Kind: display.KindText, Text: "To Manhattan: --", Scale: 1, X: textX + dotTextGap, Y: rowMan, Color: ColorText})
	canvas.Add(display.Element{ID: IDQueens, Kind: display.KindText, Text: "To Queens: --", Scale: 1, X: textX + dotTextGap, Y: rowQueens, Color: ColorTextDim})
	canvas.Add(display.Element{ID: IDDotManhattan, Kind: display.KindCircle, X: textX + dotRadius, Y: rowMan, W: dotRadius, Color: display.NoColor, Outline: ColorOutline})
	canvas.Add(display.Element{ID: IDDotQueens, Kind: display.KindCircle, X: textX + dotRadius, Y: rowQueens, W: dotRadius, Color: display.NoColor, Outline: ColorOutline})

	icons := [...]string{IconGrey: assets.IconGrey, IconBlack: assets.IconBlack, IconBlue: assets.IconBlue, IconOrange: assets.IconOrange}
	iconColors := [...]display.Color{IconGrey: ColorWait, IconBlack: 0x202020, IconBlue: ColorGo, IconOrange: ColorArrival}
	for i, id := range iconIDs {
		canvas.Add(display.Element{
			ID:     id,
			Kind:   display.KindImage,
			X:      l.IconX,
			Y:      l.IconY,
			W:      iconSize,
			H:      iconSize,
			Color:  iconColors[i],
			Asset:  icons[i],
			Key:    iconKey,
			Hidden: Icon(i) != IconGrey,
		})
	}
	return edge
}
