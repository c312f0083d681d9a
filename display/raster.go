package display

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph metrics of the built-in font.
const (
	glyphHeight = 13
	glyphAscent = 11
)

// TextWidth is the rendered width of text at scale, in pixels.
func TextWidth(text string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	return font.MeasureString(basicfont.Face7x13, text).Ceil() * scale
}

// Raster draws element lists into RGBA images. Assets are loaded once and
// cached; a missing asset is drawn as a placeholder box.
type Raster struct {
	assets  map[string]image.Image
	missing map[string]bool
}

func NewRaster() *Raster {
	return &Raster{assets: map[string]image.Image{}, missing: map[string]bool{}}
}

// Render draws visible elements in order over a black background.
func (r *Raster) Render(width, height int, elems []Element) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	for _, e := range elems {
		if e.Hidden {
			continue
		}
		switch e.Kind {
		case KindRect:
			fillRect(img, image.Rect(e.X, e.Y, e.X+e.W, e.Y+e.H), e.Color)
		case KindCircle:
			drawCircle(img, e.X, e.Y, e.W, e.Color, e.Outline)
		case KindText:
			drawText(img, e)
		case KindTile:
			r.drawTile(img, e)
		case KindImage:
			r.drawImage(img, e)
		}
	}
	return img
}

func toRGBA(c Color) color.RGBA {
	r, g, b := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func fillRect(img *image.RGBA, rect image.Rectangle, c Color) {
	if c == NoColor {
		return
	}
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, rect image.Rectangle, c Color) {
	fillRect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), c)
	fillRect(img, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), c)
	fillRect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), c)
	fillRect(img, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

func drawCircle(img *image.RGBA, cx, cy, radius int, fill, outline Color) {
	inner := (radius - 1) * (radius - 1)
	outer := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := dx*dx + dy*dy
			switch {
			case d > outer:
			case d > inner && outline != NoColor:
				img.SetRGBA(cx+dx, cy+dy, toRGBA(outline))
			case fill != NoColor:
				img.SetRGBA(cx+dx, cy+dy, toRGBA(fill))
			}
		}
	}
}

func drawText(img *image.RGBA, e Element) {
	if e.Text == "" || e.Color == NoColor {
		return
	}
	w := TextWidth(e.Text, 1)
	glyphs := image.NewAlpha(image.Rect(0, 0, w, glyphHeight))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, glyphAscent),
	}
	d.DrawString(e.Text)

	scale := e.Scale
	if scale < 1 {
		scale = 1
	}
	top := e.Y - glyphHeight*scale/2
	c := toRGBA(e.Color)
	for y := 0; y < glyphHeight; y++ {
		for x := 0; x < w; x++ {
			if glyphs.AlphaAt(x, y).A == 0 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetRGBA(e.X+x*scale+sx, top+y*scale+sy, c)
				}
			}
		}
	}
}

func (r *Raster) drawTile(img *image.RGBA, e Element) {
	scale := e.Scale
	if scale < 1 {
		scale = 1
	}
	dst := image.Rect(e.X, e.Y, e.X+e.W*scale, e.Y+e.H*scale)
	sheet := r.load(e.Asset)
	if sheet == nil {
		outline := e.Color
		if outline == NoColor {
			outline = 0x808080
		}
		strokeRect(img, dst, outline)
		// frame marker along the bottom edge
		seg := dst.Dx() / 4
		fillRect(img, image.Rect(dst.Min.X+e.Tile*seg, dst.Max.Y-3, dst.Min.X+(e.Tile+1)*seg, dst.Max.Y-1), outline)
		return
	}
	src := image.Rect(e.Tile*e.W, 0, (e.Tile+1)*e.W, e.H).Add(sheet.Bounds().Min)
	blit(img, sheet, src, dst.Min, scale, e.Key)
}

func (r *Raster) drawImage(img *image.RGBA, e Element) {
	pic := r.load(e.Asset)
	if pic == nil {
		fillRect(img, image.Rect(e.X, e.Y, e.X+e.W, e.Y+e.H), e.Color)
		return
	}
	blit(img, pic, pic.Bounds(), image.Pt(e.X, e.Y), 1, e.Key)
}

// blit copies src into img at scale, skipping pixels equal to key.
func blit(img *image.RGBA, pic image.Image, src image.Rectangle, at image.Point, scale int, key Color) {
	kr, kg, kb := key.RGBA8()
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			c := color.RGBAModel.Convert(pic.At(x, y)).(color.RGBA)
			if c.A == 0 || (key != NoColor && c.R == kr && c.G == kg && c.B == kb) {
				continue
			}
			c.A = 0xff
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetRGBA(at.X+(x-src.Min.X)*scale+sx, at.Y+(y-src.Min.Y)*scale+sy, c)
				}
			}
		}
	}
}

func (r *Raster) load(path string) image.Image {
	if path == "" || r.missing[path] {
		return nil
	}
	if img, ok := r.assets[path]; ok {
		return img
	}
	img, err := decodeImage(path)
	if err != nil {
		log.Printf("asset %s unavailable: %v", path, err)
		r.missing[path] = true
		return nil
	}
	r.assets[path] = img
	return img
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return bmp.Decode(f)
	}
	return png.Decode(f)
}
