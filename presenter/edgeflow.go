package presenter

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
	"github.com/theoremus-urban-solutions/telltale/display"
)

const (
	EdgeBlocks  = 15
	EdgeMinSize = 1
	EdgeMaxSize = 5
	EdgeMargin  = 2
	EdgeSpacing = 6

	minEdgeFPS = 4.0
	maxEdgeFPS = 24.0
	// minutes beyond this no longer slow the flow
	edgeMinutesCap = 15
)

// BorderPath is the clockwise list of positions the edge flow travels.
type BorderPath []image.Point

// BuildBorderPath walks the rectangle inset by margin clockwise from the top
// left corner, placing a point every spacing pixels along the top, right,
// bottom and left sides without repeating corners. A display too small for
// the inset yields the single point (margin, margin).
func BuildBorderPath(width, height, margin, spacing int) BorderPath {
	if spacing < 1 {
		spacing = 1
	}
	x0, y0 := margin, margin
	x1, y1 := width-margin-1, height-margin-1
	if x1 < x0 || y1 < y0 {
		return BorderPath{{X: x0, Y: y0}}
	}

	var pts BorderPath
	for x := x0; x <= x1; x += spacing {
		pts = append(pts, image.Pt(x, y0))
	}
	for y := y0 + spacing; y <= y1; y += spacing {
		pts = append(pts, image.Pt(x1, y))
	}
	if y1 > y0 {
		for x := x1 - spacing; x >= x0; x -= spacing {
			pts = append(pts, image.Pt(x, y1))
		}
	}
	if x1 > x0 {
		for y := y1 - spacing; y >= y0+spacing; y -= spacing {
			pts = append(pts, image.Pt(x0, y))
		}
	}
	return pts
}

// EdgeSlot is the painted state of one block of the flow. Slot 0 is the head.
type EdgeSlot struct {
	Position int
	Size     int
	Color    display.Color
}

func baseFPS(state arrivals.State) float64 {
	switch state {
	case arrivals.Arrival:
		return 35
	case arrivals.Go:
		return 15
	default:
		return 5
	}
}

// IntervalFor returns the time between flow steps. Without minutes the base
// rate of the state is used as is; otherwise larger waits slow the rate by up
// to 20% and the result is kept between 4 and 24 steps per second.
func IntervalFor(state arrivals.State, minutes *int) time.Duration {
	fps := baseFPS(state)
	if minutes == nil {
		return time.Duration(float64(time.Second) / fps)
	}
	m := float64(min(max(*minutes, 0), edgeMinutesCap))
	fps *= 0.8 + 0.2*(1-m/edgeMinutesCap)
	fps = min(max(fps, minEdgeFPS), maxEdgeFPS)
	return time.Duration(float64(time.Second) / fps)
}

// SizeFor returns the block size of slot i, shrinking linearly from head to
// tail.
func SizeFor(i int) int {
	if EdgeBlocks <= 1 {
		return EdgeMaxSize
	}
	size := EdgeMaxSize - int(math.Round(float64(EdgeMaxSize-EdgeMinSize)*float64(i)/float64(EdgeBlocks-1)))
	return min(max(size, EdgeMinSize), EdgeMaxSize)
}

// EdgeFlow animates blocks around the display border. Every slot owns one
// rectangle per size; exactly one of them is visible once the flow has
// stepped.
type EdgeFlow struct {
	surface display.Surface
	path    BorderPath
	arena   [EdgeBlocks][EdgeMaxSize]display.ElementID
	slots   [EdgeBlocks]EdgeSlot

	head     int
	lastStep time.Time
	stepped  bool
}

// NewEdgeFlow registers the hidden block rectangles on canvas. It should be
// called before other elements are added so the flow stays underneath.
func NewEdgeFlow(canvas display.Canvas, path BorderPath) *EdgeFlow {
	if len(path) == 0 {
		path = BorderPath{{X: EdgeMargin, Y: EdgeMargin}}
	}
	f := &EdgeFlow{surface: canvas, path: path}
	for i := range f.arena {
		for s := range f.arena[i] {
			id := display.ElementID(fmt.Sprintf("edge-%02d-%d", i, s+1))
			f.arena[i][s] = id
			canvas.Add(display.Element{
				ID:     id,
				Kind:   display.KindRect,
				W:      s + 1,
				H:      s + 1,
				Color:  ColorWait,
				Hidden: true,
			})
		}
	}
	return f
}

// Path returns the border path.
func (f *EdgeFlow) Path() BorderPath { return f.path }

// Slots returns the slots as painted by the last step.
func (f *EdgeFlow) Slots() [EdgeBlocks]EdgeSlot { return f.slots }

// Head returns the path index of slot 0.
func (f *EdgeFlow) Head() int { return f.head }

// Advance moves the flow one position when its interval has elapsed and
// repaints every slot. It reports whether a step happened.
func (f *EdgeFlow) Advance(state arrivals.State, minutes *int, now time.Time) bool {
	if f.stepped && now.Sub(f.lastStep) < IntervalFor(state, minutes) {
		return false
	}
	f.stepped = true
	f.lastStep = now

	n := len(f.path)
	f.head = (f.head + 1) % n
	color := StateColor(state)
	for i := range f.slots {
		f.slots[i] = EdgeSlot{
			Position: ((f.head-i)%n + n) % n,
			Size:     SizeFor(i),
			Color:    color,
		}
	}
	f.render()
	return true
}

func (f *EdgeFlow) render() {
	for i, slot := range f.slots {
		pt := f.path[slot.Position]
		for s, id := range f.arena[i] {
			if s+1 != slot.Size {
				f.surface.SetHidden(id, true)
				continue
			}
			f.surface.SetRect(id, pt.X, pt.Y, slot.Size, slot.Size)
			f.surface.SetColor(id, slot.Color)
			f.surface.SetHidden(id, false)
		}
	}
}
