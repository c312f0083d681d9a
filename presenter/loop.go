package presenter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
	"github.com/theoremus-urban-solutions/telltale/config"
	"github.com/theoremus-urban-solutions/telltale/display"
	"github.com/theoremus-urban-solutions/telltale/feed"
)

// DefaultTick is the period of Run.
const DefaultTick = 50 * time.Millisecond

// Button is a momentary input sampled once per tick.
type Button interface {
	Active() bool
}

// Options tune a Loop. Zero values select the defaults.
type Options struct {
	Title   string
	Assets  config.AssetsConfig
	Tick    time.Duration
	Reloads <-chan config.AppConfig
	Now     func() time.Time
}

// Loop is the presentation loop. It is driven by a single goroutine; the
// collaborators only hand it values it polls.
type Loop struct {
	surface display.Surface
	layout  Layout
	edge    *EdgeFlow
	cache   *feed.Cache
	a, b    Button

	debouncer Debouncer
	scheduler *Scheduler
	selected  arrivals.Direction
	shown     time.Time

	reloads <-chan config.AppConfig
	tick    time.Duration
	now     func() time.Time
}

// NewLoop lays out the station screen on canvas and returns a loop showing
// the arrivals of cache. Manhattan is selected initially.
func NewLoop(canvas display.Canvas, cache *feed.Cache, a, b Button, opts Options) *Loop {
	if opts.Title == "" {
		opts.Title = "Roosevelt Island"
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	w, h := canvas.Size()
	l := &Loop{
		surface:   canvas,
		layout:    NewLayout(w, h),
		cache:     cache,
		a:         a,
		b:         b,
		scheduler: NewScheduler(),
		selected:  arrivals.Manhattan,
		reloads:   opts.Reloads,
		tick:      opts.Tick,
		now:       opts.Now,
	}
	l.edge = l.layout.Build(canvas, opts.Title, opts.Assets)
	return l
}

// Selected returns the selected direction.
func (l *Loop) Selected() arrivals.Direction { return l.selected }

// Edge returns the border flow.
func (l *Loop) Edge() *EdgeFlow { return l.edge }

// Run ticks until ctx is done. A flush failure stops the loop and is
// returned; cancellation returns nil.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if err := l.Tick(ctx, l.now()); err != nil {
			return fmt.Errorf("presentation halted: %w", err)
		}
		timer.Reset(l.tick)
	}
}

// Tick performs one pass of the loop at now.
func (l *Loop) Tick(ctx context.Context, now time.Time) error {
	l.applyReloads()

	if _, err := l.cache.Refresh(ctx, now); err == nil {
		l.showArrivals()
	}

	aPressed, bPressed := pressed(l.a), pressed(l.b)
	if dir, ok := l.debouncer.Poll(aPressed, bPressed, now); ok {
		log.Printf("button pressed, showing %s", dir)
		l.selected = dir
	}

	minutes := l.cache.Snapshot().Minutes(l.selected)
	state := arrivals.Classify(minutes)

	status := arrivals.StatusText(minutes)
	l.surface.SetText(IDStatus, status)
	l.surface.SetRect(IDStatus, l.layout.StatusX(status), l.layout.StatusY, 0, 0)

	l.applyVisual(l.scheduler.Advance(state, now))
	l.showSelection(state)
	l.edge.Advance(state, minutes, now)

	return l.surface.Flush()
}

func pressed(b Button) bool {
	return b != nil && b.Active()
}

func (l *Loop) applyReloads() {
	for {
		select {
		case cfg := <-l.reloads:
			l.cache.SetPriority(cfg.Station.Lines)
			l.cache.SetInterval(cfg.Feed.Interval())
			if cfg.Station.Name != "" {
				l.surface.SetText(IDTitle, cfg.Station.Name)
			}
			log.Printf("configuration reloaded: lines %v, refresh every %s", cfg.Station.Lines, cfg.Feed.Interval())
		default:
			return
		}
	}
}

// showArrivals rewrites the text rows after a successful refresh.
func (l *Loop) showArrivals() {
	snap := l.cache.Snapshot()
	if snap.Updated.Equal(l.shown) {
		return
	}
	l.shown = snap.Updated

	line := snap.Line
	if line == "" {
		line = "--"
	}
	l.surface.SetText(IDLine, "Line: "+line)
	l.surface.SetText(IDManhattan, "To Manhattan: "+formatMinutes(snap.Manhattan))
	l.surface.SetText(IDQueens, "To Queens: "+formatMinutes(snap.Queens))
}

func formatMinutes(m *int) string {
	if m == nil {
		return "--"
	}
	return fmt.Sprintf("%d min", *m)
}

func (l *Loop) applyVisual(v Visual) {
	l.surface.SetColor(IDTitle, v.Color)
	l.surface.SetColor(IDStatus, v.Color)
	l.surface.SetHidden(IDStatus, !v.StatusVisible)

	for i, id := range iconIDs {
		l.surface.SetHidden(id, Icon(i) != v.Icon || !v.IconVisible)
	}
	for c, id := range clipIDs {
		l.surface.SetHidden(id, Clip(c) != v.Clip)
	}
	l.surface.SetTile(clipIDs[v.Clip], v.Frame)
}

func (l *Loop) showSelection(state arrivals.State) {
	sel := StateColor(state)
	selDot, otherDot := IDDotManhattan, IDDotQueens
	selText, otherText := IDManhattan, IDQueens
	if l.selected == arrivals.Queens {
		selDot, otherDot = otherDot, selDot
		selText, otherText = otherText, selText
	}
	l.surface.SetColor(selDot, sel)
	l.surface.SetOutline(selDot, sel)
	l.surface.SetColor(otherDot, display.NoColor)
	l.surface.SetOutline(otherDot, ColorOutline)
	l.surface.SetColor(selText, ColorText)
	l.surface.SetColor(otherText, ColorTextDim)
}
