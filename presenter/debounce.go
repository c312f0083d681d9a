package presenter

import (
	"time"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
)

// DebounceInterval is the quiet period after an accepted press.
const DebounceInterval = 200 * time.Millisecond

// Debouncer turns two sampled button levels into direction selections.
type Debouncer struct {
	Interval time.Duration

	lastAccept time.Time
	accepted   bool
}

// Poll samples the buttons at now. It reports a selection only when no press
// was accepted within the interval; A wins when both are held.
func (d *Debouncer) Poll(a, b bool, now time.Time) (arrivals.Direction, bool) {
	interval := d.Interval
	if interval <= 0 {
		interval = DebounceInterval
	}
	if d.accepted && now.Sub(d.lastAccept) < interval {
		return 0, false
	}
	var dir arrivals.Direction
	switch {
	case a:
		dir = arrivals.Manhattan
	case b:
		dir = arrivals.Queens
	default:
		return 0, false
	}
	d.lastAccept = now
	d.accepted = true
	return dir, true
}
