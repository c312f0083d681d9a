package presenter

import (
	"time"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
	"github.com/theoremus-urban-solutions/telltale/display"
)

const (
	BlinkInterval = 250 * time.Millisecond
	AnimInterval  = time.Second / 9
	ClipFrames    = 4
)

// Clip is one of the three animated sprite sheets.
type Clip int

const (
	ClipWait Clip = iota
	ClipGo
	ClipArrival
)

// Icon is one of the status icons. IconBlack is loaded but never selected.
type Icon int

const (
	IconGrey Icon = iota
	IconBlack
	IconBlue
	IconOrange
)

// AnimationTimerState holds the two independent animation timers.
type AnimationTimerState struct {
	LastBlink time.Time
	BlinkOn   bool
	LastFrame time.Time
	Frame     int
}

// Visual is what the scheduler decided for one tick.
type Visual struct {
	Color         display.Color
	Clip          Clip
	Frame         int
	Icon          Icon
	StatusVisible bool
	IconVisible   bool
}

// Scheduler advances the blink phase and the clip frame. The zero value
// steps both timers on the first call.
type Scheduler struct {
	State AnimationTimerState
}

func NewScheduler() *Scheduler {
	return &Scheduler{State: AnimationTimerState{BlinkOn: true}}
}

// Advance updates the timers for now and returns the visuals of state.
func (s *Scheduler) Advance(state arrivals.State, now time.Time) Visual {
	st := &s.State
	if state == arrivals.Arrival {
		if now.Sub(st.LastBlink) >= BlinkInterval {
			st.LastBlink = now
			st.BlinkOn = !st.BlinkOn
		}
	} else {
		st.BlinkOn = true
	}

	if now.Sub(st.LastFrame) >= AnimInterval {
		st.LastFrame = now
		st.Frame = (st.Frame + 1) % ClipFrames
	}

	v := Visual{
		Color:         StateColor(state),
		Frame:         st.Frame,
		StatusVisible: true,
		IconVisible:   true,
	}
	switch state {
	case arrivals.Arrival:
		v.Clip, v.Icon = ClipArrival, IconOrange
		v.StatusVisible = st.BlinkOn
		v.IconVisible = st.BlinkOn
	case arrivals.Go:
		v.Clip, v.Icon = ClipGo, IconBlue
	default:
		v.Clip, v.Icon = ClipWait, IconGrey
	}
	return v
}
