package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
)

func TestScheduler_BlinkOnlyInArrival(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewScheduler()

	v := s.Advance(arrivals.Arrival, base)
	assert.False(t, v.StatusVisible, "first arrival tick toggles")
	assert.False(t, v.IconVisible)

	v = s.Advance(arrivals.Arrival, base.Add(100*time.Millisecond))
	assert.False(t, v.StatusVisible, "no toggle within the blink interval")

	v = s.Advance(arrivals.Arrival, base.Add(BlinkInterval))
	assert.True(t, v.StatusVisible)
	v = s.Advance(arrivals.Arrival, base.Add(2*BlinkInterval))
	assert.False(t, v.StatusVisible)

	v = s.Advance(arrivals.Go, base.Add(2*BlinkInterval+time.Millisecond))
	assert.True(t, v.StatusVisible, "leaving arrival resets the blink")
	assert.True(t, s.State.BlinkOn)
}

func TestScheduler_FramesAdvanceRegardlessOfState(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewScheduler()
	states := []arrivals.State{arrivals.Wait, arrivals.Go, arrivals.NoData, arrivals.Arrival, arrivals.Wait}
	var frames []int
	for i, st := range states {
		frames = append(frames, s.Advance(st, base.Add(time.Duration(i)*AnimInterval)).Frame)
	}
	assert.Equal(t, []int{1, 2, 3, 0, 1}, frames)

	v := s.Advance(arrivals.Wait, base.Add(4*AnimInterval+time.Millisecond))
	assert.Equal(t, 1, v.Frame, "no step within the frame interval")
}

func TestScheduler_ClipAndIconPerState(t *testing.T) {
	tests := []struct {
		state arrivals.State
		clip  Clip
		icon  Icon
		color uint32
	}{
		{arrivals.NoData, ClipWait, IconGrey, 0xA0A0A0},
		{arrivals.Wait, ClipWait, IconGrey, 0xA0A0A0},
		{arrivals.Go, ClipGo, IconBlue, 0x3236A6},
		{arrivals.Arrival, ClipArrival, IconOrange, 0xFF6319},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			v := NewScheduler().Advance(tt.state, time.Unix(0, 0))
			assert.Equal(t, tt.clip, v.Clip)
			assert.Equal(t, tt.icon, v.Icon)
			assert.Equal(t, tt.color, uint32(v.Color))
		})
	}
}
