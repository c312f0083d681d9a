package arrivals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		minutes  *int
		expected State
	}{
		{"no data", nil, NoData},
		{"zero", Minutes(0), Arrival},
		{"two", Minutes(2), Arrival},
		{"three", Minutes(3), Go},
		{"seven", Minutes(7), Go},
		{"eight", Minutes(8), Wait},
		{"far", Minutes(42), Wait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.minutes))
		})
	}
}

func TestClassify_MonotonicInUrgency(t *testing.T) {
	// Arrival < Go < Wait as minutes grow.
	rank := map[State]int{Arrival: 0, Go: 1, Wait: 2}
	for m1 := 0; m1 < 30; m1++ {
		for m2 := m1 + 1; m2 <= 30; m2++ {
			s1, s2 := Classify(Minutes(m1)), Classify(Minutes(m2))
			if rank[s1] > rank[s2] {
				t.Fatalf("classify(%d)=%s calmer than classify(%d)=%s", m1, s1, m2, s2)
			}
		}
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "NO ETA", StatusText(nil))
	assert.Equal(t, "ARRIVE!", StatusText(Minutes(1)))
	assert.Equal(t, "GO NOW!", StatusText(Minutes(5)))
	assert.Equal(t, "WAIT~", StatusText(Minutes(12)))
}

func TestSelectLine(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   string
		wantOK bool
	}{
		{"F preferred", []string{"M", "F"}, "F", true},
		{"M only", []string{"M", "M"}, "M", true},
		{"unknown lines", []string{"E", "R"}, "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []Sample
			for _, l := range tt.lines {
				samples = append(samples, Sample{Line: l, Direction: Manhattan, Minutes: Minutes(3)})
			}
			got, ok := SelectLine(samples, DefaultLinePriority)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSoonest(t *testing.T) {
	samples := []Sample{
		{Line: "F", Direction: Manhattan, Minutes: Minutes(9)},
		{Line: "F", Direction: Queens, Minutes: Minutes(1)},
		{Line: "F", Direction: Manhattan, Minutes: Minutes(4)},
		{Line: "M", Direction: Manhattan, Minutes: Minutes(0)},
		{Line: "F", Direction: Manhattan, Minutes: nil},
	}

	got := Soonest(samples, "F", Manhattan)
	if assert.NotNil(t, got) {
		assert.Equal(t, 4, *got)
	}
	assert.Nil(t, Soonest(samples, "E", Manhattan))

	// Order of input does not matter.
	reversed := make([]Sample, len(samples))
	for i, s := range samples {
		reversed[len(samples)-1-i] = s
	}
	assert.Equal(t, *got, *Soonest(reversed, "F", Manhattan))
}

func TestClassify_NegativeMinutesAreArrivals(t *testing.T) {
	// Decode rejects negative values; a source that bypasses it gets the
	// train treated as already in the station.
	for _, m := range []int{-1, -30} {
		assert.Equal(t, Arrival, Classify(Minutes(m)), "minutes %d", m)
		assert.Equal(t, "ARRIVE!", StatusText(Minutes(m)))
	}
}
