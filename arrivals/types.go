package arrivals

import "fmt"

// Direction is the travel direction tracked by the display.
type Direction int

const (
	Manhattan Direction = iota
	Queens
)

// Wire values used by the arrivals API for each direction.
const (
	ManhattanWire = "S"
	QueensWire    = "N"
)

func (d Direction) String() string {
	switch d {
	case Manhattan:
		return "Manhattan"
	case Queens:
		return "Queens"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps a wire value ("S" or "N") to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case ManhattanWire:
		return Manhattan, true
	case QueensWire:
		return Queens, true
	}
	return 0, false
}

// Sample is one predicted arrival. Minutes is nil when the feed has no estimate.
type Sample struct {
	Line      string
	Direction Direction
	Minutes   *int
}

// Minutes returns a pointer to m. Convenience for building samples and tests.
func Minutes(m int) *int { return &m }

// State is the coarse urgency bucket that drives colors, animation and speed.
type State int

const (
	NoData State = iota
	Wait
	Go
	Arrival
)

func (s State) String() string {
	switch s {
	case NoData:
		return "NODATA"
	case Wait:
		return "WAIT"
	case Go:
		return "GO"
	case Arrival:
		return "ARRIVAL"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
