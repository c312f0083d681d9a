package presenter

import (
	"github.com/theoremus-urban-solutions/telltale/arrivals"
	"github.com/theoremus-urban-solutions/telltale/display"
)

const (
	ColorWait    display.Color = 0xA0A0A0
	ColorGo      display.Color = 0x3236A6
	ColorArrival display.Color = 0xFF6319
	ColorText    display.Color = 0xFFFFFF
	ColorTextDim display.Color = 0x808080
	ColorOutline display.Color = 0x808080
)

// StateColor maps a display state to its accent color. NoData shares the
// Wait color.
func StateColor(s arrivals.State) display.Color {
	switch s {
	case arrivals.Arrival:
		return ColorArrival
	case arrivals.Go:
		return ColorGo
	default:
		return ColorWait
	}
}
