package arrivals

const (
	// ArrivalThreshold is the last minute value classified as Arrival.
	ArrivalThreshold = 2
	// GoThreshold is the last minute value classified as Go.
	GoThreshold = 7
)

// DefaultLinePriority is the order in which lines serving the station are preferred.
var DefaultLinePriority = []string{"F", "M"}

// Classify maps minutes-away to a display state. Negative values never survive
// decoding; they are treated as an arrival in progress.
func Classify(minutes *int) State {
	if minutes == nil {
		return NoData
	}
	m := *minutes
	switch {
	case m <= ArrivalThreshold:
		return Arrival
	case m <= GoThreshold:
		return Go
	default:
		return Wait
	}
}

// StatusText is the headline shown for a minutes-away value.
func StatusText(minutes *int) string {
	switch Classify(minutes) {
	case Arrival:
		return "ARRIVE!"
	case Go:
		return "GO NOW!"
	case Wait:
		return "WAIT~"
	}
	return "NO ETA"
}

// SelectLine returns the first line of priority that appears in samples.
func SelectLine(samples []Sample, priority []string) (string, bool) {
	seen := make(map[string]struct{}, len(samples))
	for _, s := range samples {
		if s.Line != "" {
			seen[s.Line] = struct{}{}
		}
	}
	for _, line := range priority {
		if _, ok := seen[line]; ok {
			return line, true
		}
	}
	return "", false
}

// Soonest returns the smallest minutes-away among samples for line and dir,
// or nil when none match.
func Soonest(samples []Sample, line string, dir Direction) *int {
	var best *int
	for _, s := range samples {
		if s.Line != line || s.Direction != dir || s.Minutes == nil {
			continue
		}
		if best == nil || *s.Minutes < *best {
			m := *s.Minutes
			best = &m
		}
	}
	return best
}
