package arrivals

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MalformedRecordError describes a single arrival entry that was skipped.
type MalformedRecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("arrival %d: %s: %s", e.Index, e.Field, e.Reason)
}

type document struct {
	Arrivals []map[string]json.RawMessage `json:"arrivals"`
}

// Decode parses an arrivals document. The returned error is non-nil only when
// the document itself is unreadable; malformed entries are returned separately.
func Decode(data []byte) ([]Sample, []*MalformedRecordError, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode arrivals: %w", err)
	}
	samples := make([]Sample, 0, len(doc.Arrivals))
	var bad []*MalformedRecordError
	for i, rec := range doc.Arrivals {
		s, err := decodeRecord(i, rec)
		if err != nil {
			bad = append(bad, err)
			continue
		}
		samples = append(samples, s)
	}
	return samples, bad, nil
}

func decodeRecord(i int, rec map[string]json.RawMessage) (Sample, *MalformedRecordError) {
	var s Sample

	var line string
	if err := field(rec, "line", &line); err != nil {
		return s, &MalformedRecordError{Index: i, Field: "line", Reason: err.Error()}
	}
	if line == "" {
		return s, &MalformedRecordError{Index: i, Field: "line", Reason: "empty"}
	}

	var wire string
	if err := field(rec, "direction", &wire); err != nil {
		return s, &MalformedRecordError{Index: i, Field: "direction", Reason: err.Error()}
	}
	dir, ok := ParseDirection(wire)
	if !ok {
		return s, &MalformedRecordError{Index: i, Field: "direction", Reason: fmt.Sprintf("unknown value %q", wire)}
	}

	var minutes int
	if err := field(rec, "minutesAway", &minutes); err != nil {
		return s, &MalformedRecordError{Index: i, Field: "minutesAway", Reason: err.Error()}
	}
	if minutes < 0 {
		return s, &MalformedRecordError{Index: i, Field: "minutesAway", Reason: "negative"}
	}

	return Sample{Line: line, Direction: dir, Minutes: &minutes}, nil
}

func field(rec map[string]json.RawMessage, name string, dst any) error {
	raw, ok := rec[name]
	if !ok || string(raw) == "null" {
		return errors.New("missing")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid: %s", raw)
	}
	return nil
}
