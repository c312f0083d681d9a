// Package arrivals holds the arrival records consumed by the display and the
// pure functions that turn a minutes-away value into a display state.
//
// Records are decoded from the arrivals API document:
//
//	{"arrivals": [{"line": "F", "direction": "S", "minutesAway": 4}, ...]}
//
// Decoding is tolerant: a record with a missing or mistyped field is reported
// as a MalformedRecordError and skipped, the rest of the batch is kept.
package arrivals
