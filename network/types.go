package network

import (
	"context"
	"errors"
	"fmt"
)

// Candidate is a known network. An empty Password means an open network.
// The position of a Candidate in its slice is its priority.
type Candidate struct {
	SSID     string
	Password string
}

// Network is one scan observation.
type Network struct {
	SSID string
	RSSI int
}

// Radio is the Wi-Fi collaborator.
type Radio interface {
	Connected() bool
	// StartScan begins a scan. The channel is closed when the scan source is exhausted.
	StartScan(ctx context.Context) (<-chan Network, error)
	// StopScan releases the scan. It is called once per StartScan, also
	// when StartScan failed.
	StopScan() error
	Connect(ctx context.Context, ssid, password string) error
}

// ErrAcquisitionFailed is returned when no candidate could be joined.
var ErrAcquisitionFailed = errors.New("no known network could be joined")

// ConnectError records a failed attempt on one candidate.
type ConnectError struct {
	SSID string
	Pass int
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %q (pass %d): %v", e.SSID, e.Pass, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Attempt is the outcome of one Connect call.
type Attempt struct {
	SSID string
	Pass int
	Err  error
}

// Report summarizes an acquisition.
type Report struct {
	AlreadyConnected bool
	Seen             map[string]struct{}
	Attempts         []Attempt
	SSID             string
}

// Succeeded returns the number of successful Connect calls in the report.
func (r *Report) Succeeded() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Err == nil {
			n++
		}
	}
	return n
}
