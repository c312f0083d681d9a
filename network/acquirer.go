package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// DefaultScanTimeout bounds the scan window.
const DefaultScanTimeout = 6 * time.Second

// Acquirer connects a Radio to one of several known networks.
type Acquirer struct {
	radio       Radio
	scanTimeout time.Duration
}

// NewAcquirer creates an Acquirer. A non-positive scanTimeout uses DefaultScanTimeout.
func NewAcquirer(radio Radio, scanTimeout time.Duration) *Acquirer {
	if scanTimeout <= 0 {
		scanTimeout = DefaultScanTimeout
	}
	return &Acquirer{radio: radio, scanTimeout: scanTimeout}
}

// Acquire joins the first reachable candidate. It returns ErrAcquisitionFailed
// (joined with every attempt error) when all candidates fail.
func (a *Acquirer) Acquire(ctx context.Context, candidates []Candidate) (*Report, error) {
	report := &Report{Seen: map[string]struct{}{}}
	if a.radio.Connected() {
		report.AlreadyConnected = true
		return report, nil
	}

	seen, err := a.scan(ctx)
	if err != nil {
		log.Printf("wifi scan failed: %v", err)
	}
	report.Seen = seen

	var failures []error
	try := func(pass int, c Candidate) bool {
		err := a.radio.Connect(ctx, c.SSID, c.Password)
		report.Attempts = append(report.Attempts, Attempt{SSID: c.SSID, Pass: pass, Err: err})
		if err != nil {
			cerr := &ConnectError{SSID: c.SSID, Pass: pass, Err: err}
			log.Printf("wifi %v", cerr)
			failures = append(failures, cerr)
			return false
		}
		report.SSID = c.SSID
		log.Printf("wifi connected to %q (pass %d)", c.SSID, pass)
		return true
	}

	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		if _, ok := seen[c.SSID]; !ok {
			continue
		}
		if try(1, c) {
			return report, nil
		}
	}

	// Hidden networks do not show up in scans.
	for _, c := range candidates {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}
		if try(2, c) {
			return report, nil
		}
	}

	if len(failures) == 0 {
		return report, ErrAcquisitionFailed
	}
	return report, fmt.Errorf("%w: %w", ErrAcquisitionFailed, errors.Join(failures...))
}

func (a *Acquirer) scan(ctx context.Context) (map[string]struct{}, error) {
	seen := map[string]struct{}{}
	// StopScan is owed even when StartScan fails; the radio may be left
	// half-way into a scan.
	defer func() {
		if err := a.radio.StopScan(); err != nil {
			log.Printf("wifi stop scan: %v", err)
		}
	}()
	results, err := a.radio.StartScan(ctx)
	if err != nil {
		return seen, fmt.Errorf("start scan: %w", err)
	}

	deadline := time.NewTimer(a.scanTimeout)
	defer deadline.Stop()
	for {
		select {
		case n, ok := <-results:
			if !ok {
				return seen, nil
			}
			if n.SSID != "" {
				seen[n.SSID] = struct{}{}
			}
		case <-deadline.C:
			return seen, nil
		case <-ctx.Done():
			return seen, ctx.Err()
		}
	}
}
