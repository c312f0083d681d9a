package network

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// NMCLIRadio drives NetworkManager through the nmcli command line tool.
type NMCLIRadio struct {
	Binary string
	Device string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewNMCLIRadio returns a radio bound to the given wifi device ("" lets nmcli choose).
func NewNMCLIRadio(device string) *NMCLIRadio {
	return &NMCLIRadio{Binary: "nmcli", Device: device}
}

func (r *NMCLIRadio) Connected() bool {
	out, err := exec.Command(r.Binary, "-t", "-f", "STATE", "general").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "connected"
}

func (r *NMCLIRadio) StartScan(ctx context.Context) (<-chan Network, error) {
	scanCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	args := []string{"-t", "-f", "SSID,SIGNAL", "device", "wifi", "list", "--rescan", "yes"}
	if r.Device != "" {
		args = append(args, "ifname", r.Device)
	}
	cmd := exec.CommandContext(scanCtx, r.Binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("nmcli scan: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("nmcli scan: %w", err)
	}

	out := make(chan Network)
	go func() {
		defer close(out)
		defer func() { _ = cmd.Wait() }()
		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			n, ok := parseScanLine(sc.Text())
			if !ok {
				continue
			}
			select {
			case out <- n:
			case <-scanCtx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (r *NMCLIRadio) StopScan() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	return nil
}

func (r *NMCLIRadio) Connect(ctx context.Context, ssid, password string) error {
	args := []string{"device", "wifi", "connect", ssid}
	if password != "" {
		args = append(args, "password", password)
	}
	if r.Device != "" {
		args = append(args, "ifname", r.Device)
	}
	// hidden yes lets the fallback pass reach networks that were not scanned.
	args = append(args, "hidden", "yes")
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// parseScanLine parses "SSID:SIGNAL" terse output. nmcli escapes ':' inside
// fields as "\:", so the last unescaped colon separates the two.
func parseScanLine(line string) (Network, bool) {
	idx := strings.LastIndex(line, ":")
	if idx <= 0 {
		return Network{}, false
	}
	ssid := strings.ReplaceAll(line[:idx], `\:`, ":")
	signal, _ := strconv.Atoi(line[idx+1:])
	if ssid == "" {
		return Network{}, false
	}
	return Network{SSID: ssid, RSSI: signal}, true
}
