package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
station:
  id: B06
  lines: [M, F]
feed:
  kind: api
  url: https://example.test/api/arrivals
  intervalMS: 30000
wifi:
  networks:
    - ssid: RedRover
    - ssid: WhiteSky
      password: secret
display:
  terminal: true
mirror:
  enabled: true
  port: 8080
`

const sampleTOML = `
[station]
id = "B06"
lines = ["F"]

[feed]
kind = "gtfsrt"
url = "https://example.test/gtfs-bdfm"

[[wifi.networks]]
ssid = "ddr"
password = "dddddddd"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"M", "F"}, cfg.Station.Lines)
	assert.Equal(t, 30*time.Second, cfg.Feed.Interval())
	require.Len(t, cfg.WiFi.Networks, 2)
	assert.Equal(t, "", cfg.WiFi.Networks[0].Password)
	assert.Equal(t, "secret", cfg.WiFi.Networks[1].Password)
	assert.Equal(t, 8080, cfg.Mirror.Port)

	// defaults
	assert.Equal(t, "Roosevelt Island", cfg.Station.Name)
	assert.Equal(t, 50*time.Millisecond, cfg.Display.Tick())
	assert.Equal(t, 6*time.Second, cfg.WiFi.ScanTimeout())
	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout())
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.toml", sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "gtfsrt", cfg.Feed.Kind)
	assert.Equal(t, []string{"F"}, cfg.Station.Lines)
	require.Len(t, cfg.WiFi.Networks, 1)
	assert.Equal(t, "ddr", cfg.WiFi.Networks[0].SSID)
	assert.Equal(t, 15*time.Second, cfg.Feed.Interval())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"invalid yaml", "config.yml", "invalid: yaml: content: [[["},
		{"invalid toml", "config.toml", "[station\nid ="},
		{"unknown feed kind", "config.yml", "feed:\n  kind: soap\n"},
		{"bad station id", "config.yml", "station:\n  id: B-06\n"},
		{"network without ssid", "config.yml", "wifi:\n  networks:\n    - password: x\n"},
		{"negative interval", "config.yml", "feed:\n  intervalMS: -1\n"},
		{"malformed url", "config.yml", "feed:\n  url: http://example.test/%zz\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, "B06", cfg.Station.ID)
	assert.Equal(t, "api", cfg.Feed.Kind)
	assert.Equal(t, 240, cfg.Display.Width)
	assert.Equal(t, 135, cfg.Display.Height)
	assert.Equal(t, 16181, cfg.Mirror.Port)
	assert.Equal(t, "GPIO17", cfg.Buttons.A)
	assert.Equal(t, "GPIO27", cfg.Buttons.B)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	origConfig := Config
	origPaths := DefaultPaths
	defer func() {
		Config = origConfig
		DefaultPaths = origPaths
	}()

	DefaultPaths = []string{filepath.Join(t.TempDir(), "nope.yml")}
	assert.Error(t, LoadAppConfig())
}

func TestLoadAppConfig_FirstExistingPath(t *testing.T) {
	origConfig, origPath := Config, ConfigPath
	origPaths := DefaultPaths
	defer func() {
		Config, ConfigPath = origConfig, origPath
		DefaultPaths = origPaths
	}()

	path := writeFile(t, "config.yml", sampleYAML)
	DefaultPaths = []string{filepath.Join(t.TempDir(), "missing.yml"), path}
	require.NoError(t, LoadAppConfig())
	assert.Equal(t, []string{"M", "F"}, Config.Station.Lines)
	assert.Equal(t, path, ConfigPath)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "config.yml", sampleYAML)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan AppConfig, 1)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, out) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("station:\n  lines: [M]\n"), 0644))

	// A truncating write can surface as more than one event.
	deadline := time.After(3 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case cfg := <-out:
			reloaded = len(cfg.Station.Lines) == 1 && cfg.Station.Lines[0] == "M"
		case <-deadline:
			t.Fatal("no reload received")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestOffer_ReplacesPending(t *testing.T) {
	out := make(chan AppConfig, 1)
	offer(out, AppConfig{Station: StationConfig{ID: "A"}})
	offer(out, AppConfig{Station: StationConfig{ID: "B"}})
	assert.Equal(t, "B", (<-out).Station.ID)
}
