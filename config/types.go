package config

import "time"

// StationConfig selects the station and lines to track.
type StationConfig struct {
	ID    string   `yaml:"id" toml:"id" validate:"omitempty,alphanum"`
	Name  string   `yaml:"name" toml:"name"`
	Lines []string `yaml:"lines" toml:"lines" validate:"omitempty,dive,required"`
}

// FeedConfig contains the arrivals source configuration
type FeedConfig struct {
	Kind       string `yaml:"kind" toml:"kind" validate:"omitempty,oneof=api gtfsrt"`
	URL        string `yaml:"url" toml:"url" validate:"omitempty"`
	Limit      int    `yaml:"limit" toml:"limit" validate:"gte=0"`
	IntervalMS int    `yaml:"intervalMS" toml:"intervalMS" validate:"gte=0"`
	TimeoutMS  int    `yaml:"timeoutMS" toml:"timeoutMS" validate:"gte=0"`
}

// NetworkConfig is one known Wi-Fi network. Order in the list is priority.
type NetworkConfig struct {
	SSID     string `yaml:"ssid" toml:"ssid" validate:"required"`
	Password string `yaml:"password" toml:"password"`
}

// WiFiConfig controls boot-time network acquisition
type WiFiConfig struct {
	Device        string          `yaml:"device" toml:"device"`
	ScanTimeoutMS int             `yaml:"scanTimeoutMS" toml:"scanTimeoutMS" validate:"gte=0"`
	Networks      []NetworkConfig `yaml:"networks" toml:"networks" validate:"dive"`
}

// AssetsConfig points at the optional sprite sheets and icons.
type AssetsConfig struct {
	SheetWait    string `yaml:"sheetWait" toml:"sheetWait"`
	SheetGo      string `yaml:"sheetGo" toml:"sheetGo"`
	SheetArrival string `yaml:"sheetArrival" toml:"sheetArrival"`
	IconGrey     string `yaml:"iconGrey" toml:"iconGrey"`
	IconBlack    string `yaml:"iconBlack" toml:"iconBlack"`
	IconBlue     string `yaml:"iconBlue" toml:"iconBlue"`
	IconOrange   string `yaml:"iconOrange" toml:"iconOrange"`
}

// DisplayConfig describes the panel and the UI cadence.
type DisplayConfig struct {
	Width    int          `yaml:"width" toml:"width" validate:"gte=0"`
	Height   int          `yaml:"height" toml:"height" validate:"gte=0"`
	TickMS   int          `yaml:"tickMS" toml:"tickMS" validate:"gte=0"`
	Terminal bool         `yaml:"terminal" toml:"terminal"`
	Assets   AssetsConfig `yaml:"assets" toml:"assets"`
}

// MirrorConfig contains the preview server configuration
type MirrorConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	Port    int  `yaml:"port" toml:"port" validate:"gte=0,lte=65535"`
}

// ButtonsConfig names the GPIO pins of the two buttons.
type ButtonsConfig struct {
	A        string `yaml:"a" toml:"a"`
	B        string `yaml:"b" toml:"b"`
	Keyboard bool   `yaml:"keyboard" toml:"keyboard"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Station StationConfig `yaml:"station" toml:"station"`
	Feed    FeedConfig    `yaml:"feed" toml:"feed"`
	WiFi    WiFiConfig    `yaml:"wifi" toml:"wifi"`
	Display DisplayConfig `yaml:"display" toml:"display"`
	Mirror  MirrorConfig  `yaml:"mirror" toml:"mirror"`
	Buttons ButtonsConfig `yaml:"buttons" toml:"buttons"`
}

// Interval returns the arrivals refresh interval.
func (c FeedConfig) Interval() time.Duration { return time.Duration(c.IntervalMS) * time.Millisecond }

// Timeout returns the per-request fetch timeout.
func (c FeedConfig) Timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

// ScanTimeout returns the Wi-Fi scan window.
func (c WiFiConfig) ScanTimeout() time.Duration {
	return time.Duration(c.ScanTimeoutMS) * time.Millisecond
}

// Tick returns the UI loop period.
func (c DisplayConfig) Tick() time.Duration { return time.Duration(c.TickMS) * time.Millisecond }
