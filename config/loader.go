package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// ConfigPath is the file LoadAppConfig read Config from.
var ConfigPath string

// DefaultPaths are searched in order by LoadAppConfig.
var DefaultPaths = []string{"config.yml", "config.toml", "/etc/telltale/config.yml"}

// LoadAppConfig loads the first config file found in DefaultPaths into Config.
func LoadAppConfig() error {
	var lastErr error
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err != nil {
			lastErr = err
			continue
		}
		cfg, err := Load(p)
		if err != nil {
			return err
		}
		Config = cfg
		ConfigPath = p
		return nil
	}
	return lastErr
}

// Load reads, validates and defaults a config file. Files ending in .toml are
// parsed as TOML, everything else as YAML.
func Load(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes config data of the given extension (".yml", ".yaml" or ".toml").
func Parse(data []byte, ext string) (AppConfig, error) {
	var cfg AppConfig
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	if cfg.Feed.URL != "" && strings.HasPrefix(cfg.Feed.URL, "http") {
		if err := v.Var(cfg.Feed.URL, "url"); err != nil {
			return AppConfig{}, fmt.Errorf("feed.url: %w", err)
		}
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// ApplyDefaults fills zero values with the stock Roosevelt Island setup.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Station.ID == "" {
		cfg.Station.ID = "B06"
	}
	if cfg.Station.Name == "" {
		cfg.Station.Name = "Roosevelt Island"
	}
	if len(cfg.Station.Lines) == 0 {
		cfg.Station.Lines = []string{"F", "M"}
	}
	if cfg.Feed.Kind == "" {
		cfg.Feed.Kind = "api"
	}
	if cfg.Feed.URL == "" && cfg.Feed.Kind == "api" {
		cfg.Feed.URL = "https://subwayinfo.nyc/api/arrivals"
	}
	if cfg.Feed.Limit == 0 {
		cfg.Feed.Limit = 20
	}
	if cfg.Feed.IntervalMS == 0 {
		cfg.Feed.IntervalMS = 15000
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = 5000
	}
	if cfg.WiFi.ScanTimeoutMS == 0 {
		cfg.WiFi.ScanTimeoutMS = 6000
	}
	if cfg.Display.Width == 0 {
		cfg.Display.Width = 240
	}
	if cfg.Display.Height == 0 {
		cfg.Display.Height = 135
	}
	if cfg.Display.TickMS == 0 {
		cfg.Display.TickMS = 50
	}
	if cfg.Mirror.Port == 0 {
		cfg.Mirror.Port = 16181
	}
	if cfg.Buttons.A == "" {
		cfg.Buttons.A = "GPIO17"
	}
	if cfg.Buttons.B == "" {
		cfg.Buttons.B = "GPIO27"
	}
}
