// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ScanInterval float64        `yaml:"scan_interval"` // seconds
	LogLevel     string         `yaml:"log_level"`
	Capture      CaptureConfig  `yaml:"capture"`
	Status       StatusConfig   `yaml:"status"`
	Watchers     []WidthWatcher `yaml:"watchers"`
	CDWatchers   []CDWatcher    `yaml:"cd_watchers"`
}

// ---- CAPTURE ----

type CaptureConfig struct {
	Path  string  `yaml:"path"`
	Scale float64 `yaml:"scale"` // 0 or 1 => native size
}

// ---- STATUS SURFACE ----

type StatusConfig struct {
	Listen string `yaml:"listen"` // empty => disabled
}

// ---- WATCHERS ----

// WidthWatcher tracks the extent of a colored bar.
type WidthWatcher struct {
	Name            string          `yaml:"name"`
	MinWidth        int             `yaml:"min_width"`
	ChangeThreshold float64         `yaml:"change_threshold"` // percent
	ExtentPolicy    string          `yaml:"extent_policy"`
	ColorLower      Color           `yaml:"color_lower_limit"`
	ColorUpper      Color           `yaml:"color_upper_limit"`
	Requests        []RequestConfig `yaml:"requests"`
}

// CDWatcher tracks the brightness of a fixed region.
type CDWatcher struct {
	Name         string          `yaml:"name"`
	MinThreshold float64         `yaml:"min_threshold"`
	TargetRegion Region          `yaml:"target_region"`
	Requests     []RequestConfig `yaml:"requests"`
}

type Color struct {
	Red   int `yaml:"red"`
	Green int `yaml:"green"`
	Blue  int `yaml:"blue"`
}

type Region struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ---- REQUESTS ----

type RequestConfig struct {
	Method    string         `yaml:"method"`
	Endpoint  string         `yaml:"endpoint"`
	Port      int            `yaml:"port"`
	Payloads  map[string]any `yaml:"payloads"`
	Delay     float64        `yaml:"delay"` // seconds
	TimeoutMs int            `yaml:"timeout_ms"`

	// MODBUS only
	UnitID  uint8  `yaml:"unit_id"`
	Address uint16 `yaml:"address"`
}

// Extent policy names.
const (
	PolicyLargestQualifying = "largest_qualifying"
	PolicyContainedMaxRight = "contained_max_right"
)

// Request methods.
const (
	MethodPost   = "POST"
	MethodGet    = "GET"
	MethodStream = "STREAM"
	MethodWS     = "WS"
	MethodModbus = "MODBUS"
)

// Load reads and decodes a YAML config file.
// It performs no validation.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return &cfg, nil
}
