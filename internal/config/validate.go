// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	if cfg.ScanInterval <= 0 {
		return fmt.Errorf("scan_interval must be > 0, got %v", cfg.ScanInterval)
	}
	if cfg.Capture.Scale < 0 {
		return fmt.Errorf("capture.scale must be >= 0, got %v", cfg.Capture.Scale)
	}

	if len(cfg.Watchers) == 0 && len(cfg.CDWatchers) == 0 {
		return fmt.Errorf("no watchers or cd_watchers defined")
	}

	// ------------------------------------------------------------
	// NAME UNIQUENESS (status board + metrics key on name)
	// ------------------------------------------------------------

	names := make(map[string]struct{})
	claim := func(name string) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("watcher name is required")
		}
		if _, exists := names[name]; exists {
			return fmt.Errorf("watcher %q: duplicate name", name)
		}
		names[name] = struct{}{}
		return nil
	}

	// ------------------------------------------------------------
	// WIDTH WATCHERS
	// ------------------------------------------------------------

	for _, w := range cfg.Watchers {
		if err := claim(w.Name); err != nil {
			return err
		}
		if w.MinWidth < 0 {
			return fmt.Errorf("watcher %q: min_width must be >= 0", w.Name)
		}
		if w.ChangeThreshold < 0 || w.ChangeThreshold > 100 {
			return fmt.Errorf("watcher %q: change_threshold must be within 0..100, got %v", w.Name, w.ChangeThreshold)
		}
		switch w.ExtentPolicy {
		case "", PolicyLargestQualifying, PolicyContainedMaxRight:
		default:
			return fmt.Errorf("watcher %q: unknown extent_policy %q", w.Name, w.ExtentPolicy)
		}
		if err := validateColor(w.ColorLower); err != nil {
			return fmt.Errorf("watcher %q: color_lower_limit: %w", w.Name, err)
		}
		if err := validateColor(w.ColorUpper); err != nil {
			return fmt.Errorf("watcher %q: color_upper_limit: %w", w.Name, err)
		}
		if w.ColorLower.Red > w.ColorUpper.Red ||
			w.ColorLower.Green > w.ColorUpper.Green ||
			w.ColorLower.Blue > w.ColorUpper.Blue {
			return fmt.Errorf("watcher %q: color_lower_limit exceeds color_upper_limit", w.Name)
		}
		if err := validateRequests(w.Name, w.Requests); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// CD (THRESHOLD) WATCHERS
	// ------------------------------------------------------------

	for _, w := range cfg.CDWatchers {
		if err := claim(w.Name); err != nil {
			return err
		}
		r := w.TargetRegion
		if r.X < 0 || r.Y < 0 {
			return fmt.Errorf("cd_watcher %q: target_region origin must be >= 0", w.Name)
		}
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("cd_watcher %q: target_region width/height must be > 0", w.Name)
		}
		if err := validateRequests(w.Name, w.Requests); err != nil {
			return err
		}
	}

	return nil
}

func validateColor(c Color) error {
	for _, v := range []int{c.Red, c.Green, c.Blue} {
		if v < 0 || v > 255 {
			return fmt.Errorf("channel value %d out of range 0..255", v)
		}
	}
	return nil
}

func validateRequests(watcher string, reqs []RequestConfig) error {
	for i, r := range reqs {
		method := strings.ToUpper(strings.TrimSpace(r.Method))

		switch method {
		case MethodPost, MethodGet, MethodStream, MethodWS, MethodModbus:
		case "":
			return fmt.Errorf("watcher %q: request %d: method is required", watcher, i)
		default:
			return fmt.Errorf("watcher %q: request %d: invalid method %q", watcher, i, r.Method)
		}

		if strings.TrimSpace(r.Endpoint) == "" {
			return fmt.Errorf("watcher %q: request %d: endpoint is required", watcher, i)
		}

		if method == MethodStream && (r.Port <= 0 || r.Port > 65535) {
			return fmt.Errorf("watcher %q: request %d: STREAM requires a port within 1..65535", watcher, i)
		}
		if r.Port < 0 || r.Port > 65535 {
			return fmt.Errorf("watcher %q: request %d: port %d out of range", watcher, i, r.Port)
		}

		if r.Delay < 0 {
			return fmt.Errorf("watcher %q: request %d: delay must be >= 0", watcher, i)
		}
		if r.TimeoutMs < 0 {
			return fmt.Errorf("watcher %q: request %d: timeout_ms must be >= 0", watcher, i)
		}
	}
	return nil
}
