// internal/config/normalize.go
package config

import "strings"

const (
	DefaultLogLevel  = "info"
	DefaultTimeoutMs = 2000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Capture.Scale == 0 {
		cfg.Capture.Scale = 1
	}

	for wi := range cfg.Watchers {
		w := &cfg.Watchers[wi]

		if w.ExtentPolicy == "" {
			w.ExtentPolicy = PolicyLargestQualifying
		}
		normalizeRequests(w.Requests)
	}

	for wi := range cfg.CDWatchers {
		normalizeRequests(cfg.CDWatchers[wi].Requests)
	}
}

func normalizeRequests(reqs []RequestConfig) {
	for ri := range reqs {
		r := &reqs[ri]

		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		r.Endpoint = strings.TrimSpace(r.Endpoint)

		if r.TimeoutMs == 0 {
			r.TimeoutMs = DefaultTimeoutMs
		}
	}
}
