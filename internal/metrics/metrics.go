// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the daemon's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Scans          *prometheus.CounterVec
	DispatchCycles *prometheus.CounterVec
	Suppressed     *prometheus.CounterVec
	TargetSends    *prometheus.CounterVec
	SkippedFrames  prometheus.Counter
	Percentage     *prometheus.GaugeVec
	MaxExtent      *prometheus.GaugeVec
	Brightness     *prometheus.GaugeVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelights_scans_total",
			Help: "Frames scanned per watcher",
		}, []string{"watcher"}),

		DispatchCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelights_dispatch_cycles_total",
			Help: "Dispatch cycles per watcher by outcome",
		}, []string{"watcher", "result"}),

		Suppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelights_suppressed_total",
			Help: "Changes suppressed by hysteresis per watcher",
		}, []string{"watcher"}),

		TargetSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelights_target_sends_total",
			Help: "Individual target sends by method and outcome",
		}, []string{"watcher", "method", "result"}),

		SkippedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lifelights_skipped_frames_total",
			Help: "Capture cycles skipped because no usable frame was available",
		}),

		Percentage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lifelights_percentage",
			Help: "Last accepted percentage per watcher (0..1)",
		}, []string{"watcher"}),

		MaxExtent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lifelights_max_extent",
			Help: "Maximum observed extent per watcher (pixels)",
		}, []string{"watcher"}),

		Brightness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lifelights_brightness",
			Help: "Last measured region brightness per cd watcher",
		}, []string{"watcher"}),
	}

	m.registry.MustRegister(
		m.Scans,
		m.DispatchCycles,
		m.Suppressed,
		m.TargetSends,
		m.SkippedFrames,
		m.Percentage,
		m.MaxExtent,
		m.Brightness,
	)

	return m
}

// Registry exposes the private registry (for tests and custom exporters).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
