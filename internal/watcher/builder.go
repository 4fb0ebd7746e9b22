// internal/watcher/builder.go
package watcher

import (
	"fmt"
	"image"

	cfg "github.com/tamzrod/lifelights/internal/config"
	"github.com/tamzrod/lifelights/internal/detect"
	"github.com/tamzrod/lifelights/internal/dispatch"
	"github.com/tamzrod/lifelights/internal/extract"
	"github.com/tamzrod/lifelights/internal/metrics"
	"github.com/tamzrod/lifelights/internal/status"
	"github.com/tamzrod/lifelights/internal/tracker"
)

// Deps are the collaborators shared by every watcher.
// None of them carries per-watcher state.
type Deps struct {
	Detector detect.Detector
	Board    *status.Board
	Metrics  *metrics.Metrics
}

// Build constructs every configured watcher, width watchers first.
// Assumes config has already passed validation and normalization.
// On error, any watcher already built is closed.
func Build(c *cfg.Config, d Deps) ([]Watcher, error) {
	var out []Watcher

	fail := func(err error) ([]Watcher, error) {
		for _, w := range out {
			_ = w.Close()
		}
		return nil, err
	}

	for _, wc := range c.Watchers {
		w, err := BuildWidth(wc, d)
		if err != nil {
			return fail(err)
		}
		out = append(out, w)
	}

	for _, wc := range c.CDWatchers {
		w, err := BuildCD(wc, d)
		if err != nil {
			return fail(err)
		}
		out = append(out, w)
	}

	return out, nil
}

func BuildWidth(wc cfg.WidthWatcher, d Deps) (*WidthWatcher, error) {
	policy, err := extract.NewPolicy(wc.ExtentPolicy)
	if err != nil {
		return nil, fmt.Errorf("watcher %q: %w", wc.Name, err)
	}

	engine, err := newEngine(wc.Name, wc.Requests, d)
	if err != nil {
		return nil, err
	}

	ext := extract.NewExtent(d.Detector, detect.Range{
		Lower: toColor(wc.ColorLower),
		Upper: toColor(wc.ColorUpper),
	}, wc.MinWidth, policy)

	return NewWidthWatcher(wc.Name, ext, tracker.New(wc.ChangeThreshold), engine, d.Board, d.Metrics), nil
}

func BuildCD(wc cfg.CDWatcher, d Deps) (*CDWatcher, error) {
	engine, err := newEngine(wc.Name, wc.Requests, d)
	if err != nil {
		return nil, err
	}

	r := wc.TargetRegion
	region := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)

	return NewCDWatcher(wc.Name, extract.NewBrightness(d.Detector, region), wc.MinThreshold, engine, d.Board, d.Metrics), nil
}

func newEngine(name string, reqs []cfg.RequestConfig, d Deps) (*dispatch.Engine, error) {
	plan, err := dispatch.BuildPlan(name, reqs)
	if err != nil {
		return nil, err
	}
	return dispatch.New(plan, dispatch.WithMetrics(d.Metrics)), nil
}

func toColor(c cfg.Color) detect.Color {
	return detect.Color{R: uint8(c.Red), G: uint8(c.Green), B: uint8(c.Blue)}
}
