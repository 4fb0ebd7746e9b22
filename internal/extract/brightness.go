// internal/extract/brightness.go
package extract

import (
	"image"

	"github.com/tamzrod/lifelights/internal/detect"
	"github.com/tamzrod/lifelights/internal/frame"
)

// Brightness measures the mean of the three channel means over a fixed region.
type Brightness struct {
	detector detect.Detector
	region   image.Rectangle
}

func NewBrightness(d detect.Detector, region image.Rectangle) *Brightness {
	return &Brightness{detector: d, region: region}
}

func (b *Brightness) Measure(f *frame.Frame) float64 {
	r, g, bl := b.detector.RegionMean(f, b.region)
	return (r + g + bl) / 3
}

// Extent runs the detector and hands its candidates to a policy.
type Extent struct {
	detector detect.Detector
	colors   detect.Range
	minSize  int
	policy   Policy
}

func NewExtent(d detect.Detector, colors detect.Range, minSize int, p Policy) *Extent {
	return &Extent{detector: d, colors: colors, minSize: minSize, policy: p}
}

func (e *Extent) Measure(f *frame.Frame, maxExtent float64) Selection {
	return e.policy.Select(e.detector.Detect(f, e.colors), e.minSize, maxExtent)
}

func (e *Extent) Policy() Policy { return e.policy }
