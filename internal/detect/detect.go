// internal/detect/detect.go
package detect

import (
	"image"

	"github.com/tamzrod/lifelights/internal/frame"
)

// Color is an inclusive per-channel bound.
type Color struct {
	R, G, B uint8
}

// Range is an inclusive color window.
type Range struct {
	Lower Color
	Upper Color
}

// Contains reports whether r, g, b fall inside the window.
func (cr Range) Contains(r, g, b uint8) bool {
	return r >= cr.Lower.R && r <= cr.Upper.R &&
		g >= cr.Lower.G && g <= cr.Upper.G &&
		b >= cr.Lower.B && b <= cr.Upper.B
}

// Box is an axis-aligned bounding box in frame pixels.
type Box struct {
	X, Y, W, H int
}

// Detector is the region capability the watchers depend on.
type Detector interface {
	// Detect returns one bounding box per connected in-range region,
	// in a stable order.
	Detect(f *frame.Frame, cr Range) []Box

	// RegionMean returns the mean of each channel over rect, clipped to the frame.
	RegionMean(f *frame.Frame, rect image.Rectangle) (r, g, b float64)
}
