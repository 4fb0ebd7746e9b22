// internal/frame/frame.go
package frame

import (
	"image"
	"time"
)

// Frame is one captured picture.
type Frame struct {
	Image *image.RGBA
	At    time.Time
}

// Provider produces frames on demand.
// A nil frame with a nil error means "not ready yet"; the caller skips the cycle.
type Provider interface {
	Acquire() (*Frame, error)
}

// Bounds returns the frame rectangle, or an empty rectangle for a nil frame.
func (f *Frame) Bounds() image.Rectangle {
	if f == nil || f.Image == nil {
		return image.Rectangle{}
	}
	return f.Image.Bounds()
}

// Empty reports whether the frame carries no signal at all:
// no pixels, or every pixel is black. Alpha is ignored; decoded
// screenshots are opaque.
func (f *Frame) Empty() bool {
	if f == nil || f.Image == nil || f.Image.Bounds().Empty() {
		return true
	}

	img := f.Image
	w := img.Bounds().Dx() * 4
	for y := 0; y < img.Bounds().Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for i := 0; i < len(row); i += 4 {
			if row[i] != 0 || row[i+1] != 0 || row[i+2] != 0 {
				return false
			}
		}
	}
	return true
}
