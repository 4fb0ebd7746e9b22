// internal/frame/file.go
package frame

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"time"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// FileProvider re-reads a screenshot file on every Acquire.
// An external capture tool keeps overwriting the file.
type FileProvider struct {
	path  string
	scale float64
	now   func() time.Time
}

// NewFileProvider creates a provider for path. scale <= 0 or 1 keeps native size.
func NewFileProvider(path string, scale float64) (*FileProvider, error) {
	if path == "" {
		return nil, errors.New("frame: capture path required")
	}
	if scale <= 0 {
		scale = 1
	}
	return &FileProvider{path: path, scale: scale, now: time.Now}, nil
}

// Acquire decodes the current file contents.
// A missing file is "not ready", not an error.
func (p *FileProvider) Acquire() (*Frame, error) {
	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("frame: open %s: %w", p.path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("frame: decode %s: %w", p.path, err)
	}

	return &Frame{Image: ToRGBA(img, p.scale), At: p.now()}, nil
}

// ToRGBA converts any image to a zero-origin RGBA, optionally scaling it.
func ToRGBA(src image.Image, scale float64) *image.RGBA {
	sb := src.Bounds()

	if scale <= 0 || scale == 1 {
		if rgba, ok := src.(*image.RGBA); ok && sb.Min == (image.Point{}) {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
		xdraw.Draw(dst, dst.Bounds(), src, sb.Min, xdraw.Src)
		return dst
	}

	w := int(float64(sb.Dx()) * scale)
	h := int(float64(sb.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return dst
}
