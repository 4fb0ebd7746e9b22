// internal/detect/color.go
package detect

import (
	"image"

	"github.com/tamzrod/lifelights/internal/frame"
)

// ColorDetector masks a frame by color and groups masked pixels into
// 8-connected regions. Only outermost regions are reported: a region lying
// in a hole of another region is dropped. Boxes are emitted in raster order
// of each region's first pixel.
type ColorDetector struct{}

func NewColorDetector() *ColorDetector { return &ColorDetector{} }

// component is one labelled region in local (zero-origin) coordinates.
type component struct {
	minX, minY, maxX, maxY int
	first                  int // index of the first pixel in raster order
}

func (ColorDetector) Detect(f *frame.Frame, cr Range) []Box {
	if f == nil || f.Image == nil {
		return nil
	}

	img := f.Image
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+3]
			mask[y*w+x] = cr.Contains(p[0], p[1], p[2])
		}
	}

	labels, comps := label(mask, w, h)

	var boxes []Box
	for i, c := range comps {
		if nested(labels, w, h, comps, i) {
			continue
		}
		boxes = append(boxes, Box{
			X: b.Min.X + c.minX,
			Y: b.Min.Y + c.minY,
			W: c.maxX - c.minX + 1,
			H: c.maxY - c.minY + 1,
		})
	}

	return boxes
}

// label assigns every masked pixel the 1-based index of its 8-connected component.
func label(mask []bool, w, h int) ([]int32, []component) {
	labels := make([]int32, w*h)
	var comps []component
	stack := make([]int, 0, 64)

	for start := range mask {
		if !mask[start] || labels[start] != 0 {
			continue
		}

		id := int32(len(comps) + 1)
		c := component{minX: w, minY: h, maxX: -1, maxY: -1, first: start}

		labels[start] = id
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := idx%w, idx/w
			c.minX, c.maxX = min(c.minX, x), max(c.maxX, x)
			c.minY, c.maxY = min(c.minY, y), max(c.maxY, y)

			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w || (dx == 0 && dy == 0) {
						continue
					}
					n := ny*w + nx
					if mask[n] && labels[n] == 0 {
						labels[n] = id
						stack = append(stack, n)
					}
				}
			}
		}

		comps = append(comps, c)
	}

	return labels, comps
}

// nested reports whether component i sits in a hole of an earlier component.
// An enclosing component starts above (or left of) anything it encloses, so
// only earlier components whose box contains i's box are candidates.
func nested(labels []int32, w, h int, comps []component, i int) bool {
	in := comps[i]
	for j := 0; j < i; j++ {
		out := comps[j]
		if in.minX <= out.minX || in.maxX >= out.maxX || in.minY <= out.minY || in.maxY >= out.maxY {
			continue
		}
		if !outside(labels, w, h, out, int32(j+1), in.first) {
			return true
		}
	}
	return false
}

// outside reports whether pixel p is reachable from beyond out's box without
// crossing out's pixels. Background around an 8-connected region is 4-connected.
func outside(labels []int32, w, h int, out component, id int32, p int) bool {
	x0, y0 := max(out.minX-1, 0), max(out.minY-1, 0)
	x1, y1 := min(out.maxX+1, w-1), min(out.maxY+1, h-1)
	ww := x1 - x0 + 1

	visited := make([]bool, ww*(y1-y0+1))
	var stack []int

	push := func(x, y int) {
		if x < x0 || x > x1 || y < y0 || y > y1 {
			return
		}
		n := y*w + x
		v := (y-y0)*ww + (x - x0)
		if visited[v] || labels[n] == id {
			return
		}
		visited[v] = true
		stack = append(stack, n)
	}

	for x := x0; x <= x1; x++ {
		push(x, y0)
		push(x, y1)
	}
	for y := y0; y <= y1; y++ {
		push(x0, y)
		push(x1, y)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == p {
			return true
		}
		x, y := n%w, n/w
		push(x+1, y)
		push(x-1, y)
		push(x, y+1)
		push(x, y-1)
	}
	return false
}

func (ColorDetector) RegionMean(f *frame.Frame, rect image.Rectangle) (r, g, b float64) {
	if f == nil || f.Image == nil {
		return 0, 0, 0
	}

	img := f.Image
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return 0, 0, 0
	}

	var sr, sg, sb uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			i := img.PixOffset(x, y)
			sr += uint64(img.Pix[i])
			sg += uint64(img.Pix[i+1])
			sb += uint64(img.Pix[i+2])
		}
	}

	n := float64(rect.Dx() * rect.Dy())
	return float64(sr) / n, float64(sg) / n, float64(sb) / n
}
