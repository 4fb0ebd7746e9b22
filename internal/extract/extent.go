// internal/extract/extent.go
package extract

import (
	"fmt"

	"github.com/tamzrod/lifelights/internal/config"
	"github.com/tamzrod/lifelights/internal/detect"
)

// Selection is what an extent policy made of one cycle's candidates.
type Selection struct {
	// Candidates is the number of boxes the detector returned.
	Candidates int

	// Extent is the raw extent for this cycle. Valid only if HasExtent.
	Extent    float64
	HasExtent bool

	// Widest is the widest qualifying candidate, fed to the ratchet.
	// Valid only if HasWidest.
	Widest    float64
	HasWidest bool
}

// Policy chooses the extent from a cycle's candidates.
// maxExtent is the watcher's current ratchet value.
type Policy interface {
	Name() string
	Select(boxes []detect.Box, minSize int, maxExtent float64) Selection
}

// NewPolicy maps a config policy name to an implementation.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "", config.PolicyLargestQualifying:
		return LargestQualifying{}, nil
	case config.PolicyContainedMaxRight:
		return &ContainedMaxRight{}, nil
	default:
		return nil, fmt.Errorf("extract: unknown extent policy %q", name)
	}
}

// ------------------------------------------------------------
// LARGEST QUALIFYING
// ------------------------------------------------------------

// LargestQualifying picks the widest candidate with width >= minSize.
// Ties keep the first candidate reaching the maximum.
type LargestQualifying struct{}

func (LargestQualifying) Name() string { return config.PolicyLargestQualifying }

func (LargestQualifying) Select(boxes []detect.Box, minSize int, _ float64) Selection {
	sel := Selection{Candidates: len(boxes)}

	best := -1
	for i, b := range boxes {
		if b.W < minSize {
			continue
		}
		if best < 0 || b.W > boxes[best].W {
			best = i
		}
	}

	if best >= 0 {
		w := float64(boxes[best].W)
		sel.Extent, sel.HasExtent = w, true
		sel.Widest, sel.HasWidest = w, true
	}
	return sel
}

// ------------------------------------------------------------
// CONTAINED MAX RIGHT
// ------------------------------------------------------------

// ContainedMaxRight anchors on the widest bar ever seen and measures how far
// the right-most contained candidate reaches into it. Bars are assumed to
// drain from the right.
//
// The anchor is policy state: one instance per watcher.
type ContainedMaxRight struct {
	anchorX, anchorY float64
	anchorH          float64
	anchored         bool
}

func (*ContainedMaxRight) Name() string { return config.PolicyContainedMaxRight }

func (p *ContainedMaxRight) Select(boxes []detect.Box, minSize int, maxExtent float64) Selection {
	sel := Selection{Candidates: len(boxes)}

	if !p.anchored {
		p.anchorH = 1
		p.anchored = true
	}

	width := maxExtent
	maxRight := 0.0

	for _, b := range boxes {
		w := float64(b.W)

		if b.W >= minSize && w > width {
			width = w
			p.anchorX, p.anchorY = float64(b.X), float64(b.Y)
			p.anchorH = float64(b.H)
			sel.Widest, sel.HasWidest = w, true
		}

		right := float64(b.X + b.W)
		if right <= maxRight {
			continue
		}

		y := float64(b.Y)
		if p.anchorX <= right && right <= p.anchorX+width &&
			p.anchorY <= y && y <= p.anchorY+p.anchorH {
			maxRight = right
			sel.Extent, sel.HasExtent = maxRight-p.anchorX, true
		}
	}

	return sel
}
