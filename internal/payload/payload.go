// internal/payload/payload.go
package payload

import (
	"math"
	"sort"
)

// Placeholder symbols recognised in payload templates.
const (
	RGBPlaceholder        = "RGB_PLACEHOLDER"
	WidthPlaceholder      = "WIDTH_PLACEHOLDER"
	PercentPlaceholder    = "PERCENT_PLACEHOLDER"
	BrightnessPlaceholder = "BRIGHTNESS_PLACEHOLDER"
	RawPercentPlaceholder = "RAW_PERCENT_PLACEHOLDER"
	IsOnPlaceholder       = "IS_ON_PLACEHOLDER"
)

// Measurement is the accepted value a dispatch cycle substitutes.
type Measurement struct {
	Percent   float64 // [0,1]
	RawExtent float64 // pixels
	On        int     // 0 or 1
}

// Resolve returns a fresh payload with every placeholder replaced.
// The template is never mutated; nested maps and lists are copied.
// Unrecognised values pass through unchanged.
func Resolve(template map[string]any, m Measurement) map[string]any {
	out := make(map[string]any, len(template))
	for k, v := range template {
		out[k] = resolveValue(v, m)
	}
	return out
}

func resolveValue(v any, m Measurement) any {
	switch t := v.(type) {
	case string:
		if r, ok := Lookup(t, m); ok {
			return r
		}
		return t
	case map[string]any:
		return Resolve(t, m)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = resolveValue(e, m)
		}
		return out
	default:
		return v
	}
}

// Lookup resolves a single placeholder symbol.
func Lookup(symbol string, m Measurement) (any, bool) {
	switch symbol {
	case RGBPlaceholder:
		return RGB(m.Percent), true
	case WidthPlaceholder:
		return int(math.Round(m.RawExtent)), true
	case PercentPlaceholder:
		return int(math.Round(m.Percent * 100)), true
	case BrightnessPlaceholder:
		return int(math.Round(m.Percent * 255)), true
	case RawPercentPlaceholder:
		return m.Percent, true
	case IsOnPlaceholder:
		return m.On, true
	default:
		return nil, false
	}
}

// RGB maps a percentage onto a red-to-green gradient.
func RGB(percent float64) []int {
	return []int{
		int(math.Round((1 - percent) * 255)),
		int(math.Round(percent * 255)),
		0,
	}
}

// SortedKeys returns the payload keys in lexical order, for wire formats
// that need a stable argument order.
func SortedKeys(p map[string]any) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
