// internal/payload/payload_test.go
package payload

import (
	"reflect"
	"testing"
)

func template() map[string]any {
	return map[string]any{
		"color":   RGBPlaceholder,
		"width":   WidthPlaceholder,
		"pct":     PercentPlaceholder,
		"bri":     BrightnessPlaceholder,
		"raw":     RawPercentPlaceholder,
		"on":      IsOnPlaceholder,
		"scene":   "living-room",
		"channel": 3,
		"nested":  map[string]any{"level": PercentPlaceholder},
		"list":    []any{BrightnessPlaceholder, "x"},
	}
}

func TestResolve_AllPlaceholders(t *testing.T) {
	m := Measurement{Percent: 0.4, RawExtent: 40, On: 1}
	got := Resolve(template(), m)

	if !reflect.DeepEqual(got["color"], []int{153, 102, 0}) {
		t.Fatalf("color: got=%v", got["color"])
	}
	if got["width"] != 40 {
		t.Fatalf("width: got=%v", got["width"])
	}
	if got["pct"] != 40 {
		t.Fatalf("pct: got=%v", got["pct"])
	}
	if got["bri"] != 102 {
		t.Fatalf("bri: got=%v", got["bri"])
	}
	if got["raw"] != 0.4 {
		t.Fatalf("raw: got=%v", got["raw"])
	}
	if got["on"] != 1 {
		t.Fatalf("on: got=%v", got["on"])
	}
	if got["scene"] != "living-room" || got["channel"] != 3 {
		t.Fatalf("pass-through values changed: scene=%v channel=%v", got["scene"], got["channel"])
	}
	if got["nested"].(map[string]any)["level"] != 40 {
		t.Fatalf("nested: got=%v", got["nested"])
	}
	if !reflect.DeepEqual(got["list"], []any{102, "x"}) {
		t.Fatalf("list: got=%v", got["list"])
	}
}

func TestResolve_FullAndEmpty(t *testing.T) {
	full := Resolve(template(), Measurement{Percent: 1})
	if full["pct"] != 100 || full["bri"] != 255 {
		t.Fatalf("full: pct=%v bri=%v", full["pct"], full["bri"])
	}
	if !reflect.DeepEqual(full["color"], []int{0, 255, 0}) {
		t.Fatalf("full color: got=%v", full["color"])
	}

	empty := Resolve(template(), Measurement{Percent: 0})
	if !reflect.DeepEqual(empty["color"], []int{255, 0, 0}) {
		t.Fatalf("empty color: got=%v", empty["color"])
	}
}

func TestResolve_TemplateNotMutated(t *testing.T) {
	tpl := template()
	Resolve(tpl, Measurement{Percent: 0.7, RawExtent: 70})

	if !reflect.DeepEqual(tpl, template()) {
		t.Fatalf("template mutated: %v", tpl)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	tpl := template()
	m := Measurement{Percent: 0.55, RawExtent: 55, On: 1}

	a := Resolve(tpl, m)
	b := Resolve(tpl, m)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("resolutions differ:\n%v\n%v", a, b)
	}

	// mutating one result must not leak into the next
	a["nested"].(map[string]any)["level"] = -1
	c := Resolve(tpl, m)
	if c["nested"].(map[string]any)["level"] != 55 {
		t.Fatalf("resolution shares state with template")
	}
}

func TestResolve_NilTemplate(t *testing.T) {
	got := Resolve(nil, Measurement{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil payload, got %v", got)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]any{"b": 1, "a": 2, "c": 3})
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Fatalf("keys: got=%v", keys)
	}
}
