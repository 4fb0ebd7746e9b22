// internal/tracker/tracker_test.go
package tracker

import "testing"

// helper: a tracker whose last accepted percentage is already `last`
func trackerAt(threshold, last float64) *Tracker {
	tr := New(threshold)
	tr.Ratchet(1000)
	tr.Observe(last * 1000)
	tr.Evaluate()
	tr.lastPercent = last
	return tr
}

func TestRatchet_NeverDecreases(t *testing.T) {
	tr := New(5)

	seq := []float64{40, 100, 70, 0, 120, 5}
	want := []float64{40, 100, 100, 100, 120, 120}

	for i, w := range seq {
		tr.Ratchet(w)
		if tr.MaxExtent() != want[i] {
			t.Fatalf("cycle %d: max=%v want=%v", i+1, tr.MaxExtent(), want[i])
		}
	}
}

func TestRatchet_SeededAtOne(t *testing.T) {
	tr := New(5)
	if tr.MaxExtent() != SeedExtent {
		t.Fatalf("seed: got=%v want=%v", tr.MaxExtent(), SeedExtent)
	}
	if tr.Ratchet(0.5) {
		t.Fatalf("ratchet below seed must not grow")
	}
}

func TestEvaluate_FirstCycleNoSignal(t *testing.T) {
	tr := New(5)
	tr.Observe(0)

	d := tr.Evaluate()
	if d.Accept {
		t.Fatalf("zero extent on first cycle must not dispatch")
	}
	if d.Percent != 0 {
		t.Fatalf("percent: got=%v want=0", d.Percent)
	}
}

func TestEvaluate_SuppressedWithinBand(t *testing.T) {
	for _, p := range []float64{0.475, 0.49, 0.51, 0.52} {
		tr := trackerAt(5, 0.50)
		tr.Observe(p * 1000)

		d := tr.Evaluate()
		if d.Accept {
			t.Fatalf("percent %v: expected suppression", p)
		}
		if tr.LastPercent() != 0.50 {
			t.Fatalf("percent %v: suppressed evaluation mutated last=%v", p, tr.LastPercent())
		}
	}
}

func TestEvaluate_AcceptedOutsideBand(t *testing.T) {
	for _, p := range []float64{0.44, 0.56} {
		tr := trackerAt(5, 0.50)
		tr.Observe(p * 1000)

		d := tr.Evaluate()
		if !d.Accept {
			t.Fatalf("percent %v: expected dispatch", p)
		}
		if tr.LastPercent() != p {
			t.Fatalf("percent %v: last=%v", p, tr.LastPercent())
		}
	}
}

func TestEvaluate_SnapToBounds(t *testing.T) {
	tr := trackerAt(10, 0.5)
	tr.Observe(950)
	if d := tr.Evaluate(); !d.Accept || d.Percent != 1.0 {
		t.Fatalf("0.95 with threshold 10: got=%+v want snap to 1.0", d)
	}

	tr = trackerAt(10, 0.5)
	tr.Observe(30)
	if d := tr.Evaluate(); !d.Accept || d.Percent != 0.0 {
		t.Fatalf("0.03 with threshold 10: got=%+v want snap to 0.0", d)
	}
}

func TestEvaluate_UpperSnapWinsWhenBothApply(t *testing.T) {
	// threshold 60: 0.5+0.6 > 1 and 0.5-0.6 < 0
	tr := New(60)
	tr.Ratchet(100)
	tr.Observe(50)

	d := tr.Evaluate()
	if d.Percent != 1.0 {
		t.Fatalf("percent: got=%v want=1.0", d.Percent)
	}
}

func TestEvaluate_ZeroThresholdEqualValueSuppressed(t *testing.T) {
	tr := New(0)
	tr.Ratchet(100)

	tr.Observe(40)
	if d := tr.Evaluate(); !d.Accept {
		t.Fatalf("first change must dispatch")
	}

	tr.Observe(40)
	if d := tr.Evaluate(); d.Accept {
		t.Fatalf("unchanged percent must not dispatch")
	}
}

func TestEvaluate_Scenario(t *testing.T) {
	tr := New(5)

	// cycle 1
	tr.Ratchet(100)
	tr.Observe(100)
	d := tr.Evaluate()
	if !d.Accept || d.Percent != 1.0 {
		t.Fatalf("cycle 1: got=%+v", d)
	}
	if tr.MaxExtent() != 100 {
		t.Fatalf("cycle 1: max=%v", tr.MaxExtent())
	}

	// cycle 2
	tr.Ratchet(40)
	tr.Observe(40)
	d = tr.Evaluate()
	if !d.Accept || d.Percent != 0.40 {
		t.Fatalf("cycle 2: got=%+v", d)
	}

	// cycle 3
	tr.Ratchet(38)
	tr.Observe(38)
	d = tr.Evaluate()
	if d.Accept {
		t.Fatalf("cycle 3: expected suppression, got=%+v", d)
	}
	if tr.LastPercent() != 0.40 {
		t.Fatalf("cycle 3: last=%v", tr.LastPercent())
	}
}

func TestThreshold(t *testing.T) {
	if Threshold(100, 100) != 1 {
		t.Fatalf("equal value must be on")
	}
	if Threshold(99.9, 100) != 0 {
		t.Fatalf("below threshold must be off")
	}
}

func TestRound3(t *testing.T) {
	if got := Round3(0.12345); got != 0.123 {
		t.Fatalf("Round3: got=%v", got)
	}
	if got := Round3(2.0 / 3.0); got != 0.667 {
		t.Fatalf("Round3: got=%v", got)
	}
}
