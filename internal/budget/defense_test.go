package budget

import (
	"math"
	"math/rand"
	"testing"

	"DeadReckoning/internal/ledger"
	"DeadReckoning/internal/model"
)

func tx(day int, amount float64, flags ...string) *model.Transaction {
	m := make(map[string]bool)
	for _, f := range flags {
		m[f] = true
	}
	return model.NewTransaction(day, amount, m)
}

func testDefense(allocated float64, windowDays int) *Defense {
	return &Defense{
		Name:           "d1",
		AllocatedMoney: allocated,
		WindowDays:     windowDays,
		tuning:         DefaultTuning,
	}
}

func TestTargetRate(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	// Average flagged amount over the window: (100 + 300) / 2 = 200.
	hist.Append(tx(1, 100, "d1"))
	hist.Append(tx(2, 300, "d1"))

	rate, ok := d.TargetRate(hist, 3)
	if !ok {
		t.Fatal("expected a rate")
	}
	// 1000 / (200 * 5) = 1, rescaled: 1*10 + 1 = 11.
	if math.Abs(rate-11) > 1e-9 {
		t.Errorf("expected rate 11, got %.4f", rate)
	}
}

func TestTargetRate_EmptyHistory(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	if _, ok := d.TargetRate(hist, 0); ok {
		t.Error("expected no rate with an empty historical ledger")
	}
}

func TestThreshold(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	hist.Append(tx(1, 200, "d1"))

	flagged := tx(3, 50, "d1")
	if th := d.Threshold(flagged, hist, 3); th <= 0 {
		t.Errorf("expected positive threshold for a flagged transaction, got %.4f", th)
	}

	unflagged := tx(3, 50, "d2")
	if th := d.Threshold(unflagged, hist, 3); th != 0 {
		t.Errorf("expected threshold 0 for an unflagged transaction, got %.4f", th)
	}
}

func TestThreshold_NoHistoryIsZero(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)

	flagged := tx(0, 50, "d1")
	if th := d.Threshold(flagged, hist, 0); th != 0 {
		t.Errorf("expected threshold 0 with no history, got %.4f", th)
	}
}

func TestThreshold_WindowExcludesOldHistory(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	hist.Append(tx(1, 200, "d1"))

	// Day 20: day 1 is far outside [15, 20), so no signal.
	if th := d.Threshold(tx(20, 50, "d1"), hist, 20); th != 0 {
		t.Errorf("expected threshold 0 once history ages out, got %.4f", th)
	}
}

func TestAverageCountPerDay(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	hist.Append(tx(1, 10, "d1"))
	hist.Append(tx(1, 10, "d1"))
	hist.Append(tx(2, 10, "d1"))
	hist.Append(tx(2, 10, "d1"))

	if got := d.AverageCountPerDay(hist); got != 2 {
		t.Errorf("expected 2 opportunities per day, got %d", got)
	}
}

func TestRandomDraw_Bounds(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	for i := 0; i < 3; i++ {
		hist.Append(tx(1, 10, "d1"))
	}
	// avg count 3 -> draws in [0, 30] inclusive
	rng := rand.New(rand.NewSource(7))
	seen0, seen30 := false, false
	for i := 0; i < 5000; i++ {
		v := d.RandomDraw(hist, rng)
		if v < 0 || v > 30 {
			t.Fatalf("draw out of range: %d", v)
		}
		seen0 = seen0 || v == 0
		seen30 = seen30 || v == 30
	}
	if !seen0 || !seen30 {
		t.Errorf("expected both bounds to be reachable (0: %v, 30: %v)", seen0, seen30)
	}
}

func TestRandomDraw_EmptyHistory(t *testing.T) {
	d := testDefense(1000, 5)
	hist := ledger.New(500)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if v := d.RandomDraw(hist, rng); v != 0 {
			t.Fatalf("expected draw 0 with no history, got %d", v)
		}
	}
}

func TestTuning_Applied(t *testing.T) {
	b := New(1000, 5)
	b.SetTuning(Tuning{Resolution: 100, Bias: 3})
	if err := b.AddDefense("d1", 1.0); err != nil {
		t.Fatal(err)
	}
	d := b.Defenses()[0]

	hist := ledger.New(500)
	hist.Append(tx(1, 200, "d1"))

	rate, ok := d.TargetRate(hist, 2)
	if !ok {
		t.Fatal("expected a rate")
	}
	// 1000 / (200 * 5) = 1, rescaled: 1*100 + 3 = 103.
	if math.Abs(rate-103) > 1e-9 {
		t.Errorf("expected rate 103, got %.4f", rate)
	}
}
