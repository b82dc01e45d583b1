package generator

import (
	"math/rand"
	"testing"

	"DeadReckoning/internal/model"
)

func TestRandomSource_AlwaysFlagged(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	// Low rates so the resample loop actually gets exercised.
	src := NewRandomSource(rng, []FlagRate{
		{Name: "d1", Rate: 0.05},
		{Name: "d2", Rate: 0.05},
	}, 1, 100, 1000)

	for i := 0; i < 2000; i++ {
		tx := src.Next(3)
		if tx.FlagCount() == 0 {
			t.Fatal("generated transaction with no flag set")
		}
		if tx.Day != 3 {
			t.Fatalf("expected day 3, got %d", tx.Day)
		}
		if tx.Amount < 1 || tx.Amount > 1000 {
			t.Fatalf("amount out of range: %.4f", tx.Amount)
		}
		if tx.ID == "" {
			t.Fatal("expected a transaction ID")
		}
	}
}

func TestRandomSource_FlagRates(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := NewRandomSource(rng, []FlagRate{
		{Name: "common", Rate: 0.9},
		{Name: "rare", Rate: 0.05},
	}, 1, 100, 1000)

	common, rare := 0, 0
	const n = 5000
	for i := 0; i < n; i++ {
		tx := src.Next(1)
		if tx.Flagged("common") {
			common++
		}
		if tx.Flagged("rare") {
			rare++
		}
	}
	if common <= rare {
		t.Errorf("expected the high-rate defense to flag more often (common=%d rare=%d)", common, rare)
	}
	if common < n*8/10 {
		t.Errorf("common flagged only %d of %d", common, n)
	}
}

func TestScriptedSource(t *testing.T) {
	script := []*model.Transaction{
		model.NewTransaction(1, 10, map[string]bool{"d1": true}),
		model.NewTransaction(1, 20, map[string]bool{"d2": true}),
	}
	src := &ScriptedSource{Script: script}

	first := src.Next(7)
	if first.Amount != 10 || !first.Flagged("d1") || first.Day != 7 {
		t.Errorf("unexpected first transaction: %+v", first)
	}
	second := src.Next(8)
	if second.Amount != 20 || !second.Flagged("d2") || second.Day != 8 {
		t.Errorf("unexpected second transaction: %+v", second)
	}
	// Wraps around once exhausted.
	third := src.Next(9)
	if third.Amount != 10 {
		t.Errorf("expected wrap-around to the first entry, got %.2f", third.Amount)
	}
	if third.ID == first.ID {
		t.Error("replayed transactions must get fresh IDs")
	}
}

func TestScriptedSource_EmptyScript(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic from an empty script")
		}
	}()
	src := &ScriptedSource{}
	src.Next(1)
}
