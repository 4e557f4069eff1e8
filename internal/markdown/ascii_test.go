package markdown

import "testing"

func TestFnv32a_Deterministic(t *testing.T) {
	a := fnv32a("https://x.vercel.app")
	b := fnv32a("https://x.vercel.app")
	if a != b {
		t.Fatalf("same seed hashed differently: %d vs %d", a, b)
	}
	if fnv32a("abc") == fnv32a("abd") {
		t.Error("different seeds should not collide on adjacent inputs")
	}
}

func TestFnv32a_KnownValues(t *testing.T) {
	// FNV-1a reference values for 32-bit.
	if got := fnv32a(""); got != 2166136261 {
		t.Errorf("fnv32a(\"\") = %d, want offset basis 2166136261", got)
	}
	if got := fnv32a("a"); got != 0xe40c292c {
		t.Errorf("fnv32a(\"a\") = %#x, want 0xe40c292c", got)
	}
}

func TestPickWeightedAscii_ZeroWeightNeverSelected(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "first", Weight: 0},
		{Art: "second", Weight: 5},
		{Art: "third", Weight: 0},
	}

	seeds := []string{"a", "b", "c", "https://x.vercel.app", "0", "zzzz", "seed-42"}
	for _, seed := range seeds {
		if got := PickWeightedAscii(pool, seed, nil); got != "second" {
			t.Errorf("seed %q picked %q, want %q", seed, got, "second")
		}
	}
}

func TestPickWeightedAscii_AllZeroWeightsFallsBackToFirst(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "first", Weight: 0},
		{Art: "second", Weight: 0},
	}
	if got := PickWeightedAscii(pool, "any-seed", nil); got != "first" {
		t.Errorf("got %q, want first choice", got)
	}
}

func TestPickWeightedAscii_NegativeWeightsClampToZero(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "first", Weight: -10},
		{Art: "second", Weight: 1},
	}
	for _, seed := range []string{"a", "b", "c", "d"} {
		if got := PickWeightedAscii(pool, seed, nil); got != "second" {
			t.Errorf("seed %q picked %q, want %q", seed, got, "second")
		}
	}

	allNegative := []AsciiChoice{
		{Art: "first", Weight: -1},
		{Art: "second", Weight: -2},
	}
	if got := PickWeightedAscii(allNegative, "seed", nil); got != "first" {
		t.Errorf("all-negative pool picked %q, want first choice", got)
	}
}

func TestPickWeightedAscii_EmptyPool(t *testing.T) {
	if got := PickWeightedAscii(nil, "seed", nil); got != "" {
		t.Errorf("empty pool returned %q, want empty string", got)
	}
}

func TestPickWeightedAscii_SeededIsStable(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "A", Weight: 1},
		{Art: "B", Weight: 1},
	}

	first := PickWeightedAscii(pool, "abc123", nil)
	for i := 0; i < 20; i++ {
		if got := PickWeightedAscii(pool, "abc123", nil); got != first {
			t.Fatalf("iteration %d picked %q, want stable %q", i, got, first)
		}
	}
}

func TestPickWeightedAscii_EntropyWalksPool(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "A", Weight: 1},
		{Art: "B", Weight: 1},
	}

	// Draw in the first half of the range -> first choice.
	if got := PickWeightedAscii(pool, "", func() float64 { return 0.0 }); got != "A" {
		t.Errorf("entropy 0.0 picked %q, want A", got)
	}
	// Draw in the second half -> second choice.
	if got := PickWeightedAscii(pool, "", func() float64 { return 0.75 }); got != "B" {
		t.Errorf("entropy 0.75 picked %q, want B", got)
	}
}

func TestPickWeightedAscii_FloatEdgeFallsBackToLast(t *testing.T) {
	pool := []AsciiChoice{
		{Art: "A", Weight: 1},
		{Art: "B", Weight: 1},
	}
	// An entropy source that returns 1.0 puts r == total, past every bucket.
	if got := PickWeightedAscii(pool, "", func() float64 { return 1.0 }); got != "B" {
		t.Errorf("edge draw picked %q, want last choice B", got)
	}
}
