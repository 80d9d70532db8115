package arb

import (
	"math/rand"
	"testing"
)

// NoArbitrary itself: empty support, Pick always fails, CanGenerate always
// false.
func TestNoArbitraryIsEmpty(t *testing.T) {
	a := NoArbitrary[int64]()
	r := rand.New(rand.NewSource(8))

	if !a.Size().IsZero() {
		t.Fatalf("expected zero size, got %v", a.Size())
	}
	if _, ok := a.Pick(r); ok {
		t.Fatal("expected Pick to fail on NoArbitrary")
	}
	if a.CanGenerate(NewPick(int64(0))) {
		t.Fatal("expected CanGenerate to always be false on NoArbitrary")
	}
	if len(a.CornerCases()) != 0 {
		t.Fatal("expected no corner cases on NoArbitrary")
	}
}

// Map absorbs NoArbitrary: mapping an empty arbitrary produces another
// empty arbitrary, never a panic or a phantom value.
func TestNoArbitraryAbsorbsMap(t *testing.T) {
	base := NoArbitrary[int64]()
	mapped := Map[int64, string](base, func(v int64) string { return "x" },
		func(a, b string) bool { return a == b },
		func(s string) uint64 { return fnv1a(s) })

	if !mapped.Size().IsZero() {
		t.Fatalf("expected mapped NoArbitrary to stay zero-sized, got %v", mapped.Size())
	}
	r := rand.New(rand.NewSource(9))
	if _, ok := mapped.Pick(r); ok {
		t.Fatal("expected Pick to fail on a mapped NoArbitrary")
	}
}

// Filtered absorbs NoArbitrary: filtering an empty arbitrary stays empty
// regardless of the predicate.
func TestNoArbitraryAbsorbsFilter(t *testing.T) {
	base := NoArbitrary[int64]()
	filtered := Filtered[int64](base, func(int64) bool { return true })

	if !filtered.Size().IsZero() {
		t.Fatalf("expected filtered NoArbitrary to stay zero-sized, got %v", filtered.Size())
	}
	r := rand.New(rand.NewSource(10))
	if _, ok := filtered.Pick(r); ok {
		t.Fatal("expected Pick to fail on a filtered NoArbitrary")
	}
}

// Shrinking any primitive's pick down to the empty arbitrary must itself
// stay absorbed: shrinking NoArbitrary again is a no-op.
func TestNoArbitraryShrinkIsFixedPoint(t *testing.T) {
	a := NoArbitrary[int64]()
	shrunk := a.Shrink(NewPick(int64(0)))
	if !shrunk.Size().IsZero() {
		t.Fatalf("expected Shrink(NoArbitrary) to stay zero-sized, got %v", shrunk.Size())
	}
}
