package arb

import (
	"math/rand"
	"testing"
)

// Every pick drawn from a Filtered arbitrary's sample must satisfy the
// filter predicate.
func TestFilteredSamplePredicate(t *testing.T) {
	tests := []struct {
		name string
		ctor func(Arbitrary[int64], func(int64) bool) Arbitrary[int64]
	}{
		{"default prior", Filtered[int64]},
		{"legacy prior", FilteredLegacy[int64]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Integer(0, 1000)
			even := tt.ctor(base, func(v int64) bool { return v%2 == 0 })
			r := rand.New(rand.NewSource(6))

			for _, p := range even.Sample(200, r) {
				if p.Value%2 != 0 {
					t.Fatalf("pick %d does not satisfy the filter predicate", p.Value)
				}
			}
		})
	}
}

// CornerCases on a Filtered arbitrary must only report corners that pass
// the predicate.
func TestFilteredCornerCasesRespectPredicate(t *testing.T) {
	base := Integer(-10, 10)
	positive := Filtered[int64](base, func(v int64) bool { return v > 0 })

	for _, c := range positive.CornerCases() {
		if c.Value <= 0 {
			t.Fatalf("corner case %d does not satisfy the filter predicate", c.Value)
		}
	}
}

// An always-false predicate starves the rejection sampler; Pick must
// eventually stop rather than loop forever.
func TestFilteredStarvedPredicateStops(t *testing.T) {
	base := Integer(0, 50)
	impossible := Filtered[int64](base, func(v int64) bool { return v > 1000 })
	r := rand.New(rand.NewSource(7))

	_, ok := impossible.Pick(r)
	if ok {
		t.Fatal("expected Pick to fail for an unsatisfiable predicate")
	}
}

// ShrinkIterator on a Filtered arbitrary must never surface a candidate
// that fails the predicate, even when the base iterator offers one.
func TestFilteredShrinkIteratorRespectsPredicate(t *testing.T) {
	base := Integer(-100, 100)
	even := Filtered[int64](base, func(v int64) bool { return v%2 == 0 })

	it := even.ShrinkIterator(NewPick(int64(88)), ShrinkIterOpts{})
	seen := 0
	for {
		cand, ok := it.Next()
		if !ok {
			break
		}
		if cand.Value%2 != 0 {
			t.Fatalf("shrink candidate %d does not satisfy the filter predicate", cand.Value)
		}
		it.RejectSmaller()
		seen++
		if seen > 500 {
			t.Fatal("shrink iterator did not terminate")
		}
	}
}
