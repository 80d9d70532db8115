package arb

import "math/rand"

// NoArbitrary is the empty arbitrary: Size is zero, Pick always fails, and
// Shrink/Map/Filter all absorb into another NoArbitrary. Spec §4.1 calls
// this out as needing a singleton concrete type rather than a cyclic
// back-reference from the base Arbitrary contract.
func NoArbitrary[A any]() Arbitrary[A] {
	return noArbitrary[A]{estimated: false}
}

// NoArbitraryEstimated is the empty arbitrary produced by filtering or
// mapping an estimated-size arbitrary down to nothing; it carries the
// IsEstimate flag so callers can tell a "truly empty by construction"
// arbitrary apart from "estimated to be empty, possibly start-hungry
// filtering" (spec §4.1, "type lie repaired by the size variant
// distinction").
func NoArbitraryEstimated[A any]() Arbitrary[A] {
	return noArbitrary[A]{estimated: true}
}

type noArbitrary[A any] struct {
	estimated bool
}

func (n noArbitrary[A]) Size() Size {
	if n.estimated {
		return EstimatedSize(0, 0, 0)
	}
	return ExactSize(0)
}

func (n noArbitrary[A]) Pick(*rand.Rand) (Pick[A], bool) {
	var zero Pick[A]
	return zero, false
}

func (n noArbitrary[A]) CornerCases() []Pick[A] { return nil }

func (n noArbitrary[A]) Sample(int, *rand.Rand) []Pick[A]          { return nil }
func (n noArbitrary[A]) SampleWithBias(int, *rand.Rand) []Pick[A]  { return nil }
func (n noArbitrary[A]) SampleUnique(int, []Pick[A], *rand.Rand) []Pick[A] {
	return nil
}

func (n noArbitrary[A]) Shrink(Pick[A]) Arbitrary[A] { return n }

func (n noArbitrary[A]) ShrinkIterator(Pick[A], ShrinkIterOpts) ShrinkIterator[A] {
	return emptyShrinkIterator[A]{}
}

func (n noArbitrary[A]) CanGenerate(Pick[A]) bool         { return false }
func (n noArbitrary[A]) IsShrunken(_, _ Pick[A]) bool     { return false }
func (n noArbitrary[A]) Equals(_, _ A) bool               { return false }
func (n noArbitrary[A]) Hash(A) uint64                    { return 0 }

type emptyShrinkIterator[A any] struct{}

func (emptyShrinkIterator[A]) Next() (Pick[A], bool) {
	var zero Pick[A]
	return zero, false
}
func (emptyShrinkIterator[A]) AcceptSmaller() {}
func (emptyShrinkIterator[A]) RejectSmaller() {}
func (emptyShrinkIterator[A]) Done() bool     { return true }
