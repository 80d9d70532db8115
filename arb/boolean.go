package arb

import "math/rand"

// booleanArb is the Boolean primitive of spec §4.1: exact size 2, corner
// cases {false, true}, shrinking toward false. Adapted from the teacher's
// gen/bool.go, generalized to the Arbitrary[bool] contract.
type booleanArb struct{}

// Boolean builds the Boolean primitive.
func Boolean() Arbitrary[bool] { return booleanArb{} }

func (booleanArb) Size() Size { return ExactSize(2) }

func (booleanArb) Pick(rng *rand.Rand) (Pick[bool], bool) {
	rng = newRNG(rng)
	return NewPick(rng.Intn(2) == 0), true
}

func (booleanArb) CornerCases() []Pick[bool] {
	return []Pick[bool]{NewPick(false), NewPick(true)}
}

func (a booleanArb) Sample(n int, rng *rand.Rand) []Pick[bool] {
	return DefaultSample[bool](a, n, rng)
}
func (a booleanArb) SampleWithBias(n int, rng *rand.Rand) []Pick[bool] {
	return DefaultSampleWithBias[bool](a, n, rng)
}
func (a booleanArb) SampleUnique(n int, exclude []Pick[bool], rng *rand.Rand) []Pick[bool] {
	return DefaultSampleUnique[bool](a, n, exclude, rng)
}

func (booleanArb) Shrink(pick Pick[bool]) Arbitrary[bool] {
	if pick.Value {
		return Constant(false)
	}
	return NoArbitrary[bool]()
}

func (a booleanArb) ShrinkIterator(pick Pick[bool], opts ShrinkIterOpts) ShrinkIterator[bool] {
	grow := func(base Pick[bool]) []Pick[bool] {
		if base.Value {
			return []Pick[bool]{NewPick(false)}
		}
		return nil
	}
	return newNeighborQueueIterator[bool](pick, ShrinkBFS, opts.MaxCandidates, a.Hash, grow)
}

func (booleanArb) CanGenerate(Pick[bool]) bool { return true }

func (booleanArb) IsShrunken(candidate, current Pick[bool]) bool {
	return !candidate.Value && current.Value
}

func (booleanArb) Equals(x, y bool) bool { return x == y }
func (booleanArb) Hash(x bool) uint64 {
	if x {
		return 1
	}
	return 0
}
