package arb

import "math/rand"

// Arbitrary is the abstract contract for a polymorphic value producer, per
// spec §3. Implementations are immutable after construction, with the
// single documented exception of Filtered arbitraries, whose internal Beta
// posterior mutates across picks (see filtered.go).
type Arbitrary[A any] interface {
	// Size reports the cardinality of this arbitrary's support.
	Size() Size

	// Pick draws one realization using rng. ok is false when the
	// arbitrary is empty or, for filtered arbitraries, filter-starved.
	Pick(rng *rand.Rand) (pick Pick[A], ok bool)

	// CornerCases enumerates a finite set of "interesting" values: bounds,
	// zero, typical pivots, in declared order.
	CornerCases() []Pick[A]

	// Sample draws up to n random picks.
	Sample(n int, rng *rand.Rand) []Pick[A]

	// SampleWithBias draws corner cases first (in declared order), then
	// fills the remainder with random picks, up to n total.
	SampleWithBias(n int, rng *rand.Rand) []Pick[A]

	// SampleUnique draws up to n picks no two of which are Equals-equal,
	// and none of which is Equals-equal to any pick in exclude.
	SampleUnique(n int, exclude []Pick[A], rng *rand.Rand) []Pick[A]

	// Shrink returns a (possibly empty) arbitrary whose support is the
	// "closer to minimal" neighborhood of pick, per the IsShrunken order.
	Shrink(pick Pick[A]) Arbitrary[A]

	// ShrinkIterator returns a lazy, push-based candidate stream seeded at
	// pick, using opts to bound iteration.
	ShrinkIterator(pick Pick[A], opts ShrinkIterOpts) ShrinkIterator[A]

	// CanGenerate is a membership test.
	CanGenerate(pick Pick[A]) bool

	// IsShrunken reports whether candidate is strictly smaller than
	// current under this arbitrary's total shrink order.
	IsShrunken(candidate, current Pick[A]) bool

	// Equals and Hash support deduplication (SampleUnique, DedupingSampler).
	Equals(a, b A) bool
	Hash(a A) uint64
}

// ShrinkIterOpts bounds a ShrinkIterator's iteration.
type ShrinkIterOpts struct {
	// MaxCandidates caps how many candidates the iterator will offer
	// before reporting Done, regardless of accept/reject feedback. Zero
	// means "use the arbitrary's own default".
	MaxCandidates int
}

// ShrinkIterator models binary-search-style shrinking as a push-based
// iterator: Next proposes a candidate; the caller evaluates the property
// and reports back via AcceptSmaller (the candidate still reproduces the
// failure — narrow further from here) or RejectSmaller (the candidate did
// not reproduce the failure — back off).
type ShrinkIterator[A any] interface {
	// Next returns the next candidate to try, or ok=false when exhausted.
	Next() (candidate Pick[A], ok bool)

	// AcceptSmaller signals that the most recently returned candidate
	// still reproduces the failure; the iterator rebases its search
	// around it.
	AcceptSmaller()

	// RejectSmaller signals that the most recently returned candidate did
	// not reproduce the failure; the iterator backs off.
	RejectSmaller()

	// Done reports whether the iterator has no more candidates to offer.
	Done() bool
}

// NoBias returns an arbitrary equivalent to a except that SampleWithBias
// behaves like Sample (no corner-case prepending). Useful when corner
// cases would bias a statistical experiment.
func NoBias[A any](a Arbitrary[A]) Arbitrary[A] {
	return &noBiasArbitrary[A]{Arbitrary: a}
}

type noBiasArbitrary[A any] struct {
	Arbitrary[A]
}

func (n *noBiasArbitrary[A]) SampleWithBias(count int, rng *rand.Rand) []Pick[A] {
	return n.Arbitrary.Sample(count, rng)
}
