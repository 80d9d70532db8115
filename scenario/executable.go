package scenario

import (
	"math/rand"

	"github.com/shrinklab/pbtcore/arb"
)

// ExecutableQuantifier is the compiled, type-erased form of a Quantifier
// (spec §3 "decoupled from the underlying arbitrary object"): sample,
// sampleWithBias, shrink, shrinkIterator, isShrunken, all operating on
// arb.Pick[any].
type ExecutableQuantifier struct {
	Name string
	Kind QuantifierKind

	arb arb.Arbitrary[any]
}

// CornerCases returns the quantifier's declared corner cases, in order.
func (q *ExecutableQuantifier) CornerCases() []arb.Pick[any] { return q.arb.CornerCases() }

// Sample draws up to n random picks.
func (q *ExecutableQuantifier) Sample(n int, rng *rand.Rand) []arb.Pick[any] {
	return q.arb.Sample(n, rng)
}

// SampleWithBias draws corner cases first, then random picks.
func (q *ExecutableQuantifier) SampleWithBias(n int, rng *rand.Rand) []arb.Pick[any] {
	return q.arb.SampleWithBias(n, rng)
}

// Shrink returns the narrower arbitrary around pick.
func (q *ExecutableQuantifier) Shrink(pick arb.Pick[any]) arb.Arbitrary[any] {
	return q.arb.Shrink(pick)
}

// ShrinkIterator returns a push-based shrink candidate stream for pick.
func (q *ExecutableQuantifier) ShrinkIterator(pick arb.Pick[any], opts arb.ShrinkIterOpts) arb.ShrinkIterator[any] {
	return q.arb.ShrinkIterator(pick, opts)
}

// IsShrunken reports whether candidate is strictly smaller than current.
func (q *ExecutableQuantifier) IsShrunken(candidate, current arb.Pick[any]) bool {
	return q.arb.IsShrunken(candidate, current)
}

// Size reports the quantifier's arbitrary's cardinality.
func (q *ExecutableQuantifier) Size() arb.Size { return q.arb.Size() }

// Hash exposes the underlying arbitrary's Hash witness, used by the
// explorer's detailed-statistics collection to count unique values.
func (q *ExecutableQuantifier) Hash(v any) uint64 { return q.arb.Hash(v) }

// Equals exposes the underlying arbitrary's Equals witness.
func (q *ExecutableQuantifier) Equals(a, b any) bool { return q.arb.Equals(a, b) }

// BoundTestCase is a mapping from quantifier name to Pick, per spec §3.
// Unwrap produces the raw record passed to the property; Given values are
// added to that record afterwards by ExecutableScenario.ApplyGivens.
type BoundTestCase map[string]arb.Pick[any]

// Unwrap produces the map[string]any record handed to preconditions,
// cover predicates, and the property.
func (b BoundTestCase) Unwrap() map[string]any {
	out := make(map[string]any, len(b))
	for k, v := range b {
		out[k] = v.Value
	}
	return out
}

// ExecutableScenario is the compiled form of a Scenario: quantifiers in
// declaration order, plus the given/precondition/cover/then nodes needed
// to evaluate one binding.
type ExecutableScenario struct {
	Quantifiers []*ExecutableQuantifier
	Givens      []Given
	Preconditions []Precondition
	Covers      []Cover
	CoverTables []CoverTable
	Property    func(bound map[string]any) bool

	HasExistential  bool
	SearchSpaceSize arb.Size
}

// EvalPreconditions reports whether every Precondition node is satisfied
// by bound; the explorer checks it on each fully bound test case and
// skips running the property when it fails.
func (s *ExecutableScenario) EvalPreconditions(bound map[string]any) bool {
	for _, p := range s.Preconditions {
		if !p.Predicate(bound) {
			return false
		}
	}
	return true
}

// ApplyGivens extends bound with every Given node's derivation, in
// declaration order (so a later Given may read an earlier Given's value).
func (s *ExecutableScenario) ApplyGivens(bound map[string]any) map[string]any {
	for _, g := range s.Givens {
		bound[g.Name] = g.Derive(bound)
	}
	return bound
}
