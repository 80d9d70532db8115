package arb

import "math/rand"

// mappedArb is the Mapped(base, f, g?) combinator of spec §4.1: pushes
// Pick through f; CanGenerate lifts via g when invertible, or via an
// equality check on a re-application of f otherwise; Shrink maps base
// Shrink through f. Generalizes the teacher's gen/comb.go Map, which only
// threads the value (not membership/equality) through f.
type mappedArb[A, B any] struct {
	base   Arbitrary[A]
	f      func(A) B
	invert func(B) (A, bool) // optional; nil means "no known inverse"
	equals func(B, B) bool
	hash   func(B) uint64
}

// Map builds the Mapped combinator with no known inverse: for a pick that
// carries no base pre-image, CanGenerate falls back to mapping base's
// corner cases through f and comparing with Equals.
func Map[A, B any](base Arbitrary[A], f func(A) B, equals func(B, B) bool, hash func(B) uint64) Arbitrary[B] {
	return mappedArb[A, B]{base: base, f: f, equals: equals, hash: hash}
}

// MapInvertible builds the Mapped combinator with a known inverse g,
// giving CanGenerate and dedup an exact membership test.
func MapInvertible[A, B any](base Arbitrary[A], f func(A) B, g func(B) (A, bool), equals func(B, B) bool, hash func(B) uint64) Arbitrary[B] {
	return mappedArb[A, B]{base: base, f: f, invert: g, equals: equals, hash: hash}
}

func (m mappedArb[A, B]) Size() Size {
	// map preserves the cardinality upper bound (spec §3 invariant); f may
	// collapse distinct inputs to the same output, so exactness is lost.
	base := m.base.Size()
	return EstimatedSize(base.Value, 0, base.Hi)
}

func (m mappedArb[A, B]) Pick(rng *rand.Rand) (Pick[B], bool) {
	p, ok := m.base.Pick(rng)
	if !ok {
		var zero Pick[B]
		return zero, false
	}
	return NewMappedPick(m.f(p.Value), p), true
}

func (m mappedArb[A, B]) CornerCases() []Pick[B] {
	base := m.base.CornerCases()
	out := make([]Pick[B], len(base))
	for i, p := range base {
		out[i] = NewMappedPick(m.f(p.Value), p)
	}
	return out
}

func (m mappedArb[A, B]) Sample(n int, rng *rand.Rand) []Pick[B] {
	return DefaultSample[B](m, n, rng)
}
func (m mappedArb[A, B]) SampleWithBias(n int, rng *rand.Rand) []Pick[B] {
	return DefaultSampleWithBias[B](m, n, rng)
}
func (m mappedArb[A, B]) SampleUnique(n int, exclude []Pick[B], rng *rand.Rand) []Pick[B] {
	return DefaultSampleUnique[B](m, n, exclude, rng)
}

func (m mappedArb[A, B]) preimage(pick Pick[B]) (Pick[A], bool) {
	if orig, ok := pick.Original.(Pick[A]); ok {
		return orig, true
	}
	if m.invert != nil {
		if a, ok := m.invert(pick.Value); ok {
			return NewPick(a), true
		}
	}
	return Pick[A]{}, false
}

func (m mappedArb[A, B]) Shrink(pick Pick[B]) Arbitrary[B] {
	pre, ok := m.preimage(pick)
	if !ok {
		return NoArbitrary[B]()
	}
	baseShrunk := m.base.Shrink(pre)
	if baseShrunk.Size().IsZero() {
		return NoArbitrary[B]()
	}
	return mappedArb[A, B]{base: baseShrunk, f: m.f, invert: m.invert, equals: m.equals, hash: m.hash}
}

func (m mappedArb[A, B]) ShrinkIterator(pick Pick[B], opts ShrinkIterOpts) ShrinkIterator[B] {
	pre, ok := m.preimage(pick)
	if !ok {
		return emptyShrinkIterator[B]{}
	}
	inner := m.base.ShrinkIterator(pre, opts)
	return &mappedShrinkIterator[A, B]{inner: inner, f: m.f}
}

func (m mappedArb[A, B]) CanGenerate(pick Pick[B]) bool {
	pre, ok := m.preimage(pick)
	if ok {
		return m.base.CanGenerate(pre)
	}
	// No pre-image known: fall back to an equality check against base's
	// corner cases mapped through f, as spec §4.1 allows ("via equality
	// check otherwise"); any other value is reported as not generable.
	for _, c := range m.base.CornerCases() {
		if m.equals(m.f(c.Value), pick.Value) {
			return true
		}
	}
	return false
}

func (m mappedArb[A, B]) IsShrunken(candidate, current Pick[B]) bool {
	cp, cok := m.preimage(candidate)
	op, ook := m.preimage(current)
	if !cok || !ook {
		return false
	}
	return m.base.IsShrunken(cp, op)
}

func (m mappedArb[A, B]) Equals(x, y B) bool { return m.equals(x, y) }
func (m mappedArb[A, B]) Hash(x B) uint64    { return m.hash(x) }

// mappedShrinkIterator adapts a ShrinkIterator[A] to ShrinkIterator[B]
// through f, used by both the Mapped combinator and String (which is
// itself "array-of-char mapped to join").
type mappedShrinkIterator[A, B any] struct {
	inner ShrinkIterator[A]
	f     func(A) B
}

func (it *mappedShrinkIterator[A, B]) Next() (Pick[B], bool) {
	p, ok := it.inner.Next()
	if !ok {
		var zero Pick[B]
		return zero, false
	}
	return NewMappedPick(it.f(p.Value), p), true
}
func (it *mappedShrinkIterator[A, B]) AcceptSmaller() { it.inner.AcceptSmaller() }
func (it *mappedShrinkIterator[A, B]) RejectSmaller() { it.inner.RejectSmaller() }
func (it *mappedShrinkIterator[A, B]) Done() bool     { return it.inner.Done() }
