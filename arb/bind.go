package arb

import "math/rand"

// bindArb is the dependent-generation combinator Bind(base, f): pick a from
// base, then pick from f(a). Not named in spec §4.1, but present in the
// teacher as gen/comb.go's Bind and needed to express scenario's dependent
// Given derivations (SPEC_FULL.md §4), so it is kept as a supplemental
// combinator in the teacher's idiom: shrink B first, and once B is
// exhausted, shrink A and regenerate B from the new A.
type bindArb[A, B any] struct {
	base Arbitrary[A]
	f    func(A) Arbitrary[B]
}

// Bind builds the dependent combinator: draws a from base, then draws from
// f(a).
func Bind[A, B any](base Arbitrary[A], f func(A) Arbitrary[B]) Arbitrary[B] {
	return bindArb[A, B]{base: base, f: f}
}

// bindPick is the Original payload threaded through a bindArb's Pick[B] so
// Shrink/ShrinkIterator can recover both the A that produced this B and the
// B itself.
type bindPick[A, B any] struct {
	a Pick[A]
	b Pick[B]
}

func (b bindArb[A, B]) Size() Size {
	// Conservative upper bound: the base's size times a representative
	// fan-out size, drawn from f applied to one sample. An exact product is
	// not computable without enumerating every a.
	baseSize := b.base.Size()
	sample, ok := b.base.Pick(nil)
	if !ok {
		return ExactSize(0)
	}
	fanout := b.f(sample.Value).Size()
	return baseSize.Mul(fanout)
}

func (b bindArb[A, B]) Pick(rng *rand.Rand) (Pick[B], bool) {
	rng = newRNG(rng)
	a, ok := b.base.Pick(rng)
	if !ok {
		var zero Pick[B]
		return zero, false
	}
	inner := b.f(a.Value)
	bv, ok := inner.Pick(rng)
	if !ok {
		var zero Pick[B]
		return zero, false
	}
	return NewMappedPick(bv.Value, bindPick[A, B]{a: a, b: bv}), true
}

func (b bindArb[A, B]) CornerCases() []Pick[B] {
	out := make([]Pick[B], 0)
	for _, a := range b.base.CornerCases() {
		inner := b.f(a.Value)
		for _, bv := range inner.CornerCases() {
			out = append(out, NewMappedPick(bv.Value, bindPick[A, B]{a: a, b: bv}))
		}
	}
	return out
}

func (b bindArb[A, B]) Sample(n int, rng *rand.Rand) []Pick[B] {
	return DefaultSample[B](b, n, rng)
}
func (b bindArb[A, B]) SampleWithBias(n int, rng *rand.Rand) []Pick[B] {
	return DefaultSampleWithBias[B](b, n, rng)
}
func (b bindArb[A, B]) SampleUnique(n int, exclude []Pick[B], rng *rand.Rand) []Pick[B] {
	return DefaultSampleUnique[B](b, n, exclude, rng)
}

func (b bindArb[A, B]) unpack(pick Pick[B]) (bindPick[A, B], bool) {
	bp, ok := pick.Original.(bindPick[A, B])
	return bp, ok
}

// Shrink narrows to the B-side arbitrary rooted at the current a, matching
// the teacher's "shrink B first" state machine at rest (state 0).
func (b bindArb[A, B]) Shrink(pick Pick[B]) Arbitrary[B] {
	bp, ok := b.unpack(pick)
	if !ok {
		return NoArbitrary[B]()
	}
	return b.f(bp.a.Value).Shrink(bp.b)
}

func (b bindArb[A, B]) ShrinkIterator(pick Pick[B], opts ShrinkIterOpts) ShrinkIterator[B] {
	bp, ok := b.unpack(pick)
	if !ok {
		return emptyShrinkIterator[B]{}
	}
	return &bindShrinkIterator[A, B]{
		bind:  b,
		a:     bp.a,
		bIter: b.f(bp.a.Value).ShrinkIterator(bp.b, opts),
		opts:  opts,
	}
}

// bindShrinkIterator mirrors the teacher's two-state Bind shrinker: state 0
// exhausts B's shrink candidates for the current A; state 1 shrinks A once
// and regenerates a fresh B-shrink-iterator from the new A.
type bindShrinkIterator[A, B any] struct {
	bind    bindArb[A, B]
	a       Pick[A]
	bIter   ShrinkIterator[B]
	aIter   ShrinkIterator[A]
	opts    ShrinkIterOpts
	inAIter bool
}

func (it *bindShrinkIterator[A, B]) Next() (Pick[B], bool) {
	if !it.inAIter {
		cand, ok := it.bIter.Next()
		if ok {
			return NewMappedPick(cand.Value, bindPick[A, B]{a: it.a, b: cand}), true
		}
		it.inAIter = true
		it.aIter = it.bind.base.ShrinkIterator(it.a, it.opts)
	}
	for {
		na, ok := it.aIter.Next()
		if !ok {
			var zero Pick[B]
			return zero, false
		}
		inner := it.bind.f(na.Value)
		nb, ok := inner.Pick(nil)
		if !ok {
			it.aIter.RejectSmaller()
			continue
		}
		it.a = na
		it.bIter = inner.ShrinkIterator(nb, it.opts)
		return NewMappedPick(nb.Value, bindPick[A, B]{a: na, b: nb}), true
	}
}

func (it *bindShrinkIterator[A, B]) AcceptSmaller() {
	if it.inAIter {
		it.aIter.AcceptSmaller()
		return
	}
	it.bIter.AcceptSmaller()
}
func (it *bindShrinkIterator[A, B]) RejectSmaller() {
	if it.inAIter {
		it.aIter.RejectSmaller()
		return
	}
	it.bIter.RejectSmaller()
}
func (it *bindShrinkIterator[A, B]) Done() bool {
	if it.inAIter {
		return it.aIter.Done()
	}
	return it.bIter.Done()
}

func (b bindArb[A, B]) CanGenerate(pick Pick[B]) bool {
	bp, ok := b.unpack(pick)
	if !ok {
		return false
	}
	return b.base.CanGenerate(bp.a) && b.f(bp.a.Value).CanGenerate(bp.b)
}

func (b bindArb[A, B]) IsShrunken(candidate, current Pick[B]) bool {
	cbp, cok := b.unpack(candidate)
	obp, ook := b.unpack(current)
	if !cok || !ook {
		return false
	}
	if b.base.Equals(cbp.a.Value, obp.a.Value) {
		return b.f(cbp.a.Value).IsShrunken(cbp.b, obp.b)
	}
	return b.base.IsShrunken(cbp.a, obp.a)
}

func (b bindArb[A, B]) Equals(x, y B) bool {
	sample, ok := b.base.Pick(nil)
	if !ok {
		return false
	}
	return b.f(sample.Value).Equals(x, y)
}

func (b bindArb[A, B]) Hash(x B) uint64 {
	sample, ok := b.base.Pick(nil)
	if !ok {
		return 0
	}
	return b.f(sample.Value).Hash(x)
}
