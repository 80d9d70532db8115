package arb

import (
	"math/rand"

	"github.com/shrinklab/pbtcore/stat"
)

// filteredCI is the credible-interval tail used for the estimated-size
// bound (baseSize x posterior.inv(lo|hi)) and for the retry-stop check
// (baseSize x posterior.inv(upperCI) < 1).
const (
	filteredCILo = 0.025
	filteredCIHi = 0.975
)

// filteredArb is the Filtered(base, p) combinator of spec §4.1:
// rejection-samples base until p holds, while maintaining a mutable Beta
// posterior over the accept rate. This is the one documented exception to
// "arbitraries are immutable after construction" (spec §3).
type filteredArb[A any] struct {
	base  Arbitrary[A]
	pred  func(A) bool
	prior stat.Beta // Beta(1,1) normally, Beta(2,1) for the legacy variant
	post  *stat.Beta
}

// Filtered builds the default Filtered combinator with a uniform Beta(1,1)
// prior.
func Filtered[A any](base Arbitrary[A], p func(A) bool) Arbitrary[A] {
	prior := stat.NewBeta(1, 1)
	return &filteredArb[A]{base: base, pred: p, prior: prior, post: &prior}
}

// FilteredLegacy builds the optimistic Beta(2,1) variant with no warm-up
// (spec §4.1 "legacy variant"; §9 design note keeps it as a research
// reproducibility baseline).
func FilteredLegacy[A any](base Arbitrary[A], p func(A) bool) Arbitrary[A] {
	prior := stat.NewBeta(2, 1)
	return &filteredArb[A]{base: base, pred: p, prior: prior, post: &prior}
}

func (f *filteredArb[A]) recordAccept() { updated := f.post.Posterior(1, 0); f.post = &updated }
func (f *filteredArb[A]) recordReject() { updated := f.post.Posterior(0, 1); f.post = &updated }

// shouldStop implements the spec's retry-stop criterion: baseSize *
// posterior.inv(upperCI) < 1, i.e. the credible-interval-weighted estimate
// of remaining acceptable values has fallen below one.
func (f *filteredArb[A]) shouldStop() bool {
	baseSize := float64(f.base.Size().Value)
	return baseSize*f.post.InvCDF(filteredCIHi) < 1
}

func (f *filteredArb[A]) Size() Size {
	baseSize := f.base.Size()
	mode := f.post.Mode()
	lo := float64(baseSize.Value) * f.post.InvCDF(filteredCILo)
	hi := float64(baseSize.Value) * f.post.InvCDF(filteredCIHi)
	if lo < 0 {
		lo = 0
	}
	// The mode-based estimate is kept inside the credible interval, as
	// EstimatedSize requires.
	n := float64(baseSize.Value) * mode
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	return EstimatedSize(uint64(n), uint64(lo), uint64(hi))
}

func (f *filteredArb[A]) Pick(rng *rand.Rand) (Pick[A], bool) {
	rng = newRNG(rng)
	for {
		if f.shouldStop() {
			var zero Pick[A]
			return zero, false
		}
		p, ok := f.base.Pick(rng)
		if !ok {
			var zero Pick[A]
			return zero, false
		}
		if f.pred(p.Value) {
			f.recordAccept()
			return p, true
		}
		f.recordReject()
	}
}

func (f *filteredArb[A]) CornerCases() []Pick[A] {
	base := f.base.CornerCases()
	out := make([]Pick[A], 0, len(base))
	for _, c := range base {
		if f.pred(c.Value) {
			out = append(out, c)
		}
	}
	return out
}

func (f *filteredArb[A]) Sample(n int, rng *rand.Rand) []Pick[A] {
	return DefaultSample[A](f, n, rng)
}
func (f *filteredArb[A]) SampleWithBias(n int, rng *rand.Rand) []Pick[A] {
	return DefaultSampleWithBias[A](f, n, rng)
}
func (f *filteredArb[A]) SampleUnique(n int, exclude []Pick[A], rng *rand.Rand) []Pick[A] {
	return DefaultSampleUnique[A](f, n, exclude, rng)
}

func (f *filteredArb[A]) Shrink(pick Pick[A]) Arbitrary[A] {
	baseShrunk := f.base.Shrink(pick)
	if baseShrunk.Size().IsZero() {
		return NoArbitraryEstimated[A]()
	}
	return &filteredArb[A]{base: baseShrunk, pred: f.pred, prior: f.prior, post: f.post}
}

func (f *filteredArb[A]) ShrinkIterator(pick Pick[A], opts ShrinkIterOpts) ShrinkIterator[A] {
	inner := f.base.ShrinkIterator(pick, opts)
	return &filteredShrinkIterator[A]{inner: inner, pred: f.pred}
}

// filteredShrinkIterator skips candidates that fail the predicate,
// automatically rejecting them on the inner iterator's behalf so the
// caller never sees a value outside the filter's support.
type filteredShrinkIterator[A any] struct {
	inner ShrinkIterator[A]
	pred  func(A) bool
}

func (it *filteredShrinkIterator[A]) Next() (Pick[A], bool) {
	for {
		cand, ok := it.inner.Next()
		if !ok {
			var zero Pick[A]
			return zero, false
		}
		if it.pred(cand.Value) {
			return cand, true
		}
		it.inner.RejectSmaller()
	}
}
func (it *filteredShrinkIterator[A]) AcceptSmaller() { it.inner.AcceptSmaller() }
func (it *filteredShrinkIterator[A]) RejectSmaller() { it.inner.RejectSmaller() }
func (it *filteredShrinkIterator[A]) Done() bool     { return it.inner.Done() }

func (f *filteredArb[A]) CanGenerate(pick Pick[A]) bool {
	return f.pred(pick.Value) && f.base.CanGenerate(pick)
}

func (f *filteredArb[A]) IsShrunken(candidate, current Pick[A]) bool {
	return f.base.IsShrunken(candidate, current)
}

func (f *filteredArb[A]) Equals(a, b A) bool { return f.base.Equals(a, b) }
func (f *filteredArb[A]) Hash(a A) uint64    { return f.base.Hash(a) }
