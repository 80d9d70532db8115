package arb

import (
	"math/rand"

	"github.com/shrinklab/pbtcore/errs"
)

// WeightedEntry pairs an arbitrary with a non-negative weight for the
// Weighted combinator of spec §4.1.
type WeightedEntry[A any] struct {
	Weight float64
	Arb    Arbitrary[A]
}

// weightedArb is the Weighted(entries) primitive: user-supplied
// non-negative weights (total > 0), pick via cumulative-weight binary
// search, corner cases ordered by descending weight, size is the sum of
// component sizes. Generalizes the teacher's gen/comb.go Weighted, which
// picks uniformly among generators and instead weights by a
// value-dependent function; here weights are static per spec.
type weightedArb[A any] struct {
	entries []WeightedEntry[A]
	cum     []float64 // cumulative weights, same length as entries
	total   float64
}

// Weighted builds the Weighted(entries) primitive. It panics if entries is
// empty, any weight is negative, or the total weight is not > 0 — an
// InvalidArgument condition per spec §7, raised at construction time.
func Weighted[A any](entries ...WeightedEntry[A]) Arbitrary[A] {
	if len(entries) == 0 {
		panic(errs.NewInvalidArgument("arb.Weighted: requires at least one entry"))
	}
	cum := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		if e.Weight < 0 {
			panic(errs.NewInvalidArgument("arb.Weighted: negative weight"))
		}
		total += e.Weight
		cum[i] = total
	}
	if total <= 0 {
		panic(errs.NewInvalidArgument("arb.Weighted: total weight must be > 0"))
	}
	return weightedArb[A]{entries: entries, cum: cum, total: total}
}

// OneOf is Weighted with all entries equally weighted, matching the
// teacher's gen/comb.go OneOf sugar.
func OneOf[A any](arbs ...Arbitrary[A]) Arbitrary[A] {
	entries := make([]WeightedEntry[A], len(arbs))
	for i, a := range arbs {
		entries[i] = WeightedEntry[A]{Weight: 1.0, Arb: a}
	}
	return Weighted(entries...)
}

func (w weightedArb[A]) Size() Size {
	total := ExactSize(0)
	for _, e := range w.entries {
		total = total.Add(e.Arb.Size())
	}
	return total
}

// index performs cumulative-weight binary search for x in [0,total).
func (w weightedArb[A]) index(x float64) int {
	lo, hi := 0, len(w.cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if x < w.cum[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func (w weightedArb[A]) Pick(rng *rand.Rand) (Pick[A], bool) {
	rng = newRNG(rng)
	x := rng.Float64() * w.total
	idx := w.index(x)
	return w.entries[idx].Arb.Pick(rng)
}

func (w weightedArb[A]) CornerCases() []Pick[A] {
	order := make([]int, len(w.entries))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && w.entries[order[j-1]].Weight < w.entries[order[j]].Weight {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	var out []Pick[A]
	for _, idx := range order {
		out = append(out, w.entries[idx].Arb.CornerCases()...)
	}
	return out
}

func (w weightedArb[A]) Sample(n int, rng *rand.Rand) []Pick[A] {
	return DefaultSample[A](w, n, rng)
}
func (w weightedArb[A]) SampleWithBias(n int, rng *rand.Rand) []Pick[A] {
	return DefaultSampleWithBias[A](w, n, rng)
}
func (w weightedArb[A]) SampleUnique(n int, exclude []Pick[A], rng *rand.Rand) []Pick[A] {
	return DefaultSampleUnique[A](w, n, exclude, rng)
}

// whichEntry finds the first entry that CanGenerate the pick; used by
// Shrink/ShrinkIterator/CanGenerate since the pick does not itself record
// which branch produced it in the general case.
func (w weightedArb[A]) whichEntry(pick Pick[A]) int {
	for i, e := range w.entries {
		if e.Arb.CanGenerate(pick) {
			return i
		}
	}
	return -1
}

func (w weightedArb[A]) Shrink(pick Pick[A]) Arbitrary[A] {
	idx := w.whichEntry(pick)
	if idx < 0 {
		return NoArbitrary[A]()
	}
	return w.entries[idx].Arb.Shrink(pick)
}

func (w weightedArb[A]) ShrinkIterator(pick Pick[A], opts ShrinkIterOpts) ShrinkIterator[A] {
	idx := w.whichEntry(pick)
	if idx < 0 {
		return emptyShrinkIterator[A]{}
	}
	return w.entries[idx].Arb.ShrinkIterator(pick, opts)
}

func (w weightedArb[A]) CanGenerate(pick Pick[A]) bool {
	return w.whichEntry(pick) >= 0
}

func (w weightedArb[A]) IsShrunken(candidate, current Pick[A]) bool {
	idx := w.whichEntry(current)
	if idx < 0 {
		idx = w.whichEntry(candidate)
	}
	if idx < 0 {
		return false
	}
	return w.entries[idx].Arb.IsShrunken(candidate, current)
}

func (w weightedArb[A]) Equals(x, y A) bool {
	for _, e := range w.entries {
		return e.Arb.Equals(x, y)
	}
	return fmtEqual(x, y)
}
func (w weightedArb[A]) Hash(x A) uint64 {
	for _, e := range w.entries {
		return e.Arb.Hash(x)
	}
	return fnv1a(fmtString(x))
}
