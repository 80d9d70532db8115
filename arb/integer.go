package arb

import "math/rand"

// integerArb is the Integer(min,max) primitive of spec §4.1: exact size
// max-min+1, uniform pick, corner cases {min, 0 if in range, mid, max}
// sorted by absolute value, and a halving shrink rule toward zero (or the
// nearest bound when zero is out of range).
type integerArb struct {
	min, max int64
}

// Integer builds the Integer(min,max) primitive.
func Integer(min, max int64) Arbitrary[int64] {
	if min > max {
		min, max = max, min
	}
	return integerArb{min: min, max: max}
}

func (a integerArb) Size() Size {
	return ExactSize(uint64(a.max - a.min + 1))
}

func (a integerArb) Pick(rng *rand.Rand) (Pick[int64], bool) {
	rng = newRNG(rng)
	span := a.max - a.min + 1
	v := a.min + int64(rng.Int63n(span))
	return NewPick(v), true
}

func (a integerArb) CornerCases() []Pick[int64] {
	set := map[int64]struct{}{a.min: {}, a.max: {}}
	if a.min <= 0 && 0 <= a.max {
		set[0] = struct{}{}
	}
	mid := a.min + (a.max-a.min)/2
	set[mid] = struct{}{}

	vals := make([]int64, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	sortByAbs(vals)

	out := make([]Pick[int64], len(vals))
	for i, v := range vals {
		out[i] = NewPick(v)
	}
	return out
}

func (a integerArb) Sample(n int, rng *rand.Rand) []Pick[int64] {
	return DefaultSample[int64](a, n, rng)
}
func (a integerArb) SampleWithBias(n int, rng *rand.Rand) []Pick[int64] {
	return DefaultSampleWithBias[int64](a, n, rng)
}
func (a integerArb) SampleUnique(n int, exclude []Pick[int64], rng *rand.Rand) []Pick[int64] {
	return DefaultSampleUnique[int64](a, n, exclude, rng)
}

// Shrink implements the spec §4.1 rule verbatim: if v>0 returns integer on
// [max(0,min), v-1]; if v<0 returns [v+1, min(0,max)]; else empty.
func (a integerArb) Shrink(pick Pick[int64]) Arbitrary[int64] {
	v := pick.Value
	switch {
	case v > 0:
		lo := a.min
		if lo < 0 {
			lo = 0
		}
		if lo > v-1 {
			return NoArbitrary[int64]()
		}
		return Integer(lo, v-1)
	case v < 0:
		hi := a.max
		if hi > 0 {
			hi = 0
		}
		if v+1 > hi {
			return NoArbitrary[int64]()
		}
		return Integer(v+1, hi)
	default:
		return NoArbitrary[int64]()
	}
}

func (a integerArb) ShrinkIterator(pick Pick[int64], opts ShrinkIterOpts) ShrinkIterator[int64] {
	target := integerShrinkTarget(a.min, a.max)
	grow := func(base Pick[int64]) []Pick[int64] {
		b := base.Value
		var out []Pick[int64]
		push := func(x int64) {
			if x < a.min || x > a.max {
				return
			}
			out = append(out, NewPick(x))
		}
		if b != target {
			push(target)
			next := midpointTowardsI64(b, target)
			if next != b {
				push(next)
			}
			series := next
			for i := 0; i < 8 && series != target; i++ {
				series = midpointTowardsI64(series, target)
				if series != b {
					push(series)
				}
			}
			if step := stepTowardsI64(b, target); step != b {
				push(step)
			}
		}
		if b != a.min {
			push(a.min)
		}
		if b != a.max {
			push(a.max)
		}
		return out
	}
	return newNeighborQueueIterator[int64](pick, ShrinkBFS, opts.MaxCandidates, a.Hash, grow)
}

func (a integerArb) CanGenerate(pick Pick[int64]) bool {
	return pick.Value >= a.min && pick.Value <= a.max
}

func (a integerArb) IsShrunken(candidate, current Pick[int64]) bool {
	return absI64(candidate.Value) < absI64(current.Value)
}

func (a integerArb) Equals(x, y int64) bool { return x == y }
func (a integerArb) Hash(x int64) uint64    { return uint64(x) }

func integerShrinkTarget(min, max int64) int64 {
	if min <= 0 && 0 <= max {
		return 0
	}
	if min > 0 {
		return min
	}
	return max
}

func midpointTowardsI64(a, b int64) int64 {
	if a == b {
		return a
	}
	d := b - a
	step := d / 2
	if step == 0 {
		if d > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	return a + step
}

func stepTowardsI64(a, b int64) int64 {
	if a == b {
		return a
	}
	if b > a {
		return a + 1
	}
	return a - 1
}

func absI64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func sortByAbs(vals []int64) {
	for i := 1; i < len(vals); i++ {
		v := vals[i]
		j := i - 1
		for j >= 0 && absI64(vals[j]) > absI64(v) {
			vals[j+1] = vals[j]
			j--
		}
		vals[j+1] = v
	}
}
