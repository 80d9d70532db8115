package arb

import (
	"math"
	"math/rand"
)

// realArb is the Real primitive of spec §4.1: double precision with a
// configurable decimal Precision used for equality/hash (so shrinking and
// dedup treat 1.000001 and 1.000002 as distinct but 1.0000001 and
// 1.0000002 as equal at precision=6). Corner cases exclude ±Inf per spec;
// shrinking halves magnitude toward the boundary closest to zero, adapted
// from the teacher's gen/float.go float32ShrinkInit / gen/float64.go.
type realArb struct {
	min, max  float64
	precision int // decimal digits considered for Equals/Hash
}

// Real builds the Real(min,max) primitive with the given equality
// precision (decimal digits after the point; 0 means exact float64 bits).
func Real(min, max float64, precision int) Arbitrary[float64] {
	if min > max {
		min, max = max, min
	}
	return realArb{min: min, max: max, precision: precision}
}

func (a realArb) Size() Size {
	// Real cardinality over a continuous range has no exact integer
	// value; report an estimate anchored on the precision grid.
	scale := math.Pow(10, float64(a.precision))
	n := uint64((a.max - a.min) * scale)
	if n == 0 {
		n = 1
	}
	return EstimatedSize(n, n, n)
}

func (a realArb) Pick(rng *rand.Rand) (Pick[float64], bool) {
	rng = newRNG(rng)
	v := a.min + rng.Float64()*(a.max-a.min)
	return NewPick(v), true
}

func (a realArb) CornerCases() []Pick[float64] {
	vals := map[float64]struct{}{a.min: {}, a.max: {}}
	if a.min <= 0 && 0 <= a.max {
		vals[0] = struct{}{}
	}
	vals[a.min+(a.max-a.min)/2] = struct{}{}
	out := make([]Pick[float64], 0, len(vals))
	// deterministic order: closest-to-zero first
	ordered := make([]float64, 0, len(vals))
	for v := range vals {
		ordered = append(ordered, v)
	}
	for i := 1; i < len(ordered); i++ {
		v := ordered[i]
		j := i - 1
		for j >= 0 && math.Abs(ordered[j]) > math.Abs(v) {
			ordered[j+1] = ordered[j]
			j--
		}
		ordered[j+1] = v
	}
	for _, v := range ordered {
		out = append(out, NewPick(v))
	}
	return out
}

func (a realArb) Sample(n int, rng *rand.Rand) []Pick[float64] {
	return DefaultSample[float64](a, n, rng)
}
func (a realArb) SampleWithBias(n int, rng *rand.Rand) []Pick[float64] {
	return DefaultSampleWithBias[float64](a, n, rng)
}
func (a realArb) SampleUnique(n int, exclude []Pick[float64], rng *rand.Rand) []Pick[float64] {
	return DefaultSampleUnique[float64](a, n, exclude, rng)
}

func (a realArb) Shrink(pick Pick[float64]) Arbitrary[float64] {
	target := realTarget(a.min, a.max)
	if pick.Value == target {
		return NoArbitrary[float64]()
	}
	lo, hi := pick.Value, target
	if lo > hi {
		lo, hi = hi, lo
	}
	return Real(lo, hi, a.precision)
}

func (a realArb) ShrinkIterator(pick Pick[float64], opts ShrinkIterOpts) ShrinkIterator[float64] {
	target := realTarget(a.min, a.max)
	grow := func(base Pick[float64]) []Pick[float64] {
		b := base.Value
		var out []Pick[float64]
		push := func(x float64) {
			if x < a.min || x > a.max {
				return
			}
			out = append(out, NewPick(x))
		}
		if b != target {
			push(target)
			half := b - (b-target)/2
			push(half)
			quarter := b - (b-target)/4
			push(quarter)
			if err := math.Nextafter(b, target); err != b {
				push(err)
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
	return newNeighborQueueIterator[float64](pick, ShrinkBFS, opts.MaxCandidates, a.Hash, grow)
}

func (a realArb) CanGenerate(pick Pick[float64]) bool {
	return pick.Value >= a.min && pick.Value <= a.max
}

func (a realArb) IsShrunken(candidate, current Pick[float64]) bool {
	return math.Abs(candidate.Value) < math.Abs(current.Value)
}

func (a realArb) round(x float64) float64 {
	if a.precision == 0 {
		return x
	}
	scale := math.Pow(10, float64(a.precision))
	return math.Round(x*scale) / scale
}

func (a realArb) Equals(x, y float64) bool { return a.round(x) == a.round(y) }
func (a realArb) Hash(x float64) uint64    { return math.Float64bits(a.round(x)) }

func realTarget(min, max float64) float64 {
	if min <= 0 && 0 <= max {
		return 0
	}
	if math.Abs(min) < math.Abs(max) {
		return min
	}
	return max
}
