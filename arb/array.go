package arb

import "math/rand"

// arrayArb is the Array(elem,min,max) primitive of spec §4.1: variable
// length tuple. Shrink policy: first shorten, then shrink elements.
// Corner cases include the empty array (when min==0) and the
// minimum-length array. Adapted from the teacher's gen/slice.go
// SliceOf, generalized to the Arbitrary[T] contract (the teacher
// dedups candidates via a %#v string signature; here Hash plays that
// role, consistent with the rest of arb).
type arrayArb[T any] struct {
	elem     Arbitrary[T]
	min, max int
}

// Array builds the Array(elem,min,max) primitive.
func Array[T any](elem Arbitrary[T], min, max int) Arbitrary[[]T] {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return arrayArb[T]{elem: elem, min: min, max: max}
}

func (a arrayArb[T]) Size() Size {
	elemSize := a.elem.Size()
	// Sum of elemSize^k for k in [min,max] would overflow quickly; report
	// the mid-length count elemSize^((min+max)/2) as the estimate, bounded
	// by the minimum-length and maximum-length counts.
	hi := pow64(elemSize.Hi, uint64(a.max))
	lo := pow64(elemSize.Lo, uint64(a.min))
	mid := pow64(elemSize.Value, uint64((a.min+a.max)/2))
	if lo > mid {
		lo = mid
	}
	if hi < mid {
		hi = mid
	}
	return EstimatedSize(mid, lo, hi)
}

func pow64(base, exp uint64) uint64 {
	if exp == 0 {
		return 1
	}
	if base == 0 {
		return 0
	}
	result := uint64(1)
	for i := uint64(0); i < exp && result < 1<<40; i++ {
		result *= base
	}
	return result
}

func (a arrayArb[T]) Pick(rng *rand.Rand) (Pick[[]T], bool) {
	rng = newRNG(rng)
	n := a.min
	if a.max > a.min {
		n += rng.Intn(a.max - a.min + 1)
	}
	vals := make([]T, n)
	for i := 0; i < n; i++ {
		p, ok := a.elem.Pick(rng)
		if !ok {
			var zero Pick[[]T]
			return zero, false
		}
		vals[i] = p.Value
	}
	return NewPick(vals), true
}

func (a arrayArb[T]) CornerCases() []Pick[[]T] {
	var out []Pick[[]T]
	if a.min == 0 {
		out = append(out, NewPick([]T{}))
	}
	if a.min > 0 {
		minArr := make([]T, a.min)
		corners := a.elem.CornerCases()
		for i := range minArr {
			if len(corners) > 0 {
				minArr[i] = corners[0].Value
			}
		}
		out = append(out, NewPick(minArr))
	}
	return out
}

func (a arrayArb[T]) Sample(n int, rng *rand.Rand) []Pick[[]T] {
	return DefaultSample[[]T](a, n, rng)
}
func (a arrayArb[T]) SampleWithBias(n int, rng *rand.Rand) []Pick[[]T] {
	return DefaultSampleWithBias[[]T](a, n, rng)
}
func (a arrayArb[T]) SampleUnique(n int, exclude []Pick[[]T], rng *rand.Rand) []Pick[[]T] {
	return DefaultSampleUnique[[]T](a, n, exclude, rng)
}

func (a arrayArb[T]) Shrink(pick Pick[[]T]) Arbitrary[[]T] {
	if len(pick.Value) > a.min {
		return Array(a.elem, a.min, len(pick.Value)-1)
	}
	return NoArbitrary[[]T]()
}

func (a arrayArb[T]) ShrinkIterator(pick Pick[[]T], opts ShrinkIterOpts) ShrinkIterator[[]T] {
	grow := func(base Pick[[]T]) []Pick[[]T] {
		L := len(base.Value)
		var out []Pick[[]T]
		// (1) remove large blocks first: half, quarter, ... down to 1,
		// never going below a.min elements remaining.
		chunk := L / 2
		for chunk >= 1 {
			for i := 0; i+chunk <= L; i += chunk {
				if L-chunk < a.min {
					continue
				}
				cand := removeRange(base.Value, i, i+chunk)
				out = append(out, NewPick(cand))
			}
			chunk /= 2
		}
		// (2) remove one isolated element, right to left
		if L > a.min {
			for i := L - 1; i >= 0; i-- {
				out = append(out, NewPick(removeRange(base.Value, i, i+1)))
			}
		}
		// (3) shrink one element in place, keeping length
		for i := L - 1; i >= 0; i-- {
			sub := a.elem.Shrink(NewPick(base.Value[i]))
			if sub.Size().IsZero() {
				continue
			}
			if cands := sub.CornerCases(); len(cands) > 0 {
				cand := append([]T(nil), base.Value...)
				cand[i] = cands[0].Value
				out = append(out, NewPick(cand))
			}
		}
		return out
	}
	return newNeighborQueueIterator[[]T](pick, ShrinkBFS, opts.MaxCandidates, a.Hash, grow)
}

func removeRange[T any](base []T, i, j int) []T {
	out := make([]T, 0, len(base)-(j-i))
	out = append(out, base[:i]...)
	out = append(out, base[j:]...)
	return out
}

func (a arrayArb[T]) CanGenerate(pick Pick[[]T]) bool {
	if len(pick.Value) < a.min || len(pick.Value) > a.max {
		return false
	}
	for _, v := range pick.Value {
		if !a.elem.CanGenerate(NewPick(v)) {
			return false
		}
	}
	return true
}

func (a arrayArb[T]) IsShrunken(candidate, current Pick[[]T]) bool {
	return len(candidate.Value) < len(current.Value)
}

func (a arrayArb[T]) Equals(x, y []T) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !a.elem.Equals(x[i], y[i]) {
			return false
		}
	}
	return true
}

func (a arrayArb[T]) Hash(x []T) uint64 {
	h := uint64(1469598103934665603)
	for _, v := range x {
		h ^= a.elem.Hash(v)
		h *= 1099511628211
	}
	return h
}
