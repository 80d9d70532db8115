package stat

import "sort"

// DefaultHistogramSampleSize is the bounded reservoir size used by
// Quantiles' histogram output (spec §4.5).
const DefaultHistogramSampleSize = 200

// Quantiles implements the P² algorithm (Jain & Chlamtac) for streaming
// estimation of the quartiles {0, 0.25, 0.5, 0.75, 1} in O(1) memory,
// bootstrapped by an exact phase over the first 5 observations. A bounded
// reservoir of up to DefaultHistogramSampleSize samples additionally
// supports histogram output; per spec §9 Open Question (b), the reservoir
// uses simple index-based replacement once full rather than classical
// Vitter reservoir sampling, so its uniformity is weaker than a true
// reservoir sample.
type Quantiles struct {
	initial []float64 // exact-phase buffer, len < 5

	// marker state, valid once len(initial) == 5
	started bool
	h       [5]float64 // marker heights
	n       [5]float64 // marker actual positions (integers, stored as float for arithmetic)
	np      [5]float64 // marker desired positions
	dn      [5]float64 // desired position increments (the quantiles themselves)

	count int64

	reservoir    []float64
	reservoirPos int64 // count of observations considered for the reservoir
}

// NewQuantiles constructs an empty P² estimator for the quartiles.
func NewQuantiles() *Quantiles {
	return &Quantiles{
		dn:        [5]float64{0, 0.25, 0.5, 0.75, 1},
		reservoir: make([]float64, 0, DefaultHistogramSampleSize),
	}
}

// Add folds one observation into the estimator.
func (q *Quantiles) Add(v float64) {
	q.count++
	q.addToReservoir(v)

	if !q.started {
		q.initial = append(q.initial, v)
		if len(q.initial) < 5 {
			return
		}
		sort.Float64s(q.initial)
		for i := 0; i < 5; i++ {
			q.h[i] = q.initial[i]
			q.n[i] = float64(i + 1)
		}
		for i := 0; i < 5; i++ {
			q.np[i] = 1 + 2*q.dn[i]
		}
		q.started = true
		return
	}

	q.observe(v)
}

func (q *Quantiles) addToReservoir(v float64) {
	q.reservoirPos++
	if len(q.reservoir) < DefaultHistogramSampleSize {
		q.reservoir = append(q.reservoir, v)
		return
	}
	// Index-based replacement (not a uniform Vitter reservoir, see the
	// type doc comment): replace a slot chosen by simple modulo cycling.
	idx := int(q.reservoirPos % int64(DefaultHistogramSampleSize))
	q.reservoir[idx] = v
}

func (q *Quantiles) observe(v float64) {
	// 1. locate cell k and clamp/extend the outer markers.
	k := 0
	switch {
	case v < q.h[0]:
		q.h[0] = v
		k = 0
	case v >= q.h[4]:
		q.h[4] = v
		k = 3
	default:
		for i := 0; i < 4; i++ {
			if v < q.h[i+1] {
				k = i
				break
			}
		}
	}

	// 2. increment positions of markers to the right of cell k.
	for i := k + 1; i < 5; i++ {
		q.n[i]++
	}
	for i := 0; i < 5; i++ {
		q.np[i] += q.dn[i]
	}

	// 3. adjust interior markers 1..3.
	for i := 1; i <= 3; i++ {
		d := q.np[i] - q.n[i]
		if (d >= 1 && q.n[i+1]-q.n[i] > 1) || (d <= -1 && q.n[i-1]-q.n[i] < -1) {
			sign := 1.0
			if d < 0 {
				sign = -1.0
			}
			newH := q.parabolic(i, sign)
			if q.h[i-1] < newH && newH < q.h[i+1] {
				q.h[i] = newH
			} else {
				q.h[i] = q.linear(i, sign)
			}
			q.n[i] += sign
		}
	}
}

func (q *Quantiles) parabolic(i int, d float64) float64 {
	return q.h[i] + d/(q.n[i+1]-q.n[i-1])*(
		(q.n[i]-q.n[i-1]+d)*(q.h[i+1]-q.h[i])/(q.n[i+1]-q.n[i])+
			(q.n[i+1]-q.n[i]-d)*(q.h[i]-q.h[i-1])/(q.n[i]-q.n[i-1]))
}

func (q *Quantiles) linear(i int, d float64) float64 {
	return q.h[i] + d*(q.h[int(float64(i)+d)]-q.h[i])/(q.n[int(float64(i)+d)]-q.n[i])
}

// Count returns the number of observations folded in.
func (q *Quantiles) Count() int64 { return q.count }

// quantileExact handles the exact phase (fewer than 5 samples so far).
func (q *Quantiles) quantileExact(p float64) float64 {
	if len(q.initial) == 0 {
		return 0
	}
	sorted := append([]float64(nil), q.initial...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// Min, Q1, Median, Q3, Max return the current estimate for each tracked
// quantile.
func (q *Quantiles) Min() float64 {
	if !q.started {
		return q.quantileExact(0)
	}
	return q.h[0]
}
func (q *Quantiles) Q1() float64 {
	if !q.started {
		return q.quantileExact(0.25)
	}
	return q.h[1]
}
func (q *Quantiles) Median() float64 {
	if !q.started {
		return q.quantileExact(0.5)
	}
	return q.h[2]
}
func (q *Quantiles) Q3() float64 {
	if !q.started {
		return q.quantileExact(0.75)
	}
	return q.h[3]
}
func (q *Quantiles) Max() float64 {
	if !q.started {
		return q.quantileExact(1)
	}
	return q.h[4]
}

// Histogram buckets the bounded reservoir into bins evenly spaced between
// Min and Max, returning per-bin counts. bins <= 0 derives a bin count
// from the reservoir size (sqrt-choice, floored at 1).
func (q *Quantiles) Histogram(bins int) []int {
	if len(q.reservoir) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = int(intSqrt(len(q.reservoir)))
		if bins < 1 {
			bins = 1
		}
	}
	lo, hi := q.Min(), q.Max()
	counts := make([]int, bins)
	span := hi - lo
	if span <= 0 {
		counts[0] = len(q.reservoir)
		return counts
	}
	for _, v := range q.reservoir {
		idx := int((v - lo) / span * float64(bins))
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return counts
}

func intSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	for x*x > n {
		x = (x + n/x) / 2
	}
	return x
}
