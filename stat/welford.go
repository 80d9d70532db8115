// Package stat provides the statistical apparatus of spec §4.5: streaming
// mean/variance, P² quantile estimation, Beta/Beta-Binomial distributions,
// Bayesian confidence, Wilson score intervals, sample-size planning, and
// the primitives coverage verification builds on.
package stat

import "math"

// MeanVariance streams mean and variance in O(1) memory via Welford's
// algorithm, matching the teacher's numeric-helper style (small, hand
// rolled recurrences, e.g. gen/domain/cpf.go's verifier-digit arithmetic)
// generalized to floating point statistics.
type MeanVariance struct {
	count int64
	mean  float64
	m2    float64
}

// Add folds one observation into the running statistics.
func (w *MeanVariance) Add(v float64) {
	w.count++
	delta := v - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (v - w.mean)
}

// Count returns the number of observations folded in so far.
func (w *MeanVariance) Count() int64 { return w.count }

// Mean returns the running mean; it is 0 for an empty stream.
func (w *MeanVariance) Mean() float64 { return w.mean }

// SampleVariance applies Bessel's correction (count-1 in the
// denominator); it requires Count() >= 2 and returns 0 otherwise.
func (w *MeanVariance) SampleVariance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count-1)
}

// PopulationVariance divides by count instead of count-1.
func (w *MeanVariance) PopulationVariance() float64 {
	if w.count < 1 {
		return 0
	}
	return w.m2 / float64(w.count)
}

// SampleStdDev is the square root of SampleVariance.
func (w *MeanVariance) SampleStdDev() float64 {
	return math.Sqrt(w.SampleVariance())
}

// MinMax tracks the minimum and maximum of a stream in O(1) memory.
type MinMax struct {
	count    int64
	min, max float64
}

func (m *MinMax) Add(v float64) {
	if m.count == 0 || v < m.min {
		m.min = v
	}
	if m.count == 0 || v > m.max {
		m.max = v
	}
	m.count++
}

func (m *MinMax) Min() float64 { return m.min }
func (m *MinMax) Max() float64 { return m.max }
func (m *MinMax) Count() int64 { return m.count }
