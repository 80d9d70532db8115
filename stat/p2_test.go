package stat

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// The P² estimator must track the exact quantiles of a stream within 5%
// relative error once at least 1000 samples have been folded in, for
// distributions commonly seen in generated test data.
func TestQuantilesMatchExactWithinTolerance(t *testing.T) {
	const n = 5000
	const relTolerance = 0.05

	tests := []struct {
		name string
		next func(r *rand.Rand) float64
	}{
		{"uniform", func(r *rand.Rand) float64 { return r.Float64() * 100 }},
		{"normal", func(r *rand.Rand) float64 { return r.NormFloat64()*15 + 50 }},
		{"exponential", func(r *rand.Rand) float64 { return r.ExpFloat64() * 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			r := rand.New(rand.NewSource(99))

			q := NewQuantiles()
			samples := make([]float64, n)
			for i := 0; i < n; i++ {
				v := tt.next(r)
				samples[i] = v
				q.Add(v)
			}

			sort.Float64s(samples)
			exactMedian := samples[n/2]
			exactQ1 := samples[n/4]
			exactQ3 := samples[3*n/4]

			requireWithinRelative(t, require, exactMedian, q.Median(), relTolerance)
			requireWithinRelative(t, require, exactQ1, q.Q1(), relTolerance)
			requireWithinRelative(t, require, exactQ3, q.Q3(), relTolerance)
			require.Equal(int64(n), q.Count())
		})
	}
}

func requireWithinRelative(t *testing.T, r *require.Assertions, want, got, relTolerance float64) {
	t.Helper()
	tolerance := relTolerance*absF(want) + 1e-6
	r.InDelta(want, got, tolerance)
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestQuantilesExactPhaseBeforeFiveSamples(t *testing.T) {
	require := require.New(t)

	q := NewQuantiles()
	q.Add(3)
	q.Add(1)
	q.Add(2)
	require.Equal(int64(3), q.Count())
	require.Equal(1.0, q.Min())
	require.Equal(3.0, q.Max())
}

func TestHistogramBucketsReservoir(t *testing.T) {
	require := require.New(t)

	q := NewQuantiles()
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		q.Add(r.Float64() * 10)
	}

	hist := q.Histogram(10)
	require.Len(hist, 10)

	total := 0
	for _, c := range hist {
		total += c
	}
	require.Equal(DefaultHistogramSampleSize, total)
}
