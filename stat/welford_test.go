package stat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Welford's streaming mean must agree with the naive two-pass mean to
// machine precision, and sample variance must agree with the textbook
// two-pass computation within a small tolerance.
func TestMeanVarianceMatchesNaive(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"small stream", 10},
		{"medium stream", 1000},
		{"large stream", 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			r := rand.New(rand.NewSource(7))

			samples := make([]float64, tt.n)
			var mv MeanVariance
			for i := range samples {
				v := r.NormFloat64()*10 + 5
				samples[i] = v
				mv.Add(v)
			}

			naiveMean := naiveMean(samples)
			naiveVar := naiveSampleVariance(samples, naiveMean)

			require.InDelta(naiveMean, mv.Mean(), 1e-9*float64(tt.n))
			require.InDelta(naiveVar, mv.SampleVariance(), 1e-6*naiveVar+1e-9)
			require.Equal(int64(tt.n), mv.Count())
		})
	}
}

func TestMeanVarianceEmptyAndSingleton(t *testing.T) {
	require := require.New(t)

	var empty MeanVariance
	require.Equal(int64(0), empty.Count())
	require.Equal(0.0, empty.Mean())
	require.Equal(0.0, empty.SampleVariance())

	var single MeanVariance
	single.Add(42)
	require.Equal(42.0, single.Mean())
	require.Equal(0.0, single.SampleVariance(), "sample variance requires at least 2 observations")
	require.Equal(0.0, single.PopulationVariance())
}

func TestMinMaxTracksBounds(t *testing.T) {
	require := require.New(t)

	var mm MinMax
	for _, v := range []float64{3, -1, 7, 2, -5, 0} {
		mm.Add(v)
	}
	require.Equal(-5.0, mm.Min())
	require.Equal(7.0, mm.Max())
	require.Equal(int64(6), mm.Count())
}

func naiveMean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func naiveSampleVariance(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs)-1)
}
