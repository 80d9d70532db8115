package stat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBetaUniformPrior(t *testing.T) {
	require := require.New(t)

	b := NewBeta(1, 1)
	require.InDelta(0.5, b.Mean(), 1e-9)
	require.InDelta(0.5, b.CDF(0.5), 1e-9)
	require.InDelta(0.5, b.InvCDF(0.5), 1e-9)
}

func TestBetaPosteriorUpdate(t *testing.T) {
	require := require.New(t)

	prior := NewBeta(1, 1)
	posterior := prior.Posterior(8, 2)
	require.Equal(9.0, posterior.Alpha())
	require.Equal(3.0, posterior.Beta())
	require.InDelta(0.75, posterior.Mean(), 1e-9)
}

func TestBetaModeBoundaryCases(t *testing.T) {
	tests := []struct {
		name       string
		alpha, beta float64
		want       float64
	}{
		{"uniform falls back to mean", 1, 1, 0.5},
		{"left boundary peaked", 0.5, 2, 0},
		{"right boundary peaked", 2, 0.5, 1},
		{"interior mode", 3, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			b := NewBeta(tt.alpha, tt.beta)
			require.InDelta(tt.want, b.Mode(), 1e-9)
		})
	}
}

func TestBetaBinomialMeanAndCDF(t *testing.T) {
	require := require.New(t)

	d := NewBetaBinomial(20, 1, 1)
	require.InDelta(10.0, d.Mean(), 1e-9)
	require.InDelta(1.0, d.CDF(20), 1e-9)
	require.Equal(0.0, d.CDF(-1))
}

func TestBetaBinomialInvCDFRoundTrips(t *testing.T) {
	require := require.New(t)

	d := NewBetaBinomial(50, 2, 5)
	for _, p := range []float64{0.1, 0.5, 0.9} {
		k := d.InvCDF(p)
		require.GreaterOrEqual(d.CDF(k), p)
		require.GreaterOrEqual(k, 0)
		require.LessOrEqual(k, d.Trials)
	}
}

func TestBetaBinomialModeZeroTrials(t *testing.T) {
	require := require.New(t)

	d := NewBetaBinomial(0, 1, 1)
	require.Equal(0, d.Mode())
}
