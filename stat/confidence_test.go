package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// confidence is non-decreasing as more clean tests accumulate, for a fixed
// threshold, since each additional zero-failure trial can only raise the
// posterior mass above threshold.
func TestCalculateBayesianConfidenceMonotonic(t *testing.T) {
	thresholds := []float64{0.9, 0.99, 0.999}

	for _, threshold := range thresholds {
		t.Run("", func(t *testing.T) {
			require := require.New(t)
			prev := -1.0
			for _, n := range []uint64{1, 10, 100, 1000, 10000} {
				conf, err := CalculateBayesianConfidence(n, 0, threshold)
				require.NoError(err)
				require.GreaterOrEqual(conf, prev, "confidence decreased from n=%d", n)
				prev = conf
			}
		})
	}
}

func TestCalculateBayesianConfidenceRejectsBadThreshold(t *testing.T) {
	require := require.New(t)
	_, err := CalculateBayesianConfidence(10, 0, 0)
	require.Error(err)
	_, err = CalculateBayesianConfidence(10, 0, 1)
	require.Error(err)
}

// SampleSizeForConfidence must return the smallest n clearing the target:
// n-1 clean tests must fall short of targetConfidence, n must clear it.
func TestSampleSizeForConfidenceInversion(t *testing.T) {
	tests := []struct {
		name             string
		threshold        float64
		targetConfidence float64
	}{
		{"moderate threshold", 0.95, 0.90},
		{"high threshold", 0.999, 0.95},
		{"very high threshold", 0.9999, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			n, err := SampleSizeForConfidence(tt.threshold, tt.targetConfidence)
			require.NoError(err)
			require.Greater(n, 0)

			atN, err := CalculateBayesianConfidence(uint64(n), 0, tt.threshold)
			require.NoError(err)
			require.GreaterOrEqual(atN, tt.targetConfidence)

			if n > 1 {
				belowN, err := CalculateBayesianConfidence(uint64(n-1), 0, tt.threshold)
				require.NoError(err)
				require.Less(belowN, tt.targetConfidence)
			}
		})
	}
}

// DetectionProbability(1/r, r) should converge to 1-1/e as r grows, the
// classical "probability at least one success in r trials at rate 1/r"
// identity.
func TestDetectionProbabilityApproachesOneMinusInvE(t *testing.T) {
	require := require.New(t)

	want := 1 - 1/math.E
	for _, r := range []int{100, 1000, 10000} {
		rate := 1.0 / float64(r)
		got, err := DetectionProbability(rate, r)
		require.NoError(err)
		require.InDelta(want, got, 0.01, "r=%d", r)
	}
}

func TestDetectionProbabilityRejectsBadInputs(t *testing.T) {
	require := require.New(t)

	_, err := DetectionProbability(0, 10)
	require.Error(err)
	_, err = DetectionProbability(1.5, 10)
	require.Error(err)
	_, err = DetectionProbability(0.1, -1)
	require.Error(err)
}

func TestExpectedTestsToDetectFailure(t *testing.T) {
	require := require.New(t)

	got, err := ExpectedTestsToDetectFailure(0.01)
	require.NoError(err)
	require.InDelta(100.0, got, 1e-9)

	_, err = ExpectedTestsToDetectFailure(0)
	require.Error(err)
}

func TestWilsonScoreIntervalBounds(t *testing.T) {
	tests := []struct {
		name      string
		successes uint64
		trials    uint64
	}{
		{"no trials", 0, 0},
		{"all success", 10, 10},
		{"all failure", 0, 10},
		{"half success", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			lo, hi := WilsonScoreInterval(tt.successes, tt.trials, 0.95)
			require.GreaterOrEqual(lo, 0.0)
			require.LessOrEqual(hi, 1.0)
			require.LessOrEqual(lo, hi)
		})
	}
}

func TestCalculateCredibleIntervalBrackets(t *testing.T) {
	require := require.New(t)

	lo, hi, err := CalculateCredibleInterval(95, 5, 0.95)
	require.NoError(err)
	require.Less(lo, hi)
	require.Greater(lo, 0.0)
	require.Less(hi, 1.0)

	_, _, err = CalculateCredibleInterval(95, 5, 0)
	require.Error(err)
}
