package stat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// DistributionTracker must agree with its own composed estimators; this
// exercises the wiring rather than the estimators' math, which is covered
// in welford_test.go and p2_test.go.
func TestDistributionTrackerComposesEstimators(t *testing.T) {
	require := require.New(t)

	tr := NewDistributionTracker()
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		tr.Add(r.NormFloat64()*3 + 10)
	}

	require.Equal(int64(2000), tr.Count())
	require.InDelta(10.0, tr.Mean(), 0.5)
	require.Greater(tr.Max(), tr.Min())
	require.LessOrEqual(tr.Q1(), tr.Median())
	require.LessOrEqual(tr.Median(), tr.Q3())

	hist := tr.Histogram(0)
	require.NotEmpty(hist)
}
