package stat

import (
	"math"

	"github.com/shrinklab/pbtcore/errs"
)

// WilsonScoreInterval computes the asymmetric binomial confidence
// interval for successes out of trials at the given confidence level,
// clipped to [0,1]. For trials=0, returns [0,1] per spec
// §4.5.
func WilsonScoreInterval(successes, trials uint64, confidence float64) (lo, hi float64) {
	if trials == 0 {
		return 0, 1
	}
	z := zScore(confidence)
	n := float64(trials)
	p := float64(successes) / n
	denom := 1 + z*z/n
	center := p + z*z/(2*n)
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))
	lo = (center - margin) / denom
	hi = (center + margin) / denom
	return clamp01(lo), clamp01(hi)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// zScore returns the two-sided z critical value for a confidence level:
// the standard normal inverse CDF at 1-alpha/2, computed via math.Erfinv.
func zScore(confidence float64) float64 {
	alpha := 1 - confidence
	p := 1 - alpha/2
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

// CalculateBayesianConfidence returns the posterior probability that the
// true pass rate exceeds threshold, given observed successes/failures
// under a uniform Beta(1,1) prior: 1 - Beta(successes+1, failures+1).CDF(threshold).
func CalculateBayesianConfidence(successes, failures uint64, threshold float64) (float64, error) {
	if threshold <= 0 || threshold >= 1 {
		return 0, errs.NewInvalidArgument("threshold must be in (0,1), got %v", threshold)
	}
	posterior := NewBeta(float64(successes)+1, float64(failures)+1)
	return 1 - posterior.CDF(threshold), nil
}

// CalculateCredibleInterval returns the posterior quantiles at alpha/2 and
// 1-alpha/2 for the same Beta(successes+1, failures+1) posterior.
func CalculateCredibleInterval(successes, failures uint64, confidence float64) (lo, hi float64, err error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, 0, errs.NewInvalidArgument("confidence must be in (0,1), got %v", confidence)
	}
	posterior := NewBeta(float64(successes)+1, float64(failures)+1)
	alpha := 1 - confidence
	return posterior.InvCDF(alpha / 2), posterior.InvCDF(1 - alpha/2), nil
}

// SampleSizeForConfidence finds, by binary search over n in [1,100000],
// the minimum n such that CalculateBayesianConfidence(n, 0, threshold) >=
// targetConfidence.
func SampleSizeForConfidence(threshold, targetConfidence float64) (int, error) {
	if threshold <= 0 || threshold >= 1 {
		return 0, errs.NewInvalidArgument("threshold must be in (0,1), got %v", threshold)
	}
	if targetConfidence <= 0 || targetConfidence >= 1 {
		return 0, errs.NewInvalidArgument("targetConfidence must be in (0,1), got %v", targetConfidence)
	}
	const maxN = 100000
	lo, hi := 1, maxN
	for lo < hi {
		mid := (lo + hi) / 2
		conf, err := CalculateBayesianConfidence(uint64(mid), 0, threshold)
		if err != nil {
			return 0, err
		}
		if conf >= targetConfidence {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}

// ExpectedTestsToDetectFailure is 1/failureRate.
func ExpectedTestsToDetectFailure(failureRate float64) (float64, error) {
	if failureRate <= 0 || failureRate > 1 {
		return 0, errs.NewInvalidArgument("failureRate must be in (0,1], got %v", failureRate)
	}
	return 1 / failureRate, nil
}

// DetectionProbability is 1 - (1-failureRate)^tests.
func DetectionProbability(failureRate float64, tests int) (float64, error) {
	if failureRate <= 0 || failureRate > 1 {
		return 0, errs.NewInvalidArgument("failureRate must be in (0,1], got %v", failureRate)
	}
	if tests < 0 {
		return 0, errs.NewInvalidArgument("tests must be non-negative, got %d", tests)
	}
	return 1 - math.Pow(1-failureRate, float64(tests)), nil
}
