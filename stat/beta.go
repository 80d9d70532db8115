package stat

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Beta wraps gonum's stat/distuv Beta distribution with the Mean/Mode/
// pdf/cdf/inverse-cdf surface spec §4.5 requires, used for filter-size
// estimation (arb's Filtered combinator) and Bayesian confidence below.
// Grounded on the gonum pack file (other_examples/e09c5713, the
// gonum.org/v1/gonum module in the corpus), which composes distuv types
// the same way throughout its sampling package.
type Beta struct {
	dist distuv.Beta
}

// NewBeta builds a Beta(alpha, beta) distribution. Both parameters must
// be > 0.
func NewBeta(alpha, beta float64) Beta {
	return Beta{dist: distuv.Beta{Alpha: alpha, Beta: beta}}
}

func (b Beta) Alpha() float64 { return b.dist.Alpha }
func (b Beta) Beta() float64  { return b.dist.Beta }

// Mean is alpha / (alpha+beta).
func (b Beta) Mean() float64 { return b.dist.Mean() }

// Mode is (alpha-1)/(alpha+beta-2) when alpha,beta > 1. Outside that
// region it returns 0 when only beta > 1, 1 when only alpha > 1, and Mean
// when both alpha,beta <= 1 (the uniform and U-shaped cases).
func (b Beta) Mode() float64 {
	a, bb := b.dist.Alpha, b.dist.Beta
	switch {
	case a > 1 && bb > 1:
		return (a - 1) / (a + bb - 2)
	case a <= 1 && bb > 1:
		return 0
	case a > 1 && bb <= 1:
		return 1
	default:
		return b.Mean()
	}
}

// PDF is the probability density at x.
func (b Beta) PDF(x float64) float64 { return b.dist.Prob(x) }

// CDF is the cumulative distribution at x.
func (b Beta) CDF(x float64) float64 { return b.dist.CDF(x) }

// InvCDF is the inverse CDF (quantile function) at p in [0,1].
func (b Beta) InvCDF(p float64) float64 { return b.dist.Quantile(p) }

// Posterior returns the Beta posterior updated with observed accept/reject
// counts under this prior — used by Filtered to track accept/reject
// outcomes (spec §4.1 Filtered: "maintains Beta posterior with uniform
// prior Beta(1,1) updated as α += accept, β += reject").
func (b Beta) Posterior(accepts, rejects uint64) Beta {
	return NewBeta(b.dist.Alpha+float64(accepts), b.dist.Beta+float64(rejects))
}
