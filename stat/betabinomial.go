package stat

import "math"

// BetaBinomial is the compound distribution of a Binomial(trials, p) with
// p ~ Beta(alpha, beta). No example repo in the corpus ships this
// distribution (gonum's distuv has no BetaBinomial type), so it is
// implemented directly on math.Lgamma the way the teacher hand-rolls its
// own small numeric routines (e.g. gen/domain/cpf.go's verifier-digit
// arithmetic) — see DESIGN.md for the standard-library justification.
type BetaBinomial struct {
	Trials     int
	Alpha      float64
	Beta       float64
	logBetaAB  float64 // cached log B(alpha,beta)
}

// NewBetaBinomial builds a BetaBinomial(trials, alpha, beta) distribution.
func NewBetaBinomial(trials int, alpha, beta float64) BetaBinomial {
	return BetaBinomial{Trials: trials, Alpha: alpha, Beta: beta, logBetaAB: logBeta(alpha, beta)}
}

func logBeta(a, b float64) float64 {
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	return la + lb - lab
}

func logChoose(n, k int) float64 {
	ln1, _ := math.Lgamma(float64(n + 1))
	lk1, _ := math.Lgamma(float64(k + 1))
	lnk1, _ := math.Lgamma(float64(n-k + 1))
	return ln1 - lk1 - lnk1
}

// LogPMF returns the log probability mass at k successes, stable even for
// large trials where the raw pmf would underflow.
func (d BetaBinomial) LogPMF(k int) float64 {
	if k < 0 || k > d.Trials {
		return math.Inf(-1)
	}
	return logChoose(d.Trials, k) + logBeta(float64(k)+d.Alpha, float64(d.Trials-k)+d.Beta) - d.logBetaAB
}

// PMF returns the probability mass at k successes.
func (d BetaBinomial) PMF(k int) float64 {
	return math.Exp(d.LogPMF(k))
}

// Mean is trials * alpha / (alpha+beta).
func (d BetaBinomial) Mean() float64 {
	return float64(d.Trials) * d.Alpha / (d.Alpha + d.Beta)
}

// Mode, when alpha,beta > 1, rounds (alpha-1)(Trials+1)/(alpha+beta-2) to
// the nearest integer in [0,Trials]; otherwise it scans every k in
// [0,Trials] and returns the one with the largest PMF.
func (d BetaBinomial) Mode() int {
	if d.Trials == 0 {
		return 0
	}
	if d.Alpha > 1 && d.Beta > 1 {
		num := (d.Alpha - 1) * float64(d.Trials+1)
		den := d.Alpha + d.Beta - 2
		approx := int(math.Round(num / den))
		return clampInt(approx, 0, d.Trials)
	}
	best, bestLogP := 0, math.Inf(-1)
	for k := 0; k <= d.Trials; k++ {
		lp := d.LogPMF(k)
		if lp > bestLogP {
			best, bestLogP = k, lp
		}
	}
	return best
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// CDF sums PMF(0..k), an O(trials) computation as spec §4.5 prescribes as
// the default.
func (d BetaBinomial) CDF(k int) float64 {
	if k < 0 {
		return 0
	}
	if k >= d.Trials {
		return 1
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += d.PMF(i)
	}
	return sum
}

// InvCDF finds the smallest k with CDF(k) >= p via binary search over
// [0,trials].
func (d BetaBinomial) InvCDF(p float64) int {
	lo, hi := 0, d.Trials
	for lo < hi {
		mid := (lo + hi) / 2
		if d.CDF(mid) >= p {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
