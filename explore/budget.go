// Package explore implements the exploration engine of spec §4.3: a
// nested-quantifier traversal interleaving forall/exists semantics,
// precondition skipping, budget/time/confidence-based early termination,
// coverage label accounting, and opt-in detailed statistics. Grounded on
// the teacher's prop.ForAll/runSequential loop (prop/prop.go),
// generalized from one flat quantifier to the recursive nested-quantifier
// traversal SPEC_FULL.md requires.
package explore

import "time"

// Budget bounds one exploration run (spec §4.3's ExplorationBudget).
type Budget struct {
	// MaxTests is the hard cap on the number of (non-skipped) test cases.
	MaxTests int
	// MaxTime is the wall-clock budget; zero means unbounded.
	MaxTime time.Duration
	// TargetConfidence stops exploration early once Bayesian confidence
	// reaches this value.
	TargetConfidence float64
	// MinConfidence holds back a TargetConfidence early stop taken before
	// MaxTests until confidence also reaches this value. Reaching MaxTests
	// ends exploration whatever the confidence.
	MinConfidence float64
	// MaxIterations is an absolute safety cap counting skipped cases too.
	MaxIterations int
	// PassRateThreshold is the threshold passed to calculateBayesianConfidence.
	PassRateThreshold float64
	// ConfidenceCheckInterval is how often (in tests) confidence is recomputed.
	ConfidenceCheckInterval int
}

// DefaultBudget returns the spec-documented defaults: passRateThreshold
// 0.999, confidenceCheckInterval 100.
func DefaultBudget(maxTests int) Budget {
	return Budget{
		MaxTests:                maxTests,
		TargetConfidence:        0,
		MinConfidence:           0,
		MaxIterations:           maxTests * 10,
		PassRateThreshold:       0.999,
		ConfidenceCheckInterval: 100,
	}
}

// clock tracks elapsed wall time and the tests-run/skipped counters needed
// to evaluate budget exhaustion and confidence-check cadence.
type clock struct {
	start         time.Time
	testsRun      int
	skipped       int
	iterations    int
}

func newClock() *clock { return &clock{start: time.Now()} }

func (c *clock) elapsed() time.Duration { return time.Since(c.start) }

// exceeded reports whether b's hard caps have been reached.
func (b Budget) exceeded(c *clock) bool {
	if b.MaxIterations > 0 && c.iterations >= b.MaxIterations {
		return true
	}
	if b.MaxTests > 0 && c.testsRun >= b.MaxTests {
		return true
	}
	if b.MaxTime > 0 && c.elapsed() >= b.MaxTime {
		return true
	}
	return false
}

// dueForConfidenceCheck reports whether testsRun lands on a confidence
// check boundary.
func (b Budget) dueForConfidenceCheck(c *clock) bool {
	interval := b.ConfidenceCheckInterval
	if interval <= 0 {
		interval = 100
	}
	return c.testsRun > 0 && c.testsRun%interval == 0
}
