// Package coverage implements coverage verification (spec §4.6): given
// collected labels and testsRun, verify each Cover/CoverTable requirement
// using a Wilson score interval on the observed proportion. Grounded on
// the teacher's statistics-free test style; the Wilson interval itself is
// shared with stat.WilsonScoreInterval.
package coverage

import (
	"github.com/shrinklab/pbtcore/scenario"
	"github.com/shrinklab/pbtcore/stat"
)

// Requirement is one verified Cover or CoverTable-category requirement.
type Requirement struct {
	Label       string
	RequiredPct float64
	ObservedPct float64
	CILow       float64
	CIHigh      float64
	Confidence  float64
	Satisfied   bool
}

// Verify checks every Cover and CoverTable category in exec against the
// collected labels and testsRun, at the given confidence level (spec
// default 0.95).
func Verify(exec *scenario.ExecutableScenario, labels map[string]int, testsRun int, confidence float64) []Requirement {
	if confidence <= 0 {
		confidence = 0.95
	}
	var out []Requirement
	for _, c := range exec.Covers {
		out = append(out, verifyOne(c.Label, c.RequiredPct, labels, testsRun, confidence))
	}
	for _, ct := range exec.CoverTables {
		for _, cat := range ct.Categories {
			out = append(out, verifyOne(ct.Name+"/"+cat.Label, 0, labels, testsRun, confidence))
		}
	}
	return out
}

func verifyOne(label string, requiredPct float64, labels map[string]int, testsRun int, confidence float64) Requirement {
	count := labels[label]
	observedPct := 0.0
	if testsRun > 0 {
		observedPct = 100 * float64(count) / float64(testsRun)
	}
	lo, hi := stat.WilsonScoreInterval(uint64(count), uint64(testsRun), confidence)
	satisfied := requiredPct/100 <= hi
	return Requirement{
		Label:       label,
		RequiredPct: requiredPct,
		ObservedPct: observedPct,
		CILow:       lo * 100,
		CIHigh:      hi * 100,
		Confidence:  confidence,
		Satisfied:   satisfied,
	}
}

// AllSatisfied reports whether every requirement passed verification.
func AllSatisfied(reqs []Requirement) bool {
	for _, r := range reqs {
		if !r.Satisfied {
			return false
		}
	}
	return true
}
