// Package scenarios holds end-to-end checks of the full compiled-scenario
// pipeline (compile -> explore -> shrink -> coverage), adapted from the
// teacher's prop_test.go/testfailures table-driven style into scenario
// DSL form.
package scenarios

import (
	"testing"

	"github.com/shrinklab/pbtcore/arb"
	"github.com/shrinklab/pbtcore/arb/domain"
	"github.com/shrinklab/pbtcore/check"
	"github.com/shrinklab/pbtcore/scenario"
	"github.com/shrinklab/pbtcore/stat"
)

// S1: addition is commutative over a bounded integer range.
func TestAdditionCommutes(t *testing.T) {
	scn := scenario.New(
		scenario.ForAllOf("a", arb.Integer(-10, 10)),
		scenario.ForAllOf("b", arb.Integer(-10, 10)),
		scenario.ThenOf(func(v map[string]any) bool {
			a, b := v["a"].(int64), v["b"].(int64)
			return a+b == b+a
		}),
	)

	res := check.Check(scn, check.WithSeed(1), check.WithMaxTests(200))
	res.AssertSatisfiable()
	if res.Outcome != check.ForAllPass {
		t.Fatalf("expected forall-pass, got %s", res.Outcome)
	}
}

// S2: a deliberately planted counterexample (a+b=0 breaks commutativity
// bookkeeping in the property below) must be found and shrunk to
// |a|+|b| <= 2.
func TestPlantedCounterexampleShrinks(t *testing.T) {
	scn := scenario.New(
		scenario.ForAllOf("a", arb.Integer(-10, 10)),
		scenario.ForAllOf("b", arb.Integer(-10, 10)),
		scenario.ThenOf(func(v map[string]any) bool {
			a, b := v["a"].(int64), v["b"].(int64)
			if a+b == 0 {
				return a+b == b // false whenever b != 0
			}
			return a+b == b+a
		}),
	)

	res := check.Check(scn, check.WithSeed(42), check.WithMaxTests(500))
	res.AssertNotSatisfiable()

	a := res.Counterexample["a"].(int64)
	b := res.Counterexample["b"].(int64)
	if a+b != 0 || b == 0 {
		t.Fatalf("counterexample %v does not satisfy the planted condition", res.Counterexample)
	}
	if absI64(a)+absI64(b) > 2 {
		t.Fatalf("shrunk counterexample too large: a=%d b=%d (|a|+|b|=%d > 2)", a, b, absI64(a)+absI64(b))
	}
}

func absI64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// S3: an existential witness divisible by 7 must be found in [0,100].
func TestExistsWitnessDivisibleBySeven(t *testing.T) {
	scn := scenario.New(
		scenario.ExistsOf("n", arb.Integer(0, 100)),
		scenario.ThenOf(func(v map[string]any) bool {
			n := v["n"].(int64)
			return n%7 == 0
		}),
	)

	res := check.Check(scn, check.WithSeed(7), check.WithMaxTests(500))
	res.AssertSatisfiable()
	if res.Outcome != check.ExistsPass {
		t.Fatalf("expected exists-pass, got %s", res.Outcome)
	}
	n := res.Example["n"].(int64)
	if n%7 != 0 || n < 0 || n > 100 {
		t.Fatalf("witness %d is not a valid multiple of 7 in [0,100]", n)
	}
}

// S4: concatenation length is additive for bounded strings.
func TestStringConcatLength(t *testing.T) {
	scn := scenario.New(
		scenario.ForAllOf("a", arb.StringASCII(0, 10)),
		scenario.ForAllOf("b", arb.StringASCII(0, 10)),
		scenario.ThenOf(func(v map[string]any) bool {
			a, b := v["a"].(string), v["b"].(string)
			return len(a+b) == len(a)+len(b)
		}),
	)

	res := check.Check(scn, check.WithSeed(9), check.WithMaxTests(300))
	res.AssertSatisfiable()
}

// S5: coverage requirements for both signs of x must be satisfied at 95%
// confidence over 1000 tests.
func TestCoverageBothSigns(t *testing.T) {
	scn := scenario.New(
		scenario.ForAllOf("x", arb.Integer(-100, 100)),
		scenario.CoverOf(10, func(v map[string]any) bool {
			return v["x"].(int64) < 0
		}, "neg"),
		scenario.CoverOf(10, func(v map[string]any) bool {
			return v["x"].(int64) > 0
		}, "pos"),
		scenario.ThenOf(func(v map[string]any) bool { return true }),
	)

	res := check.Check(scn, check.WithSeed(123), check.WithMaxTests(1000))
	res.AssertSatisfiable()

	for _, req := range res.Coverage {
		if !req.Satisfied {
			t.Fatalf("coverage requirement %q not satisfied: observed %.2f%% CI [%.2f, %.2f]", req.Label, req.ObservedPct, req.CILow, req.CIHigh)
		}
	}
}

// S6: sample-size planning for a 0.999 pass-rate threshold at 95%
// confidence should land near 3000, and 500 clean tests should fall short
// of that confidence level.
func TestConfidencePlanning(t *testing.T) {
	n, err := stat.SampleSizeForConfidence(0.999, 0.95)
	if err != nil {
		t.Fatalf("SampleSizeForConfidence: %v", err)
	}
	if n < 2900 || n > 3100 {
		t.Fatalf("expected sample size in [2900,3100], got %d", n)
	}

	conf, err := stat.CalculateBayesianConfidence(500, 0, 0.999)
	if err != nil {
		t.Fatalf("CalculateBayesianConfidence: %v", err)
	}
	if conf >= 0.95 {
		t.Fatalf("expected confidence < 0.95 after only 500 clean tests, got %f", conf)
	}
}

// Domain: every generated CPF (masked or bare) must validate against its
// own check-digit algorithm, exercising the domain generator end to end
// through the scenario/check pipeline rather than directly against arb.
func TestCPFAlwaysValid(t *testing.T) {
	scn := scenario.New(
		scenario.ForAllOf("doc", domain.CPFAny()),
		scenario.ThenOf(func(v map[string]any) bool {
			return domain.ValidCPF(v["doc"].(string))
		}),
	)

	res := check.Check(scn, check.WithSeed(2024), check.WithMaxTests(300))
	res.AssertSatisfiable()
}
