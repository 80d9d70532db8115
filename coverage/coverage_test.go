package coverage

import (
	"testing"

	"github.com/shrinklab/pbtcore/arb"
	"github.com/shrinklab/pbtcore/scenario"
)

func buildCoverScenario() *scenario.ExecutableScenario {
	scn := scenario.New(
		scenario.ForAllOf("x", arb.Integer(-100, 100)),
		scenario.CoverOf(10, func(v map[string]any) bool { return v["x"].(int64) < 0 }, "neg"),
		scenario.CoverOf(10, func(v map[string]any) bool { return v["x"].(int64) > 0 }, "pos"),
		scenario.CoverTableOf("sign",
			scenario.CoverCategory{Label: "zero", Predicate: func(v map[string]any) bool { return v["x"].(int64) == 0 }},
			scenario.CoverCategory{Label: "nonzero", Predicate: func(v map[string]any) bool { return v["x"].(int64) != 0 }},
		),
		scenario.ThenOf(func(map[string]any) bool { return true }),
	)
	return scn.Compile()
}

func TestVerifyReportsOneRequirementPerCoverAndCategory(t *testing.T) {
	exec := buildCoverScenario()
	labels := map[string]int{"neg": 400, "pos": 400, "sign/zero": 20, "sign/nonzero": 780}

	reqs := Verify(exec, labels, 800, 0.95)
	if len(reqs) != 4 {
		t.Fatalf("expected 4 requirements (neg, pos, sign/zero, sign/nonzero), got %d", len(reqs))
	}

	byLabel := make(map[string]Requirement, len(reqs))
	for _, r := range reqs {
		byLabel[r.Label] = r
	}
	for _, label := range []string{"neg", "pos", "sign/zero", "sign/nonzero"} {
		if _, ok := byLabel[label]; !ok {
			t.Fatalf("missing requirement for label %q", label)
		}
	}
}

func TestVerifyComputesObservedPercentage(t *testing.T) {
	exec := buildCoverScenario()
	labels := map[string]int{"neg": 250, "pos": 250}

	reqs := Verify(exec, labels, 1000, 0.95)
	for _, r := range reqs {
		if r.Label != "neg" && r.Label != "pos" {
			continue
		}
		if r.ObservedPct < 24 || r.ObservedPct > 26 {
			t.Fatalf("label %q: expected observed pct near 25, got %.2f", r.Label, r.ObservedPct)
		}
		if r.CILow > r.ObservedPct || r.ObservedPct > r.CIHigh {
			t.Fatalf("label %q: observed pct %.2f outside its own CI [%.2f, %.2f]", r.Label, r.ObservedPct, r.CILow, r.CIHigh)
		}
	}
}

func TestVerifyZeroObservationsIsUnsatisfied(t *testing.T) {
	exec := buildCoverScenario()
	labels := map[string]int{} // "neg" and "pos" never observed

	reqs := Verify(exec, labels, 1000, 0.95)
	for _, r := range reqs {
		if r.Label == "neg" || r.Label == "pos" {
			if r.Satisfied {
				t.Fatalf("label %q: expected unsatisfied coverage requirement with zero observations, got satisfied", r.Label)
			}
		}
	}
}

func TestAllSatisfied(t *testing.T) {
	satisfied := []Requirement{{Satisfied: true}, {Satisfied: true}}
	if !AllSatisfied(satisfied) {
		t.Fatal("expected AllSatisfied to be true when every requirement passed")
	}

	mixed := []Requirement{{Satisfied: true}, {Satisfied: false}}
	if AllSatisfied(mixed) {
		t.Fatal("expected AllSatisfied to be false when any requirement failed")
	}

	if !AllSatisfied(nil) {
		t.Fatal("expected AllSatisfied to be vacuously true for no requirements")
	}
}
