package explore

import (
	"testing"

	"github.com/shrinklab/pbtcore/arb"
	"github.com/shrinklab/pbtcore/scenario"
)

func sumScenario(threshold int64, planted bool) *scenario.ExecutableScenario {
	property := func(v map[string]any) bool {
		a, b := v["a"].(int64), v["b"].(int64)
		if planted && a == 13 && b == 13 {
			return false
		}
		return a+b <= threshold
	}
	scn := scenario.New(
		scenario.ForAllOf("a", arb.Integer(0, 20)),
		scenario.ForAllOf("b", arb.Integer(0, 20)),
		scenario.ThenOf(property),
	)
	return scn.Compile()
}

// Two runs of the same scenario with the same seed must produce identical
// outcomes: same TestsRun, same Outcome, same Counterexample (if any).
func TestExplorerIsSeedDeterministic(t *testing.T) {
	const seed = 2026

	run := func() *ExplorationResult {
		exec := sumScenario(100, true)
		budget := DefaultBudget(300)
		return NewExplorer().Run(exec, budget, seed, NewStatisticsContext(false))
	}

	first := run()
	second := run()

	if first.Outcome != second.Outcome {
		t.Fatalf("outcome differs across identically seeded runs: %s vs %s", first.Outcome, second.Outcome)
	}
	if first.TestsRun != second.TestsRun {
		t.Fatalf("TestsRun differs across identically seeded runs: %d vs %d", first.TestsRun, second.TestsRun)
	}
	if len(first.Counterexample) != len(second.Counterexample) {
		t.Fatalf("counterexample shapes differ")
	}
	for k, v := range first.Counterexample {
		if second.Counterexample[k] != v {
			t.Fatalf("counterexample field %q differs: %v vs %v", k, v, second.Counterexample[k])
		}
	}
}

// A forall-only property that holds for every explored binding exhausts
// its budget passing; this must be reported as Passed, not Exhausted.
func TestExplorerForAllOnlyBudgetExhaustionIsPass(t *testing.T) {
	exec := sumScenario(1000, false) // a+b<=1000 always true for a,b in [0,20]
	budget := DefaultBudget(50)

	result := NewExplorer().Run(exec, budget, 1, NewStatisticsContext(false))
	if result.Outcome != Passed {
		t.Fatalf("expected Passed, got %s", result.Outcome)
	}
}

// A planted failure must be found and reported with its offending binding.
func TestExplorerFindsPlantedFailure(t *testing.T) {
	exec := sumScenario(100, true)
	budget := DefaultBudget(500)

	result := NewExplorer().Run(exec, budget, 7, NewStatisticsContext(false))
	if result.Outcome != Failed {
		t.Fatalf("expected Failed, got %s", result.Outcome)
	}
	a, aok := result.Counterexample["a"].(int64)
	b, bok := result.Counterexample["b"].(int64)
	if !aok || !bok || a != 13 || b != 13 {
		t.Fatalf("expected counterexample a=13 b=13, got %v", result.Counterexample)
	}
}

// An existential scenario whose witness exists must report Passed with
// the witness bound, and one with no satisfying value must exhaust.
func TestExplorerExistentialWitnessAndExhaustion(t *testing.T) {
	t.Run("witness exists", func(t *testing.T) {
		scn := scenario.New(
			scenario.ExistsOf("n", arb.Integer(0, 50)),
			scenario.ThenOf(func(v map[string]any) bool { return v["n"].(int64) == 37 }),
		)
		exec := scn.Compile()
		result := NewExplorer().Run(exec, DefaultBudget(500), 3, NewStatisticsContext(false))
		if result.Outcome != Passed {
			t.Fatalf("expected Passed, got %s", result.Outcome)
		}
		if result.Witness["n"].(int64) != 37 {
			t.Fatalf("expected witness n=37, got %v", result.Witness)
		}
	})

	t.Run("no witness", func(t *testing.T) {
		scn := scenario.New(
			scenario.ExistsOf("n", arb.Integer(0, 10)),
			scenario.ThenOf(func(v map[string]any) bool { return v["n"].(int64) == 999 }),
		)
		exec := scn.Compile()
		result := NewExplorer().Run(exec, DefaultBudget(100), 3, NewStatisticsContext(false))
		if result.Outcome != Exhausted {
			t.Fatalf("expected Exhausted, got %s", result.Outcome)
		}
	})
}

// Detailed statistics collection must record per-quantifier samples and
// unique-value counts when enabled.
func TestExplorerDetailedStatisticsCollection(t *testing.T) {
	exec := sumScenario(1000, false)
	ctx := NewStatisticsContext(true)

	result := NewExplorer().Run(exec, DefaultBudget(200), 5, ctx)
	if result.Outcome != Passed {
		t.Fatalf("expected Passed, got %s", result.Outcome)
	}

	aStats := ctx.QuantifierStats("a")
	if aStats == nil || aStats.SamplesGenerated == 0 {
		t.Fatal("expected detailed stats to be collected for quantifier a")
	}
	if aStats.UniqueValues == 0 {
		t.Fatal("expected at least one unique value recorded")
	}
}
