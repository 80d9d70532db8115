package shrink

import (
	"math/rand"
	"testing"

	"github.com/shrinklab/pbtcore/arb"
	"github.com/shrinklab/pbtcore/scenario"
)

// buildSumScenario compiles a three-variable scenario whose property fails
// whenever a+b+c exceeds threshold, mirroring the kind of symmetric
// multi-quantifier property the round strategies are meant to shrink
// fairly.
func buildSumScenario(threshold int64) *scenario.ExecutableScenario {
	scn := scenario.New(
		scenario.ForAllOf("a", arb.Integer(0, 500)),
		scenario.ForAllOf("b", arb.Integer(0, 500)),
		scenario.ForAllOf("c", arb.Integer(0, 500)),
		scenario.ThenOf(func(v map[string]any) bool {
			a, b, c := v["a"].(int64), v["b"].(int64), v["c"].(int64)
			return a+b+c <= threshold
		}),
	)
	return scn.Compile()
}

func plantedInitial(a, b, c int64) scenario.BoundTestCase {
	return scenario.BoundTestCase{
		"a": arb.NewPick[any](a),
		"b": arb.NewPick[any](b),
		"c": arb.NewPick[any](c),
	}
}

func spread(counterexample map[string]any) int64 {
	lo, hi := int64(1<<62), int64(-(1 << 62))
	for _, k := range []string{"a", "b", "c"} {
		v := counterexample[k].(int64)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// Round-robin's one-attempt-per-quantifier-per-round shrinking must, on
// average over many starting counterexamples, leave a smaller spread
// across the three symmetric variables than sequential exhaustive, which
// drains one quantifier completely before touching the next.
func TestRoundRobinIsFairerThanSequential(t *testing.T) {
	const threshold = 50
	const trials = 100

	r := rand.New(rand.NewSource(2024))

	var roundRobinTotal, sequentialTotal int64
	for i := 0; i < trials; i++ {
		// Each addend drawn well above threshold/3 guarantees the sum
		// exceeds threshold regardless of the random draw.
		a := 60 + r.Int63n(400)
		b := 60 + r.Int63n(400)
		c := 60 + r.Int63n(400)
		initial := plantedInitial(a, b, c)

		rrExec := buildSumScenario(threshold)
		rrResult := NewShrinker(RoundRobin, Budget{MaxIterations: 5000}).Run(rrExec, initial, nil)
		roundRobinTotal += spread(rrResult.Counterexample)

		seqExec := buildSumScenario(threshold)
		seqResult := NewShrinker(SequentialExhaustive, Budget{MaxIterations: 5000}).Run(seqExec, initial, nil)
		sequentialTotal += spread(seqResult.Counterexample)
	}

	roundRobinAvg := float64(roundRobinTotal) / float64(trials)
	sequentialAvg := float64(sequentialTotal) / float64(trials)

	if roundRobinAvg > sequentialAvg {
		t.Fatalf("expected round-robin's average spread (%.1f) to not exceed sequential's (%.1f)", roundRobinAvg, sequentialAvg)
	}
}

// Both strategies must return a counterexample that still reproduces the
// planted failure; a shrinker must never "shrink" its way into a passing
// case.
func TestShrinkersPreserveFailure(t *testing.T) {
	const threshold = 50
	initial := plantedInitial(200, 200, 200)

	tests := []struct {
		name     string
		strategy RoundStrategy
	}{
		{"round robin", RoundRobin},
		{"sequential exhaustive", SequentialExhaustive},
		{"delta debugging", DeltaDebugging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := buildSumScenario(threshold)
			result := NewShrinker(tt.strategy, Budget{MaxIterations: 5000}).Run(exec, initial, nil)

			a := result.Counterexample["a"].(int64)
			b := result.Counterexample["b"].(int64)
			c := result.Counterexample["c"].(int64)
			if a+b+c <= threshold {
				t.Fatalf("shrunk counterexample a=%d b=%d c=%d no longer reproduces the failure", a, b, c)
			}
		})
	}
}

// A tight shrink budget must cap the number of reproduction checks at the
// configured MaxIterations, regardless of round strategy.
func TestShrinkBudgetBoundsSteps(t *testing.T) {
	const threshold = 50
	initial := plantedInitial(200, 300, 400)
	exec := buildSumScenario(threshold)

	result := NewShrinker(RoundRobin, Budget{MaxIterations: 3}).Run(exec, initial, nil)
	if result.Steps > 3 {
		t.Fatalf("expected at most 3 shrink steps, got %d", result.Steps)
	}
}
