package explore

import (
	"math"
	"math/rand"

	"github.com/shrinklab/pbtcore/arb"
	"github.com/shrinklab/pbtcore/errs"
	"github.com/shrinklab/pbtcore/scenario"
	"github.com/shrinklab/pbtcore/stat"
)

// Outcome tags an ExplorationResult, per spec §3.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "exhausted"
	}
}

// ExplorationResult is the tagged union of spec §3.
type ExplorationResult struct {
	Outcome Outcome

	TestsRun int
	Skipped  int

	Witness        map[string]any
	Counterexample map[string]any
	ThrownValue    any

	Labels        map[string]int
	DetailedStats map[string]*QuantifierStats

	BudgetExceeded bool
}

// Explorer runs the nested-quantifier traversal of spec §4.3 over a
// compiled scenario.
type Explorer struct{}

// NewExplorer builds an Explorer. It carries no state of its own; all
// per-run state lives in runState, so one Explorer value can drive many
// independent Run calls safely (though never concurrently, per the
// engine's single-threaded-per-check concurrency model, spec §5).
func NewExplorer() *Explorer { return &Explorer{} }

// runState is the mutable per-invocation state threaded through one
// recursive traversal: pass/fail/skip counters, the clock, the RNG, and
// the budget, plus an early-exit flag once confidence has been reached.
type runState struct {
	exec   *scenario.ExecutableScenario
	budget Budget
	clock  *clock
	rng    *rand.Rand
	ctx    *StatisticsContext

	passes, failures int
	confidenceMet    bool
}

func (rs *runState) stop() bool {
	return rs.confidenceMet || rs.budget.exceeded(rs.clock)
}

func (rs *runState) maybeCheckConfidence() {
	if rs.budget.TargetConfidence <= 0 {
		return
	}
	if !rs.budget.dueForConfidenceCheck(rs.clock) {
		return
	}
	threshold := rs.budget.PassRateThreshold
	if threshold <= 0 {
		threshold = 0.999
	}
	conf, err := stat.CalculateBayesianConfidence(uint64(rs.passes), uint64(rs.failures), threshold)
	if err != nil {
		return
	}
	if conf < rs.budget.TargetConfidence {
		return
	}
	if rs.budget.MinConfidence > 0 && rs.clock.testsRun < rs.budget.MaxTests && conf < rs.budget.MinConfidence {
		return
	}
	rs.confidenceMet = true
}

// Run traverses exec's nested quantifier list with a seed-derived RNG,
// per spec §5's determinism guarantee (same seed + scenario + property ->
// identical outputs).
func (e *Explorer) Run(exec *scenario.ExecutableScenario, budget Budget, seed int64, ctx *StatisticsContext) *ExplorationResult {
	rs := &runState{
		exec:   exec,
		budget: budget,
		clock:  newClock(),
		rng:    rand.New(rand.NewSource(seed)),
		ctx:    ctx,
	}

	var result *ExplorationResult
	withContext(ctx, func() {
		fr := e.exploreFrame(rs, 0, BoundTestCase{})
		result = rs.finalize(exec, fr)
	})
	return result
}

func (rs *runState) finalize(exec *scenario.ExecutableScenario, fr frameResult) *ExplorationResult {
	res := &ExplorationResult{
		TestsRun:      rs.clock.testsRun,
		Skipped:       rs.clock.skipped,
		Labels:        rs.ctx.Labels,
		DetailedStats: rs.ctx.perQuant,
	}
	switch fr.outcome {
	case fPass:
		res.Outcome = Passed
		if exec.HasExistential {
			res.Witness = fr.bound
		}
	case fFail:
		res.Outcome = Failed
		res.Counterexample = fr.bound
		res.ThrownValue = fr.err
	default: // fInconclusive or fExhausted
		if !exec.HasExistential && fr.outcome == fExhausted {
			// spec §4.3 termination rule: budget exhaustion for forall-only
			// scenarios with passed throughout is reported as passed.
			res.Outcome = Passed
		} else {
			res.Outcome = Exhausted
			res.BudgetExceeded = true
		}
	}
	return res
}

// BoundTestCase is re-exported here for callers that only import explore.
type BoundTestCase = scenario.BoundTestCase

type frameOutcome int

const (
	fPass frameOutcome = iota
	fFail
	fInconclusive
	fExhausted
)

type frameResult struct {
	outcome frameOutcome
	bound   map[string]any
	err     any
}

// exploreFrame recursively traverses quantifier idx and below. Quantifiers
// are visited outermost-first, matching spec §5's "outer-most quantifier
// varies slowest" ordering guarantee.
func (e *Explorer) exploreFrame(rs *runState, idx int, bound BoundTestCase) frameResult {
	if rs.stop() {
		return frameResult{outcome: fExhausted}
	}

	if idx >= len(rs.exec.Quantifiers) {
		return e.evalLeaf(rs, bound)
	}

	q := rs.exec.Quantifiers[idx]
	// Each frame draws the d-th root of the test budget (d = number of
	// quantifiers), so outer quantifiers take more than one value before
	// the inner frames use up MaxTests.
	frameBudget := rs.budget.MaxTests
	if frameBudget <= 0 {
		frameBudget = 100
	}
	if depth := len(rs.exec.Quantifiers); depth > 1 {
		frameBudget = int(math.Ceil(math.Pow(float64(frameBudget), 1/float64(depth))))
	}
	picks := q.SampleWithBias(frameBudget, rs.rng)

	anyPassed := false
	for _, p := range picks {
		if rs.stop() {
			break
		}

		next := make(BoundTestCase, len(bound)+1)
		for k, v := range bound {
			next[k] = v
		}
		next[q.Name] = p
		rs.recordQuantifierSample(q, p)

		fr := e.exploreFrame(rs, idx+1, next)

		switch q.Kind {
		case scenario.ForAll:
			switch fr.outcome {
			case fFail:
				return fr
			case fPass:
				anyPassed = true
			}
		case scenario.Exists:
			if fr.outcome == fPass {
				return fr
			}
		}
	}

	if q.Kind == scenario.Exists {
		return frameResult{outcome: fInconclusive}
	}
	if anyPassed || len(picks) == 0 {
		return frameResult{outcome: fPass}
	}
	return frameResult{outcome: fExhausted}
}

func (rs *runState) recordQuantifierSample(q *scenario.ExecutableQuantifier, p arb.Pick[any]) {
	if rs.ctx == nil {
		return
	}
	isCorner := false
	for _, cc := range q.CornerCases() {
		if q.Equals(cc.Value, p.Value) {
			isCorner = true
			break
		}
	}
	rs.ctx.recordQuantifierPick(&arbQuantifierView{name: q.Name, hash: q.Hash}, p, isCorner)
}

// recordCoverage evaluates every declared Cover/CoverTable predicate
// against the bound test case and increments its label count, giving
// coverage instrumentation without requiring the property body to call
// Label itself (spec §4.6 coverage verification needs these counts
// regardless of whether the property also records its own labels).
func (rs *runState) recordCoverage(raw map[string]any) {
	if rs.ctx == nil {
		return
	}
	for _, c := range rs.exec.Covers {
		if c.Predicate(raw) {
			rs.ctx.Label(c.Label)
		}
	}
	for _, ct := range rs.exec.CoverTables {
		for _, cat := range ct.Categories {
			if cat.Predicate(raw) {
				rs.ctx.Label(ct.Name + "/" + cat.Label)
			}
		}
	}
}

// evalLeaf applies Givens, checks Preconditions, and evaluates the
// property for one fully bound test case.
func (e *Explorer) evalLeaf(rs *runState, bound BoundTestCase) frameResult {
	rs.clock.iterations++

	raw := bound.Unwrap()
	raw = rs.exec.ApplyGivens(raw)

	if !rs.exec.EvalPreconditions(raw) {
		rs.clock.skipped++
		return frameResult{outcome: fInconclusive}
	}

	rs.recordCoverage(raw)

	outcome, thrown := evalProperty(rs.exec.Property, raw)

	switch outcome {
	case leafSkipped:
		rs.clock.skipped++
		return frameResult{outcome: fInconclusive}
	case leafPassed:
		rs.clock.testsRun++
		rs.passes++
		rs.maybeCheckConfidence()
		return frameResult{outcome: fPass, bound: raw}
	default: // leafFailed
		rs.clock.testsRun++
		rs.failures++
		rs.maybeCheckConfidence()
		return frameResult{outcome: fFail, bound: raw, err: thrown}
	}
}

type leafOutcome int

const (
	leafPassed leafOutcome = iota
	leafFailed
	leafSkipped
)

// evalProperty runs property, recovering a *errs.PreconditionFailure as a
// skip and any other panic as a PropertyThrew-wrapped failure (spec §6/§7).
func evalProperty(property func(map[string]any) bool, bound map[string]any) (outcome leafOutcome, thrown any) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*errs.PreconditionFailure); ok {
				outcome = leafSkipped
				return
			}
			outcome = leafFailed
			thrown = r
		}
	}()
	if property == nil {
		return leafPassed, nil
	}
	if property(bound) {
		return leafPassed, nil
	}
	return leafFailed, nil
}
