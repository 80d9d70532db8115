package check

import (
	"time"

	"github.com/shrinklab/pbtcore/coverage"
	"github.com/shrinklab/pbtcore/errs"
	"github.com/shrinklab/pbtcore/explore"
	"github.com/shrinklab/pbtcore/quick"
	"github.com/shrinklab/pbtcore/reporter"
	"github.com/shrinklab/pbtcore/scenario"
	"github.com/shrinklab/pbtcore/shrink"
)

// Outcome tags a Result the way the teacher's testfailures harness tags a
// case outcome, but over the engine's four-way exploration result (spec
// §3/§6): a forall scenario that ran clean, an exists scenario that found
// its witness, a falsified scenario (shrunk), or one that exhausted its
// budget inconclusively.
type Outcome int

const (
	ForAllPass Outcome = iota
	ExistsPass
	Falsified
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case ForAllPass:
		return "forall-pass"
	case ExistsPass:
		return "exists-pass"
	case Falsified:
		return "falsified"
	default:
		return "exhausted"
	}
}

// Result is the outcome of one Check invocation.
type Result struct {
	Outcome     Outcome
	Satisfiable bool

	Example        map[string]any
	Counterexample map[string]any
	ThrownValue    *errs.PropertyThrew

	TestsRun    int
	Skipped     int
	Seed        int64
	ShrinkSteps int

	Statistics map[string]*explore.QuantifierStats
	Coverage   []coverage.Requirement
}

// Check compiles scn, explores it under opts, shrinks any counterexample
// found, and verifies coverage, returning the assembled Result. This
// mirrors the teacher's prop.ForAll entry point, generalized from a
// single-quantifier sequential loop to the full nested-quantifier/
// shrink/coverage pipeline.
func Check(scn *scenario.Scenario, options ...Option) *Result {
	o := Default()
	for _, opt := range options {
		opt(&o)
	}

	exec := scn.Compile()
	seed := o.effectiveSeed()
	budget := o.budget()
	detailed := o.LogStatistics || o.Verbose
	ctx := explore.NewStatisticsContext(detailed)

	var progress reporter.ProgressReporter
	if o.ProgressReporterFactory != nil {
		progress = o.ProgressReporterFactory()
	} else if o.OnProgress != nil {
		progress = onProgressFunc(o.OnProgress)
	}
	start := time.Now()
	er := explore.NewExplorer().Run(exec, budget, seed, ctx)

	res := &Result{
		TestsRun: er.TestsRun,
		Skipped:  er.Skipped,
		Seed:     seed,
	}
	if detailed {
		res.Statistics = er.DetailedStats
	}

	switch er.Outcome {
	case explore.Passed:
		res.Satisfiable = true
		if exec.HasExistential {
			res.Outcome = ExistsPass
			res.Example = er.Witness
		} else {
			res.Outcome = ForAllPass
		}
	case explore.Exhausted:
		res.Outcome = Exhausted
		res.Satisfiable = !exec.HasExistential
	case explore.Failed:
		shrinker := shrink.NewShrinker(o.ShrinkStrategy, o.ShrinkBudget)
		sr := shrinker.Run(exec, er.Counterexample, er.ThrownValue)
		res.Outcome = Falsified
		res.Satisfiable = false
		res.Counterexample = sr.Counterexample
		res.ShrinkSteps = sr.Steps
		if sr.ThrownValue != nil {
			res.ThrownValue = errs.NewPropertyThrew(sr.ThrownValue)
		}
	}

	res.Coverage = coverage.Verify(exec, ctx.Labels, er.TestsRun, 0.95)

	if progress != nil {
		progress.OnProgress(reporter.ProgressEvent{
			TestsRun:     res.TestsRun,
			TotalTests:   budget.MaxTests,
			ElapsedMs:    time.Since(start).Milliseconds(),
			CurrentPhase: reporter.PhaseExploring,
		})
	}

	var resultReporter reporter.ResultReporter
	if o.ResultReporterFactory != nil {
		resultReporter = o.ResultReporterFactory()
	} else if o.LogStatistics || o.Verbose {
		resultReporter = reporter.NewReporterLogger(o.Logger)
	}
	if resultReporter != nil {
		resultReporter.OnResult(reporter.FinalOutcome{
			Satisfiable: res.Satisfiable,
			TestsRun:    res.TestsRun,
			Skipped:     res.Skipped,
			Seed:        res.Seed,
			ShrinkSteps: res.ShrinkSteps,
		})
	}

	return res
}

type onProgressFunc func(reporter.ProgressEvent)

func (f onProgressFunc) OnProgress(ev reporter.ProgressEvent) { f(ev) }

// AssertSatisfiable panics with a SchemaMisuse if the scenario was
// falsified, including the counterexample and seed for reproduction.
func (r *Result) AssertSatisfiable() *Result {
	if !r.Satisfiable {
		panic(errs.NewSchemaMisuse("expected scenario to be satisfiable, got counterexample %v (seed=%d)", r.Counterexample, r.Seed))
	}
	return r
}

// AssertNotSatisfiable panics with a SchemaMisuse if the scenario was
// satisfiable when a counterexample was expected.
func (r *Result) AssertNotSatisfiable() *Result {
	if r.Satisfiable {
		panic(errs.NewSchemaMisuse("expected scenario to be falsifiable, but it was satisfiable (seed=%d)", r.Seed))
	}
	return r
}

// AssertExample panics unless the scenario passed and its witness/example
// contains at least the key/value pairs in partial. On mismatch the panic
// message carries a quick.Diff between partial and the projection of
// Example onto partial's keys, so only the keys actually asserted on show
// up as differences.
func (r *Result) AssertExample(partial map[string]any) *Result {
	r.AssertSatisfiable()
	if !containsAll(r.Example, partial) {
		panic(errs.NewSchemaMisuse("example does not contain the expected fields (seed=%d):\n%s", r.Seed, quick.Diff(partial, projectKeys(r.Example, partial))))
	}
	return r
}

// AssertCounterExample panics unless the scenario was falsified and its
// counterexample contains at least the key/value pairs in partial, with
// the same quick.Diff mismatch rendering as AssertExample.
func (r *Result) AssertCounterExample(partial map[string]any) *Result {
	r.AssertNotSatisfiable()
	if !containsAll(r.Counterexample, partial) {
		panic(errs.NewSchemaMisuse("counterexample does not contain the expected fields (seed=%d):\n%s", r.Seed, quick.Diff(partial, projectKeys(r.Counterexample, partial))))
	}
	return r
}

func containsAll(full, partial map[string]any) bool {
	for k, v := range partial {
		fv, ok := full[k]
		if !ok || fv != v {
			return false
		}
	}
	return true
}

// projectKeys restricts full to partial's keys, so a diff against partial
// only surfaces fields the caller actually asserted on.
func projectKeys(full, partial map[string]any) map[string]any {
	out := make(map[string]any, len(partial))
	for k := range partial {
		out[k] = full[k]
	}
	return out
}
