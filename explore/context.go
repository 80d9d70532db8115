package explore

import (
	"github.com/shrinklab/pbtcore/arb"
	"github.com/shrinklab/pbtcore/stat"
)

// StatisticsContext is the per-invocation collector threaded through
// property evaluation (spec §5): labels/events/targets recorded from
// inside the property body, plus opt-in detailed per-quantifier stats.
// It is created per check invocation, mutated during exploration, and
// read-only afterward (spec §3 Lifecycles).
type StatisticsContext struct {
	Labels map[string]int
	Events map[string]int
	Targets map[string]*stat.DistributionTracker

	detailed bool
	perQuant map[string]*QuantifierStats
}

// QuantifierStats is the opt-in detailed statistics for one quantifier
// (spec §4.3): samples generated, unique values seen, corner cases
// actually exercised, and a length/value distribution tracker.
type QuantifierStats struct {
	SamplesGenerated int
	UniqueValues     int
	CornerCasesTested int

	seenHashes  map[uint64]struct{}
	cornerSeen  map[uint64]struct{}
	Distribution *stat.DistributionTracker
}

// NewStatisticsContext builds an empty context. detailed enables
// per-quantifier QuantifierStats collection (spec §4.3 "opt-in").
func NewStatisticsContext(detailed bool) *StatisticsContext {
	return &StatisticsContext{
		Labels:   make(map[string]int),
		Events:   make(map[string]int),
		Targets:  make(map[string]*stat.DistributionTracker),
		detailed: detailed,
		perQuant: make(map[string]*QuantifierStats),
	}
}

// Label increments the count for a coverage label. The property body
// calls this (via the package-level Label function below) to record
// which branch of its logic a given test case exercised.
func (s *StatisticsContext) Label(name string) { s.Labels[name]++ }

// Event increments a named event counter, for ad hoc diagnostics outside
// the Cover/CoverTable coverage model.
func (s *StatisticsContext) Event(name string) { s.Events[name]++ }

// Target folds a numeric observation into a named distribution tracker,
// used for statistical properties beyond simple label coverage (e.g.
// tracking generated string lengths).
func (s *StatisticsContext) Target(label string, value float64) {
	t, ok := s.Targets[label]
	if !ok {
		t = stat.NewDistributionTracker()
		s.Targets[label] = t
	}
	t.Add(value)
}

// recordQuantifierPick folds one generated pick into quantifier name's
// detailed stats, if detailed collection is enabled.
func (s *StatisticsContext) recordQuantifierPick(q *arbQuantifierView, pick arb.Pick[any], isCorner bool) {
	if !s.detailed {
		return
	}
	qs, ok := s.perQuant[q.name]
	if !ok {
		qs = &QuantifierStats{seenHashes: map[uint64]struct{}{}, cornerSeen: map[uint64]struct{}{}, Distribution: stat.NewDistributionTracker()}
		s.perQuant[q.name] = qs
	}
	qs.SamplesGenerated++
	h := q.hash(pick.Value)
	if _, seen := qs.seenHashes[h]; !seen {
		qs.seenHashes[h] = struct{}{}
		qs.UniqueValues++
	}
	if isCorner {
		if _, seen := qs.cornerSeen[h]; !seen {
			qs.cornerSeen[h] = struct{}{}
			qs.CornerCasesTested++
		}
	}
	if f, ok := numericValue(pick.Value); ok {
		qs.Distribution.Add(f)
	}
}

// QuantifierStats returns the detailed stats collected for quantifier
// name, or nil if detailed collection was disabled or name was never
// sampled.
func (s *StatisticsContext) QuantifierStats(name string) *QuantifierStats {
	return s.perQuant[name]
}

func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		return float64(len(x)), true
	case []any:
		return float64(len(x)), true
	default:
		return 0, false
	}
}

// arbQuantifierView is the minimal shape recordQuantifierPick needs from
// an *scenario.ExecutableQuantifier: its name and its Hash witness.
type arbQuantifierView struct {
	name string
	hash func(any) uint64
}

// currentCtx is the task-local (single-threaded, per-check) statistics
// context, matching spec §5's "per-invocation global accessible only from
// within that check" — the engine's concurrency model is single-threaded
// cooperative within one check invocation, so a package-level pointer
// scoped by withContext is sufficient without goroutine-local storage.
var currentCtx *StatisticsContext

// withContext runs fn with ctx installed as the current statistics
// context, restoring the previous context (nil, for a top-level check)
// afterward.
func withContext(ctx *StatisticsContext, fn func()) {
	prev := currentCtx
	currentCtx = ctx
	defer func() { currentCtx = prev }()
	fn()
}

// Label records a coverage label against the statistics context of the
// currently running check. It is a no-op outside of a check invocation.
func Label(name string) {
	if currentCtx != nil {
		currentCtx.Label(name)
	}
}

// Event records a named event against the currently running check.
func Event(name string) {
	if currentCtx != nil {
		currentCtx.Event(name)
	}
}

// Target folds a numeric observation into the currently running check's
// named distribution tracker.
func Target(label string, value float64) {
	if currentCtx != nil {
		currentCtx.Target(label, value)
	}
}
