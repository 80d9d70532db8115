// Package reporter implements the ProgressReporter/ResultReporter
// external interfaces of spec §6, plus a zerolog-backed default
// implementation. Grounded on the corpus's zerolog/log usage (e.g.
// bbak-mcs-mcp's internal/config package), since the teacher itself has
// no logging layer of its own to generalize from.
package reporter

import (
	"time"

	"github.com/rs/zerolog"
)

// Phase distinguishes the exploration and shrinking stages of a check.
type Phase int

const (
	PhaseExploring Phase = iota
	PhaseShrinking
)

func (p Phase) String() string {
	if p == PhaseShrinking {
		return "shrinking"
	}
	return "exploring"
}

// ProgressEvent is the periodic payload delivered to a ProgressReporter
// (spec §6).
type ProgressEvent struct {
	TestsRun       int
	TestsPassed    int
	TestsDiscarded int
	TotalTests     int // 0 means unknown/unbounded
	ElapsedMs      int64
	CurrentPhase   Phase
}

// ProgressReporter receives periodic progress updates during a check.
type ProgressReporter interface {
	OnProgress(ev ProgressEvent)
}

// FinalOutcome is the minimal shape ResultReporter needs; the check
// package copies these fields out of its Result when it notifies a
// ResultReporter, so reporter does not import check.
type FinalOutcome struct {
	Satisfiable bool
	TestsRun    int
	Skipped     int
	Seed        int64
	ShrinkSteps int
}

// ResultReporter receives the final outcome of a check invocation.
type ResultReporter interface {
	OnResult(FinalOutcome)
}

// ReporterLogger adapts zerolog.Logger into both ProgressReporter and
// ResultReporter, logging structured entries the way the corpus's zerolog
// consumers do (field-by-field Str/Int/Dur chaining rather than a single
// formatted message).
type ReporterLogger struct {
	Log zerolog.Logger
}

// NewReporterLogger builds a ReporterLogger around log.
func NewReporterLogger(log zerolog.Logger) *ReporterLogger {
	return &ReporterLogger{Log: log}
}

func (r *ReporterLogger) OnProgress(ev ProgressEvent) {
	r.Log.Info().
		Int("tests_run", ev.TestsRun).
		Int("tests_passed", ev.TestsPassed).
		Int("tests_discarded", ev.TestsDiscarded).
		Int("total_tests", ev.TotalTests).
		Dur("elapsed", time.Duration(ev.ElapsedMs)*time.Millisecond).
		Str("phase", ev.CurrentPhase.String()).
		Msg("check progress")
}

func (r *ReporterLogger) OnResult(out FinalOutcome) {
	ev := r.Log.Info().
		Bool("satisfiable", out.Satisfiable).
		Int("tests_run", out.TestsRun).
		Int("skipped", out.Skipped).
		Int64("seed", out.Seed)
	if out.ShrinkSteps > 0 {
		ev = ev.Int("shrink_steps", out.ShrinkSteps)
	}
	ev.Msg("check result")
}

// Cadence is the default update cadence of spec §6: every 100 tests or
// 1000ms, whichever comes first.
type Cadence struct {
	Tests    int
	Interval time.Duration
}

// DefaultCadence returns the spec-documented default cadence.
func DefaultCadence() Cadence { return Cadence{Tests: 100, Interval: time.Second} }

// Due reports whether, given testsRun and elapsed time since the last
// report, a new progress report is due.
func (c Cadence) Due(testsRun int, sinceLast time.Duration) bool {
	tests := c.Tests
	if tests <= 0 {
		tests = 100
	}
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}
	return testsRun > 0 && (testsRun%tests == 0 || sinceLast >= interval)
}
