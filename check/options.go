// Package check is the orchestrator tying explorer, shrinker, and
// statistics together (spec §6), generalizing the teacher's prop.Config +
// flag.* defaults (prop/prop.go) into a functional-options surface over
// the full nested-quantifier scenario.
package check

import (
	"flag"
	"time"

	"github.com/rs/zerolog"

	"github.com/shrinklab/pbtcore/explore"
	"github.com/shrinklab/pbtcore/reporter"
	"github.com/shrinklab/pbtcore/shrink"
)

var (
	flagSeed     = flag.Int64("pbtcore.seed", 0, "random seed for test case generation")
	flagExamples = flag.Int("pbtcore.examples", 100, "number of test cases to generate")
	flagMaxShrink = flag.Int("pbtcore.maxshrink", 2000, "maximum number of shrink iterations")
)

// Options configures one Check invocation (spec §6's enumerated Check
// options).
type Options struct {
	Seed             int64
	LogStatistics    bool
	Verbose          bool
	OnProgress       func(reporter.ProgressEvent)
	ProgressInterval int // stored only: Check does not read it and reports progress once, after exploration
	Logger           zerolog.Logger

	MaxTests         int
	ExplorationBudget *explore.Budget // overrides the MaxTests-derived default when set
	ShrinkStrategy   shrink.RoundStrategy
	ShrinkBudget     shrink.Budget

	ProgressReporterFactory func() reporter.ProgressReporter
	ResultReporterFactory   func() reporter.ResultReporter
}

// Option mutates Options; functional-options constructors below build on
// it.
type Option func(*Options)

// Default returns an Options populated from command-line flags, matching
// the teacher's prop.Default().
func Default() Options {
	return Options{
		Seed:         *flagSeed,
		MaxTests:     *flagExamples,
		ShrinkStrategy: shrink.RoundRobin,
		ShrinkBudget: shrink.Budget{MaxIterations: *flagMaxShrink},
		Logger:       zerolog.Nop(),
	}
}

func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

func WithMaxTests(n int) Option { return func(o *Options) { o.MaxTests = n } }

func WithLogStatistics(v bool) Option { return func(o *Options) { o.LogStatistics = v } }

func WithVerbose(v bool) Option { return func(o *Options) { o.Verbose = v } }

func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Logger = l } }

func WithOnProgress(fn func(reporter.ProgressEvent)) Option {
	return func(o *Options) { o.OnProgress = fn }
}

func WithProgressInterval(tests int) Option {
	return func(o *Options) { o.ProgressInterval = tests }
}

func WithShrinkStrategy(s shrink.RoundStrategy) Option {
	return func(o *Options) { o.ShrinkStrategy = s }
}

func WithExplorationBudget(b explore.Budget) Option {
	return func(o *Options) { o.ExplorationBudget = &b }
}

func WithProgressReporterFactory(f func() reporter.ProgressReporter) Option {
	return func(o *Options) { o.ProgressReporterFactory = f }
}

func WithResultReporterFactory(f func() reporter.ResultReporter) Option {
	return func(o *Options) { o.ResultReporterFactory = f }
}

func (o Options) effectiveSeed() int64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return time.Now().UnixNano()
}

func (o Options) budget() explore.Budget {
	if o.ExplorationBudget != nil {
		return *o.ExplorationBudget
	}
	maxTests := o.MaxTests
	if maxTests <= 0 {
		maxTests = 100
	}
	return explore.DefaultBudget(maxTests)
}
