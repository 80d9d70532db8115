// Package errs defines the engine's typed error kinds (spec §7), shared
// across arb/scenario/explore/shrink/check so construction-time and
// evaluation-time failures carry a consistent, inspectable shape instead
// of opaque fmt.Errorf strings. Grounded on the teacher's errors.New usage
// in gen/domain/cpf.go (MaskCPF/computeCPFVerifiers), generalized from
// panicking sentinels to non-panicking typed errors.
package errs

import "fmt"

// PreconditionFailure is not a real error: it is the control signal a
// property body raises to mark the current test case as skipped. The
// property panics with a *PreconditionFailure (see NewPreconditionFailure);
// the explorer and shrinker recognize the recovered value by its type.
type PreconditionFailure struct {
	Reason string
}

func (e *PreconditionFailure) Error() string {
	if e.Reason == "" {
		return "precondition failed"
	}
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// NewPreconditionFailure builds a PreconditionFailure with the given
// reason; pass it to panic() from within a property body, and the
// explorer will recover it and mark the case skipped rather than failed.
func NewPreconditionFailure(reason string) *PreconditionFailure {
	return &PreconditionFailure{Reason: reason}
}

// InvalidArgument is raised immediately at construction time (e.g.
// negative Weighted weight, non-integer index, threshold outside (0,1)).
type InvalidArgument struct {
	Message string
}

func (e *InvalidArgument) Error() string { return "invalid argument: " + e.Message }

func NewInvalidArgument(format string, args ...any) *InvalidArgument {
	return &InvalidArgument{Message: fmt.Sprintf(format, args...)}
}

// EmptyArbitrary signals that Pick returned ⊥: the arbitrary is empty or,
// for a Filtered arbitrary, filter-starved past its retry budget.
type EmptyArbitrary struct {
	ArbitraryName string
}

func (e *EmptyArbitrary) Error() string {
	return fmt.Sprintf("empty arbitrary: %s produced no pick", e.ArbitraryName)
}

func NewEmptyArbitrary(name string) *EmptyArbitrary {
	return &EmptyArbitrary{ArbitraryName: name}
}

// PropertyThrew wraps an unclassified panic raised by a property body; it
// is recorded as a failure with the thrown value retained for the
// counterexample's error slot.
type PropertyThrew struct {
	Value any
}

func (e *PropertyThrew) Error() string {
	return fmt.Sprintf("property threw: %v", e.Value)
}

func NewPropertyThrew(value any) *PropertyThrew {
	return &PropertyThrew{Value: value}
}

// SchemaMisuse signals misuse of a typed assert helper, e.g. asserting an
// example on an unsatisfiable result.
type SchemaMisuse struct {
	Context string
}

func (e *SchemaMisuse) Error() string { return "schema misuse: " + e.Context }

func NewSchemaMisuse(format string, args ...any) *SchemaMisuse {
	return &SchemaMisuse{Context: fmt.Sprintf(format, args...)}
}
