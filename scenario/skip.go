package scenario

import "github.com/shrinklab/pbtcore/errs"

// Skip marks the current test case as skipped (spec §6 "throwing the
// precondition-failure error marks the case as skipped"). Call it from
// within a property body when a precondition implicit in the logic, not
// expressible as a Precondition node, fails to hold.
func Skip(reason string) {
	panic(errs.NewPreconditionFailure(reason))
}
