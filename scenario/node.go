// Package scenario models the declarative scenario of spec §3/§6: an
// ordered list of quantifier/given/precondition/cover/then nodes, compiled
// into an ExecutableScenario decoupled from the underlying arbitrary
// types. Scenario construction itself (a fluent builder surface) is named
// but not specified by spec §6 as an external collaborator; this package
// supplies a minimal literal-node builder in its place, generalizing the
// teacher's prop.ForAll single-quantifier entry point to the full nested
// quantifier list.
package scenario

import "github.com/shrinklab/pbtcore/arb"

// QuantifierKind distinguishes universal from existential quantification.
type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	Exists
)

// Node is one element of a Scenario's ordered node list.
type Node interface {
	node()
}

// quantifierAdapter lets a typed Quantifier[T] erase itself into the
// internal, type-erased quantifier representation a Scenario holds.
type quantifierAdapter interface {
	toExecutable() *ExecutableQuantifier
	name() string
}

// Quantifier declares one forall/exists-bound variable drawn from arb.
type Quantifier[T any] struct {
	Name string
	Kind QuantifierKind
	Arb  arb.Arbitrary[T]
}

func (Quantifier[T]) node() {}

func (q Quantifier[T]) name() string { return q.Name }

func (q Quantifier[T]) toExecutable() *ExecutableQuantifier {
	erased := arb.EraseArbitrary[T](q.Arb)
	return &ExecutableQuantifier{
		Name: q.Name,
		Kind: q.Kind,
		arb:  erased,
	}
}

// ForAllOf is the ergonomic constructor for a universally quantified
// variable.
func ForAllOf[T any](name string, a arb.Arbitrary[T]) Node {
	return Quantifier[T]{Name: name, Kind: ForAll, Arb: a}
}

// ExistsOf is the ergonomic constructor for an existentially quantified
// variable.
func ExistsOf[T any](name string, a arb.Arbitrary[T]) Node {
	return Quantifier[T]{Name: name, Kind: Exists, Arb: a}
}

// Given declares a deterministic derivation from prior bindings; it
// contributes exactly one "pick" to the test case and is never shrunk
// directly (spec §4.3 "given: deterministic derivation").
type Given struct {
	Name   string
	Derive func(bound map[string]any) any
}

func (Given) node() {}

// GivenOf is the ergonomic constructor for a Given node with a typed
// derivation function.
func GivenOf[T any](name string, derive func(bound map[string]any) T) Node {
	return Given{Name: name, Derive: func(bound map[string]any) any { return derive(bound) }}
}

// Precondition narrows the input space: a fully bound test case that fails
// its predicate is counted as skipped without running the property. A
// property body can also skip a case itself by calling scenario.Skip,
// which panics with a *errs.PreconditionFailure.
type Precondition struct {
	Predicate func(bound map[string]any) bool
}

func (Precondition) node() {}

// PreconditionOf is the ergonomic constructor for a Precondition node.
func PreconditionOf(p func(bound map[string]any) bool) Node {
	return Precondition{Predicate: p}
}

// Cover declares a coverage requirement: requiredPct percent of executed
// test cases must satisfy predicate, reported under label.
type Cover struct {
	RequiredPct float64
	Predicate   func(bound map[string]any) bool
	Label       string
}

func (Cover) node() {}

// CoverOf is the ergonomic constructor for a Cover node.
func CoverOf(requiredPct float64, predicate func(bound map[string]any) bool, label string) Node {
	return Cover{RequiredPct: requiredPct, Predicate: predicate, Label: label}
}

// CoverCategory is one labeled predicate within a CoverTable.
type CoverCategory struct {
	Label     string
	Predicate func(bound map[string]any) bool
}

// CoverTable groups several mutually-exclusive coverage categories under
// one logical requirement name.
type CoverTable struct {
	Name       string
	Categories []CoverCategory
}

func (CoverTable) node() {}

// CoverTableOf is the ergonomic constructor for a CoverTable node.
func CoverTableOf(name string, categories ...CoverCategory) Node {
	return CoverTable{Name: name, Categories: categories}
}

// Then declares the property under test: a predicate over the fully bound
// test case.
type Then struct {
	Property func(bound map[string]any) bool
}

func (Then) node() {}

// ThenOf is the ergonomic constructor for a Then node.
func ThenOf(property func(bound map[string]any) bool) Node {
	return Then{Property: property}
}
