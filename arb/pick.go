package arb

// Pick is a tagged realization produced by an Arbitrary: Value is the
// user-facing value, Original is the underlying index used for shrinking
// comparisons (for mapped arbitraries this is the pre-image in the base
// arbitrary's space; for primitives it is usually equal to Value boxed as
// an any).
type Pick[A any] struct {
	Value    A
	Original any
}

// NewPick builds a Pick whose Original defaults to Value itself.
func NewPick[A any](v A) Pick[A] {
	return Pick[A]{Value: v, Original: v}
}

// NewMappedPick builds a Pick carrying an explicit pre-image for Original.
func NewMappedPick[A any](v A, original any) Pick[A] {
	return Pick[A]{Value: v, Original: original}
}
