package arb

import "math/rand"

// constantArb is the Constant(c) primitive of spec §4.1: exact size 1, no
// shrinking (it is already minimal).
type constantArb[A any] struct {
	value  A
	equals func(A, A) bool
	hash   func(A) uint64
}

// Constant builds a Constant(c) arbitrary using a best-effort Equals (via
// %#v formatting) and a matching Hash. For types needing real equality
// semantics, use ConstantWith.
func Constant[A any](c A) Arbitrary[A] {
	return ConstantWith(c, defaultEquals[A], defaultHash[A])
}

// ConstantWith builds a Constant(c) arbitrary with explicit Equals/Hash,
// for types where %#v-based comparison (Constant's default) is unsuitable.
func ConstantWith[A any](c A, equals func(A, A) bool, hash func(A) uint64) Arbitrary[A] {
	return constantArb[A]{value: c, equals: equals, hash: hash}
}

func (a constantArb[A]) Size() Size { return ExactSize(1) }

func (a constantArb[A]) Pick(*rand.Rand) (Pick[A], bool) {
	return NewPick(a.value), true
}

func (a constantArb[A]) CornerCases() []Pick[A] {
	return []Pick[A]{NewPick(a.value)}
}

func (a constantArb[A]) Sample(n int, rng *rand.Rand) []Pick[A] {
	return DefaultSample[A](a, n, rng)
}
func (a constantArb[A]) SampleWithBias(n int, rng *rand.Rand) []Pick[A] {
	return DefaultSampleWithBias[A](a, n, rng)
}
func (a constantArb[A]) SampleUnique(n int, exclude []Pick[A], rng *rand.Rand) []Pick[A] {
	return DefaultSampleUnique[A](a, n, exclude, rng)
}

func (a constantArb[A]) Shrink(Pick[A]) Arbitrary[A] { return NoArbitrary[A]() }

func (a constantArb[A]) ShrinkIterator(Pick[A], ShrinkIterOpts) ShrinkIterator[A] {
	return emptyShrinkIterator[A]{}
}

func (a constantArb[A]) CanGenerate(pick Pick[A]) bool { return a.equals(pick.Value, a.value) }
func (a constantArb[A]) IsShrunken(_, _ Pick[A]) bool   { return false }
func (a constantArb[A]) Equals(x, y A) bool             { return a.equals(x, y) }
func (a constantArb[A]) Hash(x A) uint64                { return a.hash(x) }

func defaultEquals[A any](x, y A) bool {
	return fmtEqual(x, y)
}

func defaultHash[A any](x A) uint64 {
	return fnv1a(fmtString(x))
}
