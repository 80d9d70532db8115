package arb

import (
	"math/rand"
)

// stringArb is the String(min,max,charArb) primitive of spec §4.1,
// implemented literally as an array-of-char mapped to join, generalizing
// the teacher's gen/string.go (which inlines the same length+alphabet
// logic directly instead of composing Array+Map).
type stringArb struct {
	inner Arbitrary[[]rune]
}

// String builds the String(min,max,charArb) primitive.
func String(min, max int, charArb Arbitrary[rune]) Arbitrary[string] {
	arrOfRunes := Array(charArb, min, max)
	return stringArb{inner: arrOfRunes}
}

// StringAlpha, StringAlphaNum, StringDigits, StringASCII are convenience
// constructors matching the teacher's gen/string.go sugar functions.
func StringAlpha(min, max int) Arbitrary[string] {
	return String(min, max, CharFromAlphabet(NewCharAlphabet([]rune(alphaRunes))))
}
func StringAlphaNum(min, max int) Arbitrary[string] {
	return String(min, max, CharFromAlphabet(NewCharAlphabet([]rune(alphaNumRunes))))
}
func StringDigits(min, max int) Arbitrary[string] {
	return String(min, max, CharFromAlphabet(NewCharAlphabet([]rune("0123456789"))))
}
func StringASCII(min, max int) Arbitrary[string] {
	return String(min, max, CharFromAlphabet(PrintableASCII()))
}

const (
	alphaLower    = "abcdefghijklmnopqrstuvwxyz"
	alphaUpper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphaRunes    = alphaLower + alphaUpper
	alphaNumRunes = alphaRunes + "0123456789"
)

func joinRunes(rs []rune) string { return string(rs) }
func splitRunes(s string) []rune { return []rune(s) }

func (s stringArb) Size() Size { return s.inner.Size() }

func (s stringArb) Pick(rng *rand.Rand) (Pick[string], bool) {
	p, ok := s.inner.Pick(rng)
	if !ok {
		var zero Pick[string]
		return zero, false
	}
	return NewMappedPick(joinRunes(p.Value), p), true
}

func (s stringArb) CornerCases() []Pick[string] {
	base := s.inner.CornerCases()
	out := make([]Pick[string], len(base))
	for i, p := range base {
		out[i] = NewMappedPick(joinRunes(p.Value), p)
	}
	return out
}

func (s stringArb) Sample(n int, rng *rand.Rand) []Pick[string] {
	return DefaultSample[string](s, n, rng)
}
func (s stringArb) SampleWithBias(n int, rng *rand.Rand) []Pick[string] {
	return DefaultSampleWithBias[string](s, n, rng)
}
func (s stringArb) SampleUnique(n int, exclude []Pick[string], rng *rand.Rand) []Pick[string] {
	return DefaultSampleUnique[string](s, n, exclude, rng)
}

func (s stringArb) innerPick(p Pick[string]) Pick[[]rune] {
	if orig, ok := p.Original.(Pick[[]rune]); ok {
		return orig
	}
	return NewPick(splitRunes(p.Value))
}

func (s stringArb) Shrink(pick Pick[string]) Arbitrary[string] {
	base := s.inner.Shrink(s.innerPick(pick))
	if base.Size().IsZero() {
		return NoArbitrary[string]()
	}
	return stringArb{inner: base}
}

func (s stringArb) ShrinkIterator(pick Pick[string], opts ShrinkIterOpts) ShrinkIterator[string] {
	inner := s.inner.ShrinkIterator(s.innerPick(pick), opts)
	return &mappedShrinkIterator[[]rune, string]{inner: inner, f: joinRunes}
}

func (s stringArb) CanGenerate(pick Pick[string]) bool {
	return s.inner.CanGenerate(s.innerPick(pick))
}

func (s stringArb) IsShrunken(candidate, current Pick[string]) bool {
	return s.inner.IsShrunken(s.innerPick(candidate), s.innerPick(current))
}

func (s stringArb) Equals(x, y string) bool { return x == y }
func (s stringArb) Hash(x string) uint64    { return fnv1a(x) }
