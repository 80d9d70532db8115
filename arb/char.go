package arb

import "math/rand"

// CharAlphabet is a finite alphabet of runes a String arbitrary samples
// from. Spec §4.1 names printable ASCII, ASCII-with-mapper, hex, base64
// and unicode alphabets; these are provided as ready-made CharAlphabet
// values, mirroring the teacher's AlphabetLower/AlphabetUpper/... string
// constants in gen/string.go generalized to []rune so unicode alphabets
// are representable too.
type CharAlphabet struct {
	runes []rune
}

func NewCharAlphabet(runes []rune) CharAlphabet { return CharAlphabet{runes: append([]rune(nil), runes...)} }

func (c CharAlphabet) Len() int       { return len(c.runes) }
func (c CharAlphabet) At(i int) rune  { return c.runes[i] }
func (c CharAlphabet) All() []rune    { return append([]rune(nil), c.runes...) }

func rangeAlphabet(lo, hi rune) CharAlphabet {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return NewCharAlphabet(rs)
}

// PrintableASCII is the [0x20, 0x7e] alphabet.
func PrintableASCII() CharAlphabet { return rangeAlphabet(0x20, 0x7e) }

// ASCIIWith builds an alphabet from an explicit byte range with a mapper
// applied to each candidate rune (e.g. to exclude control characters).
func ASCIIWith(lo, hi byte, mapper func(rune) (rune, bool)) CharAlphabet {
	rs := make([]rune, 0, int(hi-lo)+1)
	for b := lo; ; b++ {
		if mapped, ok := mapper(rune(b)); ok {
			rs = append(rs, mapped)
		}
		if b == hi {
			break
		}
	}
	return NewCharAlphabet(rs)
}

// HexDigits is the alphabet "0123456789abcdef".
func HexDigits() CharAlphabet { return NewCharAlphabet([]rune("0123456789abcdef")) }

// Base64Alphabet is the standard base64 alphabet (no padding char).
func Base64Alphabet() CharAlphabet {
	return NewCharAlphabet([]rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"))
}

// UnicodeCodepoints builds an alphabet over the UTF-8 (or, logically,
// UTF-16) codepoint range [lo, hi], skipping surrogate-pair codepoints
// which are not valid standalone runes.
func UnicodeCodepoints(lo, hi rune) CharAlphabet {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue // UTF-16 surrogate range, not a valid standalone rune
		}
		rs = append(rs, r)
	}
	return NewCharAlphabet(rs)
}

// charArbitrary wraps a CharAlphabet as an Arbitrary[rune], used as the
// element generator String(min,max,charArb) composes over (spec §4.1:
// "String(min,max, charArb): array-of-char mapped to join").
type charArbitrary struct {
	alphabet CharAlphabet
}

func CharFromAlphabet(alphabet CharAlphabet) Arbitrary[rune] {
	return charArbitrary{alphabet: alphabet}
}

func (c charArbitrary) Size() Size { return ExactSize(uint64(c.alphabet.Len())) }

func (c charArbitrary) Pick(rng *rand.Rand) (Pick[rune], bool) {
	rng = newRNG(rng)
	if c.alphabet.Len() == 0 {
		var zero Pick[rune]
		return zero, false
	}
	return NewPick(c.alphabet.At(rng.Intn(c.alphabet.Len()))), true
}

func (c charArbitrary) CornerCases() []Pick[rune] {
	if c.alphabet.Len() == 0 {
		return nil
	}
	out := []Pick[rune]{NewPick(c.alphabet.At(0)), NewPick(c.alphabet.At(c.alphabet.Len() - 1))}
	if c.alphabet.Len() > 2 {
		out = append(out, NewPick(c.alphabet.At(c.alphabet.Len()/2)))
	}
	return out
}

func (c charArbitrary) Sample(n int, rng *rand.Rand) []Pick[rune] {
	return DefaultSample[rune](c, n, rng)
}
func (c charArbitrary) SampleWithBias(n int, rng *rand.Rand) []Pick[rune] {
	return DefaultSampleWithBias[rune](c, n, rng)
}
func (c charArbitrary) SampleUnique(n int, exclude []Pick[rune], rng *rand.Rand) []Pick[rune] {
	return DefaultSampleUnique[rune](c, n, exclude, rng)
}

// Shrink moves toward the first alphabet character (the "simplest" rune,
// e.g. 'a' or '0'), matching the teacher's gen/string.go heuristic.
func (c charArbitrary) Shrink(pick Pick[rune]) Arbitrary[rune] {
	if c.alphabet.Len() == 0 || pick.Value == c.alphabet.At(0) {
		return NoArbitrary[rune]()
	}
	return Constant(c.alphabet.At(0))
}

func (c charArbitrary) ShrinkIterator(pick Pick[rune], opts ShrinkIterOpts) ShrinkIterator[rune] {
	grow := func(base Pick[rune]) []Pick[rune] {
		if c.alphabet.Len() == 0 {
			return nil
		}
		target := c.alphabet.At(0)
		if base.Value == target {
			return nil
		}
		return []Pick[rune]{NewPick(target)}
	}
	return newNeighborQueueIterator[rune](pick, ShrinkBFS, opts.MaxCandidates, c.Hash, grow)
}

func (c charArbitrary) CanGenerate(pick Pick[rune]) bool {
	for i := 0; i < c.alphabet.Len(); i++ {
		if c.alphabet.At(i) == pick.Value {
			return true
		}
	}
	return false
}

func (c charArbitrary) IsShrunken(candidate, current Pick[rune]) bool {
	if c.alphabet.Len() == 0 {
		return false
	}
	return runeRank(c.alphabet, candidate.Value) < runeRank(c.alphabet, current.Value)
}

func runeRank(a CharAlphabet, r rune) int {
	for i := 0; i < a.Len(); i++ {
		if a.At(i) == r {
			return i
		}
	}
	return a.Len()
}

func (c charArbitrary) Equals(x, y rune) bool { return x == y }
func (c charArbitrary) Hash(x rune) uint64    { return uint64(x) }
