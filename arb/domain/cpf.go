// Package domain holds format-specific arbitraries layered on top of the
// core arb algebra (SPEC_FULL.md §12 supplemented feature), adapted from
// the teacher's gen/domain/cpf.go Brazilian CPF generator/validator.
package domain

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/shrinklab/pbtcore/arb"
)

// cpfArb is the Arbitrary[string] for valid Brazilian CPF numbers. masked
// controls whether picks are formatted with dots and a dash.
type cpfArb struct {
	masked bool
}

// CPF builds an arbitrary over valid CPF numbers in the given format.
func CPF(masked bool) arb.Arbitrary[string] {
	return cpfArb{masked: masked}
}

// CPFAny builds an arbitrary that picks masked or unmasked formatting with
// equal probability on every draw.
func CPFAny() arb.Arbitrary[string] {
	return arb.Composite[string](CPF(true), CPF(false))
}

// The support is exactly the 10^9 nine-digit roots minus the 10 roots
// whose digits are all equal, each with its unique pair of verifier
// digits: 999,999,990 values.
func (a cpfArb) Size() arb.Size {
	return arb.EstimatedSize(999999990, 999999990, 999999990)
}

func (a cpfArb) Pick(rng *rand.Rand) (arb.Pick[string], bool) {
	rng = newRNG(rng)
	cur := generateCPF(rng, a.masked)
	return arb.NewPick(cur), true
}

func (a cpfArb) CornerCases() []arb.Pick[string] {
	root := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	s := buildCPFString(root)
	if a.masked {
		s = MaskCPF(s)
	}
	return []arb.Pick[string]{arb.NewPick(s)}
}

func (a cpfArb) Sample(n int, rng *rand.Rand) []arb.Pick[string] {
	return arb.DefaultSample[string](a, n, rng)
}
func (a cpfArb) SampleWithBias(n int, rng *rand.Rand) []arb.Pick[string] {
	return arb.DefaultSampleWithBias[string](a, n, rng)
}
func (a cpfArb) SampleUnique(n int, exclude []arb.Pick[string], rng *rand.Rand) []arb.Pick[string] {
	return arb.DefaultSampleUnique[string](a, n, exclude, rng)
}

func (a cpfArb) Shrink(pick arb.Pick[string]) arb.Arbitrary[string] {
	return cpfShrinkArb{masked: a.masked, seed: pick.Value}
}

func (a cpfArb) ShrinkIterator(pick arb.Pick[string], opts arb.ShrinkIterOpts) arb.ShrinkIterator[string] {
	max := opts.MaxCandidates
	if max <= 0 {
		max = 256
	}
	return newCPFShrinkIterator(pick, max)
}

func (a cpfArb) CanGenerate(pick arb.Pick[string]) bool { return ValidCPF(pick.Value) }

func (a cpfArb) IsShrunken(candidate, current arb.Pick[string]) bool {
	cun, oun := UnmaskCPF(candidate.Value), UnmaskCPF(current.Value)
	return digitSum(cun) < digitSum(oun)
}

func (a cpfArb) Equals(x, y string) bool { return UnmaskCPF(x) == UnmaskCPF(y) }
func (a cpfArb) Hash(x string) uint64    { return fnv1aLocal(UnmaskCPF(x)) }

// cpfShrinkArb is the one-shot arbitrary returned by Shrink: it offers only
// the seed value itself, since CPF's real shrink behavior lives in the
// neighbor-queue iterator (this mirrors Integer/Array's Shrink returning a
// narrowed-but-still-sampleable arbitrary).
type cpfShrinkArb struct {
	masked bool
	seed   string
}

func (a cpfShrinkArb) Size() arb.Size { return arb.ExactSize(1) }
func (a cpfShrinkArb) Pick(rng *rand.Rand) (arb.Pick[string], bool) {
	return arb.NewPick(a.seed), true
}
func (a cpfShrinkArb) CornerCases() []arb.Pick[string] { return []arb.Pick[string]{arb.NewPick(a.seed)} }
func (a cpfShrinkArb) Sample(n int, rng *rand.Rand) []arb.Pick[string] {
	return arb.DefaultSample[string](a, n, rng)
}
func (a cpfShrinkArb) SampleWithBias(n int, rng *rand.Rand) []arb.Pick[string] {
	return arb.DefaultSampleWithBias[string](a, n, rng)
}
func (a cpfShrinkArb) SampleUnique(n int, exclude []arb.Pick[string], rng *rand.Rand) []arb.Pick[string] {
	return arb.DefaultSampleUnique[string](a, n, exclude, rng)
}
func (a cpfShrinkArb) Shrink(pick arb.Pick[string]) arb.Arbitrary[string] { return arb.NoArbitrary[string]() }
func (a cpfShrinkArb) ShrinkIterator(pick arb.Pick[string], opts arb.ShrinkIterOpts) arb.ShrinkIterator[string] {
	return (CPF(a.masked)).ShrinkIterator(pick, opts)
}
func (a cpfShrinkArb) CanGenerate(pick arb.Pick[string]) bool     { return ValidCPF(pick.Value) }
func (a cpfShrinkArb) IsShrunken(candidate, current arb.Pick[string]) bool {
	return CPF(a.masked).IsShrunken(candidate, current)
}
func (a cpfShrinkArb) Equals(x, y string) bool { return UnmaskCPF(x) == UnmaskCPF(y) }
func (a cpfShrinkArb) Hash(x string) uint64    { return fnv1aLocal(UnmaskCPF(x)) }

// newCPFShrinkIterator adapts the teacher's createCPFShrinker neighbor
// closures (unmask, zero-digits L->R, decrement-digits R->L) into a
// push-based ShrinkIterator with accept/reject feedback.
func newCPFShrinkIterator(start arb.Pick[string], maxCand int) arb.ShrinkIterator[string] {
	it := &cpfShrinkIterator{cur: start, last: start, seen: map[string]struct{}{}, maxCand: maxCand}
	it.seen[start.Value] = struct{}{}
	it.refill(start.Value)
	return it
}

type cpfShrinkIterator struct {
	cur, last arb.Pick[string]
	queue     []string
	seen      map[string]struct{}
	offered   int
	maxCand   int
}

func (it *cpfShrinkIterator) push(s string) {
	if _, ok := it.seen[s]; ok {
		return
	}
	it.seen[s] = struct{}{}
	it.queue = append(it.queue, s)
}

func (it *cpfShrinkIterator) refill(base string) {
	it.queue = it.queue[:0]
	un := UnmaskCPF(base)
	if base != un {
		it.push(un)
	}
	zeroDigitsLeftToRight(un, it.push)
	decrementDigitsRightToLeft(un, it.push)
}

func (it *cpfShrinkIterator) Next() (arb.Pick[string], bool) {
	if it.offered >= it.maxCand || len(it.queue) == 0 {
		var zero arb.Pick[string]
		return zero, false
	}
	nxt := it.queue[0]
	it.queue = it.queue[1:]
	it.last = arb.NewPick(nxt)
	it.offered++
	return it.last, true
}

func (it *cpfShrinkIterator) AcceptSmaller() {
	if it.last.Value != it.cur.Value {
		it.cur = it.last
		it.refill(it.cur.Value)
	}
}
func (it *cpfShrinkIterator) RejectSmaller() {}
func (it *cpfShrinkIterator) Done() bool     { return len(it.queue) == 0 || it.offered >= it.maxCand }

func newRNG(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return rng
}

func digitSum(un string) int {
	sum := 0
	for _, c := range un {
		sum += int(c - '0')
	}
	return sum
}

func fnv1aLocal(s string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

// generateCPF draws a random valid CPF, retrying root digits that are all
// equal (which produce an always-invalid official number).
func generateCPF(r *rand.Rand, masked bool) string {
	root := make([]byte, 9)
	for {
		for i := range root {
			root[i] = byte(r.Intn(10))
		}
		if !allSameDigits(root) {
			break
		}
	}
	s := buildCPFString(root)
	if masked {
		s = MaskCPF(s)
	}
	return s
}

func buildCPFString(root []byte) string {
	d1, d2 := computeCPFVerifiers(root)
	buf := make([]byte, 0, 11)
	for _, n := range root {
		buf = append(buf, '0'+n)
	}
	buf = append(buf, d1, d2)
	return string(buf)
}

func zeroDigitsLeftToRight(un string, push func(string)) {
	r9 := rootDigits(un)
	for i := range r9 {
		if r9[i] == 0 {
			continue
		}
		orig := r9[i]
		r9[i] = 0
		if !allSameDigits(r9) {
			push(buildCPFString(r9))
		}
		r9[i] = orig
	}
}

func decrementDigitsRightToLeft(un string, push func(string)) {
	r9 := rootDigits(un)
	for j := len(r9) - 1; j >= 0; j-- {
		if r9[j] == 0 {
			continue
		}
		r9[j]--
		if !allSameDigits(r9) {
			push(buildCPFString(r9))
		}
		r9[j]++
	}
}

func rootDigits(un string) []byte {
	r9 := make([]byte, 9)
	for i := range r9 {
		r9[i] = un[i] - '0'
	}
	return r9
}

// ValidCPF reports whether s is a valid CPF number, masked or not.
func ValidCPF(s string) bool {
	raw := UnmaskCPF(s)
	if len(raw) != 11 {
		return false
	}
	b := []byte(raw)
	if allSameDigits(rawDigits(b)) {
		return false
	}
	d1, d2 := computeCPFVerifiers(rawDigits(b[:9]))
	return b[9] == d1 && b[10] == d2
}

func rawDigits(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = c - '0'
	}
	return out
}

// MaskCPF formats a raw 11-digit CPF string with dots and a dash.
func MaskCPF(raw string) string {
	raw = UnmaskCPF(raw)
	if len(raw) != 11 {
		panic("MaskCPF: needs 11 digits")
	}
	return raw[0:3] + "." + raw[3:6] + "." + raw[6:9] + "-" + raw[9:11]
}

// UnmaskCPF strips all non-digit characters.
func UnmaskCPF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigits(digits []byte) bool {
	if len(digits) == 0 {
		return true
	}
	first := digits[0]
	for _, d := range digits[1:] {
		if d != first {
			return false
		}
	}
	return true
}

// computeCPFVerifiers computes the two verification digits for a 9-digit
// root (digits 0..9, not ASCII).
func computeCPFVerifiers(root []byte) (d1, d2 byte) {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(root[i]) * (10 - i)
	}
	rest := sum % 11
	if rest < 2 {
		d1 = '0'
	} else {
		d1 = byte(11-rest) + '0'
	}

	sum = 0
	for i := 0; i < 9; i++ {
		sum += int(root[i]) * (11 - i)
	}
	sum += int(d1-'0') * 2
	rest = sum % 11
	if rest < 2 {
		d2 = '0'
	} else {
		d2 = byte(11-rest) + '0'
	}
	return
}
