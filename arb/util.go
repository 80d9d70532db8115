package arb

import "fmt"

// fmtString renders a value for best-effort equality/hash witnesses, used
// by Constant when a caller hasn't supplied explicit Equals/Hash functions
// and by Record's Equals, Hash and IsShrunken.
func fmtString[A any](x A) string { return fmt.Sprintf("%#v", x) }

func fmtEqual[A any](x, y A) bool { return fmtString(x) == fmtString(y) }

// fnv1a is a small, dependency-free string hash used throughout arb for
// dedup purposes (SampleUnique, DedupingSampler, shrink-queue dedup). It
// need not be cryptographically strong, only well-distributed.
func fnv1a(s string) uint64 {
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
