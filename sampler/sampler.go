// Package sampler is the decorator stack of spec §4.2: pure wrappers over
// an arb.Arbitrary that add RNG seeding, forced corner-case bias, memoized
// caching, and dedup, without mutating the wrapped arbitrary itself (the
// one exception being a Filtered arbitrary's own internal Beta posterior,
// which samplers do not touch).
package sampler

import (
	"math/rand"

	"github.com/shrinklab/pbtcore/arb"
)

// Sampler is the common surface every decorator in this package
// implements, mirroring arb.Arbitrary's sampling methods without exposing
// Shrink/ShrinkIterator (shrinking stays the explorer/shrinker's concern,
// operating directly on the arbitrary).
type Sampler[A any] interface {
	Sample(n int) []arb.Pick[A]
	SampleWithBias(n int) []arb.Pick[A]
	SampleUnique(n int, exclude []arb.Pick[A]) []arb.Pick[A]
}

// RandomSampler delegates directly to the wrapped arbitrary using a single
// seeded rng() closure, so repeated calls draw from one continuing stream
// rather than reseeding every time.
type RandomSampler[A any] struct {
	arb arb.Arbitrary[A]
	rng *rand.Rand
}

// NewRandomSampler builds a sampler seeded deterministically from seed.
func NewRandomSampler[A any](a arb.Arbitrary[A], seed int64) *RandomSampler[A] {
	return &RandomSampler[A]{arb: a, rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSampler[A]) Sample(n int) []arb.Pick[A] { return s.arb.Sample(n, s.rng) }
func (s *RandomSampler[A]) SampleWithBias(n int) []arb.Pick[A] {
	return s.arb.SampleWithBias(n, s.rng)
}
func (s *RandomSampler[A]) SampleUnique(n int, exclude []arb.Pick[A]) []arb.Pick[A] {
	return s.arb.SampleUnique(n, exclude, s.rng)
}

// BiasedSampler forces corner-case prepending even for callers that would
// otherwise call Sample: every method routes through SampleWithBias.
type BiasedSampler[A any] struct {
	inner Sampler[A]
}

// NewBiasedSampler wraps inner so every draw is corner-case biased.
func NewBiasedSampler[A any](inner Sampler[A]) *BiasedSampler[A] {
	return &BiasedSampler[A]{inner: inner}
}

func (s *BiasedSampler[A]) Sample(n int) []arb.Pick[A]         { return s.inner.SampleWithBias(n) }
func (s *BiasedSampler[A]) SampleWithBias(n int) []arb.Pick[A] { return s.inner.SampleWithBias(n) }
func (s *BiasedSampler[A]) SampleUnique(n int, exclude []arb.Pick[A]) []arb.Pick[A] {
	return s.inner.SampleUnique(n, exclude)
}

// CachedSampler memoizes the largest sample drawn so far per call kind; a
// request for n no larger than a previous draw returns a prefix of the
// cached slice instead of redrawing.
type CachedSampler[A any] struct {
	inner Sampler[A]

	plain []arb.Pick[A]
	bias  []arb.Pick[A]
}

// NewCachedSampler wraps inner with a memoization layer.
func NewCachedSampler[A any](inner Sampler[A]) *CachedSampler[A] {
	return &CachedSampler[A]{inner: inner}
}

func (s *CachedSampler[A]) Sample(n int) []arb.Pick[A] {
	if len(s.plain) < n {
		s.plain = s.inner.Sample(n)
	}
	return prefix(s.plain, n)
}

func (s *CachedSampler[A]) SampleWithBias(n int) []arb.Pick[A] {
	if len(s.bias) < n {
		s.bias = s.inner.SampleWithBias(n)
	}
	return prefix(s.bias, n)
}

// SampleUnique is never cached: uniqueness depends on the exclude set
// passed on each call, which varies across invocations.
func (s *CachedSampler[A]) SampleUnique(n int, exclude []arb.Pick[A]) []arb.Pick[A] {
	return s.inner.SampleUnique(n, exclude)
}

func prefix[A any](picks []arb.Pick[A], n int) []arb.Pick[A] {
	if n >= len(picks) {
		return picks
	}
	return picks[:n]
}

// DedupingSampler filters duplicate picks using the wrapped arbitrary's
// Equals, in draw order, redrawing in batches until n unique picks are
// collected or the source is exhausted.
type DedupingSampler[A any] struct {
	inner Sampler[A]
	arb   arb.Arbitrary[A]
}

// NewDedupingSampler wraps inner, deduplicating against a's Equals.
func NewDedupingSampler[A any](inner Sampler[A], a arb.Arbitrary[A]) *DedupingSampler[A] {
	return &DedupingSampler[A]{inner: inner, arb: a}
}

func (s *DedupingSampler[A]) Sample(n int) []arb.Pick[A] { return s.dedupe(n, s.inner.Sample) }
func (s *DedupingSampler[A]) SampleWithBias(n int) []arb.Pick[A] {
	return s.dedupe(n, s.inner.SampleWithBias)
}
func (s *DedupingSampler[A]) SampleUnique(n int, exclude []arb.Pick[A]) []arb.Pick[A] {
	return s.inner.SampleUnique(n, exclude)
}

func (s *DedupingSampler[A]) dedupe(n int, draw func(int) []arb.Pick[A]) []arb.Pick[A] {
	const maxRounds = 8
	out := make([]arb.Pick[A], 0, n)
	batch := n
	for round := 0; round < maxRounds && len(out) < n; round++ {
		candidates := draw(batch)
		if len(candidates) == 0 {
			break
		}
		for _, c := range candidates {
			if len(out) >= n {
				break
			}
			dup := false
			for _, kept := range out {
				if s.arb.Equals(kept.Value, c.Value) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, c)
			}
		}
		batch *= 2
	}
	return out
}
