package arb

import "math/rand"

// DefaultSample is the shared Sample implementation used by every
// primitive: draw up to n random picks via a.Pick, stopping early if the
// arbitrary is empty. Spec §9 models Arbitrary as a sum of variants over a
// shared capability set rather than classic inheritance; this free
// function is that shared capability.
func DefaultSample[A any](a Arbitrary[A], n int, rng *rand.Rand) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	for i := 0; i < n; i++ {
		p, ok := a.Pick(rng)
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

// DefaultSampleWithBias prepends corner cases (in declared order, capped
// at n) then fills the remainder with random picks.
func DefaultSampleWithBias[A any](a Arbitrary[A], n int, rng *rand.Rand) []Pick[A] {
	if n <= 0 {
		return nil
	}
	corners := a.CornerCases()
	out := make([]Pick[A], 0, n)
	for _, c := range corners {
		if len(out) >= n {
			return out
		}
		out = append(out, c)
	}
	remaining := n - len(out)
	if remaining > 0 {
		out = append(out, DefaultSample(a, remaining, rng)...)
	}
	return out
}

// DefaultSampleUnique draws up to n picks, none of which is Equals-equal
// to each other or to any pick in exclude. It retries generation up to a
// bounded number of attempts per slot to avoid spinning forever on a
// near-exhausted arbitrary.
func DefaultSampleUnique[A any](a Arbitrary[A], n int, exclude []Pick[A], rng *rand.Rand) []Pick[A] {
	if n <= 0 {
		return nil
	}
	seen := make([]A, 0, n+len(exclude))
	for _, e := range exclude {
		seen = append(seen, e.Value)
	}
	out := make([]Pick[A], 0, n)
	const maxAttemptsPerSlot = 64
	for len(out) < n {
		found := false
		for attempt := 0; attempt < maxAttemptsPerSlot; attempt++ {
			p, ok := a.Pick(rng)
			if !ok {
				return out
			}
			dup := false
			for _, s := range seen {
				if a.Equals(s, p.Value) {
					dup = true
					break
				}
			}
			if !dup {
				seen = append(seen, p.Value)
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return out
}

// newRNG returns rng, or a freshly seeded one if rng is nil. Matches the
// teacher's "if r == nil { r = rand.New(rand.NewSource(rand.Int63())) }"
// idiom repeated across gen/*.go.
func newRNG(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return rng
}
