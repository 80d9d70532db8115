package sampler

import (
	"testing"

	"github.com/shrinklab/pbtcore/arb"
)

func TestRandomSamplerIsDeterministicPerSeed(t *testing.T) {
	a := arb.Integer(0, 1_000_000)

	s1 := NewRandomSampler[int64](a, 42)
	s2 := NewRandomSampler[int64](a, 42)

	got1 := s1.Sample(50)
	got2 := s2.Sample(50)

	if len(got1) != len(got2) {
		t.Fatalf("sample length mismatch: %d vs %d", len(got1), len(got2))
	}
	for i := range got1 {
		if got1[i].Value != got2[i].Value {
			t.Fatalf("sample %d differs between identically seeded samplers: %v vs %v", i, got1[i].Value, got2[i].Value)
		}
	}
}

func TestBiasedSamplerAlwaysBiases(t *testing.T) {
	a := arb.Integer(-5, 5)
	corners := a.CornerCases()

	biased := NewBiasedSampler[int64](NewRandomSampler[int64](a, 7))
	got := biased.Sample(len(corners))

	for _, c := range corners {
		found := false
		for _, g := range got {
			if g.Value == c.Value {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("biased sampler's Sample did not include corner case %v", c.Value)
		}
	}
}

func TestCachedSamplerReusesPrefix(t *testing.T) {
	a := arb.Integer(0, 1000)
	cached := NewCachedSampler[int64](NewRandomSampler[int64](a, 11))

	first := cached.Sample(20)
	second := cached.Sample(10)

	if len(second) != 10 {
		t.Fatalf("expected cached prefix of length 10, got %d", len(second))
	}
	for i := range second {
		if second[i].Value != first[i].Value {
			t.Fatalf("cached sampler's prefix diverged at index %d: %v vs %v", i, second[i].Value, first[i].Value)
		}
	}
}

func TestCachedSamplerGrowsBeyondCache(t *testing.T) {
	a := arb.Integer(0, 10000)
	cached := NewCachedSampler[int64](NewRandomSampler[int64](a, 12))

	small := cached.Sample(5)
	large := cached.Sample(30)

	if len(small) != 5 || len(large) != 30 {
		t.Fatalf("unexpected sample lengths: %d, %d", len(small), len(large))
	}
}

func TestDedupingSamplerProducesNoDuplicates(t *testing.T) {
	a := arb.Integer(1, 20) // small domain forces the dedup retry loop to matter
	deduping := NewDedupingSampler[int64](NewRandomSampler[int64](a, 13), a)

	got := deduping.Sample(15)
	seen := map[int64]bool{}
	for _, p := range got {
		if seen[p.Value] {
			t.Fatalf("duplicate value %d returned by deduping sampler", p.Value)
		}
		seen[p.Value] = true
	}
}

func TestSampleParallelMatchesSequentialCount(t *testing.T) {
	a := arb.Integer(0, 100000)

	tests := []struct {
		name    string
		workers int
	}{
		{"single worker", 1},
		{"four workers", 4},
		{"eight workers", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleParallel[int64](a, 200, 99, tt.workers)
			if len(got) != 200 {
				t.Fatalf("expected 200 picks, got %d", len(got))
			}
			for _, p := range got {
				if !a.CanGenerate(p) {
					t.Fatalf("pick %v failed CanGenerate", p.Value)
				}
			}
		})
	}
}

func TestSampleParallelZeroIsEmpty(t *testing.T) {
	a := arb.Integer(0, 10)
	got := SampleParallel[int64](a, 0, 1, 4)
	if len(got) != 0 {
		t.Fatalf("expected no picks for n=0, got %d", len(got))
	}
}
