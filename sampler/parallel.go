package sampler

import (
	"sync"

	"github.com/shrinklab/pbtcore/arb"
)

// SampleParallel draws n picks from a using workerCount goroutines,
// adapted from the teacher's prop.go runParallel worker-pool-over-channel
// pattern (prop/prop.go), repurposed here as a pre-generation pass within
// one quantifier frame's random-sampling batch rather than across whole
// test runs (which spec §1 explicitly excludes as cross-test parallelism).
// A single mutex-guarded rng is shared across workers, matching the
// teacher's randMutex-protected generator call, since arb.Arbitrary.Pick
// is not safe for unsynchronized concurrent use on one *rand.Rand.
func SampleParallel[A any](a arb.Arbitrary[A], n int, seed int64, workerCount int) []arb.Pick[A] {
	if n <= 0 {
		return nil
	}
	if workerCount <= 1 {
		return NewRandomSampler[A](a, seed).Sample(n)
	}

	rng := NewRandomSampler[A](a, seed)
	var rngMu sync.Mutex

	indexChan := make(chan int, n)
	for i := 0; i < n; i++ {
		indexChan <- i
	}
	close(indexChan)

	results := make([]arb.Pick[A], n)
	valid := make([]bool, n)

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				rngMu.Lock()
				p := rng.Sample(1)
				rngMu.Unlock()
				if len(p) == 1 {
					results[i] = p[0]
					valid[i] = true
				}
			}
		}()
	}
	wg.Wait()

	out := make([]arb.Pick[A], 0, n)
	for i, ok := range valid {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}
