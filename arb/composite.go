package arb

// Composite builds a tagged-union arbitrary whose branches are weighted
// by their own Size (spec §4.1 "Composite(variants): tagged union
// weighted by size"), as opposed to Weighted's caller-supplied weights.
func Composite[A any](variants ...Arbitrary[A]) Arbitrary[A] {
	entries := make([]WeightedEntry[A], len(variants))
	for i, v := range variants {
		w := float64(v.Size().Value)
		if w <= 0 {
			w = 1 // a zero-size variant still gets a sampling chance proportional to 1
		}
		entries[i] = WeightedEntry[A]{Weight: w, Arb: v}
	}
	return Weighted(entries...)
}
