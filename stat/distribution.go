package stat

// DistributionTracker composes MeanVariance, MinMax and Quantiles into the
// single per-arbitrary/per-label distribution summary used by the
// explorer's opt-in detailed statistics (spec §4.3/§4.5).
type DistributionTracker struct {
	mv  MeanVariance
	mm  MinMax
	qs  *Quantiles
}

// NewDistributionTracker builds an empty tracker.
func NewDistributionTracker() *DistributionTracker {
	return &DistributionTracker{qs: NewQuantiles()}
}

// Add folds one observation into every composed estimator.
func (d *DistributionTracker) Add(v float64) {
	d.mv.Add(v)
	d.mm.Add(v)
	d.qs.Add(v)
}

func (d *DistributionTracker) Count() int64          { return d.mv.Count() }
func (d *DistributionTracker) Mean() float64         { return d.mv.Mean() }
func (d *DistributionTracker) SampleStdDev() float64 { return d.mv.SampleStdDev() }
func (d *DistributionTracker) Min() float64          { return d.mm.Min() }
func (d *DistributionTracker) Max() float64          { return d.mm.Max() }
func (d *DistributionTracker) Q1() float64           { return d.qs.Q1() }
func (d *DistributionTracker) Median() float64       { return d.qs.Median() }
func (d *DistributionTracker) Q3() float64           { return d.qs.Q3() }

// Histogram returns per-bin counts over the bounded sample reservoir,
// using a bin count derived from the sample size when bins <= 0.
func (d *DistributionTracker) Histogram(bins int) []int { return d.qs.Histogram(bins) }
