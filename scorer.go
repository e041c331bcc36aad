// Package goscore computes evaluation metrics over data that arrives as a
// single batch or as a sequence of disjoint batches. Each metric is expressed
// as a monoid: every batch is lifted independently to a small partial-
// statistics value, the values are folded with an associative combine, and
// the fold result converts once into the final score. Splitting a dataset
// into batches never changes the score.
package goscore

const (
	// MetricAccuracy names the classification accuracy scorer
	MetricAccuracy = "accuracy"
	// MetricR2 names the coefficient-of-determination scorer
	MetricR2 = "r2"
)
