// Package testutils provides shared helpers for scorer tests: series
// builders, batch splitting, and independent reference computations of the
// metrics to check the monoid results against.
package testutils

import (
	"testing"

	"github.com/montanaflynn/stats"

	"github.com/datar-psa/goscore/metric"
	"github.com/datar-psa/goscore/table"
)

// Series builds a positional series for tests.
func Series(t *testing.T, name string, values ...float64) *table.Series {
	t.Helper()
	return table.FromValues(name, values)
}

// LabeledSeries builds a labeled series for tests.
func LabeledSeries(t *testing.T, name string, index []string, values []float64) *table.Series {
	t.Helper()
	s, err := table.NewSeries(name, index, values)
	if err != nil {
		t.Fatalf("failed to build series %q: %v", name, err)
	}
	return s
}

// SplitBatches cuts one true/predicted pair into consecutive batches at the
// given boundaries, e.g. boundaries 2,4 over 5 rows yields [0:2) [2:4) [4:5).
func SplitBatches(t *testing.T, yTrue, yPred *table.Series, boundaries ...int) []metric.Batch {
	t.Helper()
	if yTrue.Len() != yPred.Len() {
		t.Fatalf("length mismatch: %d != %d", yTrue.Len(), yPred.Len())
	}
	var batches []metric.Batch
	start := 0
	cuts := append(append([]int{}, boundaries...), yTrue.Len())
	for _, end := range cuts {
		if end <= start {
			t.Fatalf("bad boundary %d after %d", end, start)
		}
		batches = append(batches, metric.Batch{
			YTrue: table.FromValues(yTrue.Name, yTrue.Values[start:end]),
			YPred: table.FromValues(yPred.Name, yPred.Values[start:end]),
		})
		start = end
	}
	return batches
}

// ReferenceAccuracy computes accuracy directly, without the monoid path.
func ReferenceAccuracy(t *testing.T, yTrue, yPred []float64) float64 {
	t.Helper()
	if len(yTrue) != len(yPred) {
		t.Fatalf("length mismatch: %d != %d", len(yTrue), len(yPred))
	}
	match := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			match++
		}
	}
	return float64(match) / float64(len(yTrue))
}

// ReferenceR2 computes the coefficient of determination directly from the
// raw data, using the textbook formula over the mean of the true values.
func ReferenceR2(t *testing.T, yTrue, yPred []float64) float64 {
	t.Helper()
	if len(yTrue) != len(yPred) {
		t.Fatalf("length mismatch: %d != %d", len(yTrue), len(yPred))
	}
	mean, err := stats.Mean(yTrue)
	if err != nil {
		t.Fatalf("mean: %v", err)
	}
	var ssTot, ssRes float64
	for i := range yTrue {
		d := yTrue[i] - mean
		r := yTrue[i] - yPred[i]
		ssTot += d * d
		ssRes += r * r
	}
	if ssTot == 0 {
		t.Fatalf("reference r2 undefined for constant true values")
	}
	return 1 - ssRes/ssTot
}
