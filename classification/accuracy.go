// Package classification provides classification metrics expressed as
// monoids over batch partitions.
package classification

import (
	"fmt"

	"github.com/datar-psa/goscore/metric"
	"github.com/datar-psa/goscore/pipeline"
)

// AccuracyData is the partial statistics of classification accuracy for a
// subset of the data: the number of predictions equal to the true label, and
// the number of rows seen.
type AccuracyData struct {
	Match int64
	Total int64
}

// Combine sums the partial counts of two subsets.
func (a AccuracyData) Combine(other AccuracyData) AccuracyData {
	return AccuracyData{
		Match: a.Match + other.Match,
		Total: a.Total + other.Total,
	}
}

// AccuracyOptions configures the Accuracy scorer
type AccuracyOptions struct {
	// Parallelism caps the number of goroutines lifting batches during
	// batched scoring; zero keeps the sequential fold
	Parallelism int
}

// Accuracy returns a scorer that measures the fraction of predictions equal
// to the true labels. NaN labels on either side count as mismatches.
func Accuracy(opts AccuracyOptions) metric.Scorer {
	return metric.NewFactory(newAccuracyMetric(), metric.Options{Parallelism: opts.Parallelism})
}

type accuracyMetric struct {
	pipe *pipeline.Pipeline
}

func newAccuracyMetric() *accuracyMetric {
	pipe := pipeline.New("y_true", "y_pred").
		Derive(map[string]pipeline.Expr{
			"match": pipeline.Eq(pipeline.Col("y_true"), pipeline.Col("y_pred")),
		}).
		Aggregate(map[string]pipeline.Agg{
			"match": pipeline.Sum("match"),
			"total": pipeline.Count("match"),
		})
	return &accuracyMetric{pipe: pipe}
}

func (m *accuracyMetric) Name() string {
	return "accuracy"
}

// ToMonoid aligns the batch and counts matching predictions through the
// pipeline.
func (m *accuracyMetric) ToMonoid(b metric.Batch) (AccuracyData, error) {
	yTrue, yPred, err := metric.AlignBatch(b)
	if err != nil {
		return AccuracyData{}, err
	}
	row, err := m.pipe.Run(map[string][]float64{
		"y_true": yTrue.Values,
		"y_pred": yPred.Values,
	})
	if err != nil {
		return AccuracyData{}, fmt.Errorf("%w: %v", metric.ErrInvalidBatch, err)
	}
	return AccuracyData{
		Match: int64(row["match"]),
		Total: int64(row["total"]),
	}, nil
}

// FromMonoid converts the accumulated counts to the accuracy score.
func (m *accuracyMetric) FromMonoid(v AccuracyData) (float64, error) {
	if v.Total == 0 {
		return 0, fmt.Errorf("%w: accuracy over zero rows", metric.ErrDegenerateAggregate)
	}
	return float64(v.Match) / float64(v.Total), nil
}
