// Package regression provides regression metrics expressed as monoids over
// batch partitions.
package regression

import (
	"fmt"

	"github.com/datar-psa/goscore/metric"
	"github.com/datar-psa/goscore/pipeline"
)

// R2Data is the partial statistics of the coefficient of determination for a
// subset of the data: observation count, sum and sum of squares of the true
// values, and sum of squared residuals. All four fields are additive, so the
// final score needs no raw data.
type R2Data struct {
	N        int64
	Sum      float64
	SumSq    float64
	ResSumSq float64
}

// Combine sums the partial statistics of two subsets.
func (r R2Data) Combine(other R2Data) R2Data {
	return R2Data{
		N:        r.N + other.N,
		Sum:      r.Sum + other.Sum,
		SumSq:    r.SumSq + other.SumSq,
		ResSumSq: r.ResSumSq + other.ResSumSq,
	}
}

// R2Options configures the R2 scorer
type R2Options struct {
	// Parallelism caps the number of goroutines lifting batches during
	// batched scoring; zero keeps the sequential fold
	Parallelism int
}

// R2 returns a scorer that measures the coefficient of determination: the
// fraction of variance in the true values explained by the predictions.
func R2(opts R2Options) metric.Scorer {
	return metric.NewFactory(newR2Metric(), metric.Options{Parallelism: opts.Parallelism})
}

type r2Metric struct {
	pipe *pipeline.Pipeline
}

func newR2Metric() *r2Metric {
	yTrue := pipeline.Col("y_true")
	yPred := pipeline.Col("y_pred")
	pipe := pipeline.New("y_true", "y_pred").
		Derive(map[string]pipeline.Expr{
			"y":  yTrue,
			"f":  yPred,
			"y2": pipeline.Sq(yTrue),
			"e2": pipeline.Sq(pipeline.Sub(yTrue, yPred)),
		}).
		Aggregate(map[string]pipeline.Agg{
			"n":          pipeline.Count("y"),
			"sum":        pipeline.Sum("y"),
			"sum_sq":     pipeline.Sum("y2"),
			"res_sum_sq": pipeline.Sum("e2"),
		})
	return &r2Metric{pipe: pipe}
}

func (m *r2Metric) Name() string {
	return "r2"
}

// ToMonoid aligns the batch and aggregates the four partial sums through the
// pipeline.
func (m *r2Metric) ToMonoid(b metric.Batch) (R2Data, error) {
	yTrue, yPred, err := metric.AlignBatch(b)
	if err != nil {
		return R2Data{}, err
	}
	row, err := m.pipe.Run(map[string][]float64{
		"y_true": yTrue.Values,
		"y_pred": yPred.Values,
	})
	if err != nil {
		return R2Data{}, fmt.Errorf("%w: %v", metric.ErrInvalidBatch, err)
	}
	return R2Data{
		N:        int64(row["n"]),
		Sum:      row["sum"],
		SumSq:    row["sum_sq"],
		ResSumSq: row["res_sum_sq"],
	}, nil
}

// FromMonoid converts the accumulated sums to the R² score. The total sum of
// squares is restated from the additive parts: ssTot = sumSq - sum²/n.
func (m *r2Metric) FromMonoid(v R2Data) (float64, error) {
	if v.N == 0 {
		return 0, fmt.Errorf("%w: r2 over zero observations", metric.ErrDegenerateAggregate)
	}
	ssTot := v.SumSq - v.Sum*v.Sum/float64(v.N)
	if ssTot == 0 {
		return 0, fmt.Errorf("%w: r2 is undefined for constant true values", metric.ErrDegenerateAggregate)
	}
	return 1 - v.ResSumSq/ssTot, nil
}
