// Package metric turns a per-metric monoid into the scoring operations that
// callers use: score one true/predicted pair, score a trained estimator
// against held-out data, or fold a lazy sequence of batches into one score
// without materializing the raw data together.
package metric

import (
	"fmt"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/datar-psa/goscore/monoid"
	"github.com/datar-psa/goscore/table"
)

// Batch is one independently scorable subset of data: true labels, predicted
// labels, and optional features. YPred may be positional (nil index); metrics
// re-label it from YTrue's index before alignment.
type Batch struct {
	YTrue *table.Series
	YPred *table.Series
	X     *table.Frame
}

// XY is one features/labels pair for estimator-batched scoring.
type XY struct {
	X *table.Frame
	Y *table.Series
}

// Estimator produces predictions from features.
// This interface must be implemented by library consumers.
// A multinomial naive Bayes implementation is provided in the naivebayes
// subpackage.
type Estimator interface {
	Predict(x *table.Frame) (*table.Series, error)
}

// Scorer evaluates predictions against true labels, either in one call or
// over a sequence of disjoint batches. Scorers hold no per-call state and are
// safe to share across concurrent callers.
type Scorer interface {
	// Name identifies the metric that produced a score
	Name() string
	// ScoreData scores a single true/predicted pair
	ScoreData(yTrue, yPred *table.Series, x *table.Frame) (float64, error)
	// ScoreEstimator predicts over x and scores the predictions against y
	ScoreEstimator(est Estimator, x *table.Frame, y *table.Series) (float64, error)
	// ScoreDataBatched lifts every batch, folds the lifted values in order,
	// and converts the fold result to a score
	ScoreDataBatched(batches iter.Seq[Batch]) (float64, error)
	// ScoreEstimatorBatched predicts per batch and scores the resulting
	// true/predicted/features triples
	ScoreEstimatorBatched(est Estimator, batches iter.Seq[XY]) (float64, error)
}

// Metric is one evaluation metric expressed as a monoid: lift a batch to a
// partial-statistics value, combine values across batches, convert the
// combined value to the final score.
type Metric[M monoid.Monoid[M]] interface {
	Name() string
	ToMonoid(b Batch) (M, error)
	FromMonoid(v M) (float64, error)
}

// Options configures a Factory.
type Options struct {
	// Parallelism caps the number of goroutines lifting batches during
	// batched scoring. Zero or one keeps the strict sequential fold; higher
	// values lift batches concurrently and combine in batch order, so the
	// result matches the sequential fold up to floating-point reassociation.
	Parallelism int
}

// Factory adapts a Metric into a Scorer. The zero value is not usable; use
// NewFactory.
type Factory[M monoid.Monoid[M]] struct {
	metric Metric[M]
	opts   Options
}

// NewFactory creates a Scorer backed by the given metric.
func NewFactory[M monoid.Monoid[M]](m Metric[M], opts Options) *Factory[M] {
	return &Factory[M]{metric: m, opts: opts}
}

// Name returns the metric's name.
func (f *Factory[M]) Name() string {
	return f.metric.Name()
}

// ScoreData scores a single true/predicted pair.
func (f *Factory[M]) ScoreData(yTrue, yPred *table.Series, x *table.Frame) (float64, error) {
	v, err := f.metric.ToMonoid(Batch{YTrue: yTrue, YPred: yPred, X: x})
	if err != nil {
		return 0, err
	}
	return f.metric.FromMonoid(v)
}

// ScoreEstimator predicts over x and scores the predictions against y.
func (f *Factory[M]) ScoreEstimator(est Estimator, x *table.Frame, y *table.Series) (float64, error) {
	yPred, err := est.Predict(x)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return f.ScoreData(y, yPred, nil)
}

// ScoreDataBatched lifts every batch to a monoid value, left-folds the values
// with Combine starting from the first batch, and converts the fold result to
// a score. The sequence is consumed lazily and in order; the fold aborts on
// the first batch that fails to lift.
func (f *Factory[M]) ScoreDataBatched(batches iter.Seq[Batch]) (float64, error) {
	if f.opts.Parallelism > 1 {
		return f.scoreBatchedParallel(batches)
	}
	var acc M
	first := true
	for b := range batches {
		v, err := f.metric.ToMonoid(b)
		if err != nil {
			return 0, err
		}
		if first {
			acc, first = v, false
		} else {
			acc = acc.Combine(v)
		}
	}
	if first {
		return 0, ErrEmptyBatchSequence
	}
	return f.metric.FromMonoid(acc)
}

// ScoreEstimatorBatched predicts per (X, y) batch and delegates to
// ScoreDataBatched over the resulting triples.
func (f *Factory[M]) ScoreEstimatorBatched(est Estimator, batches iter.Seq[XY]) (float64, error) {
	var predictErr error
	predicted := func(yield func(Batch) bool) {
		for b := range batches {
			yPred, err := est.Predict(b.X)
			if err != nil {
				predictErr = fmt.Errorf("predict: %w", err)
				return
			}
			if !yield(Batch{YTrue: b.Y, YPred: yPred, X: b.X}) {
				return
			}
		}
	}
	score, err := f.ScoreDataBatched(predicted)
	if predictErr != nil {
		return 0, predictErr
	}
	return score, err
}

// scoreBatchedParallel lifts batches on up to Parallelism goroutines and
// combines the lifted values in batch order. Associativity of Combine keeps
// the result consistent with the sequential fold.
func (f *Factory[M]) scoreBatchedParallel(batches iter.Seq[Batch]) (float64, error) {
	var (
		mu     sync.Mutex
		lifted []M
	)
	g := new(errgroup.Group)
	g.SetLimit(f.opts.Parallelism)
	next := 0
	for b := range batches {
		idx := next
		next++
		mu.Lock()
		var zero M
		lifted = append(lifted, zero)
		mu.Unlock()
		g.Go(func() error {
			v, err := f.metric.ToMonoid(b)
			if err != nil {
				return err
			}
			mu.Lock()
			lifted[idx] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	acc, ok := monoid.Reduce(lifted)
	if !ok {
		return 0, ErrEmptyBatchSequence
	}
	return f.metric.FromMonoid(acc)
}

// AlignBatch validates a batch and aligns its predicted series against the
// true series' index, re-labeling a positional prediction first. It is the
// shared lifting front end for every metric.
func AlignBatch(b Batch) (yTrue, yPred *table.Series, err error) {
	if b.YTrue == nil {
		return nil, nil, fmt.Errorf("%w: y_true is required", ErrInvalidBatch)
	}
	if b.YPred == nil {
		return nil, nil, fmt.Errorf("%w: y_pred is required", ErrInvalidBatch)
	}
	if b.YTrue.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: empty batch", ErrInvalidBatch)
	}
	yTrue, yPred, alignErr := table.Align(b.YTrue, b.YPred)
	if alignErr != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBatch, alignErr)
	}
	return yTrue, yPred, nil
}
