package regression

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datar-psa/goscore/internal/testutils"
	"github.com/datar-psa/goscore/metric"
	"github.com/datar-psa/goscore/table"
)

func TestR2ScoreData(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{
			name:  "perfect fit",
			yTrue: []float64{1, 2, 3, 4},
			yPred: []float64{1, 2, 3, 4},
			want:  1.0,
		},
		{
			name:  "mean prediction explains nothing",
			yTrue: []float64{1, 2, 3, 4},
			yPred: []float64{2.5, 2.5, 2.5, 2.5},
			want:  0.0,
		},
		{
			name:  "imperfect fit",
			yTrue: []float64{3, -0.5, 2, 7},
			yPred: []float64{2.5, 0.0, 2, 8},
			want:  0.9486081370449679,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := R2(R2Options{})
			got, err := scorer.ScoreData(
				testutils.Series(t, "y_true", tt.yTrue...),
				testutils.Series(t, "y_pred", tt.yPred...),
				nil,
			)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, testutils.ReferenceR2(t, tt.yTrue, tt.yPred), got, 1e-9)
		})
	}
}

func TestR2ToMonoidSums(t *testing.T) {
	m := newR2Metric()
	v, err := m.ToMonoid(metric.Batch{
		YTrue: table.FromValues("y_true", []float64{1, 2, 3}),
		YPred: table.FromValues("y_pred", []float64{1, 2, 5}),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.N)
	assert.InDelta(t, 6.0, v.Sum, 1e-12)
	assert.InDelta(t, 14.0, v.SumSq, 1e-12)
	assert.InDelta(t, 4.0, v.ResSumSq, 1e-12)
}

func TestR2BatchedMatchesUnbatched(t *testing.T) {
	yTrue := testutils.Series(t, "y_true", 3, -0.5, 2, 7, 4.5, -1)
	yPred := testutils.Series(t, "y_pred", 2.5, 0.0, 2, 8, 4.0, -0.5)

	scorer := R2(R2Options{})
	whole, err := scorer.ScoreData(yTrue, yPred, nil)
	require.NoError(t, err)

	for _, boundaries := range [][]int{{3}, {1, 4}, {1, 2, 3, 4, 5}} {
		batches := testutils.SplitBatches(t, yTrue, yPred, boundaries...)
		batched, err := scorer.ScoreDataBatched(slices.Values(batches))
		require.NoError(t, err)
		assert.InDelta(t, whole, batched, 1e-12)
	}
}

func TestR2CombineAssociative(t *testing.T) {
	a := R2Data{N: 2, Sum: 1.5, SumSq: 2.25, ResSumSq: 0.5}
	b := R2Data{N: 3, Sum: -1, SumSq: 9, ResSumSq: 1.25}
	c := R2Data{N: 1, Sum: 4, SumSq: 16, ResSumSq: 0}

	left := a.Combine(b).Combine(c)
	right := a.Combine(b.Combine(c))
	assert.Equal(t, left.N, right.N)
	assert.InDelta(t, left.Sum, right.Sum, 1e-12)
	assert.InDelta(t, left.SumSq, right.SumSq, 1e-12)
	assert.InDelta(t, left.ResSumSq, right.ResSumSq, 1e-12)
}

func TestR2DegenerateAggregates(t *testing.T) {
	scorer := R2(R2Options{})

	// Constant true values leave zero total sum of squares.
	_, err := scorer.ScoreData(
		testutils.Series(t, "y_true", 5, 5, 5, 5),
		testutils.Series(t, "y_pred", 1, 2, 3, 4),
		nil,
	)
	assert.ErrorIs(t, err, metric.ErrDegenerateAggregate)

	m := newR2Metric()
	_, err = m.FromMonoid(R2Data{})
	assert.ErrorIs(t, err, metric.ErrDegenerateAggregate)
}

func TestR2InvalidBatches(t *testing.T) {
	scorer := R2(R2Options{})

	_, err := scorer.ScoreData(nil, testutils.Series(t, "y_pred", 1), nil)
	assert.ErrorIs(t, err, metric.ErrInvalidBatch)

	_, err = scorer.ScoreData(testutils.Series(t, "y_true", 1), testutils.Series(t, "y_pred", 1, 2), nil)
	assert.ErrorIs(t, err, metric.ErrInvalidBatch)
}

func TestR2EmptyBatchSequence(t *testing.T) {
	scorer := R2(R2Options{})
	_, err := scorer.ScoreDataBatched(slices.Values([]metric.Batch{}))
	assert.ErrorIs(t, err, metric.ErrEmptyBatchSequence)
}

func TestR2ParallelBatched(t *testing.T) {
	yTrue := testutils.Series(t, "y_true", 3, -0.5, 2, 7, 4.5, -1, 0, 2.5)
	yPred := testutils.Series(t, "y_pred", 2.5, 0.0, 2, 8, 4.0, -0.5, 0.5, 2)
	batches := testutils.SplitBatches(t, yTrue, yPred, 2, 4, 6)

	sequential, err := R2(R2Options{}).ScoreDataBatched(slices.Values(batches))
	require.NoError(t, err)

	parallel, err := R2(R2Options{Parallelism: 4}).ScoreDataBatched(slices.Values(batches))
	require.NoError(t, err)

	assert.InDelta(t, sequential, parallel, 1e-12)
}
