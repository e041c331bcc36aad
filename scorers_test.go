package goscore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datar-psa/goscore/table"
)

func TestGetScorer(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		wantErr  bool
		wantName string
	}{
		{name: "accuracy", metric: MetricAccuracy, wantName: "accuracy"},
		{name: "r2", metric: MetricR2, wantName: "r2"},
		{name: "unknown metric", metric: "f1", wantErr: true},
		{name: "empty name", metric: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GetScorer(tt.metric)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMetric)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name())
		})
	}
}

func TestGetScorerReturnsSingleton(t *testing.T) {
	first, err := GetScorer(MetricAccuracy)
	require.NoError(t, err)
	second, err := GetScorer(MetricAccuracy)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGetScorerConcurrentFirstAccess(t *testing.T) {
	const callers = 32

	var wg sync.WaitGroup
	results := make([]Scorer, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := GetScorer(MetricR2)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i], "all callers must observe one instance")
	}
}

func TestAccuracyScore(t *testing.T) {
	got, err := AccuracyScore(
		table.FromValues("y_true", []float64{1, 0, 1, 1, 0}),
		table.FromValues("y_pred", []float64{1, 1, 1, 0, 0}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got, 1e-12)
}

func TestR2Score(t *testing.T) {
	got, err := R2Score(
		table.FromValues("y_true", []float64{1, 2, 3, 4}),
		table.FromValues("y_pred", []float64{1, 2, 3, 4}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}
