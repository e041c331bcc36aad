package goscore

import (
	"fmt"
	"sync"

	"github.com/datar-psa/goscore/classification"
	"github.com/datar-psa/goscore/regression"
	"github.com/datar-psa/goscore/table"
)

type AccuracyOptions = classification.AccuracyOptions

// Accuracy returns a scorer that measures the fraction of predictions equal
// to the true labels.
func Accuracy(opts AccuracyOptions) Scorer {
	return classification.Accuracy(opts)
}

type R2Options = regression.R2Options

// R2 returns a scorer that measures the coefficient of determination.
func R2(opts R2Options) Scorer {
	return regression.R2(opts)
}

// The process-wide scorer cache. Scorers hold no per-call state, so one
// instance per metric name serves every caller for the process lifetime.
var (
	scorersMu sync.Mutex
	scorers   = make(map[string]Scorer)
)

// GetScorer returns the process-wide scorer for a metric name, constructing
// it on first request. Repeated calls with the same name return the same
// instance; unknown names fail with ErrUnknownMetric. Safe for concurrent
// first access.
func GetScorer(name string) (Scorer, error) {
	scorersMu.Lock()
	defer scorersMu.Unlock()
	if s, ok := scorers[name]; ok {
		return s, nil
	}
	var s Scorer
	switch name {
	case MetricAccuracy:
		s = Accuracy(AccuracyOptions{})
	case MetricR2:
		s = R2(R2Options{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	scorers[name] = s
	return s, nil
}

// AccuracyScore scores a single true/predicted pair with the process-wide
// accuracy scorer.
func AccuracyScore(yTrue, yPred *table.Series) (float64, error) {
	s, err := GetScorer(MetricAccuracy)
	if err != nil {
		return 0, err
	}
	return s.ScoreData(yTrue, yPred, nil)
}

// R2Score scores a single true/predicted pair with the process-wide r2
// scorer.
func R2Score(yTrue, yPred *table.Series) (float64, error) {
	s, err := GetScorer(MetricR2)
	if err != nil {
		return 0, err
	}
	return s.ScoreData(yTrue, yPred, nil)
}
