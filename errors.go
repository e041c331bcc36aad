package goscore

import "github.com/datar-psa/goscore/metric"

var (
	// ErrUnknownMetric is returned by GetScorer for an unregistered name
	ErrUnknownMetric = metric.ErrUnknownMetric
	// ErrInvalidBatch is returned when a batch cannot be lifted: missing or
	// empty labels, or misaligned true/predicted series
	ErrInvalidBatch = metric.ErrInvalidBatch
	// ErrDegenerateAggregate is returned when the accumulated statistics
	// cannot yield a defined score
	ErrDegenerateAggregate = metric.ErrDegenerateAggregate
	// ErrEmptyBatchSequence is returned by batched scoring over no batches
	ErrEmptyBatchSequence = metric.ErrEmptyBatchSequence
)
