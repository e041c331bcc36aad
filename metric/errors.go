package metric

import "errors"

var (
	// ErrUnknownMetric is returned when a scorer is requested by a name that
	// is not registered
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrInvalidBatch is returned when a batch cannot be lifted to a monoid
	// value: missing or empty labels, or true and predicted series that
	// cannot be aligned
	ErrInvalidBatch = errors.New("invalid batch")
	// ErrDegenerateAggregate is returned when the accumulated statistics
	// cannot yield a defined score, such as a zero-count or zero-variance
	// aggregate
	ErrDegenerateAggregate = errors.New("degenerate aggregate")
	// ErrEmptyBatchSequence is returned when batched scoring is given no
	// batches at all, leaving the fold without a starting value
	ErrEmptyBatchSequence = errors.New("empty batch sequence")
)
