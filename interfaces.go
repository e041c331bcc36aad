package goscore

import (
	"github.com/datar-psa/goscore/metric"
	"github.com/datar-psa/goscore/table"
)

type Scorer = metric.Scorer
type Estimator = metric.Estimator
type Batch = metric.Batch
type XY = metric.XY
type Series = table.Series
type Frame = table.Frame
