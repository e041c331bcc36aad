// Package naivebayes provides a multinomial naive Bayes classifier
// implementing the estimator interface used by scoring. Features are
// nonnegative counts (or fractional counts such as tf-idf); training learns
// smoothed per-class feature log probabilities and class log priors.
package naivebayes

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/datar-psa/goscore/table"
)

// Options configures training
type Options struct {
	// Alpha is the additive (Laplace/Lidstone) smoothing parameter.
	// Zero or negative defaults to 1.0
	Alpha float64
	// UniformPrior disables learning class priors from the data, using a
	// uniform prior instead. Ignored when ClassPrior is set
	UniformPrior bool
	// ClassPrior fixes the prior probabilities of the classes in sorted
	// class order. When set, priors are not adjusted according to the data
	ClassPrior []float64
}

// Model is a trained multinomial naive Bayes classifier. It holds no mutable
// state after Fit and is safe to share across concurrent callers.
type Model struct {
	features       []string
	classes        []float64
	classLogPrior  []float64
	featureLogProb [][]float64
}

// Fit trains a model on feature counts x and class labels y.
func Fit(x *table.Frame, y *table.Series, opts Options) (*Model, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("naivebayes: x and y are required")
	}
	if x.NumRows() != y.Len() {
		return nil, fmt.Errorf("naivebayes: x has %d rows, y has %d", x.NumRows(), y.Len())
	}
	if x.NumRows() == 0 || x.NumCols() == 0 {
		return nil, fmt.Errorf("naivebayes: empty training data")
	}

	alpha := opts.Alpha
	if alpha <= 0 {
		alpha = 1.0
	}

	features := x.Columns()
	rows := x.NumRows()

	classIndex := make(map[float64]int)
	var classes []float64
	for _, label := range y.Values {
		if math.IsNaN(label) {
			return nil, fmt.Errorf("naivebayes: NaN class label")
		}
		if _, ok := classIndex[label]; !ok {
			classIndex[label] = 0
			classes = append(classes, label)
		}
	}
	sort.Float64s(classes)
	for i, c := range classes {
		classIndex[c] = i
	}

	counts := make([][]float64, len(classes))
	for i := range counts {
		counts[i] = make([]float64, len(features))
	}
	classCount := make([]float64, len(classes))
	for j, name := range features {
		col, _ := x.Column(name)
		for i := 0; i < rows; i++ {
			if col[i] < 0 {
				return nil, fmt.Errorf("naivebayes: negative value in feature %q", name)
			}
			counts[classIndex[y.Values[i]]][j] += col[i]
		}
	}
	for i := 0; i < rows; i++ {
		classCount[classIndex[y.Values[i]]]++
	}

	featureLogProb := make([][]float64, len(classes))
	for c := range classes {
		total := floats.Sum(counts[c]) + alpha*float64(len(features))
		logProb := make([]float64, len(features))
		for j := range features {
			logProb[j] = math.Log(counts[c][j]+alpha) - math.Log(total)
		}
		featureLogProb[c] = logProb
	}

	classLogPrior := make([]float64, len(classes))
	switch {
	case opts.ClassPrior != nil:
		if len(opts.ClassPrior) != len(classes) {
			return nil, fmt.Errorf("naivebayes: %d class priors for %d classes", len(opts.ClassPrior), len(classes))
		}
		for c, p := range opts.ClassPrior {
			classLogPrior[c] = math.Log(p)
		}
	case opts.UniformPrior:
		for c := range classes {
			classLogPrior[c] = -math.Log(float64(len(classes)))
		}
	default:
		for c := range classes {
			classLogPrior[c] = math.Log(classCount[c] / float64(rows))
		}
	}

	return &Model{
		features:       features,
		classes:        classes,
		classLogPrior:  classLogPrior,
		featureLogProb: featureLogProb,
	}, nil
}

// Classes returns the class labels in sorted order.
func (m *Model) Classes() []float64 {
	return m.classes
}

// Predict classifies each row of x by maximum joint log likelihood and
// returns the predicted labels as a series carrying x's index.
func (m *Model) Predict(x *table.Frame) (*table.Series, error) {
	if x == nil {
		return nil, fmt.Errorf("naivebayes: x is required")
	}
	cols := make([][]float64, len(m.features))
	for j, name := range m.features {
		col, ok := x.Column(name)
		if !ok {
			return nil, fmt.Errorf("naivebayes: missing feature %q", name)
		}
		cols[j] = col
	}

	predictions := make([]float64, x.NumRows())
	jll := make([]float64, len(m.classes))
	for i := 0; i < x.NumRows(); i++ {
		for c := range m.classes {
			ll := m.classLogPrior[c]
			for j := range m.features {
				ll += cols[j][i] * m.featureLogProb[c][j]
			}
			jll[c] = ll
		}
		predictions[i] = m.classes[floats.MaxIdx(jll)]
	}
	return &table.Series{Name: "y_pred", Index: x.Index, Values: predictions}, nil
}
