// Package table provides the minimal labeled-column containers that scoring
// operates on: a Series of float64 values with an optional label index, and a
// Frame of named columns sharing one index.
package table

import (
	"fmt"
)

// Series is a named sequence of float64 values with an optional label index.
// A nil Index means the series is positional (a bare numeric array); such a
// series can be re-labeled against another series' index before alignment.
type Series struct {
	Name   string
	Index  []string
	Values []float64
}

// NewSeries creates a labeled series. index and values must have equal length.
func NewSeries(name string, index []string, values []float64) (*Series, error) {
	if index != nil && len(index) != len(values) {
		return nil, fmt.Errorf("series %q: index length %d != values length %d", name, len(index), len(values))
	}
	return &Series{Name: name, Index: index, Values: values}, nil
}

// FromValues creates a positional series from a bare numeric array.
func FromValues(name string, values []float64) *Series {
	return &Series{Name: name, Values: values}
}

// Len returns the number of values in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Labeled reports whether the series carries a label index.
func (s *Series) Labeled() bool {
	return s.Index != nil
}

// Align brings pred into the same index and order as ref.
//
// A positional pred of matching length adopts ref's index as-is. A labeled
// pred is reordered to ref's index; every label of ref must be present in
// pred exactly as a key. Align never mutates its arguments.
func Align(ref, pred *Series) (*Series, *Series, error) {
	if ref == nil || pred == nil {
		return nil, nil, fmt.Errorf("align: both series are required")
	}
	if !pred.Labeled() || !ref.Labeled() {
		if ref.Len() != pred.Len() {
			return nil, nil, fmt.Errorf("align: length mismatch between %q (%d) and %q (%d)",
				ref.Name, ref.Len(), pred.Name, pred.Len())
		}
		aligned := &Series{Name: pred.Name, Index: ref.Index, Values: pred.Values}
		return ref, aligned, nil
	}

	positions := make(map[string]int, pred.Len())
	for i, label := range pred.Index {
		positions[label] = i
	}
	values := make([]float64, ref.Len())
	for i, label := range ref.Index {
		j, ok := positions[label]
		if !ok {
			return nil, nil, fmt.Errorf("align: label %q of %q missing from %q", label, ref.Name, pred.Name)
		}
		values[i] = pred.Values[j]
	}
	aligned := &Series{Name: pred.Name, Index: ref.Index, Values: values}
	return ref, aligned, nil
}
