package table

import (
	"fmt"
)

// Frame is a minimal tabular container: named float64 columns of equal length
// sharing one optional label index. Columns keep their insertion order.
type Frame struct {
	Index []string

	names []string
	cols  map[string][]float64
	rows  int
}

// NewFrame creates an empty frame. A nil index means positional rows; a
// non-nil index fixes the row count for all columns.
func NewFrame(index []string) *Frame {
	f := &Frame{Index: index, cols: make(map[string][]float64)}
	if index != nil {
		f.rows = len(index)
	}
	return f
}

// AddColumn appends a named column. The first column of an unindexed frame
// fixes the row count.
func (f *Frame) AddColumn(name string, values []float64) error {
	if _, exists := f.cols[name]; exists {
		return fmt.Errorf("frame: duplicate column %q", name)
	}
	if len(f.names) == 0 && f.Index == nil {
		f.rows = len(values)
	} else if len(values) != f.rows {
		return fmt.Errorf("frame: column %q has %d rows, want %d", name, len(values), f.rows)
	}
	f.names = append(f.names, name)
	f.cols[name] = values
	return nil
}

// Column returns a named column's values.
func (f *Frame) Column(name string) ([]float64, bool) {
	values, ok := f.cols[name]
	return values, ok
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	return f.names
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return f.rows
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.names)
}

// Row returns the values of one row in column insertion order.
func (f *Frame) Row(i int) ([]float64, error) {
	if i < 0 || i >= f.rows {
		return nil, fmt.Errorf("frame: row %d out of range [0,%d)", i, f.rows)
	}
	row := make([]float64, len(f.names))
	for j, name := range f.names {
		row[j] = f.cols[name][i]
	}
	return row, nil
}
