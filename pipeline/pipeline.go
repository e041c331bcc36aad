// Package pipeline computes named aggregates over named derived columns.
//
// Metrics describe their per-batch computation once, as a fixed pipeline of a
// derive step (per-row expressions over the input columns) followed by an
// aggregate step (sums and counts over the derived columns), and run it per
// batch to obtain a single row of partial statistics. A built pipeline is
// immutable and safe for concurrent Run calls.
package pipeline

import (
	"fmt"
	"math"
)

// Row is the single output row of a pipeline run: named numeric aggregates.
type Row map[string]float64

// Expr evaluates one derived value for row i over the named input columns.
// Columns passed to Run are validated for presence and equal length before
// any expression is evaluated.
type Expr func(cols map[string][]float64, i int) float64

// Col references an input column by name.
func Col(name string) Expr {
	return func(cols map[string][]float64, i int) float64 {
		return cols[name][i]
	}
}

// Eq compares two expressions for equality, yielding 1 for a match and 0
// otherwise. A NaN on either side is never equal to anything, including
// another NaN, so absent labels count as mismatches rather than being
// dropped.
func Eq(a, b Expr) Expr {
	return func(cols map[string][]float64, i int) float64 {
		av, bv := a(cols, i), b(cols, i)
		if av == bv {
			return 1
		}
		return 0
	}
}

// Sub subtracts b from a.
func Sub(a, b Expr) Expr {
	return func(cols map[string][]float64, i int) float64 {
		return a(cols, i) - b(cols, i)
	}
}

// Mul multiplies a by b.
func Mul(a, b Expr) Expr {
	return func(cols map[string][]float64, i int) float64 {
		return a(cols, i) * b(cols, i)
	}
}

// Sq squares an expression.
func Sq(a Expr) Expr {
	return Mul(a, a)
}

type aggKind int

const (
	aggSum aggKind = iota
	aggCount
)

// Agg aggregates one derived column into a single named value.
type Agg struct {
	kind aggKind
	col  string
}

// Sum totals the non-NaN values of a derived column.
func Sum(col string) Agg {
	return Agg{kind: aggSum, col: col}
}

// Count counts the non-NaN values of a derived column.
func Count(col string) Agg {
	return Agg{kind: aggCount, col: col}
}

// Pipeline is a fixed derive+aggregate description. Build it once with New,
// Derive and Aggregate, then Run it per batch.
type Pipeline struct {
	inputs  []string
	derived map[string]Expr
	aggs    map[string]Agg
}

// New creates an empty pipeline that expects the given input columns.
func New(inputs ...string) *Pipeline {
	return &Pipeline{
		inputs:  inputs,
		derived: make(map[string]Expr),
		aggs:    make(map[string]Agg),
	}
}

// Derive registers the derived columns, each computed row-by-row from the
// input columns. Derived columns see only the inputs, not each other.
func (p *Pipeline) Derive(cols map[string]Expr) *Pipeline {
	for name, expr := range cols {
		p.derived[name] = expr
	}
	return p
}

// Aggregate registers the output aggregates, each computed over one derived
// column.
func (p *Pipeline) Aggregate(cols map[string]Agg) *Pipeline {
	for name, agg := range cols {
		p.aggs[name] = agg
	}
	return p
}

// Run evaluates the pipeline over the input columns and returns the single
// aggregate row.
func (p *Pipeline) Run(input map[string][]float64) (Row, error) {
	rows := -1
	for _, name := range p.inputs {
		col, ok := input[name]
		if !ok {
			return nil, fmt.Errorf("pipeline: missing input column %q", name)
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("pipeline: column %q has %d rows, want %d", name, len(col), rows)
		}
	}
	if rows == -1 {
		rows = 0
	}

	derived := make(map[string][]float64, len(p.derived))
	for name, expr := range p.derived {
		col := make([]float64, rows)
		for i := 0; i < rows; i++ {
			col[i] = expr(input, i)
		}
		derived[name] = col
	}

	out := make(Row, len(p.aggs))
	for name, agg := range p.aggs {
		col, ok := derived[agg.col]
		if !ok {
			return nil, fmt.Errorf("pipeline: aggregate %q references unknown derived column %q", name, agg.col)
		}
		var sum float64
		var count int
		for _, v := range col {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}
		switch agg.kind {
		case aggSum:
			out[name] = sum
		case aggCount:
			out[name] = float64(count)
		}
	}
	return out, nil
}
