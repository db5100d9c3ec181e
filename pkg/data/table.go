package data

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ErrMissingColumn is matched by every *MissingColumnError.
var ErrMissingColumn = errors.New("missing column")

// MissingColumnError reports a column lookup against a dataset that lacks it.
type MissingColumnError struct {
	Dataset string
	Column  string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in dataset %q", e.Column, e.Dataset)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// Table is a named, column-major dataset of numeric values.
// Missing cells are stored as NaN.
type Table struct {
	name    string
	headers []string
	index   map[string]int
	cols    [][]float64
}

// NewTable builds a table from headers and matching columns.
// All columns must have the same length and header names must be unique.
// The columns are copied, so the caller keeps ownership of cols.
func NewTable(name string, headers []string, cols [][]float64) (*Table, error) {
	if len(headers) != len(cols) {
		return nil, errors.Errorf("table %q: %d headers for %d columns", name, len(headers), len(cols))
	}
	t := &Table{
		name:    name,
		headers: append([]string(nil), headers...),
		index:   make(map[string]int, len(headers)),
		cols:    make([][]float64, len(cols)),
	}
	for i, h := range headers {
		if _, dup := t.index[h]; dup {
			return nil, errors.Errorf("table %q: duplicate column %q", name, h)
		}
		t.index[h] = i
		if len(cols[i]) != len(cols[0]) {
			return nil, errors.Errorf("table %q: column %q has %d rows, want %d", name, h, len(cols[i]), len(cols[0]))
		}
		t.cols[i] = append([]float64(nil), cols[i]...)
	}
	return t, nil
}

// Name returns the dataset name used in error messages and logs.
func (t *Table) Name() string { return t.name }

// Headers returns a copy of the column names in order.
func (t *Table) Headers() []string { return append([]string(nil), t.headers...) }

// Rows returns the number of rows.
func (t *Table) Rows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &MissingColumnError{Dataset: t.name, Column: name}
	}
	return append([]float64(nil), t.cols[i]...), nil
}

// Row returns a copy of row r across all columns.
func (t *Table) Row(r int) []float64 {
	row := make([]float64, len(t.cols))
	for c := range t.cols {
		row[c] = t.cols[c][r]
	}
	return row
}

// Missing counts the NaN cells of the named column.
func (t *Table) Missing(name string) (int, error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range col {
		if math.IsNaN(v) {
			n++
		}
	}
	return n, nil
}

// Columns returns copies of all columns in header order.
func (t *Table) Columns() [][]float64 {
	out := make([][]float64, len(t.cols))
	for i, c := range t.cols {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// WithName returns a shallow copy of t carrying a different dataset name.
func (t *Table) WithName(name string) *Table {
	cp := *t
	cp.name = name
	return &cp
}
