package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Dataset is an ordered collection of property records sharing one column
// schema. Cells stay as strings until a stage needs numbers, so raw files
// with mixed content load without loss.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// NewDataset builds a dataset from a header and row-major cells.
func NewDataset(columns []string, rows [][]string) *Dataset {
	return &Dataset{Columns: columns, Rows: rows}
}

func (d *Dataset) NumRows() int { return len(d.Rows) }
func (d *Dataset) NumCols() int { return len(d.Columns) }

// ColumnIndex returns the position of a column, or -1 when absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of one column in row order.
func (d *Dataset) Column(name string) ([]string, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: column %q not in dataset", ErrConfiguration, name)
	}
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// NumericColumn parses the present cells of a column. Missing cells are
// skipped; a present cell that does not parse fails the whole column.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	cells, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(cells))
	for i, c := range cells {
		if IsMissing(c) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d is not numeric: %q", ErrDataQuality, name, i, c)
		}
		out = append(out, v)
	}
	return out, nil
}

// Clone deep-copies the dataset so stages can transform without aliasing
// their input.
func (d *Dataset) Clone() *Dataset {
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		r := make([]string, len(row))
		copy(r, row)
		rows[i] = r
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// SelectColumns returns a dataset narrowed to the named columns, in the
// given order.
func (d *Dataset) SelectColumns(names []string) (*Dataset, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j := d.ColumnIndex(n)
		if j < 0 {
			return nil, fmt.Errorf("%w: column %q not in dataset", ErrConfiguration, n)
		}
		idx[i] = j
	}
	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		r := make([]string, len(idx))
		for k, j := range idx {
			r[k] = row[j]
		}
		rows[i] = r
	}
	cols := make([]string, len(names))
	copy(cols, names)
	return &Dataset{Columns: cols, Rows: rows}, nil
}

// IsMissing reports whether a cell counts as a missing value.
func IsMissing(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "na", "nan", "null", "none":
		return true
	}
	return false
}
