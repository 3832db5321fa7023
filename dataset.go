package pdfreport

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lvillar/pdfreport/table"
)

// Dataset is a rectangular table of display strings under named columns.
// It is built only through the constructors below, which coerce every value
// with table.Text and reject malformed shapes.
type Dataset struct {
	columns []string
	rows    [][]string
}

// NewDataset builds a Dataset from positional rows. Every row must have
// exactly one value per column.
func NewDataset(columns []string, rows ...[]any) (*Dataset, error) {
	const op = "NewDataset"
	if err := checkColumns(op, columns); err != nil {
		return nil, err
	}
	d := &Dataset{columns: append([]string(nil), columns...), rows: make([][]string, 0, len(rows))}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, newDatasetError(op, i, "", fmt.Errorf("%w: got %d values, want %d", ErrRaggedRow, len(row), len(columns)))
		}
		out := make([]string, len(row))
		for j, v := range row {
			out[j] = table.Text(v)
		}
		d.rows = append(d.rows, out)
	}
	return d, nil
}

// FromRecords builds a Dataset from keyed records. Keys missing from a
// record become empty cells; keys not in columns are ignored. With no
// columns, the sorted union of all record keys is used.
func FromRecords(columns []string, records []map[string]any) (*Dataset, error) {
	const op = "FromRecords"
	if len(columns) == 0 {
		columns = recordKeys(records)
	}
	if err := checkColumns(op, columns); err != nil {
		return nil, err
	}
	d := &Dataset{columns: append([]string(nil), columns...), rows: make([][]string, 0, len(records))}
	for _, rec := range records {
		out := make([]string, len(columns))
		for j, c := range columns {
			out[j] = table.Text(rec[c])
		}
		d.rows = append(d.rows, out)
	}
	return d, nil
}

// FromSQLRows drains rows into a Dataset and closes them.
func FromSQLRows(rows *sql.Rows) (*Dataset, error) {
	const op = "FromSQLRows"
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newDatasetError(op, -1, "", err)
	}
	if err := checkColumns(op, columns); err != nil {
		return nil, err
	}

	d := &Dataset{columns: columns}
	vals := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, newDatasetError(op, len(d.rows), "", err)
		}
		out := make([]string, len(columns))
		for j, v := range vals {
			out[j] = table.Text(v)
		}
		d.rows = append(d.rows, out)
	}
	if err := rows.Err(); err != nil {
		return nil, newDatasetError(op, len(d.rows), "", err)
	}
	return d, nil
}

func checkColumns(op string, columns []string) error {
	if len(columns) == 0 {
		return newDatasetError(op, -1, "", ErrNoColumns)
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return newDatasetError(op, -1, c, ErrEmptyColumn)
		}
		if seen[c] {
			return newDatasetError(op, -1, c, ErrDuplicateColumn)
		}
		seen[c] = true
	}
	return nil
}

func recordKeys(records []map[string]any) []string {
	set := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			set[k] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Columns returns a copy of the column names.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.columns...)
}

// Rows returns the display rows. Callers must not modify them.
func (d *Dataset) Rows() [][]string {
	if d == nil {
		return nil
	}
	return d.rows
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Empty reports whether there is nothing to tabulate.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}
