package pdfreport

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed report input.
var (
	ErrNoColumns       = errors.New("pdfreport: dataset has no columns")
	ErrEmptyColumn     = errors.New("pdfreport: empty column name")
	ErrDuplicateColumn = errors.New("pdfreport: duplicate column name")
	ErrRaggedRow       = errors.New("pdfreport: row width does not match columns")
	ErrNilDocument     = errors.New("pdfreport: nil document")
)

// DatasetError reports the dataset constructor and position that rejected
// the input.
type DatasetError struct {
	Op     string // constructor, e.g. "NewDataset", "FromRecords"
	Row    int    // row index, -1 when the header is at fault
	Column string // offending column name, if any
	Err    error  // underlying error
}

func (e *DatasetError) Error() string {
	switch {
	case e.Row >= 0:
		return fmt.Sprintf("pdfreport.%s: row %d: %v", e.Op, e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("pdfreport.%s: column %q: %v", e.Op, e.Column, e.Err)
	default:
		return fmt.Sprintf("pdfreport.%s: %v", e.Op, e.Err)
	}
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

func newDatasetError(op string, row int, column string, err error) *DatasetError {
	return &DatasetError{Op: op, Row: row, Column: column, Err: err}
}
