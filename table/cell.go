package table

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Text converts a scalar into the string shown in a cell. Nil values,
// nil pointers, NaN and infinities become the empty string.
func Text(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return ""
	}

	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return formatTime(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case driver.Valuer:
		val, err := x.Value()
		if err != nil {
			return ""
		}
		return Text(val)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return Text(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format("2006-01-02 15:04")
}

// Row represents a single row in a table.
type Row struct {
	cells    []Block
	style    *CellStyle
	isHeader bool
}

// AddBlock appends a formatted cell to the row.
func (r *Row) AddBlock(b Block) *Row {
	r.cells = append(r.cells, b)
	return r
}

// AddCell appends a plain left-to-right text cell to the row.
func (r *Row) AddCell(text string) *Row {
	return r.AddBlock(Block{Text: text})
}

// AddCellf appends a formatted text cell to the row.
func (r *Row) AddCellf(format string, args ...any) *Row {
	return r.AddCell(fmt.Sprintf(format, args...))
}

// SetStyle sets the style for all cells in this row.
func (r *Row) SetStyle(s CellStyle) *Row {
	r.style = &s
	return r
}

// Cells returns the row's cells.
func (r *Row) Cells() []Block {
	return r.cells
}
