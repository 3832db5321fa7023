package table

import (
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
)

// ErrRowOverflow reports a row that cannot fit on a page even when it
// starts at the top of the page body.
var ErrRowOverflow = errors.New("table: row taller than page body")

// OverflowError describes the row that triggered ErrRowOverflow.
type OverflowError struct {
	Row    int     // body row index, -1 for the header
	Height float64 // needed height
	Limit  float64 // page body height
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("table: row %d needs %.1fpt, page body is %.1fpt", e.Row, e.Height, e.Limit)
}

func (e *OverflowError) Unwrap() error {
	return ErrRowOverflow
}

// Table draws one header row and any number of body rows. The header is
// repeated at the top of every page the table spans.
type Table struct {
	pdf    *fpdf.Fpdf
	widths []float64
	header *Row
	rows   []*Row
	style  TableStyle
	encode func(string) string
	x      float64 // starting x (0 means current)
}

// New creates a new Table associated with the given PDF document.
func New(pdf *fpdf.Fpdf) *Table {
	return &Table{
		pdf:    pdf,
		style:  TableStyle{CellPadding: UniformPadding(2)},
		encode: func(s string) string { return s },
	}
}

// SetColumnWidths sets the width of every column.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.widths = widths
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetEncoder sets the function applied to text before it reaches fpdf,
// for fonts that are not UTF-8.
func (t *Table) SetEncoder(fn func(string) string) *Table {
	if fn != nil {
		t.encode = fn
	}
	return t
}

// SetX sets the left edge of the table.
func (t *Table) SetX(x float64) *Table {
	t.x = x
	return t
}

// AddHeaderRow sets the header row and returns it for chaining.
func (t *Table) AddHeaderRow() *Row {
	t.header = &Row{isHeader: true}
	return t.header
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// rowLayout is a row measured against the column widths.
type rowLayout struct {
	styles []CellStyle
	lines  [][]string
	height float64
}

// Render draws the table to the PDF document.
func (t *Table) Render() error {
	if t.pdf.Err() {
		return t.pdf.Error()
	}
	if len(t.widths) == 0 {
		return nil
	}

	startX := t.x
	if startX == 0 {
		startX = t.pdf.GetX()
	}
	_, pageH := t.pdf.GetPageSize()
	_, tMargin, _, bMargin := t.pdf.GetMargins()
	limit := pageH - tMargin - bMargin
	bottom := pageH - bMargin

	var head *rowLayout
	if t.header != nil {
		head = t.layout(t.header, -1)
		if head.height > limit {
			return &OverflowError{Row: -1, Height: head.height, Limit: limit}
		}
	}
	headH := 0.0
	if head != nil {
		headH = head.height
	}

	started := false
	for i, r := range t.rows {
		rl := t.layout(r, i)
		if headH+rl.height > limit {
			return &OverflowError{Row: i, Height: headH + rl.height, Limit: limit}
		}

		need := rl.height
		if !started {
			need += headH
		}
		if t.pdf.GetY()+need > bottom {
			t.pdf.AddPage()
			started = false
		}
		if !started && head != nil {
			t.draw(t.header, head, startX)
		}
		started = true
		t.draw(r, rl, startX)
		if t.pdf.Err() {
			return t.pdf.Error()
		}
	}
	if len(t.rows) == 0 && head != nil {
		t.draw(t.header, head, startX)
	}

	return t.pdf.Error()
}

// layout wraps every cell of r and computes the row height.
func (t *Table) layout(r *Row, bodyIdx int) *rowLayout {
	pad := t.style.CellPadding
	rl := &rowLayout{
		styles: make([]CellStyle, len(t.widths)),
		lines:  make([][]string, len(t.widths)),
	}
	for i := range t.widths {
		var cell Block
		if i < len(r.cells) {
			cell = r.cells[i]
		}
		st := t.resolveCellStyle(cell, r, bodyIdx)
		t.applyFont(st)

		contentW := t.widths[i] - pad.Left - pad.Right
		if contentW < 1 {
			contentW = 1
		}
		lines := cell.Lines(contentW, t.measure)
		h := float64(len(lines))*st.lineHeight() + pad.Top + pad.Bottom
		if h > rl.height {
			rl.height = h
		}
		rl.styles[i] = st
		rl.lines[i] = lines
	}
	return rl
}

func (t *Table) measure(s string) float64 {
	return t.pdf.GetStringWidth(t.encode(s))
}

func (t *Table) applyFont(st CellStyle) {
	if st.Font != nil {
		t.pdf.SetFont(st.Font.Family, st.Font.Style, st.Font.Size)
	}
}

// draw renders a measured row at the current y.
func (t *Table) draw(r *Row, rl *rowLayout, startX float64) {
	pad := t.style.CellPadding
	y := t.pdf.GetY()
	x := startX

	for i, w := range t.widths {
		st := rl.styles[i]

		if st.FillColor != nil {
			t.pdf.SetFillColor(st.FillColor.R, st.FillColor.G, st.FillColor.B)
			t.pdf.Rect(x, y, w, rl.height, "F")
		}
		if b := t.style.Border; b != nil {
			t.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
			if b.Width > 0 {
				t.pdf.SetLineWidth(b.Width)
			}
			t.pdf.Rect(x, y, w, rl.height, "D")
		}

		if st.TextColor != nil {
			t.pdf.SetTextColor(st.TextColor.R, st.TextColor.G, st.TextColor.B)
		} else {
			t.pdf.SetTextColor(0, 0, 0)
		}
		t.applyFont(st)

		align := st.Align
		if align == "" {
			align = "L"
		}
		lh := st.lineHeight()
		lines := rl.lines[i]
		textH := float64(len(lines)) * lh
		top := y + pad.Top + (rl.height-pad.Top-pad.Bottom-textH)/2
		contentW := w - pad.Left - pad.Right
		for k, line := range lines {
			if line == "" {
				continue
			}
			t.pdf.SetXY(x+pad.Left, top+float64(k)*lh)
			t.pdf.CellFormat(contentW, lh, t.encode(line), "", 0, align, false, 0, "")
		}
		x += w
	}

	t.pdf.SetDrawColor(0, 0, 0)
	t.pdf.SetFillColor(255, 255, 255)
	t.pdf.SetTextColor(0, 0, 0)
	t.pdf.SetXY(startX, y+rl.height)
}

// resolveCellStyle determines the effective style for a cell by merging
// table, header or alternate row, row, and cell-level styles.
func (t *Table) resolveCellStyle(cell Block, row *Row, bodyIdx int) CellStyle {
	var result CellStyle

	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}

	if row.isHeader && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}

	if !row.isHeader && t.style.AlternateRows != nil && bodyIdx >= 0 {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}

	if row.style != nil {
		mergeStyle(&result, row.style)
	}

	mergeStyle(&result, &cell.Style)
	if result.Align == "" {
		result.Align = cell.Align()
	}
	return result
}
