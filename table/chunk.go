package table

import "codeberg.org/go-pdf/fpdf"

// DefaultChunkSize is the number of body rows per table batch.
const DefaultChunkSize = 100

// Span is a half-open range [Start, End) of body rows.
type Span struct {
	Start, End int
}

// Chunks splits n rows into consecutive spans of at most size rows. A size
// below one means DefaultChunkSize.
func Chunks(n, size int) []Span {
	if size < 1 {
		size = DefaultChunkSize
	}
	var out []Span
	for start := 0; start < n; start += size {
		out = append(out, Span{Start: start, End: min(start+size, n)})
	}
	return out
}

// Chunker renders a dataset as a sequence of independent tables, one per
// batch of Size rows. Every batch starts on a fresh page and carries its own
// header row.
type Chunker struct {
	PDF    *fpdf.Fpdf
	Widths []float64
	Style  TableStyle
	Encode func(string) string
	Size   int
	X      float64
}

// Render draws header and rows and returns the batches it drew. The current
// page is used for the first batch; a new page is added before each later
// one.
func (c *Chunker) Render(header []Block, rows [][]Block) ([]Span, error) {
	spans := Chunks(len(rows), c.Size)
	for i, sp := range spans {
		if i > 0 {
			c.PDF.AddPage()
		}
		t := New(c.PDF).
			SetColumnWidths(c.Widths...).
			SetStyle(c.Style).
			SetEncoder(c.Encode).
			SetX(c.X)
		h := t.AddHeaderRow()
		for _, b := range header {
			h.AddBlock(b)
		}
		for _, row := range rows[sp.Start:sp.End] {
			r := t.AddRow()
			for _, b := range row {
				r.AddBlock(b)
			}
		}
		if err := t.Render(); err != nil {
			if oe, ok := err.(*OverflowError); ok && oe.Row >= 0 {
				oe.Row += sp.Start
			}
			return spans[:i], err
		}
	}
	return spans, nil
}
