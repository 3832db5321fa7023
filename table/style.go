// Package table lays out report datasets as PDF tables.
//
// It covers the whole path from a raw cell value to ink on the page: Format
// turns a value into a shaped, direction-aware Block, AllocateWidths sizes
// the columns from their content, and Chunker renders rows in page-sized
// batches as independent tables, each with a repeated header row and
// alternating row shading.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// Hex builds an RGBColor from a 0xRRGGBB value.
func Hex(v uint32) RGBColor {
	return RGBColor{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "" or "B"
	Size   float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle defines the appearance of cell borders.
type BorderStyle struct {
	Width float64
	Color RGBColor
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	FillColor  *RGBColor
	TextColor  *RGBColor
	Font       *FontSpec
	Align      string  // "L", "C", "R"
	LineHeight float64 // 0 means 1.25 times the font size
}

// AlternateStyle defines alternating row colors.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	Border        *BorderStyle
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	CellPadding   Padding
	CellFont      *FontSpec
}

// Report colors.
var (
	HeaderFill = Hex(0x003366)
	HeaderText = RGBColor{245, 245, 245}
	EvenFill   = Hex(0xe9ecef)
	OddFill    = Hex(0xf8f9fa)
	GridColor  = RGBColor{0, 0, 0}
)

// ReportStyle is the style every report table uses: a dark header with
// light text, zebra-striped body rows and a thin grid.
func ReportStyle(family string, size float64) TableStyle {
	return TableStyle{
		Border:      &BorderStyle{Width: 0.5, Color: GridColor},
		CellPadding: Padding{Top: 3, Right: 4, Bottom: 3, Left: 4},
		CellFont:    &FontSpec{Family: family, Size: size},
		HeaderStyle: &CellStyle{
			FillColor: &HeaderFill,
			TextColor: &HeaderText,
			Font:      &FontSpec{Family: family, Style: "B", Size: size},
		},
		AlternateRows: &AlternateStyle{
			Even: CellStyle{FillColor: &EvenFill},
			Odd:  CellStyle{FillColor: &OddFill},
		},
	}
}

// mergeStyle copies non-zero fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.LineHeight > 0 {
		dst.LineHeight = src.LineHeight
	}
}

func (s CellStyle) lineHeight() float64 {
	if s.LineHeight > 0 {
		return s.LineHeight
	}
	if s.Font != nil && s.Font.Size > 0 {
		return s.Font.Size * 1.25
	}
	return 11
}
