package pdfreport

import (
	"codeberg.org/go-pdf/fpdf"

	"github.com/lvillar/pdfreport/internal/locale"
	"github.com/lvillar/pdfreport/internal/stamp"
	"github.com/lvillar/pdfreport/shape"
	"github.com/lvillar/pdfreport/table"
)

// Page band geometry, in points from the margin edges.
const (
	headerRuleGap = 10 // header rule sits this far above the top margin
	footerRuleGap = 10 // footer rule sits this far below the bottom margin
	ruleWidth     = 0.6
	bandFontSize  = 8
	titleFontSize = 11
	stampSize     = 28
)

// decorator draws the running header and footer of every page.
type decorator struct {
	pdf       *fpdf.Fpdf
	family    string
	encode    func(string) string
	text      *locale.Printer
	title     string // shaped
	date      string // shaped
	timestamp string

	logo       *logo
	letterhead *letterhead
	ref        *stamp.Stamp
}

func (d *decorator) install() {
	d.pdf.SetHeaderFuncMode(d.header, true)
	d.pdf.SetFooterFunc(d.footer)
}

func (d *decorator) header() {
	pdf := d.pdf
	pageW, _ := pdf.GetPageSize()
	left, top, right, _ := pdf.GetMargins()
	width := pageW - left - right

	if d.letterhead != nil {
		d.letterhead.draw(pdf)
	}

	ruleY := top - headerRuleGap
	d.rule(left, ruleY, pageW-right)

	if d.logo != nil {
		pdf.ImageOptions(d.logo.name, left, ruleY-4-d.logo.h, d.logo.w, d.logo.h,
			false, fpdf.ImageOptions{ImageType: "png"}, 0, "")
	}

	pdf.SetTextColor(table.HeaderFill.R, table.HeaderFill.G, table.HeaderFill.B)
	if d.title != "" {
		pdf.SetFont(d.family, "B", titleFontSize)
		pdf.SetXY(left, ruleY-20)
		pdf.CellFormat(width, 14, d.encode(d.title), "", 0, "C", false, 0, "")
	}
	pdf.SetFont(d.family, "", bandFontSize)
	pdf.SetXY(left, ruleY-18)
	pdf.CellFormat(width, 12, d.encode(d.date), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (d *decorator) footer() {
	pdf := d.pdf
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	width := pageW - left - right

	ruleY := pageH - bottom + footerRuleGap
	d.rule(left, ruleY, pageW-right)

	pdf.SetFont(d.family, "", bandFontSize)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(left, ruleY+4)
	page := shape.Shape(d.text.Page(pdf.PageNo()))
	pdf.CellFormat(width, 10, d.encode(page), "", 0, "C", false, 0, "")
	pdf.SetXY(left, ruleY+4)
	pdf.CellFormat(width, 10, d.encode(d.timestamp), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if d.ref != nil {
		d.ref.Draw(pdf, pageW-right, ruleY+4, stampSize)
	}
}

func (d *decorator) rule(x1, y, x2 float64) {
	pdf := d.pdf
	pdf.SetDrawColor(table.HeaderFill.R, table.HeaderFill.G, table.HeaderFill.B)
	pdf.SetLineWidth(ruleWidth)
	pdf.Line(x1, y, x2, y)
	pdf.SetDrawColor(0, 0, 0)
}
