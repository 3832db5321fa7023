// Package pdfreport compiles titled tabular datasets into paginated PDF
// reports.
//
// A report is a title and a list of sections, each a heading over a Dataset.
// Tables are sized from their content, split into page-sized batches with a
// repeated header, and every page carries a running header and footer.
// Right-to-left text (Arabic, Persian, Hebrew) is shaped and reordered so it
// displays correctly with an embedded Unicode font.
//
// Rendering never fails on content: a document that cannot be laid out is
// rebuilt as plain text lines and reported as StateDegraded.
//
//	ds, err := pdfreport.NewDataset([]string{"id", "title"},
//	    []any{1, "Muqaddimah"},
//	    []any{2, "كتاب الحيوان"},
//	)
//	if err != nil {
//	    return err
//	}
//	pdf, err := pdfreport.Compose("Catalogue", pdfreport.Section{Heading: "Books", Data: ds})
package pdfreport

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/lvillar/pdfreport/fontres"
	"github.com/lvillar/pdfreport/internal/locale"
	"github.com/lvillar/pdfreport/internal/stamp"
	"github.com/lvillar/pdfreport/shape"
	"github.com/lvillar/pdfreport/table"
)

// Body layout sizes in points.
const (
	docTitleSize   = 16
	headingSize    = 12
	sectionGap     = 14
	headingHeight  = 20
	noDataHeight   = 16
	minTableHeight = 60
)

// Renderer builds reports with a fixed configuration. It is safe for
// concurrent use; each call builds its own document.
type Renderer struct {
	cfg config
}

// New creates a Renderer. With no options it renders landscape A4 with the
// process-wide font resolver.
func New(opts ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fonts == nil {
		cfg.fonts = fontres.Default()
	}
	return &Renderer{cfg: cfg}
}

// Compose renders a report and returns the PDF bytes.
func (r *Renderer) Compose(title string, sections ...Section) ([]byte, error) {
	res, err := r.Render(&ReportDocument{Title: title, Sections: sections})
	if err != nil {
		return nil, err
	}
	return res.Bytes, nil
}

// Compose renders a report with the default Renderer. The header date and
// PDF metadata come from time.Now, so output is only reproducible through a
// Renderer built with WithClock.
func Compose(title string, sections ...Section) ([]byte, error) {
	return New().Compose(title, sections...)
}

// build is the state of one rendering attempt.
type build struct {
	cfg     *config
	doc     *ReportDocument
	pdf     *fpdf.Fpdf
	font    fontres.Handle
	encode  func(string) string
	text    *locale.Printer
	now     time.Time
	margins Margins
	chunks  int
}

// newBuild starts a document with the page geometry, metadata and font of
// doc. autoBreak lets fpdf add pages on overflow, which only the plain
// fallback layout relies on.
func (r *Renderer) newBuild(doc *ReportDocument, font fontres.Handle, autoBreak bool) *build {
	cfg := &r.cfg
	m := doc.Margins
	if m.isZero() {
		m = cfg.margins
	}
	orient := "L"
	if doc.orientation(cfg.orientation) == Portrait {
		orient = "P"
	}
	now := cfg.clock()

	pdf := fpdf.New(orient, "pt", cfg.pageSize, "")
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(autoBreak, m.Bottom)
	pdf.SetCompression(cfg.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(cfg.creator, true)
	font.Register(pdf)
	pdf.SetFont(font.Family, "", cfg.fontSize)

	return &build{
		cfg:     cfg,
		doc:     doc,
		pdf:     pdf,
		font:    font,
		encode:  font.Encoder(pdf),
		text:    locale.New(cfg.locale),
		now:     now,
		margins: m,
	}
}

func (b *build) decorator() *decorator {
	return &decorator{
		pdf:       b.pdf,
		family:    b.font.Family,
		encode:    b.encode,
		text:      b.text,
		title:     shape.Shape(b.doc.Title),
		date:      shape.Shape(b.dateLabel()),
		timestamp: b.now.Format("02-Jan-2006 15:04"),
	}
}

// dateLabel formats the header date with the configured label function,
// falling back to the plain Gregorian date when that function panics.
func (b *build) dateLabel() (label string) {
	defer func() {
		if p := recover(); p != nil {
			b.cfg.logger.Warn("date label failed, using gregorian date", "err", p)
			label = plainDate(b.now)
		}
	}()
	return b.cfg.dateLabel(b.now)
}

// attachAssets loads the optional logo, letterhead and reference code.
// Missing or unreadable files are logged and skipped.
func (b *build) attachAssets(d *decorator) {
	log := b.cfg.logger
	if p := b.cfg.logoPath; p != "" {
		data, err := b.cfg.readFile(p)
		if err == nil {
			d.logo, err = registerLogo(b.pdf, data)
		}
		if err != nil {
			log.Warn("logo skipped", "path", p, "err", err)
		}
	}
	if p := b.cfg.letterhead; p != "" {
		data, err := b.cfg.readFile(p)
		if err == nil {
			d.letterhead, err = importLetterhead(b.pdf, data)
		}
		if err != nil {
			log.Warn("letterhead skipped", "path", p, "err", err)
		}
	}
	if code := b.cfg.reference; code != "" {
		ref, err := stamp.Register(b.pdf, code, b.cfg.referenceKind)
		if err != nil {
			log.Warn("reference code skipped", "err", err)
		} else {
			d.ref = ref
		}
	}
}

func (b *build) width() float64 {
	pageW, _ := b.pdf.GetPageSize()
	return pageW - b.margins.Left - b.margins.Right
}

// ensureSpace starts a new page when less than h points remain.
func (b *build) ensureSpace(h float64) {
	_, pageH := b.pdf.GetPageSize()
	if b.pdf.GetY()+h > pageH-b.margins.Bottom {
		b.pdf.AddPage()
	}
}

// line writes one shaped line across the body width, right aligned when it
// is right-to-left unless align is given.
func (b *build) line(text string, style string, size, h float64, align string) {
	shaped := shape.Shape(text)
	if align == "" {
		align = "L"
		if shape.IsRTL(shaped) {
			align = "R"
		}
	}
	b.pdf.SetFont(b.font.Family, style, size)
	b.pdf.SetX(b.margins.Left)
	b.pdf.CellFormat(b.width(), h, b.encode(shaped), "", 1, align, false, 0, "")
	b.pdf.SetFont(b.font.Family, "", b.cfg.fontSize)
}

// compose lays out the full report.
func (b *build) compose() error {
	d := b.decorator()
	b.attachAssets(d)
	d.install()
	b.pdf.AddPage()

	if b.doc.Title != "" {
		b.line(b.doc.Title, "B", docTitleSize, 26, "C")
		b.pdf.Ln(6)
	}

	for i, s := range b.doc.Sections {
		if i > 0 {
			b.pdf.Ln(sectionGap)
		}
		b.ensureSpace(headingHeight + minTableHeight)
		if s.Heading != "" {
			b.line(s.Heading, "B", headingSize, headingHeight, "")
		}
		if s.Data.Empty() {
			b.line(b.text.NoData(), "", b.cfg.fontSize, noDataHeight, "")
			continue
		}
		if err := b.table(s); err != nil {
			return fmt.Errorf("pdfreport: section %d %q: %w", i, s.Heading, err)
		}
		if b.pdf.Err() {
			return b.pdf.Error()
		}
	}
	return b.pdf.Error()
}

// table formats, sizes and renders one section's dataset.
func (b *build) table(s Section) error {
	cols := s.Data.Columns()
	rows := s.Data.Rows()

	center := table.CellStyle{Align: "C"}
	head := make([]table.Block, len(cols))
	headText := make([]string, len(cols))
	for i, c := range cols {
		head[i] = table.Format(c, center, center)
		headText[i] = head[i].Text
	}

	var base, rtl table.CellStyle
	body := make([][]table.Block, len(rows))
	bodyText := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = make([]table.Block, len(row))
		bodyText[i] = make([]string, len(row))
		for j, v := range row {
			body[i][j] = table.Format(v, base, rtl)
			bodyText[i][j] = body[i][j].Text
		}
	}

	b.pdf.SetFont(b.font.Family, "", b.cfg.fontSize)
	measure := func(s string) float64 { return b.pdf.GetStringWidth(b.encode(s)) }
	widths := table.AllocateWidths(measure, headText, bodyText, b.width(), s.wideIndex(), b.cfg.widths)

	c := &table.Chunker{
		PDF:    b.pdf,
		Widths: widths,
		Style:  table.ReportStyle(b.font.Family, b.cfg.fontSize),
		Encode: b.encode,
		Size:   b.cfg.chunkSize,
		X:      b.margins.Left,
	}
	spans, err := c.Render(head, body)
	b.chunks += len(spans)
	b.pdf.SetFont(b.font.Family, "", b.cfg.fontSize)
	b.pdf.SetX(b.margins.Left)
	return err
}

// output closes the document and returns its bytes.
func (b *build) output() (*Result, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &Result{Bytes: buf.Bytes(), Pages: b.pdf.PageNo(), Chunks: b.chunks}, nil
}
