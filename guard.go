package pdfreport

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/lvillar/pdfreport/fontres"
	"github.com/lvillar/pdfreport/internal/locale"
	"github.com/lvillar/pdfreport/shape"
)

// State tells how a report was produced.
type State int

const (
	// StateNormal is the full layout.
	StateNormal State = iota
	// StateDegraded is the plain text rebuild made after the full layout
	// failed.
	StateDegraded
)

func (s State) String() string {
	if s == StateDegraded {
		return "degraded"
	}
	return "normal"
}

// Result is a rendered report.
type Result struct {
	Bytes  []byte
	State  State
	Cause  error // why the report is degraded, nil otherwise
	Pages  int
	Chunks int // table batches drawn, 0 when degraded
}

const plainLineHeight = 12

// Render builds doc. Content problems never surface as errors: when the full
// layout fails or panics the report is rebuilt as plain lines and returned
// with StateDegraded and the cause. An error is returned only for a nil
// document or when not even a minimal PDF can be written.
func (r *Renderer) Render(doc *ReportDocument) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	log := r.cfg.logger.With("title", doc.Title)
	font := r.cfg.fonts.Resolve()
	log.Debug("font resolved", "font", font.Family, "source", font.Source, "arabic", font.Arabic)

	res, cause := protect(func() (*Result, error) {
		b := r.newBuild(doc, font, false)
		if err := b.compose(); err != nil {
			return nil, err
		}
		return b.output()
	})
	if cause == nil {
		log.Debug("report rendered", "state", StateNormal, "pages", res.Pages, "chunks", res.Chunks)
		return res, nil
	}
	log.Warn("report degraded", "state", StateDegraded, "err", cause)
	log.Debug("degradation trace", "trace", fmt.Sprintf("%+v", cause))

	res, err := protect(func() (*Result, error) {
		return r.plain(doc, font)
	})
	if err != nil {
		log.Error("plain rebuild failed", "err", err)
		res, err = protect(func() (*Result, error) {
			return r.minimal(doc)
		})
		if err != nil {
			return nil, fmt.Errorf("pdfreport: render %q: %w", doc.Title, err)
		}
	}
	res.State = StateDegraded
	res.Cause = cause
	return res, nil
}

// protect runs fn, turning a panic into an error that carries the stack.
func protect(fn func() (*Result, error)) (res *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			if e, ok := p.(error); ok {
				err = errors.WithStack(e)
			} else {
				err = errors.Errorf("panic: %v", p)
			}
		}
	}()
	return fn()
}

// plain rebuilds doc as one text line per row, cells joined with " | ".
func (r *Renderer) plain(doc *ReportDocument, font fontres.Handle) (*Result, error) {
	b := r.newBuild(doc, font, true)
	b.decorator().install()
	b.pdf.AddPage()

	if doc.Title != "" {
		b.line(doc.Title, "B", docTitleSize, 26, "C")
	}
	b.paragraph(b.text.Degraded())
	b.pdf.Ln(6)

	for _, s := range doc.Sections {
		if s.Heading != "" {
			b.line(s.Heading, "B", headingSize, headingHeight, "")
		}
		if s.Data.Empty() {
			b.paragraph(b.text.NoData())
			continue
		}
		b.paragraph(b.joinCells(s.Data.Columns()))
		for _, row := range s.Data.Rows() {
			b.paragraph(b.joinCells(row))
		}
		b.pdf.Ln(sectionGap)
		if b.pdf.Err() {
			return nil, b.pdf.Error()
		}
	}
	return b.output()
}

func (b *build) joinCells(cells []string) string {
	line := strings.Join(cells, " | ")
	line = strings.ReplaceAll(line, "\n", " ")
	return runewidth.Truncate(line, b.cfg.lineLimit, "...")
}

// paragraph writes wrapped text that may flow onto following pages.
func (b *build) paragraph(text string) {
	shaped := shape.Shape(text)
	align := "L"
	if shape.IsRTL(shaped) {
		align = "R"
	}
	b.pdf.SetX(b.margins.Left)
	b.pdf.MultiCell(b.width(), plainLineHeight, b.encode(shaped), "", align, false)
}

// minimal writes the title and the degraded notice with the core font only.
func (r *Renderer) minimal(doc *ReportDocument) (*Result, error) {
	now := r.cfg.clock()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetFont(fontres.BuiltinFamily, "B", docTitleSize)
	pdf.AddPage()

	encode := pdf.UnicodeTranslatorFromDescriptor("")
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width -= left + right
	pdf.MultiCell(width, 20, encode(doc.Title), "", "L", false)
	pdf.SetFont(fontres.BuiltinFamily, "", r.cfg.fontSize)
	pdf.MultiCell(width, plainLineHeight, encode(locale.New("en").Degraded()), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &Result{Bytes: buf.Bytes(), Pages: pdf.PageNo()}, nil
}
