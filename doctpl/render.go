package doctpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lvillar/pdfreport"
	"github.com/lvillar/pdfreport/calendar"
)

// Template errors.
var (
	ErrBadRow         = errors.New("doctpl: row must be an array or an object")
	ErrMixedRows      = errors.New("doctpl: rows mix arrays and objects without columns")
	ErrBadOrientation = errors.New("doctpl: unknown orientation")
	ErrBadCalendar    = errors.New("doctpl: unknown calendar")
)

const cm = 72 / 2.54

// Parse decodes a JSON template.
func Parse(jsonTemplate []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(jsonTemplate, &doc); err != nil {
		return nil, fmt.Errorf("doctpl: parsing template: %w", err)
	}
	return &doc, nil
}

// Render parses a JSON template and writes the resulting PDF to w. opts are
// applied after the options the template implies.
func Render(w io.Writer, jsonTemplate []byte, opts ...pdfreport.Option) (*pdfreport.Result, error) {
	doc, err := Parse(jsonTemplate)
	if err != nil {
		return nil, err
	}
	return RenderDocument(w, doc, opts...)
}

// RenderDocument renders a Document struct to a PDF written to w.
func RenderDocument(w io.Writer, doc *Document, opts ...pdfreport.Option) (*pdfreport.Result, error) {
	if doc == nil {
		return nil, pdfreport.ErrNilDocument
	}
	report, err := doc.Report()
	if err != nil {
		return nil, err
	}
	base, err := doc.Options()
	if err != nil {
		return nil, err
	}

	res, err := pdfreport.New(append(base, opts...)...).Render(report)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(res.Bytes); err != nil {
		return nil, fmt.Errorf("doctpl: writing PDF: %w", err)
	}
	return res, nil
}

// Options returns the renderer options the template asks for.
func (d *Document) Options() ([]pdfreport.Option, error) {
	var opts []pdfreport.Option
	if d.PageSize != "" {
		opts = append(opts, pdfreport.WithPageSize(d.PageSize))
	}
	if d.Locale != "" {
		opts = append(opts, pdfreport.WithLocale(d.Locale))
	}
	switch strings.ToLower(d.Calendar) {
	case "", "gregorian":
	case "hijri":
		opts = append(opts, pdfreport.WithDateLabel(calendar.ShortLabel))
	default:
		return nil, fmt.Errorf("%w %q", ErrBadCalendar, d.Calendar)
	}
	if d.Logo != "" {
		opts = append(opts, pdfreport.WithLogo(d.Logo))
	}
	if d.Letterhead != "" {
		opts = append(opts, pdfreport.WithLetterhead(d.Letterhead))
	}
	if ref := d.Reference; ref != nil && ref.Code != "" {
		kind, err := pdfreport.ParseReferenceKind(strings.ToLower(ref.Kind))
		if err != nil {
			return nil, fmt.Errorf("doctpl: reference: %w", err)
		}
		opts = append(opts, pdfreport.WithReference(ref.Code, kind))
	}
	return opts, nil
}

// Report converts the template to a report document.
func (d *Document) Report() (*pdfreport.ReportDocument, error) {
	o := pdfreport.ParseOrientation(d.Orientation)
	if o == pdfreport.DefaultOrientation && strings.TrimSpace(d.Orientation) != "" {
		return nil, fmt.Errorf("%w %q", ErrBadOrientation, d.Orientation)
	}
	report := &pdfreport.ReportDocument{Title: d.Title, Orientation: o}
	if m := d.Margin; m != nil {
		report.Margins = pdfreport.Margins{Left: m.Left * cm, Right: m.Right * cm, Top: m.Top * cm, Bottom: m.Bottom * cm}
	}
	for i, s := range d.Sections {
		ds, err := s.Dataset()
		if err != nil {
			return nil, fmt.Errorf("doctpl: section %d: %w", i, err)
		}
		report.Sections = append(report.Sections, pdfreport.Section{
			Heading:    s.Heading,
			Data:       ds,
			WideColumn: s.WideColumn,
		})
	}
	return report, nil
}

// Dataset builds the section's table. A section with neither columns nor
// rows has no data.
func (s Section) Dataset() (*pdfreport.Dataset, error) {
	if len(s.Columns) == 0 && len(s.Rows) == 0 {
		return nil, nil
	}

	rows := make([]any, len(s.Rows))
	var arrays, objects int
	for i, raw := range s.Rows {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&rows[i]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		switch rows[i].(type) {
		case []any:
			arrays++
		case map[string]any:
			objects++
		default:
			return nil, fmt.Errorf("row %d: %w", i, ErrBadRow)
		}
	}

	if len(s.Columns) == 0 && objects > 0 {
		if arrays > 0 {
			return nil, ErrMixedRows
		}
		records := make([]map[string]any, len(rows))
		for i, r := range rows {
			records[i] = r.(map[string]any)
		}
		return pdfreport.FromRecords(nil, records)
	}

	positional := make([][]any, len(rows))
	for i, r := range rows {
		switch x := r.(type) {
		case []any:
			positional[i] = x
		case map[string]any:
			vals := make([]any, len(s.Columns))
			for j, c := range s.Columns {
				vals[j] = x[c]
			}
			positional[i] = vals
		}
	}
	return pdfreport.NewDataset(s.Columns, positional...)
}
