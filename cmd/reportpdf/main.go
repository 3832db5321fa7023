// Command reportpdf renders a JSON report template to PDF.
//
// # Installation
//
//	go install github.com/lvillar/pdfreport/cmd/reportpdf@latest
//
// # Usage
//
//	reportpdf -in report.json -out report.pdf
//	cat report.json | reportpdf -hijri -locale ar > report.pdf
//	reportpdf -in report.json -preview
//
// Font files given with -font are tried first, then the files listed in
// PDFREPORT_FONT_PATHS, then the system fonts.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lvillar/pdfreport"
	"github.com/lvillar/pdfreport/calendar"
	"github.com/lvillar/pdfreport/doctpl"
	"github.com/lvillar/pdfreport/fontres"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	in, out       string
	fonts         string
	logo          string
	letterhead    string
	locale        string
	orientation   string
	reference     string
	referenceKind string
	hijri         bool
	chunk         int
	preview       bool
	previewRows   int
	verbose       bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("reportpdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "-", "template file, - for stdin")
	fs.StringVar(&o.out, "out", "-", "output PDF file, - for stdout")
	fs.StringVar(&o.fonts, "font", "", "font files to try first, "+string(os.PathListSeparator)+" separated")
	fs.StringVar(&o.logo, "logo", "", "logo image for the page header")
	fs.StringVar(&o.letterhead, "letterhead", "", "PDF whose first page is drawn behind every page")
	fs.StringVar(&o.locale, "locale", "", "language of generated labels (en, ar)")
	fs.StringVar(&o.orientation, "orientation", "", "landscape, portrait or auto")
	fs.StringVar(&o.reference, "reference", "", "reference code printed in the footer")
	fs.StringVar(&o.referenceKind, "reference-kind", "qr", "qr, code128 or pdf417")
	fs.BoolVar(&o.hijri, "hijri", false, "date the header with the Hijri calendar")
	fs.IntVar(&o.chunk, "chunk", 0, "rows per table batch")
	fs.BoolVar(&o.preview, "preview", false, "print the datasets as text instead of rendering")
	fs.IntVar(&o.previewRows, "preview-rows", 20, "rows shown per section with -preview")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := execute(o, stdin, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "reportpdf: %v\n", err)
		return 1
	}
	return 0
}

func execute(o options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	src, err := readInput(o.in, stdin)
	if err != nil {
		return err
	}
	doc, err := doctpl.Parse(src)
	if err != nil {
		return err
	}
	if o.orientation != "" {
		doc.Orientation = o.orientation
	}
	if o.preview {
		return preview(stdout, doc, o.previewRows)
	}

	opts, err := rendererOptions(o, logger)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	res, err := doctpl.RenderDocument(&buf, doc, opts...)
	if err != nil {
		return err
	}
	if err := writeOutput(o.out, stdout, buf.Bytes()); err != nil {
		return err
	}
	logger.Info("report written", "out", o.out, "state", res.State, "pages", res.Pages, "bytes", len(res.Bytes))
	if res.State == pdfreport.StateDegraded {
		logger.Warn("report was simplified", "err", res.Cause)
	}
	return nil
}

// writeOutput writes a finished PDF, so a failed render never leaves an
// empty file behind.
func writeOutput(path string, stdout io.Writer, pdf []byte) error {
	if path == "-" {
		_, err := stdout.Write(pdf)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(pdf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func rendererOptions(o options, logger *slog.Logger) ([]pdfreport.Option, error) {
	var cands []fontres.Candidate
	for _, p := range filepath.SplitList(o.fonts) {
		if p = strings.TrimSpace(p); p != "" {
			cands = append(cands, fontres.Candidate{Path: p})
		}
	}
	cands = append(cands, fontres.DefaultCandidates()...)

	opts := []pdfreport.Option{
		pdfreport.WithLogger(logger),
		pdfreport.WithFonts(fontres.NewResolver(cands, fontres.WithLogger(logger))),
	}
	if o.logo != "" {
		opts = append(opts, pdfreport.WithLogo(o.logo))
	}
	if o.letterhead != "" {
		opts = append(opts, pdfreport.WithLetterhead(o.letterhead))
	}
	if o.locale != "" {
		opts = append(opts, pdfreport.WithLocale(o.locale))
	}
	if o.hijri {
		opts = append(opts, pdfreport.WithDateLabel(calendar.ShortLabel))
	}
	if o.chunk > 0 {
		opts = append(opts, pdfreport.WithChunkSize(o.chunk))
	}
	if o.reference != "" {
		kind, err := pdfreport.ParseReferenceKind(o.referenceKind)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pdfreport.WithReference(o.reference, kind))
	}
	return opts, nil
}

// preview prints every section as a text table.
func preview(w io.Writer, doc *doctpl.Document, maxRows int) error {
	report, err := doc.Report()
	if err != nil {
		return err
	}
	if report.Title != "" {
		fmt.Fprintln(w, report.Title)
	}
	for _, s := range report.Sections {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.SetTitle(s.Heading)

		if s.Data.Empty() {
			tw.AppendRow(table.Row{"(no data)"})
			tw.Render()
			continue
		}
		header := table.Row{}
		for _, c := range s.Data.Columns() {
			header = append(header, c)
		}
		tw.AppendHeader(header)

		rows := s.Data.Rows()
		for i, r := range rows {
			if maxRows > 0 && i == maxRows {
				break
			}
			row := make(table.Row, len(r))
			for j, v := range r {
				row[j] = v
			}
			tw.AppendRow(row)
		}
		if maxRows > 0 && len(rows) > maxRows {
			tw.AppendFooter(table.Row{fmt.Sprintf("%d more rows", len(rows)-maxRows)})
		}
		tw.Render()
	}
	return nil
}
