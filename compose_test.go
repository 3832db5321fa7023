package pdfreport_test

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/bmp"

	"github.com/lvillar/pdfreport"
	"github.com/lvillar/pdfreport/calendar"
	"github.com/lvillar/pdfreport/fontres"
	"github.com/lvillar/pdfreport/table"
)

var fixedNow = time.Date(2000, 1, 1, 9, 30, 0, 0, time.UTC)

func newRenderer(opts ...pdfreport.Option) *pdfreport.Renderer {
	base := []pdfreport.Option{
		pdfreport.WithFonts(fontres.Fixed(fontres.Builtin())),
		pdfreport.WithClock(func() time.Time { return fixedNow }),
		pdfreport.WithCompression(false),
	}
	return pdfreport.New(append(base, opts...)...)
}

func mustDataset(t *testing.T, columns []string, rows ...[]any) *pdfreport.Dataset {
	t.Helper()
	ds, err := pdfreport.NewDataset(columns, rows...)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return ds
}

func render(t *testing.T, r *pdfreport.Renderer, doc *pdfreport.ReportDocument) *pdfreport.Result {
	t.Helper()
	res, err := r.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(res.Bytes, []byte("%PDF")) {
		t.Fatal("output does not start with %PDF")
	}
	t.Logf("%s report: %d bytes, %d pages", res.State, len(res.Bytes), res.Pages)
	return res
}

func sampleDoc(t *testing.T) *pdfreport.ReportDocument {
	ds := mustDataset(t, []string{"id", "title", "author"},
		[]any{1, "Muqaddimah", "Ibn Khaldun"},
		[]any{2, "كتاب الحيوان", "الجاحظ"},
		[]any{3, nil, 4.5},
	)
	return &pdfreport.ReportDocument{
		Title:    "Quarterly Report",
		Sections: []pdfreport.Section{{Heading: "Books", Data: ds}},
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := newRenderer()
	a := render(t, r, sampleDoc(t))
	b := render(t, r, sampleDoc(t))
	if !bytes.Equal(a.Bytes, b.Bytes) {
		t.Error("equal input produced different bytes")
	}
	if a.State != pdfreport.StateNormal {
		t.Errorf("state = %v, cause %v", a.State, a.Cause)
	}
}

func TestComposeDefaultRenderer(t *testing.T) {
	ds := mustDataset(t, []string{"a"}, []any{"x"})
	out, err := pdfreport.Compose("Plain", pdfreport.Section{Heading: "One", Data: ds})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not start with %PDF")
	}
}

func TestEmptySectionsStillProducePDF(t *testing.T) {
	empty := mustDataset(t, []string{"id", "name"})
	blank := mustDataset(t, []string{"id", "note"}, []any{1, ""}, []any{2, nil})

	res := render(t, newRenderer(), &pdfreport.ReportDocument{
		Title: "Empty",
		Sections: []pdfreport.Section{
			{Heading: "No rows", Data: empty},
			{Heading: "Nil data"},
			{Heading: "Blank column", Data: blank},
		},
	})
	if res.State != pdfreport.StateNormal {
		t.Fatalf("state = %v, cause %v", res.State, res.Cause)
	}
	if got := strings.Count(string(res.Bytes), "(No data available)"); got != 2 {
		t.Errorf("placeholder drawn %d times, want 2", got)
	}
	if res.Chunks != 1 {
		t.Errorf("chunks = %d, want 1", res.Chunks)
	}
}

func TestNoSections(t *testing.T) {
	res := render(t, newRenderer(), &pdfreport.ReportDocument{Title: "Nothing"})
	if res.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Pages)
	}
}

func TestChunkBoundary(t *testing.T) {
	const chunk = 2
	var rows [][]any
	for i := 0; i < 2*chunk+1; i++ {
		rows = append(rows, []any{i, fmt.Sprintf("item%d", i)})
	}
	ds := mustDataset(t, []string{"Serial", "Label"}, rows...)

	res := render(t, newRenderer(pdfreport.WithChunkSize(chunk)), &pdfreport.ReportDocument{
		Title:    "Chunks",
		Sections: []pdfreport.Section{{Heading: "Items", Data: ds}},
	})
	if res.Chunks != 3 {
		t.Errorf("chunks = %d, want 3", res.Chunks)
	}
	if res.Pages != 3 {
		t.Errorf("pages = %d, want 3", res.Pages)
	}
	if got := strings.Count(string(res.Bytes), "(Serial)"); got != 3 {
		t.Errorf("header drawn %d times, want 3", got)
	}
	if got := strings.Count(string(res.Bytes), "(item4)"); got != 1 {
		t.Errorf("last row drawn %d times, want 1", got)
	}
}

func TestHugeTokenDegrades(t *testing.T) {
	ds := mustDataset(t, []string{"id", "blob"}, []any{1, strings.Repeat("x", 100000)})

	res := render(t, newRenderer(), &pdfreport.ReportDocument{
		Title:    "Overflow",
		Sections: []pdfreport.Section{{Heading: "Data", Data: ds}},
	})
	if res.State != pdfreport.StateDegraded {
		t.Fatalf("state = %v, want degraded", res.State)
	}
	if !errors.Is(res.Cause, table.ErrRowOverflow) {
		t.Errorf("cause = %v, want ErrRowOverflow", res.Cause)
	}
	if res.Chunks != 0 {
		t.Errorf("chunks = %d, want 0", res.Chunks)
	}
	if !strings.Contains(string(res.Bytes), "(id | blob)") {
		t.Error("plain header line missing")
	}
}

func TestDateLabelPanicPrintsPlainDate(t *testing.T) {
	r := newRenderer(pdfreport.WithDateLabel(func(time.Time) string {
		panic("calendar exploded")
	}))
	res := render(t, r, sampleDoc(t))
	if res.State != pdfreport.StateNormal {
		t.Fatalf("state = %v, cause %v", res.State, res.Cause)
	}
	out := string(res.Bytes)
	for _, want := range []string{"(Muqaddimah)", "(Ibn Khaldun)", "(01-Jan-2000)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestAssetPanicKeepsRows(t *testing.T) {
	r := newRenderer(
		pdfreport.WithLogo("logo.png"),
		pdfreport.WithReadFile(func(string) ([]byte, error) {
			panic("disk exploded")
		}),
	)
	res := render(t, r, sampleDoc(t))
	if res.State != pdfreport.StateDegraded {
		t.Fatalf("state = %v, want degraded", res.State)
	}
	if res.Cause == nil || !strings.Contains(res.Cause.Error(), "disk exploded") {
		t.Errorf("cause = %v", res.Cause)
	}
	if !strings.Contains(string(res.Bytes), "(1 | Muqaddimah | Ibn Khaldun)") {
		t.Error("plain row missing")
	}
}

func TestRenderNil(t *testing.T) {
	if _, err := newRenderer().Render(nil); !errors.Is(err, pdfreport.ErrNilDocument) {
		t.Errorf("err = %v, want ErrNilDocument", err)
	}
}

func TestHeaderAndFooter(t *testing.T) {
	res := render(t, newRenderer(pdfreport.WithDateLabel(calendar.ShortLabel)), sampleDoc(t))
	out := string(res.Bytes)
	for _, want := range []string{"(24-09-20 H)", "(Page 1)", "(01-Jan-2000 09:30)", "(Quarterly Report)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestArabicLocale(t *testing.T) {
	res := render(t, newRenderer(pdfreport.WithLocale("ar")), &pdfreport.ReportDocument{
		Title:    "تقرير",
		Sections: []pdfreport.Section{{Heading: "فارغ"}},
	})
	if res.State != pdfreport.StateNormal {
		t.Errorf("state = %v, cause %v", res.State, res.Cause)
	}
}

func TestOrientation(t *testing.T) {
	narrow := mustDataset(t, []string{"a", "b"}, []any{1, 2})
	wide := mustDataset(t, []string{"a", "b", "c", "d", "e", "f", "g"}, []any{1, 2, 3, 4, 5, 6, 7})

	// MediaBox is written with the page width first.
	tests := []struct {
		name string
		o    pdfreport.Orientation
		data *pdfreport.Dataset
		want string
	}{
		{"default", pdfreport.DefaultOrientation, narrow, "/MediaBox [0 0 841.89 595.28]"},
		{"portrait", pdfreport.Portrait, wide, "/MediaBox [0 0 595.28 841.89]"},
		{"auto narrow", pdfreport.AutoOrientation, narrow, "/MediaBox [0 0 595.28 841.89]"},
		{"auto wide", pdfreport.AutoOrientation, wide, "/MediaBox [0 0 841.89 595.28]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := render(t, newRenderer(), &pdfreport.ReportDocument{
				Title:       "O",
				Orientation: tt.o,
				Sections:    []pdfreport.Section{{Data: tt.data}},
			})
			if !strings.Contains(string(res.Bytes), tt.want) {
				t.Errorf("missing %s", tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 120, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 2), G: 51, B: 102, A: 255})
		}
	}
	return img
}

func TestLogo(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testImage()); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"png":     writeFile(t, "logo.png", pngBuf.Bytes()),
		"bmp":     writeFile(t, "logo.bmp", bmpBuf.Bytes()),
		"garbage": writeFile(t, "logo.png", []byte("not an image")),
		"missing": filepath.Join(t.TempDir(), "none.png"),
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			res := render(t, newRenderer(pdfreport.WithLogo(path)), sampleDoc(t))
			if res.State != pdfreport.StateNormal {
				t.Errorf("state = %v, cause %v", res.State, res.Cause)
			}
		})
	}
}

func TestReferenceCode(t *testing.T) {
	for _, kind := range []pdfreport.ReferenceKind{pdfreport.ReferenceQR, pdfreport.ReferenceCode128, pdfreport.ReferencePDF417} {
		t.Run(kind.String(), func(t *testing.T) {
			res := render(t, newRenderer(pdfreport.WithReference("RPT-2000-001", kind)), sampleDoc(t))
			if res.State != pdfreport.StateNormal {
				t.Errorf("state = %v, cause %v", res.State, res.Cause)
			}
		})
	}
}

func TestLetterhead(t *testing.T) {
	src := fpdf.New("L", "pt", "A4", "")
	src.AddPage()
	src.SetFillColor(230, 236, 245)
	src.Rect(0, 0, 841.89, 40, "F")
	var buf bytes.Buffer
	if err := src.Output(&buf); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "letterhead.pdf", buf.Bytes())

	res := render(t, newRenderer(pdfreport.WithLetterhead(path)), sampleDoc(t))
	if res.State != pdfreport.StateNormal {
		t.Errorf("state = %v, cause %v", res.State, res.Cause)
	}
}

func ExampleRenderer_Render() {
	ds, err := pdfreport.NewDataset([]string{"id", "title"},
		[]any{1, "Muqaddimah"},
		[]any{2, "Kalila wa Dimna"},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	r := pdfreport.New(
		pdfreport.WithFonts(fontres.Fixed(fontres.Builtin())),
		pdfreport.WithOrientation(pdfreport.AutoOrientation),
	)
	res, err := r.Render(&pdfreport.ReportDocument{
		Title:    "Catalogue",
		Sections: []pdfreport.Section{{Heading: "Books", Data: ds}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.State, res.Pages, res.Chunks, string(res.Bytes[:4]))
	// Output: normal 1 1 %PDF
}
