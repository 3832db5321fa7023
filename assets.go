package pdfreport

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Logo placement box in points.
const (
	logoMaxW  = 2.5 * cm
	logoMaxH  = 40
	logoMaxPx = 600
)

// logo is a registered header image.
type logo struct {
	name string
	w, h float64
}

// normalizeLogo decodes any supported image and re-encodes it as an 8-bit
// PNG no larger than logoMaxPx on either side.
func normalizeLogo(data []byte) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdfreport: decode logo: %w", err)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("pdfreport: empty %s logo", format)
	}
	if m := max(w, h); m > logoMaxPx {
		w = max(1, w*logoMaxPx/m)
		h = max(1, h*logoMaxPx/m)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("pdfreport: encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// registerLogo adds the normalized image to pdf and fits it in the logo box.
func registerLogo(pdf *fpdf.Fpdf, data []byte) (*logo, error) {
	pngData, err := normalizeLogo(data)
	if err != nil {
		return nil, err
	}
	const name = "report-logo"
	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(pngData))
	if pdf.Err() || info == nil {
		return nil, fmt.Errorf("pdfreport: register logo: %w", pdf.Error())
	}
	w, h := info.Width(), info.Height()
	scale := min(logoMaxW/w, logoMaxH/h)
	return &logo{name: name, w: w * scale, h: h * scale}, nil
}

// letterhead is an imported PDF page drawn behind every page.
type letterhead struct {
	imp *gofpdi.Importer
	tpl int
}

func importLetterhead(pdf *fpdf.Fpdf, data []byte) (lh *letterhead, err error) {
	defer func() {
		if p := recover(); p != nil {
			lh, err = nil, fmt.Errorf("pdfreport: import letterhead: %v", p)
		}
	}()
	imp := gofpdi.NewImporter()
	var rs io.ReadSeeker = bytes.NewReader(data)
	tpl := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	if pdf.Err() {
		return nil, fmt.Errorf("pdfreport: import letterhead: %w", pdf.Error())
	}
	return &letterhead{imp: imp, tpl: tpl}, nil
}

func (l *letterhead) draw(pdf *fpdf.Fpdf) {
	w, h := pdf.GetPageSize()
	l.imp.UseImportedTemplate(pdf, l.tpl, 0, 0, w, h)
}
