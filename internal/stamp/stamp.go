// Package stamp draws a machine-readable reference code on a page.
package stamp

import (
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/barcode"
	"github.com/boombuler/barcode/qr"
)

// Kind selects the symbology.
type Kind int

const (
	QR Kind = iota
	Code128
	PDF417
)

func (k Kind) String() string {
	switch k {
	case QR:
		return "qr"
	case Code128:
		return "code128"
	case PDF417:
		return "pdf417"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a symbology name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "qr":
		return QR, nil
	case "code128":
		return Code128, nil
	case "pdf417":
		return PDF417, nil
	}
	return QR, fmt.Errorf("stamp: unknown symbology %q", s)
}

// ErrEmpty is returned for an empty reference code.
var ErrEmpty = errors.New("stamp: empty code")

// Stamp is a registered code ready to be drawn on any page of the document
// it was registered with.
type Stamp struct {
	key  string
	kind Kind
}

// Register encodes code on pdf. Code128 cannot carry non-ASCII text; such
// codes fall back to QR.
func Register(pdf *fpdf.Fpdf, code string, kind Kind) (*Stamp, error) {
	if code == "" {
		return nil, ErrEmpty
	}
	if kind == Code128 && !ascii(code) {
		kind = QR
	}

	var key string
	switch kind {
	case Code128:
		key = barcode.RegisterCode128(pdf, code)
	case PDF417:
		key = barcode.RegisterPdf417(pdf, code, 6, 2)
	default:
		key = barcode.RegisterQR(pdf, code, qr.M, qr.Auto)
	}
	if pdf.Err() {
		return nil, fmt.Errorf("stamp: %s: %w", kind, pdf.Error())
	}
	return &Stamp{key: key, kind: kind}, nil
}

// Kind returns the symbology actually used.
func (s *Stamp) Kind() Kind {
	return s.kind
}

// Size returns the drawn size for a band of height h: square for QR,
// wide strips for the linear and stacked codes.
func (s *Stamp) Size(h float64) (w, ht float64) {
	switch s.kind {
	case Code128:
		return h * 4, h * 0.6
	case PDF417:
		return h * 3, h * 0.8
	default:
		return h, h
	}
}

// Draw places the code with its top-right corner at (right, top).
func (s *Stamp) Draw(pdf *fpdf.Fpdf, right, top, h float64) {
	w, ht := s.Size(h)
	barcode.Barcode(pdf, s.key, right-w, top, w, ht, false)
}

func ascii(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7e || s[i] < 0x20 {
			return false
		}
	}
	return true
}
