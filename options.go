package pdfreport

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lvillar/pdfreport/fontres"
	"github.com/lvillar/pdfreport/internal/stamp"
	"github.com/lvillar/pdfreport/table"
)

// ReferenceKind selects the symbology of the footer reference code.
type ReferenceKind = stamp.Kind

// Reference code symbologies.
const (
	ReferenceQR      = stamp.QR
	ReferenceCode128 = stamp.Code128
	ReferencePDF417  = stamp.PDF417
)

// ParseReferenceKind maps "qr", "code128" or "pdf417" to a ReferenceKind.
func ParseReferenceKind(s string) (ReferenceKind, error) {
	return stamp.ParseKind(s)
}

// Option is a functional option for configuring a Renderer via New.
type Option func(*config)

type config struct {
	orientation   Orientation
	pageSize      string
	margins       Margins
	fonts         *fontres.Resolver
	fontSize      float64
	chunkSize     int
	widths        table.WidthConfig
	logoPath      string
	letterhead    string
	reference     string
	referenceKind ReferenceKind
	dateLabel     func(time.Time) string
	clock         func() time.Time
	locale        string
	logger        *slog.Logger
	lineLimit     int
	creator       string
	compress      bool
	readFile      func(string) ([]byte, error)
}

const plainDateLayout = "02-Jan-2006"

func plainDate(t time.Time) string { return t.Format(plainDateLayout) }

func defaultConfig() config {
	return config{
		orientation: Landscape,
		pageSize:    "A4",
		margins:     DefaultMargins(),
		fontSize:    9,
		chunkSize:   table.DefaultChunkSize,
		widths:      table.DefaultWidthConfig(),
		dateLabel:   plainDate,
		clock:       time.Now,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		lineLimit:   1000,
		creator:     "pdfreport",
		compress:    true,
		readFile:    os.ReadFile,
	}
}

// WithOrientation sets the orientation used by documents that leave it at
// DefaultOrientation. The default is Landscape.
func WithOrientation(o Orientation) Option {
	return func(c *config) {
		c.orientation = o
	}
}

// WithPageSize sets the page size by name, e.g. "A4", "A3" or "Letter".
func WithPageSize(size string) Option {
	return func(c *config) {
		c.pageSize = size
	}
}

// WithMargins sets the margins used by documents without their own.
func WithMargins(m Margins) Option {
	return func(c *config) {
		c.margins = m
	}
}

// WithFonts sets the font resolver. The default is fontres.Default().
func WithFonts(r *fontres.Resolver) Option {
	return func(c *config) {
		c.fonts = r
	}
}

// WithFontSize sets the body text size in points. The default is 9.
func WithFontSize(size float64) Option {
	return func(c *config) {
		if size > 0 {
			c.fontSize = size
		}
	}
}

// WithChunkSize sets how many rows go into each table batch.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithWidthConfig sets the column width bounds.
func WithWidthConfig(w table.WidthConfig) Option {
	return func(c *config) {
		c.widths = w
	}
}

// WithLogo draws the image at path in the top-left corner of every page.
// PNG, JPEG, GIF, BMP, TIFF and WebP are accepted. An unreadable logo is
// skipped with a warning.
func WithLogo(path string) Option {
	return func(c *config) {
		c.logoPath = path
	}
}

// WithLetterhead draws the first page of the PDF at path as the background
// of every page.
func WithLetterhead(path string) Option {
	return func(c *config) {
		c.letterhead = path
	}
}

// WithReference prints code as a machine-readable symbol in the footer of
// every page.
func WithReference(code string, kind ReferenceKind) Option {
	return func(c *config) {
		c.reference = code
		c.referenceKind = kind
	}
}

// WithDateLabel replaces the header date format. calendar.ShortLabel
// prints the Hijri date. If fn panics the plain date is printed instead.
func WithDateLabel(fn func(time.Time) string) Option {
	return func(c *config) {
		if fn != nil {
			c.dateLabel = fn
		}
	}
}

// WithClock sets the time source for the header date, footer timestamp and
// PDF metadata. Fixing it makes output byte-for-byte reproducible.
func WithClock(fn func() time.Time) Option {
	return func(c *config) {
		if fn != nil {
			c.clock = fn
		}
	}
}

// WithLocale sets the language of the strings the renderer prints itself,
// as a BCP 47 tag. English and Arabic are available.
func WithLocale(tag string) Option {
	return func(c *config) {
		c.locale = tag
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDegradedLineLimit caps the display width of each line of a
// simplified report. The default is 1000 cells.
func WithDegradedLineLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.lineLimit = n
		}
	}
}

// WithCreator sets the PDF Creator metadata.
func WithCreator(s string) Option {
	return func(c *config) {
		c.creator = s
	}
}

// WithCompression turns page stream compression on or off. It is on by
// default.
func WithCompression(on bool) Option {
	return func(c *config) {
		c.compress = on
	}
}

// WithReadFile replaces os.ReadFile for logo and letterhead loading.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(c *config) {
		if fn != nil {
			c.readFile = fn
		}
	}
}
