// Package fontres finds the Unicode font every report is drawn with.
//
// A Resolver walks an ordered list of candidate faces and keeps the first
// one that parses and registers with fpdf. The result is cached for the
// life of the Resolver; Default returns the process-wide instance. When no
// candidate works the builtin Helvetica face is returned, which cannot draw
// Arabic but always renders.
package fontres

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Source tells where a Handle's face came from.
type Source int

const (
	SourceBuiltin Source = iota
	SourceFile
	SourceEmbedded
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEmbedded:
		return "embedded"
	default:
		return "builtin"
	}
}

// BuiltinFamily is the core PDF font used when no candidate is usable.
const BuiltinFamily = "Helvetica"

// EnvFontPaths lists extra candidate files, separated by os.PathListSeparator.
// They are tried before the defaults.
const EnvFontPaths = "PDFREPORT_FONT_PATHS"

// Handle is a resolved font.
type Handle struct {
	Family string // name registered with fpdf
	Path   string // candidate path, empty for builtin
	Source Source
	UTF8   bool // false only for the builtin face
	Arabic bool // face has glyphs for Arabic letters

	data []byte
}

// Builtin returns the handle of the core Helvetica face.
func Builtin() Handle {
	return Handle{Family: BuiltinFamily, Source: SourceBuiltin}
}

// Register makes the face available on pdf under h.Family, in regular and
// bold style. It is a no-op for the builtin face.
func (h Handle) Register(pdf *fpdf.Fpdf) {
	if !h.UTF8 {
		return
	}
	pdf.AddUTF8FontFromBytes(h.Family, "", h.data)
	pdf.AddUTF8FontFromBytes(h.Family, "B", h.data)
}

// Encoder returns the function that prepares UTF-8 text for drawing with
// this face on pdf. Core fonts need cp1252.
func (h Handle) Encoder(pdf *fpdf.Fpdf) func(string) string {
	if h.UTF8 {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

// Candidate is one font the resolver may use. Data, when set, is used
// instead of reading Path.
type Candidate struct {
	Path string
	Data []byte
}

func (c Candidate) family() string {
	if c.Path == "" {
		return "Embedded"
	}
	base := filepath.Base(c.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Embedded is the Go Regular face shipped with golang.org/x/image. It covers
// Latin, Greek and Cyrillic but not Arabic.
func Embedded() Candidate {
	return Candidate{Path: "GoRegular.ttf", Data: goregular.TTF}
}

// DefaultCandidates lists the fonts tried by Default, Arabic-capable faces
// first.
func DefaultCandidates() []Candidate {
	var out []Candidate
	if env := os.Getenv(EnvFontPaths); env != "" {
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				out = append(out, Candidate{Path: p})
			}
		}
	}
	for _, p := range []string{
		filepath.Join("static", "fonts", "NotoNaskhArabic-Regular.ttf"),
		filepath.Join("static", "fonts", "Amiri-Regular.ttf"),
		filepath.Join("static", "fonts", "DejaVuSans.ttf"),
		"/usr/share/fonts/truetype/noto/NotoNaskhArabic-Regular.ttf",
		"/usr/share/fonts/truetype/amiri/Amiri-Regular.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	} {
		out = append(out, Candidate{Path: p})
	}
	return append(out, Embedded())
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReadFile replaces os.ReadFile for candidates without inline data.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(r *Resolver) {
		r.readFile = fn
	}
}

// WithLogger sets the logger that records skipped candidates.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// Resolver resolves a font once and caches the result.
type Resolver struct {
	candidates []Candidate
	readFile   func(string) ([]byte, error)
	logger     *slog.Logger

	once   sync.Once
	handle Handle
}

// NewResolver returns a Resolver over candidates, tried in order.
func NewResolver(candidates []Candidate, opts ...Option) *Resolver {
	r := &Resolver{
		candidates: candidates,
		readFile:   os.ReadFile,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fixed returns a Resolver that always yields h without looking at any file.
func Fixed(h Handle) *Resolver {
	r := &Resolver{}
	r.once.Do(func() { r.handle = h })
	return r
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the process-wide Resolver over DefaultCandidates.
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = NewResolver(DefaultCandidates())
	})
	return defaultResolver
}

// Resolve returns the first usable candidate, or Builtin.
func (r *Resolver) Resolve() Handle {
	r.once.Do(func() {
		r.handle = r.resolve()
	})
	return r.handle
}

func (r *Resolver) resolve() Handle {
	for _, c := range r.candidates {
		h, err := r.load(c)
		if err != nil {
			r.logger.Debug("font candidate skipped", "path", c.Path, "err", err)
			continue
		}
		r.logger.Info("font resolved", "family", h.Family, "source", h.Source.String(), "arabic", h.Arabic)
		return h
	}
	r.logger.Warn("no usable font candidate, using builtin face", "family", BuiltinFamily)
	return Builtin()
}

var errNotRegistered = errors.New("fontres: face rejected by fpdf")

func (r *Resolver) load(c Candidate) (h Handle, err error) {
	data, src := c.Data, SourceEmbedded
	if data == nil {
		src = SourceFile
		if data, err = r.readFile(c.Path); err != nil {
			return Handle{}, err
		}
	}

	arabic, err := inspect(data)
	if err != nil {
		return Handle{}, err
	}

	h = Handle{
		Family: c.family(),
		Path:   c.Path,
		Source: src,
		UTF8:   true,
		Arabic: arabic,
		data:   data,
	}
	if err := tryRegister(h); err != nil {
		return Handle{}, err
	}
	return h, nil
}

// inspect parses the face and reports whether it maps Arabic letters.
func inspect(data []byte) (bool, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return false, fmt.Errorf("fontres: parsing face: %w", err)
	}
	var buf sfnt.Buffer
	for _, r := range []rune{'ا', 'ب', 'ل'} {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil || gi == 0 {
			return false, nil
		}
	}
	return true, nil
}

// tryRegister loads h into a scratch document and measures a string, which
// is where fpdf reports fonts it cannot subset.
func tryRegister(h Handle) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", errNotRegistered, rec)
		}
	}()
	pdf := fpdf.New("P", "pt", "A4", "")
	h.Register(pdf)
	pdf.SetFont(h.Family, "", 9)
	pdf.GetStringWidth("Ag")
	if pdf.Err() {
		return fmt.Errorf("%w: %v", errNotRegistered, pdf.Error())
	}
	return nil
}
