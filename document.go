package pdfreport

import (
	"slices"
	"strings"
)

// Orientation selects the page orientation of a report.
type Orientation int

const (
	// DefaultOrientation defers to the renderer's configured orientation.
	DefaultOrientation Orientation = iota
	Landscape
	Portrait
	// AutoOrientation picks landscape when any dataset has seven or more
	// columns or a wide column, portrait otherwise.
	AutoOrientation
)

func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	case AutoOrientation:
		return "auto"
	default:
		return "default"
	}
}

// ParseOrientation maps "landscape", "portrait", "auto" or "" to an
// Orientation. Unknown names give DefaultOrientation.
func ParseOrientation(s string) Orientation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "landscape", "l":
		return Landscape
	case "portrait", "p":
		return Portrait
	case "auto":
		return AutoOrientation
	}
	return DefaultOrientation
}

// autoColumns is the column count at which AutoOrientation turns landscape.
const autoColumns = 7

// Margins are page margins in points.
type Margins struct {
	Left, Right, Top, Bottom float64
}

const cm = 72 / 2.54

// DefaultMargins returns 2 cm left, right and bottom and 2.5 cm top.
func DefaultMargins() Margins {
	return Margins{Left: 2 * cm, Right: 2 * cm, Top: 2.5 * cm, Bottom: 2 * cm}
}

func (m Margins) isZero() bool {
	return m == Margins{}
}

// Section is one heading and the dataset under it. A nil or empty Data
// prints a "no data" line instead of a table.
type Section struct {
	Heading string
	Data    *Dataset
	// WideColumn names the column allowed to grow wider than the others.
	// When empty, a column named like a title is used if present.
	WideColumn string
}

// wideNames are the lower-case column names treated as wide when a section
// does not name one. The first matching column wins.
var wideNames = []string{"titles_ay", "title", "book_title", "titles"}

// wideIndex returns the index of the section's wide column, or -1.
func (s Section) wideIndex() int {
	cols := s.Data.Columns()
	if s.WideColumn != "" {
		for i, c := range cols {
			if strings.EqualFold(c, s.WideColumn) {
				return i
			}
		}
	}
	for i, c := range cols {
		if slices.Contains(wideNames, strings.ToLower(strings.TrimSpace(c))) {
			return i
		}
	}
	return -1
}

// ReportDocument is everything one PDF is built from.
type ReportDocument struct {
	Title       string
	Sections    []Section
	Orientation Orientation
	Margins     Margins // zero means DefaultMargins
}

// orientation resolves o against the renderer default fallback.
func (d *ReportDocument) orientation(fallback Orientation) Orientation {
	o := d.Orientation
	if o == DefaultOrientation {
		o = fallback
	}
	switch o {
	case Portrait:
		return Portrait
	case AutoOrientation:
		for _, s := range d.Sections {
			if s.Data == nil {
				continue
			}
			if len(s.Data.columns) >= autoColumns || s.wideIndex() >= 0 {
				return Landscape
			}
		}
		return Portrait
	default:
		return Landscape
	}
}
