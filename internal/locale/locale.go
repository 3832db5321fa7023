// Package locale holds the few strings a report prints on its own, in
// English and Arabic.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	keyNoData   = "No data available"
	keyPage     = "Page %d"
	keyDegraded = "This report was simplified because the full layout could not be produced."
)

var (
	cat       *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
)

func init() {
	cat = catalog.NewBuilder(catalog.Fallback(language.English))
	entries := map[language.Tag][3]string{
		language.English: {keyNoData, keyPage, keyDegraded},
		language.Arabic: {
			"لا توجد بيانات",
			"صفحة %d",
			"تم تبسيط هذا التقرير لتعذر إنتاج التخطيط الكامل.",
		},
	}
	supported = []language.Tag{language.English, language.Arabic}
	for _, tag := range supported {
		msgs := entries[tag]
		for i, key := range []string{keyNoData, keyPage, keyDegraded} {
			if err := cat.SetString(tag, key, msgs[i]); err != nil {
				panic(err)
			}
		}
	}
	matcher = language.NewMatcher(supported)
}

// Printer formats report strings for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for the closest supported match of the BCP 47 tag
// s. Unknown or empty tags give English.
func New(s string) *Printer {
	tag := language.English
	if s != "" {
		if t, err := language.Parse(s); err == nil {
			_, idx, conf := matcher.Match(t)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag returns the language in use.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// NoData is the placeholder printed for a section without rows.
func (p *Printer) NoData() string {
	return p.p.Sprintf(keyNoData)
}

// Page is the footer page label.
func (p *Printer) Page(n int) string {
	return p.p.Sprintf(keyPage, n)
}

// Degraded is the notice printed at the top of a simplified report.
func (p *Printer) Degraded() string {
	return p.p.Sprintf(keyDegraded)
}
