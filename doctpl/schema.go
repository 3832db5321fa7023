// Package doctpl renders reports described as JSON templates.
//
// A template carries the report title, page options and a list of sections.
// Rows may be arrays (one value per column) or objects keyed by column name;
// numbers keep their literal spelling.
//
// Example JSON:
//
//	{
//	  "title": "Library Holdings",
//	  "orientation": "auto",
//	  "locale": "ar",
//	  "calendar": "hijri",
//	  "sections": [{
//	    "heading": "Books",
//	    "columns": ["id", "title", "author"],
//	    "rows": [
//	      [1, "Muqaddimah", "Ibn Khaldun"],
//	      {"id": 2, "title": "كتاب الحيوان", "author": "الجاحظ"}
//	    ]
//	  }]
//	}
package doctpl

import "encoding/json"

// Document is the top-level template that describes one report.
type Document struct {
	Title       string     `json:"title,omitempty"`
	Orientation string     `json:"orientation,omitempty"` // landscape (default), portrait, auto
	PageSize    string     `json:"pageSize,omitempty"`    // A4 (default), A3, Letter, Legal
	Locale      string     `json:"locale,omitempty"`      // BCP 47 tag: en (default), ar
	Calendar    string     `json:"calendar,omitempty"`    // gregorian (default), hijri
	Margin      *Margin    `json:"margin,omitempty"`
	Logo        string     `json:"logo,omitempty"`       // image path
	Letterhead  string     `json:"letterhead,omitempty"` // PDF path
	Reference   *Reference `json:"reference,omitempty"`
	Sections    []Section  `json:"sections"`
}

// Margin defines page margins in centimeters.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Reference is a code printed as a machine-readable symbol in every footer.
type Reference struct {
	Code string `json:"code"`
	Kind string `json:"kind,omitempty"` // qr (default), code128, pdf417
}

// Section is a heading over one table.
type Section struct {
	Heading    string            `json:"heading,omitempty"`
	Columns    []string          `json:"columns,omitempty"`
	Rows       []json.RawMessage `json:"rows,omitempty"`
	WideColumn string            `json:"wideColumn,omitempty"`
}
