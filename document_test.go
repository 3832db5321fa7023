package pdfreport

import "testing"

func TestWideIndex(t *testing.T) {
	ds, err := NewDataset([]string{"id", "Book_Title", "notes"})
	if err != nil {
		t.Fatal(err)
	}
	both, err := NewDataset([]string{"id", "title", "titles_ay"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		sec  Section
		want int
	}{
		{"heuristic", Section{Data: ds}, 1},
		{"explicit", Section{Data: ds, WideColumn: "notes"}, 2},
		{"explicit missing falls back", Section{Data: ds, WideColumn: "summary"}, 1},
		{"first matching column wins", Section{Data: both}, 1},
		{"nil data", Section{}, -1},
	}
	for _, tt := range tests {
		if got := tt.sec.wideIndex(); got != tt.want {
			t.Errorf("%s: wideIndex = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDocumentOrientation(t *testing.T) {
	narrow, _ := NewDataset([]string{"a", "b"})
	titled, _ := NewDataset([]string{"id", "title"})
	seven, _ := NewDataset([]string{"a", "b", "c", "d", "e", "f", "g"})

	tests := []struct {
		name     string
		doc      ReportDocument
		fallback Orientation
		want     Orientation
	}{
		{"default landscape", ReportDocument{}, Landscape, Landscape},
		{"renderer portrait", ReportDocument{}, Portrait, Portrait},
		{"document wins", ReportDocument{Orientation: Portrait}, Landscape, Portrait},
		{"auto narrow", ReportDocument{Orientation: AutoOrientation, Sections: []Section{{Data: narrow}}}, Landscape, Portrait},
		{"auto wide column", ReportDocument{Orientation: AutoOrientation, Sections: []Section{{Data: titled}}}, Landscape, Landscape},
		{"auto seven columns", ReportDocument{Sections: []Section{{Data: seven}}}, AutoOrientation, Landscape},
		{"auto no data", ReportDocument{Orientation: AutoOrientation, Sections: []Section{{}}}, Landscape, Portrait},
	}
	for _, tt := range tests {
		if got := tt.doc.orientation(tt.fallback); got != tt.want {
			t.Errorf("%s: orientation = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	for s, want := range map[string]Orientation{
		"landscape": Landscape, "P": Portrait, " Auto ": AutoOrientation, "": DefaultOrientation, "sideways": DefaultOrientation,
	} {
		if got := ParseOrientation(s); got != want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", s, got, want)
		}
	}
}
