package shape

import (
	"errors"
	"strings"
	"testing"
)

func TestShapeLeavesLTRUntouched(t *testing.T) {
	for _, s := range []string{"", "Hello, World", "12345", "Ünïcödé façade", "a | b | c", "line1\nline2"} {
		if got := Shape(s); got != s {
			t.Errorf("Shape(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestShapeChangesArabic(t *testing.T) {
	for _, s := range []string{"مرحبا", "مكتبة", "لا", "ب", "كتاب الطالب"} {
		got := Shape(s)
		if got == s {
			t.Errorf("Shape(%q) returned input unchanged", s)
		}
		if !IsRTL(got) {
			t.Errorf("Shape(%q) = %q lost its right-to-left classification", s, got)
		}
	}
}

func TestReshapeForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"isolated", "ب", "\uFE8F"},
		{"initial final", "بب", "\uFE91\uFE90"},
		{"medial", "ببب", "\uFE91\uFE92\uFE90"},
		{"right joining breaks word", "داب", "\uFEA9\uFE8D\uFE8F"},
		{"lam alef isolated", "لا", "\uFEFB"},
		{"lam alef final", "بلا", "\uFE91\uFEFC"},
		{"hamza never joins", "بء", "\uFE8F\uFE80"},
		{"marks are transparent", "بَب", "\uFE91َ\uFE90"},
		{"latin untouched", "abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reshape(tt.in); got != tt.want {
				t.Errorf("Reshape(%q) = %+q, want %+q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShapeReversesPureArabic(t *testing.T) {
	// logical initial+final, visual final+initial
	if got, want := Shape("بب"), "\uFE90\uFE91"; got != want {
		t.Errorf("Shape = %+q, want %+q", got, want)
	}
}

func TestShapeKeepsLatinRunOrder(t *testing.T) {
	got := Shape("ID بب")
	if !strings.HasPrefix(got, "ID") {
		t.Errorf("Shape = %q, want the Latin run first", got)
	}
	if !strings.Contains(got, "\uFE90\uFE91") {
		t.Errorf("Shape = %+q, want reversed Arabic run", got)
	}
}

func TestIsRTL(t *testing.T) {
	tests := map[string]bool{
		"":          false,
		"hello":     false,
		"123":       false,
		"مرحبا":     true,
		"abc مرحبا": true,
		"שלום":      true,
		"\uFEFB":    true,
	}
	for in, want := range tests {
		if got := IsRTL(in); got != want {
			t.Errorf("IsRTL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestShaperFallsBackOnError(t *testing.T) {
	s := Shaper{Reorder: func(string) (string, error) { return "", errors.New("boom") }}
	in := "مرحبا"
	if got := s.Shape(in); got != in {
		t.Errorf("Shape = %q, want original text on reorder failure", got)
	}
	if _, err := s.Try(in); err == nil {
		t.Error("Try: expected error")
	}
}

func TestShaperFallsBackOnPanic(t *testing.T) {
	s := Shaper{Reshape: func(string) string { panic("reshaper exploded") }}
	in := "مرحبا"
	if got := s.Shape(in); got != in {
		t.Errorf("Shape = %q, want original text on panic", got)
	}
}

func TestReorderMultiline(t *testing.T) {
	got, err := Reorder("\uFE91\uFE90\nabc")
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if want := "\uFE90\uFE91\nabc"; got != want {
		t.Errorf("Reorder = %+q, want %+q", got, want)
	}
}

func TestReorderMixed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number after arabic in latin line", "abc مرحبا 123 def", "abc 123 ابحرم def"},
		{"catalog label", "ID: كتاب الحيوان - 2024", "ID: 2024 - ناويحلا باتك"},
		{"arabic base with number", "سعر 100", "100 رعس"},
		{"arabic-indic digits", "رقم ١٢", "١٢ مقر"},
		{"decimal keeps its digits together", "سعر 12.50", "12.50 رعس"},
		{"brackets are mirrored", "كتاب (abc)", "(abc) باتك"},
		{"trailing space stays at the end", "abc مرحبا ", "abc ابحرم "},
		{"latin only", "a (b) 1", "a (b) 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reorder(tt.in)
			if err != nil {
				t.Fatalf("Reorder: %v", err)
			}
			if got != tt.want {
				t.Errorf("Reorder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShapeKeepsSpacesAroundNumbers(t *testing.T) {
	got := Shape("abc مرحبا 123 def")
	if !strings.HasPrefix(got, "abc 123 ") || !strings.HasSuffix(got, " def") {
		t.Errorf("Shape = %q, want the number right after the Latin run", got)
	}
	if n := strings.Count(got, " "); n != 3 {
		t.Errorf("Shape = %q has %d spaces, want 3", got, n)
	}
}

func TestBaseRTL(t *testing.T) {
	tests := map[string]bool{
		"":                       false,
		"123 ":                   false,
		"The fox كتاب":           false,
		"كتاب The fox":           true,
		"2024 كتاب":              true,
		"ﺑﺐ abc":       true,
		"(note) مرحبا":           false,
	}
	for in, want := range tests {
		if got := BaseRTL(in); got != want {
			t.Errorf("BaseRTL(%q) = %v, want %v", in, got, want)
		}
	}
}
