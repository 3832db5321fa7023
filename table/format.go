package table

import (
	"strings"

	"github.com/lvillar/pdfreport/shape"
)

// Block is the content of one cell: shaped display text plus the style
// chosen for its direction.
type Block struct {
	Text  string
	RTL   bool // contains right-to-left script
	Flow  bool // paragraph runs right to left, so lines fill from the right
	Style CellStyle
}

// Format converts value into a cell block. The shaped text decides the
// style: rtl (right aligned by default) when it contains right-to-left
// script, base (left aligned by default) otherwise. The wrapping direction
// follows the first strong character of the logical text.
func Format(value any, base, rtl CellStyle) Block {
	text := Text(value)
	shaped := shape.Shape(text)
	if shape.IsRTL(shaped) {
		if rtl.Align == "" {
			rtl.Align = "R"
		}
		return Block{Text: shaped, RTL: true, Flow: shape.BaseRTL(text), Style: rtl}
	}
	if base.Align == "" {
		base.Align = "L"
	}
	return Block{Text: shaped, Style: base}
}

// Align returns the block's horizontal alignment.
func (b Block) Align() string {
	switch {
	case b.Style.Align != "":
		return b.Style.Align
	case b.RTL:
		return "R"
	default:
		return "L"
	}
}

// Lines wraps the block to width. Source newlines always break. Words
// wider than width are split between characters. Text whose paragraph runs
// right to left is in visual order, so it is filled from the right end: the
// first line holds the start of the sentence.
func (b Block) Lines(width float64, measure func(string) float64) []string {
	var out []string
	for _, para := range strings.Split(b.Text, "\n") {
		out = append(out, wrap(para, width, measure, b.Flow)...)
	}
	return out
}

func wrap(para string, width float64, measure func(string) float64, rtl bool) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	if rtl {
		for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
			words[i], words[j] = words[j], words[i]
		}
	}

	space := measure(" ")
	var (
		lines []string
		cur   []string
		curW  float64
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		if rtl {
			for i, j := 0, len(cur)-1; i < j; i, j = i+1, j-1 {
				cur[i], cur[j] = cur[j], cur[i]
			}
		}
		lines = append(lines, strings.Join(cur, " "))
		cur, curW = cur[:0], 0
	}

	for _, w := range words {
		ww := measure(w)
		if ww > width {
			flush()
			pieces := breakWord(w, width, measure, rtl)
			lines = append(lines, pieces[:len(pieces)-1]...)
			last := pieces[len(pieces)-1]
			cur, curW = append(cur, last), measure(last)
			continue
		}
		if len(cur) > 0 && curW+space+ww > width {
			flush()
		}
		if len(cur) > 0 {
			curW += space
		}
		cur = append(cur, w)
		curW += ww
	}
	flush()
	return lines
}

// breakWord splits a word into pieces no wider than width, at least one
// character each. For right-to-left words the pieces are cut from the right.
func breakWord(word string, width float64, measure func(string) float64, rtl bool) []string {
	rs := []rune(word)
	if rtl {
		for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
	}

	var pieces []string
	start, w := 0, 0.0
	for i, r := range rs {
		rw := measure(string(r))
		if i > start && w+rw > width {
			pieces = append(pieces, piece(rs[start:i], rtl))
			start, w = i, 0
		}
		w += rw
	}
	return append(pieces, piece(rs[start:], rtl))
}

func piece(rs []rune, rtl bool) string {
	if !rtl {
		return string(rs)
	}
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[len(rs)-1-i] = r
	}
	return string(out)
}
