package shape

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// strongRTL reports whether r has bidi class R or AL.
func strongRTL(r rune) bool {
	if r < 0x0590 {
		return false
	}
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.R, bidi.AL:
		return true
	}
	return false
}

// BaseRTL reports whether a paragraph of s runs right to left. The first
// strong character decides; text with no strong character is left to right.
func BaseRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}

// Reorder converts a logical-order string into the left-to-right visual
// order a PDF text operator expects. Each line of s is handled as its own
// paragraph.
func Reorder(s string) (string, error) {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = reorderLine(line)
	}
	return strings.Join(lines, "\n"), nil
}

func reorderLine(line string) string {
	if line == "" {
		return line
	}
	runes := []rune(line)
	base := 0
	if BaseRTL(line) {
		base = 1
	}
	return visual(runes, resolveLevels(runes, base))
}

// removed reports the classes that rule X9 drops. Explicit embeddings and
// overrides are not honoured.
func removed(c bidi.Class) bool {
	switch c {
	case bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF, bidi.BN:
		return true
	}
	return false
}

func isolate(c bidi.Class) bool {
	switch c {
	case bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
		return true
	}
	return false
}

func neutral(c bidi.Class) bool {
	switch c {
	case bidi.B, bidi.S, bidi.WS, bidi.ON:
		return true
	}
	return false
}

// strongDir maps a resolved class to L or R for rule N1, where numbers
// count as R.
func strongDir(c bidi.Class) bidi.Class {
	if c == bidi.L {
		return bidi.L
	}
	return bidi.R
}

// resolveLevels assigns an embedding level to every rune of one line using
// the implicit rules of UAX #9 (W1-W7, N1-N2, I1-I2, L1) at paragraph level
// base. Isolate controls are treated as other neutrals and bracket pairs
// get no special treatment.
func resolveLevels(runes []rune, base int) []int {
	n := len(runes)
	orig := make([]bidi.Class, n)
	for i, r := range runes {
		p, _ := bidi.LookupRune(r)
		orig[i] = p.Class()
	}

	var idx []int
	for i, c := range orig {
		if !removed(c) {
			idx = append(idx, i)
		}
	}
	t := make([]bidi.Class, len(idx))
	for k, i := range idx {
		t[k] = orig[i]
		if isolate(t[k]) {
			t[k] = bidi.ON
		}
	}

	sos, embedding := bidi.L, bidi.L
	if base%2 == 1 {
		sos, embedding = bidi.R, bidi.R
	}
	eos := sos

	// W1
	prev := sos
	for k, c := range t {
		if c == bidi.NSM {
			t[k] = prev
		} else {
			prev = c
		}
	}
	// W2, W3
	last := sos
	for k, c := range t {
		switch c {
		case bidi.L, bidi.R:
			last = c
		case bidi.AL:
			last = c
			t[k] = bidi.R
		case bidi.EN:
			if last == bidi.AL {
				t[k] = bidi.AN
			}
		}
	}
	// W4
	for k := 1; k < len(t)-1; k++ {
		before, after := t[k-1], t[k+1]
		switch {
		case t[k] == bidi.ES && before == bidi.EN && after == bidi.EN:
			t[k] = bidi.EN
		case t[k] == bidi.CS && before == bidi.EN && after == bidi.EN:
			t[k] = bidi.EN
		case t[k] == bidi.CS && before == bidi.AN && after == bidi.AN:
			t[k] = bidi.AN
		}
	}
	// W5
	for k := 0; k < len(t); {
		if t[k] != bidi.ET {
			k++
			continue
		}
		j := k
		for j < len(t) && t[j] == bidi.ET {
			j++
		}
		if (k > 0 && t[k-1] == bidi.EN) || (j < len(t) && t[j] == bidi.EN) {
			for m := k; m < j; m++ {
				t[m] = bidi.EN
			}
		}
		k = j
	}
	// W6, W7
	last = sos
	for k, c := range t {
		switch c {
		case bidi.ES, bidi.ET, bidi.CS:
			t[k] = bidi.ON
		case bidi.L, bidi.R:
			last = c
		case bidi.EN:
			if last == bidi.L {
				t[k] = bidi.L
			}
		}
	}
	// N1, N2
	for k := 0; k < len(t); {
		if !neutral(t[k]) {
			k++
			continue
		}
		j := k
		for j < len(t) && neutral(t[j]) {
			j++
		}
		lead, trail := sos, eos
		if k > 0 {
			lead = strongDir(t[k-1])
		}
		if j < len(t) {
			trail = strongDir(t[j])
		}
		dir := embedding
		if lead == trail {
			dir = lead
		}
		for m := k; m < j; m++ {
			t[m] = dir
		}
		k = j
	}

	// I1, I2
	levels := make([]int, n)
	for i := range levels {
		levels[i] = base
	}
	for k, i := range idx {
		switch c := t[k]; {
		case base%2 == 0 && c == bidi.R:
			levels[i] = base + 1
		case base%2 == 0 && (c == bidi.AN || c == bidi.EN):
			levels[i] = base + 2
		case base%2 == 1 && c != bidi.R:
			levels[i] = base + 1
		}
	}
	for i, c := range orig {
		if removed(c) && i > 0 {
			levels[i] = levels[i-1]
		}
	}

	// L1
	reset := true
	for i := n - 1; i >= 0; i-- {
		switch c := orig[i]; {
		case c == bidi.S || c == bidi.B:
			levels[i] = base
			reset = true
		case reset && (c == bidi.WS || isolate(c) || removed(c)):
			levels[i] = base
		default:
			reset = false
		}
	}
	return levels
}

// visual applies rule L2 and mirrors brackets in right-to-left runs.
func visual(runes []rune, levels []int) string {
	order := make([]int, len(runes))
	maxLevel, minOdd := 0, -1
	for i, l := range levels {
		order[i] = i
		maxLevel = max(maxLevel, l)
		if l%2 == 1 && (minOdd < 0 || l < minOdd) {
			minOdd = l
		}
	}
	if minOdd < 0 {
		minOdd = 1
	}

	for lvl := maxLevel; lvl >= minOdd; lvl-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < lvl {
				i++
				continue
			}
			j := i
			for j < len(order) && levels[order[j]] >= lvl {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}

	var b strings.Builder
	b.Grow(len(runes) * 2)
	for _, i := range order {
		if levels[i]%2 == 1 {
			b.WriteString(bidi.ReverseString(string(runes[i])))
		} else {
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}
