package table

import "strings"

// WidthConfig bounds the column widths AllocateWidths produces, in points.
type WidthConfig struct {
	Min     float64 // narrowest column
	Max     float64 // widest ordinary column
	WideMax float64 // widest column for the preferred wide column
	Padding float64 // added to the widest measured text
	Samples int     // data rows measured per dataset
}

// DefaultWidthConfig returns the bounds used for reports.
func DefaultWidthConfig() WidthConfig {
	return WidthConfig{Min: 40, Max: 240, WideMax: 320, Padding: 12, Samples: 300}
}

// AllocateWidths sizes columns from their content. Each column gets the
// widest of its header and first cfg.Samples rows plus padding, clamped to
// [Min, Max] ([Min, WideMax] for column wide; pass -1 for none), and the
// result is scaled so the widths sum to available. A column that scaling
// would push under Min is held at Min and the rest share what remains; if
// even that is impossible every column gets available/n.
//
// It returns nil when there are no columns or no rows.
func AllocateWidths(measure func(string) float64, header []string, rows [][]string, available float64, wide int, cfg WidthConfig) []float64 {
	n := len(header)
	if n == 0 || len(rows) == 0 || available <= 0 {
		return nil
	}
	if cfg.Min <= 0 {
		cfg = DefaultWidthConfig()
	}

	maxW := make([]float64, n)
	grow := func(i int, s string) {
		for _, line := range strings.Split(s, "\n") {
			if w := measure(line) + cfg.Padding; w > maxW[i] {
				maxW[i] = w
			}
		}
	}
	for i, h := range header {
		grow(i, h)
	}
	sample := rows
	if cfg.Samples > 0 && len(sample) > cfg.Samples {
		sample = sample[:cfg.Samples]
	}
	for _, row := range sample {
		for i := 0; i < n && i < len(row); i++ {
			grow(i, row[i])
		}
	}

	raw := make([]float64, n)
	for i, w := range maxW {
		limit := cfg.Max
		if i == wide {
			limit = cfg.WideMax
		}
		raw[i] = clamp(w, cfg.Min, limit)
	}
	return fill(raw, available, cfg.Min)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

// fill scales raw to sum to available while keeping every width >= min
// whenever n*min fits.
func fill(raw []float64, available, min float64) []float64 {
	n := len(raw)
	out := make([]float64, n)
	if min*float64(n) >= available {
		for i := range out {
			out[i] = available / float64(n)
		}
		return out
	}

	pinned := make([]bool, n)
	for {
		free, flex := available, 0.0
		for i, w := range raw {
			if pinned[i] {
				free -= min
			} else {
				flex += w
			}
		}
		if flex == 0 {
			for i := range out {
				out[i] = available / float64(n)
			}
			return out
		}
		scale := free / flex
		changed := false
		for i, w := range raw {
			if pinned[i] {
				out[i] = min
				continue
			}
			out[i] = w * scale
			if out[i] < min {
				pinned[i] = true
				changed = true
			}
		}
		if !changed {
			return out
		}
	}
}
