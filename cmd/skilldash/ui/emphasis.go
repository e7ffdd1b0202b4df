package ui

import "skilldash/internal/selection"

// Emphasized decides whether one chart element is the selected one. It is
// the pure half of every chart's highlight pass: recomputed fresh on each
// render from the state snapshot, never cached, so a chart can only light
// up its own elements and only while the single selection points at them.
func Emphasized(ownKey, label string, sel *selection.Insight) bool {
	return sel != nil && sel.ChartKey == ownKey && sel.Label == label
}

// sparkLevels are the eight block elements a value column can render as.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkRune maps a value onto a block element relative to the series
// maximum. Zero-or-negative maxima flatten to the lowest block.
func sparkRune(value, max float64) rune {
	if max <= 0 || value <= 0 {
		return sparkLevels[0]
	}
	idx := int(value / max * float64(len(sparkLevels)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sparkLevels)-1 {
		idx = len(sparkLevels) - 1
	}
	return sparkLevels[idx]
}

// barWidth scales a value to a bar cell count within the available width.
// A non-zero value always gets at least one cell so tiny shares stay
// visible.
func barWidth(value, max float64, available int) int {
	if max <= 0 || value <= 0 || available <= 0 {
		return 0
	}
	w := int(value / max * float64(available))
	if w < 1 {
		w = 1
	}
	if w > available {
		w = available
	}
	return w
}

// segmentWidths splits the available width proportionally across values,
// assigning the remainder to the last non-empty segment so the total
// always fills the row.
func segmentWidths(values []float64, available int) []int {
	widths := make([]int, len(values))
	if available <= 0 {
		return widths
	}
	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return widths
	}
	used := 0
	last := -1
	for i, v := range values {
		if v <= 0 {
			continue
		}
		w := int(v / total * float64(available))
		if w < 1 {
			w = 1
		}
		widths[i] = w
		used += w
		last = i
	}
	if last >= 0 {
		widths[last] += available - used
		if widths[last] < 1 {
			widths[last] = 1
		}
	}
	return widths
}
