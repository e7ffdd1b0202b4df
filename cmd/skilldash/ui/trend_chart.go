package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

// TrendChart renders the monthly AI-mention trend as a sparkline. One
// column per month; the cursor walks columns and enter toggles the month
// under it.
type TrendChart struct {
	key    string
	store  *selection.Store
	styles Styles

	title  string
	labels []string
	values []float64
	cursor int
	sel    *selection.Insight

	width int
}

// NewTrendChart creates the trend surface bound to its chart id.
func NewTrendChart(store *selection.Store, styles Styles) *TrendChart {
	return &TrendChart{key: dataset.ChartTrend, store: store, styles: styles}
}

// Key returns the chart identifier this surface owns.
func (c *TrendChart) Key() string { return c.key }

// Render (re)builds the visual from the chart slice. Idempotent: the
// previous labels, values and cursor are discarded, so a re-render after a
// data reload cannot leave stale bindings behind. Activation always
// translates through the same labels slice the columns were drawn from.
func (c *TrendChart) Render(chart *dataset.Chart) {
	c.title = chart.Title
	c.labels = append([]string(nil), chart.Labels...)
	c.values = append([]float64(nil), chart.Values...)
	if c.cursor >= len(c.labels) {
		c.cursor = len(c.labels) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Refresh implements selection.Renderer.
func (c *TrendChart) Refresh(state selection.State) {
	c.sel = state.Insight
}

// SetWidth sets the inner rendering width.
func (c *TrendChart) SetWidth(w int) { c.width = w }

// MoveCursor shifts the active column, clamped to the series.
func (c *TrendChart) MoveCursor(delta int) {
	if len(c.labels) == 0 {
		return
	}
	c.cursor += delta
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.cursor > len(c.labels)-1 {
		c.cursor = len(c.labels) - 1
	}
}

// Activate toggles the element under the cursor. The index-to-label
// translation uses the rendered labels slice.
func (c *TrendChart) Activate() {
	if c.cursor < 0 || c.cursor >= len(c.labels) {
		return
	}
	c.store.ToggleInsight(c.key, c.labels[c.cursor])
}

// View renders the sparkline with per-column emphasis recomputed from the
// current selection snapshot.
func (c *TrendChart) View(focused bool) string {
	if len(c.values) == 0 {
		return c.styles.Muted.Render("no trend data")
	}

	max := c.values[0]
	for _, v := range c.values {
		if v > max {
			max = v
		}
	}

	var spark strings.Builder
	for i, v := range c.values {
		col := string(sparkRune(v, max))
		switch {
		case Emphasized(c.key, c.labels[i], c.sel):
			col = c.styles.Emphasis.Render(col)
		case focused && i == c.cursor:
			col = c.styles.Cursor.Render(col)
		default:
			col = c.styles.Body.Render(col)
		}
		spark.WriteString(col)
	}

	caption := fmt.Sprintf("%s  %.2f%%", c.labels[c.cursor], c.values[c.cursor])
	if Emphasized(c.key, c.labels[c.cursor], c.sel) {
		caption += "  ●"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		c.styles.Title.Render(truncate(c.title, c.width)),
		spark.String(),
		c.styles.Muted.Render(caption),
	)
}

func truncate(s string, w int) string {
	if w <= 3 || len(s) <= w {
		return s
	}
	return s[:w-3] + "..."
}
