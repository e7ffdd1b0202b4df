package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

// ShareChart renders the inside/outside-IT split of AI postings as a
// single proportional bar with a legend. The cursor walks the legend
// entries and enter toggles the segment under it.
type ShareChart struct {
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

// NewShareChart creates the share surface bound to its chart id.
func NewShareChart(store *selection.Store, styles Styles) *ShareChart {
	return &ShareChart{key: dataset.ChartOutside, store: store, styles: styles}
}

// Key returns the chart identifier this surface owns.
func (c *ShareChart) Key() string { return c.key }

// Render (re)builds the segments from the chart slice.
func (c *ShareChart) Render(chart *dataset.Chart) {
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
func (c *ShareChart) Refresh(state selection.State) {
	c.sel = state.Insight
}

// SetWidth sets the inner rendering width.
func (c *ShareChart) SetWidth(w int) { c.width = w }

// MoveCursor shifts the active legend entry.
func (c *ShareChart) MoveCursor(delta int) {
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

// Activate toggles the segment under the cursor.
func (c *ShareChart) Activate() {
	if c.cursor < 0 || c.cursor >= len(c.labels) {
		return
	}
	c.store.ToggleInsight(c.key, c.labels[c.cursor])
}

// View renders the proportion bar plus a legend row per segment.
func (c *ShareChart) View(focused bool) string {
	if len(c.values) == 0 {
		return c.styles.Muted.Render("no share data")
	}

	avail := c.width - 2
	if avail < 10 {
		avail = 10
	}
	widths := segmentWidths(c.values, avail)

	palette := []lipgloss.Style{c.styles.Info, c.styles.Success}
	var bar strings.Builder
	for i, w := range widths {
		seg := strings.Repeat("█", w)
		style := palette[i%len(palette)]
		if Emphasized(c.key, c.labels[i], c.sel) {
			style = c.styles.Emphasis
		}
		bar.WriteString(style.Render(seg))
	}

	rows := make([]string, 0, len(c.labels)+2)
	rows = append(rows, c.styles.Title.Render(truncate(c.title, c.width)))
	rows = append(rows, bar.String())
	for i, label := range c.labels {
		line := fmt.Sprintf("■ %s %.1f%%", label, c.values[i])
		switch {
		case Emphasized(c.key, label, c.sel):
			line = c.styles.Emphasis.Render(line)
		case focused && i == c.cursor:
			line = c.styles.Cursor.Render(line)
		default:
			line = c.styles.Body.Render(line)
		}
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
