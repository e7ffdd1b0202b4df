package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

// FamilyChart renders AI mentions by job family as horizontal bars, one
// row per family. The cursor walks rows and enter toggles the family under
// it.
type FamilyChart struct {
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

// NewFamilyChart creates the family surface bound to its chart id.
func NewFamilyChart(store *selection.Store, styles Styles) *FamilyChart {
	return &FamilyChart{key: dataset.ChartFamily, store: store, styles: styles}
}

// Key returns the chart identifier this surface owns.
func (c *FamilyChart) Key() string { return c.key }

// Render (re)builds the rows from the chart slice, discarding any previous
// binding so re-render after a reload stays consistent.
func (c *FamilyChart) Render(chart *dataset.Chart) {
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
func (c *FamilyChart) Refresh(state selection.State) {
	c.sel = state.Insight
}

// SetWidth sets the inner rendering width.
func (c *FamilyChart) SetWidth(w int) { c.width = w }

// MoveCursor shifts the active row, clamped to the rows present.
func (c *FamilyChart) MoveCursor(delta int) {
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

// Activate toggles the family under the cursor.
func (c *FamilyChart) Activate() {
	if c.cursor < 0 || c.cursor >= len(c.labels) {
		return
	}
	c.store.ToggleInsight(c.key, c.labels[c.cursor])
}

// View renders labelled bars with emphasis recomputed per row.
func (c *FamilyChart) View(focused bool) string {
	if len(c.values) == 0 {
		return c.styles.Muted.Render("no family data")
	}

	max := c.values[0]
	labelWidth := 0
	for i, v := range c.values {
		if v > max {
			max = v
		}
		if len(c.labels[i]) > labelWidth {
			labelWidth = len(c.labels[i])
		}
	}

	avail := c.width - labelWidth - 10
	if avail < 8 {
		avail = 8
	}

	rows := make([]string, 0, len(c.labels)+1)
	rows = append(rows, c.styles.Title.Render(truncate(c.title, c.width)))
	for i, label := range c.labels {
		bar := strings.Repeat("█", barWidth(c.values[i], max, avail))
		line := fmt.Sprintf("%-*s %s %.1f%%", labelWidth, label, bar, c.values[i])
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
