package ui

import (
	"fmt"
	"strings"

	"skilldash/internal/dataset"
	"skilldash/internal/selection"
	"skilldash/internal/sources"
)

// SourcesPanel lists the citations relevant to the current selection and
// discipline, or every citation when the filter is switched to all.
type SourcesPanel struct {
	ds     *dataset.Dataset
	styles Styles

	visible []string
	filter  selection.FilterMode
	width   int
}

// NewSourcesPanel creates the citation panel over the given dataset.
func NewSourcesPanel(ds *dataset.Dataset, styles Styles) *SourcesPanel {
	return &SourcesPanel{ds: ds, styles: styles}
}

// SetDataset swaps the dataset after a reload.
func (p *SourcesPanel) SetDataset(ds *dataset.Dataset) { p.ds = ds }

// SetWidth sets the inner rendering width.
func (p *SourcesPanel) SetWidth(w int) { p.width = w }

// Refresh implements selection.Renderer.
func (p *SourcesPanel) Refresh(state selection.State) {
	p.visible = sources.Visible(state, p.ds)
	p.filter = state.Filter
}

// View renders the source list with name and URL per entry.
func (p *SourcesPanel) View() string {
	title := "Sources"
	if p.filter == selection.FilterAll {
		title = "Sources (all)"
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(title))
	sb.WriteString("\n")

	if len(p.visible) == 0 {
		sb.WriteString(p.styles.Muted.Render("No sources for current selection."))
		return sb.String()
	}

	for _, id := range p.visible {
		src, ok := p.ds.Sources[id]
		if !ok {
			continue
		}
		sb.WriteString(p.styles.Body.Render(fmt.Sprintf("• %s", src.Name)))
		sb.WriteString("\n")
		sb.WriteString(p.styles.Muted.Render("  " + truncate(src.URL, p.width-2)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
