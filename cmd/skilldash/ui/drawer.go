package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"skilldash/internal/dataset"
	"skilldash/internal/drilldown"
	"skilldash/internal/selection"
)

// Drawer is the drilldown surface under the charts. It resolves the
// current selection against the dataset and shows either a prompt, a
// missing-detail fallback, or the full narrative rendered as markdown.
type Drawer struct {
	ds       *dataset.Dataset
	styles   Styles
	viewport viewport.Model
	renderer *glamour.TermRenderer

	content drilldown.Content
	ready   bool
}

// NewDrawer creates the drilldown drawer over the given dataset.
func NewDrawer(ds *dataset.Dataset, styles Styles) *Drawer {
	return &Drawer{
		ds:      ds,
		styles:  styles,
		content: drilldown.Content{Kind: drilldown.KindPrompt, Message: drilldown.PromptMessage},
	}
}

// SetDataset swaps the dataset after a reload. The next Refresh resolves
// against the new document.
func (d *Drawer) SetDataset(ds *dataset.Dataset) { d.ds = ds }

// SetSize resizes the drawer viewport and rebuilds the markdown renderer
// with matching word wrap.
func (d *Drawer) SetSize(width, height int) {
	if !d.ready {
		d.viewport = viewport.New(width, height)
		d.ready = true
	} else {
		d.viewport.Width = width
		d.viewport.Height = height
	}
	d.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	d.viewport.SetContent(d.body())
}

// Refresh implements selection.Renderer.
func (d *Drawer) Refresh(state selection.State) {
	d.content = drilldown.Resolve(state, d.ds)
	if d.ready {
		d.viewport.SetContent(d.body())
		d.viewport.GotoTop()
	}
}

// Scroll moves the drawer viewport by the given number of lines.
func (d *Drawer) Scroll(lines int) {
	if !d.ready {
		return
	}
	if lines < 0 {
		d.viewport.LineUp(-lines)
	} else {
		d.viewport.LineDown(lines)
	}
}

// View renders the drawer panel.
func (d *Drawer) View() string {
	if !d.ready {
		return ""
	}
	return d.viewport.View()
}

func (d *Drawer) body() string {
	switch d.content.Kind {
	case drilldown.KindPrompt, drilldown.KindMissing:
		return d.styles.Muted.Render(d.content.Message)
	default:
		header := fmt.Sprintf("%s — %s", d.content.ChartTitle, d.content.Label)
		footer := d.content.SourceName
		if d.content.AsOfDate != "" {
			footer = fmt.Sprintf("%s · as of %s", footer, d.content.AsOfDate)
		}
		return lipgloss.JoinVertical(
			lipgloss.Left,
			d.styles.Subtitle.Render(header),
			d.safeRenderMarkdown(detailMarkdown(d.content.Detail)),
			d.styles.Muted.Render(footer),
		)
	}
}

// detailMarkdown flattens a drilldown record into a markdown document for
// the glamour renderer.
func detailMarkdown(detail *dataset.Detail) string {
	var sb strings.Builder
	sb.WriteString("## " + detail.Headline + "\n\n")
	if detail.Interpretation != "" {
		sb.WriteString(detail.Interpretation + "\n\n")
	}
	if detail.WhyItMatters != "" {
		sb.WriteString("**Why it matters:** " + detail.WhyItMatters + "\n\n")
	}
	for _, imp := range detail.Implications {
		sb.WriteString("- " + imp + "\n")
	}
	if detail.TeachingFocus != "" {
		sb.WriteString("\n**Teaching focus:** " + detail.TeachingFocus + "\n")
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery.
func (d *Drawer) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if d.renderer != nil && content != "" {
		rendered, err := d.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}
