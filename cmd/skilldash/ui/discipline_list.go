package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

// disciplineItem adapts a discipline name plus its narrative to list.Item.
type disciplineItem struct {
	name string
	disc *dataset.Discipline
}

func (i disciplineItem) Title() string { return i.name }
func (i disciplineItem) Description() string {
	if i.disc == nil || len(i.disc.TopSkillsEmphasis) == 0 {
		return ""
	}
	return strings.Join(i.disc.TopSkillsEmphasis, ", ")
}
func (i disciplineItem) FilterValue() string { return i.name }

// DisciplineList is the teaching-discipline picker plus the narrative view
// for whichever discipline the store currently holds.
type DisciplineList struct {
	ds     *dataset.Dataset
	store  *selection.Store
	styles Styles
	list   list.Model

	active string
	width  int
}

// NewDisciplineList creates the picker over the dataset's disciplines, in
// declaration order.
func NewDisciplineList(ds *dataset.Dataset, store *selection.Store, styles Styles) *DisciplineList {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Disciplines"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	d := &DisciplineList{ds: ds, store: store, styles: styles, list: l}
	d.rebuild()
	return d
}

// SetDataset swaps the dataset after a reload and rebuilds the items.
func (d *DisciplineList) SetDataset(ds *dataset.Dataset) {
	d.ds = ds
	d.rebuild()
}

func (d *DisciplineList) rebuild() {
	items := make([]list.Item, 0, len(d.ds.DisciplineOrder))
	for _, name := range d.ds.DisciplineOrder {
		items = append(items, disciplineItem{name: name, disc: d.ds.Disciplines[name]})
	}
	d.list.SetItems(items)
}

// SetSize resizes the embedded list.
func (d *DisciplineList) SetSize(width, height int) {
	d.width = width
	d.list.SetSize(width, height)
}

// Refresh implements selection.Renderer.
func (d *DisciplineList) Refresh(state selection.State) {
	d.active = state.Discipline
	for i, item := range d.list.Items() {
		if di, ok := item.(disciplineItem); ok && di.name == state.Discipline {
			d.list.Select(i)
			break
		}
	}
}

// Update forwards navigation keys to the list and commits the highlighted
// discipline on enter.
func (d *DisciplineList) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := d.list.SelectedItem().(disciplineItem); ok {
			d.store.SetDiscipline(item.name)
		}
		return nil
	}
	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	return cmd
}

// View renders the picker and, under it, the active discipline narrative.
func (d *DisciplineList) View() string {
	var sb strings.Builder
	sb.WriteString(d.list.View())

	disc, ok := d.ds.Disciplines[d.active]
	if !ok || disc == nil {
		return sb.String()
	}
	sb.WriteString("\n")
	sb.WriteString(d.styles.Subtitle.Render(d.active))
	sb.WriteString("\n")
	for _, outcome := range disc.LearningOutcomes {
		sb.WriteString(d.styles.Body.Render(fmt.Sprintf("• %s", truncate(outcome, d.width-2))))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
