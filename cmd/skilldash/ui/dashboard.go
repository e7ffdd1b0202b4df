package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skilldash/internal/dataset"
	"skilldash/internal/export"
	"skilldash/internal/logging"
	"skilldash/internal/selection"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

const bannerTimeout = 4 * time.Second

// focusArea identifies which surface receives navigation keys.
type focusArea int

const (
	focusTrend focusArea = iota
	focusFamily
	focusShare
	focusDisciplines
	focusDrawer
	focusCount
)

// FragmentCell holds the latest share fragment written by the selection
// store. It lives behind a pointer so the value-copied bubbletea model and
// the store see the same cell.
type FragmentCell struct {
	frag string
}

// WriteFragment implements selection.FragmentSink.
func (c *FragmentCell) WriteFragment(frag string) { c.frag = frag }

// Fragment returns the last written share fragment.
func (c *FragmentCell) Fragment() string { return c.frag }

// Messages flowing through the dashboard event loop.
type (
	dataChangedMsg  struct{}
	dataReloadedMsg struct{ ds *dataset.Dataset }
	dataInvalidMsg  struct{ err error }
	bannerClearMsg  struct{ id int }
	exportDoneMsg   struct {
		path string
		err  error
	}
)

// Options wires the dashboard model together.
type Options struct {
	Dataset   *dataset.Dataset
	Store     *selection.Store
	Fragment  *FragmentCell
	Watcher   *dataset.Watcher
	DataPath  string
	ExportDir string
	Styles    Styles
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	ds    *dataset.Dataset
	store *selection.Store
	cell  *FragmentCell

	watcher   *dataset.Watcher
	dataPath  string
	exportDir string

	styles      Styles
	trend       *TrendChart
	family      *FamilyChart
	share       *ShareChart
	drawer      *Drawer
	sources     *SourcesPanel
	disciplines *DisciplineList

	focus  focusArea
	width  int
	height int
	ready  bool

	banner    string
	bannerErr bool
	bannerID  int
}

// NewModel builds every surface, registers them on the store and runs the
// first render pass so the boot state is visible before the program starts.
func NewModel(opts Options) Model {
	m := Model{
		ds:        opts.Dataset,
		store:     opts.Store,
		cell:      opts.Fragment,
		watcher:   opts.Watcher,
		dataPath:  opts.DataPath,
		exportDir: opts.ExportDir,
		styles:    opts.Styles,
	}
	m.trend = NewTrendChart(m.store, m.styles)
	m.family = NewFamilyChart(m.store, m.styles)
	m.share = NewShareChart(m.store, m.styles)
	m.drawer = NewDrawer(m.ds, m.styles)
	m.sources = NewSourcesPanel(m.ds, m.styles)
	m.disciplines = NewDisciplineList(m.ds, m.store, m.styles)

	m.store.Register(m.trend, m.family, m.share, m.drawer, m.sources, m.disciplines)

	m.renderCharts()
	snapshot := m.store.Snapshot()
	for _, r := range []selection.Renderer{m.trend, m.family, m.share, m.drawer, m.sources, m.disciplines} {
		r.Refresh(snapshot)
	}
	return m
}

// Init starts the watcher listener when live reload is enabled.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dataChangedMsg{}
	}
}

func (m Model) reloadData() tea.Cmd {
	path := m.dataPath
	return func() tea.Msg {
		ds, err := dataset.Load(context.Background(), path)
		if err != nil {
			return dataInvalidMsg{err: err}
		}
		return dataReloadedMsg{ds: ds}
	}
}

func (m Model) exportSnapshot() tea.Cmd {
	ds, dir := m.ds, m.exportDir
	return func() tea.Msg {
		path, err := export.Snapshot(ds, dir)
		return exportDoneMsg{path: path, err: err}
	}
}

// setBanner shows a transient status line and arms its self-clear tick.
// The id guard keeps an old tick from clearing a newer banner.
func (m *Model) setBanner(text string, isErr bool) tea.Cmd {
	m.banner = text
	m.bannerErr = isErr
	m.bannerID++
	id := m.bannerID
	return tea.Tick(bannerTimeout, func(time.Time) tea.Msg {
		return bannerClearMsg{id: id}
	})
}

func (m *Model) renderCharts() {
	if c, ok := m.ds.Charts[dataset.ChartTrend]; ok {
		m.trend.Render(c)
	}
	if c, ok := m.ds.Charts[dataset.ChartFamily]; ok {
		m.family.Render(c)
	}
	if c, ok := m.ds.Charts[dataset.ChartOutside]; ok {
		m.share.Render(c)
	}
}

func (m *Model) layout() {
	chartWidth := m.width/3 - 4
	if chartWidth < 20 {
		chartWidth = 20
	}
	sideWidth := m.width/3 - 4
	drawerWidth := m.width - sideWidth - 8
	if drawerWidth < 20 {
		drawerWidth = 20
	}
	lowerHeight := m.height - 16
	if lowerHeight < 6 {
		lowerHeight = 6
	}

	m.trend.SetWidth(chartWidth)
	m.family.SetWidth(chartWidth)
	m.share.SetWidth(chartWidth)
	m.drawer.SetSize(drawerWidth, lowerHeight)
	m.sources.SetWidth(sideWidth)
	m.disciplines.SetSize(sideWidth, lowerHeight/2)
}

// Update drives the event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.renderCharts()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dataChangedMsg:
		logging.Data("data file changed on disk, reloading")
		return m, tea.Batch(m.reloadData(), m.waitForChange())

	case dataReloadedMsg:
		m.ds = msg.ds
		m.drawer.SetDataset(msg.ds)
		m.sources.SetDataset(msg.ds)
		m.disciplines.SetDataset(msg.ds)
		m.renderCharts()
		m.store.SetDataset(msg.ds)
		return m, m.setBanner("Data reloaded", false)

	case dataInvalidMsg:
		// Keep serving the last good dataset.
		logging.DataError("reload rejected: %v", msg.err)
		return m, m.setBanner(fmt.Sprintf("Reload rejected: %v", msg.err), true)

	case bannerClearMsg:
		if msg.id == m.bannerID {
			m.banner = ""
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			logging.ExportError("snapshot export: %v", msg.err)
			return m, m.setBanner(fmt.Sprintf("Export failed: %v", msg.err), true)
		}
		logging.Export("snapshot written to %s", msg.path)
		return m, m.setBanner(fmt.Sprintf("Snapshot written to %s", msg.path), false)
	}

	if m.focus == focusDisciplines {
		return m, m.disciplines.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % focusCount
		return m, nil
	case "shift+tab":
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, nil

	case "esc":
		m.store.ClearInsight()
		return m, nil

	case "f":
		if m.store.Snapshot().Filter == selection.FilterAll {
			m.store.SetSourceFilter(selection.FilterSelection)
		} else {
			m.store.SetSourceFilter(selection.FilterAll)
		}
		return m, nil

	case "s":
		frag := m.store.Fragment()
		if frag == "" {
			return m, m.setBanner("Nothing selected to share", true)
		}
		if err := clipboardWriteAll("#" + frag); err != nil {
			return m, m.setBanner("Failed to copy share link", true)
		}
		return m, m.setBanner("Share link copied to clipboard", false)

	case "e":
		return m, m.exportSnapshot()

	case "r":
		return m, m.reloadData()
	}

	switch m.focus {
	case focusTrend, focusFamily, focusShare:
		chart := m.focusedChart()
		switch msg.String() {
		case "left", "h", "up", "k":
			chart.MoveCursor(-1)
		case "right", "l", "down", "j":
			chart.MoveCursor(1)
		case "enter", " ":
			chart.Activate()
		}
		return m, nil

	case focusDrawer:
		switch msg.String() {
		case "up", "k":
			m.drawer.Scroll(-1)
		case "down", "j":
			m.drawer.Scroll(1)
		}
		return m, nil

	case focusDisciplines:
		return m, m.disciplines.Update(msg)
	}
	return m, nil
}

// chartSurface is the shared navigation surface of the three charts.
type chartSurface interface {
	MoveCursor(delta int)
	Activate()
	View(focused bool) string
}

func (m Model) focusedChart() chartSurface {
	switch m.focus {
	case focusFamily:
		return m.family
	case focusShare:
		return m.share
	default:
		return m.trend
	}
}

// View renders the full dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerLines := []string{
		m.styles.Header.Render(m.ds.Takeaway.Headline),
		m.styles.Muted.Render(fmt.Sprintf("%s · updated %s", m.ds.Takeaway.Subhead, m.ds.LastUpdated)),
	}
	if len(m.ds.CoreSkills) > 0 {
		badges := make([]string, 0, len(m.ds.CoreSkills))
		for _, skill := range m.ds.CoreSkills {
			badges = append(badges, m.styles.Badge.Render(skill.Title))
		}
		headerLines = append(headerLines, lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	}
	header := lipgloss.JoinVertical(lipgloss.Left, headerLines...)

	panel := func(content string, focused bool) string {
		if focused {
			return m.styles.PanelFocused.Render(content)
		}
		return m.styles.Panel.Render(content)
	}

	charts := lipgloss.JoinHorizontal(
		lipgloss.Top,
		panel(m.trend.View(m.focus == focusTrend), m.focus == focusTrend),
		panel(m.family.View(m.focus == focusFamily), m.focus == focusFamily),
		panel(m.share.View(m.focus == focusShare), m.focus == focusShare),
	)

	side := lipgloss.JoinVertical(
		lipgloss.Left,
		panel(m.disciplines.View(), m.focus == focusDisciplines),
		panel(m.sources.View(), false),
	)
	lower := lipgloss.JoinHorizontal(
		lipgloss.Top,
		panel(m.drawer.View(), m.focus == focusDrawer),
		side,
	)

	footer := m.styles.Footer.Render(
		"tab focus · ←/→ move · enter select · esc clear · f filter · s share · e export · r reload · q quit",
	)

	parts := []string{header, charts, lower}
	if m.banner != "" {
		style := m.styles.Success
		if m.bannerErr {
			style = m.styles.Error
		}
		parts = append(parts, style.Render(m.banner))
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
