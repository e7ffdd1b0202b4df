package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skilldash/internal/dataset"
	"skilldash/internal/drilldown"
	"skilldash/internal/selection"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		LastUpdated: "2026-08-15",
		Takeaway: dataset.Takeaway{
			Headline: "AI demand keeps climbing",
			Subhead:  "Monthly federal posting scan",
		},
		Charts: map[string]*dataset.Chart{
			dataset.ChartTrend: {
				Title:    "AI mentions over time",
				Labels:   []string{"Jun 2026", "Jul 2026", "Aug 2026"},
				Values:   []float64{1.2, 1.8, 2.4},
				SourceID: "usajobs",
				AsOfDate: "2026-08-15",
			},
			dataset.ChartFamily: {
				Title:    "AI mentions by family",
				Labels:   []string{"Nursing", "Business"},
				Values:   []float64{4.2, 3.1},
				SourceID: "usajobs",
				Drilldown: map[string]*dataset.Detail{
					"Nursing": {Headline: "Nursing postings lead outside IT"},
				},
			},
			dataset.ChartOutside: {
				Title:    "AI postings outside IT",
				Labels:   []string{"Outside IT", "Inside IT"},
				Values:   []float64{35, 65},
				SourceID: "usajobs",
			},
		},
		ChartOrder: []string{dataset.ChartTrend, dataset.ChartFamily, dataset.ChartOutside},
		Sources: map[string]dataset.Source{
			"usajobs": {Name: "USAJOBS Historic JOA", URL: "https://data.usajobs.gov"},
		},
		SourceOrder: []string{"usajobs"},
		Disciplines: map[string]*dataset.Discipline{
			"Nursing":  {TopSkillsEmphasis: []string{"clinical informatics"}, Sources: []string{"usajobs"}},
			"Business": {TopSkillsEmphasis: []string{"prompt fluency"}},
		},
		DisciplineOrder: []string{"Nursing", "Business"},
	}
}

func newTestModel(t *testing.T) (Model, *FragmentCell) {
	t.Helper()
	ds := testDataset()
	cell := &FragmentCell{}
	store := selection.New(ds, selection.Boot(ds, "", ""), nil, cell)
	m := NewModel(Options{
		Dataset:   ds,
		Store:     store,
		Fragment:  cell,
		DataPath:  "data.json",
		ExportDir: t.TempDir(),
		Styles:    DefaultStyles(),
	})
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return resized.(Model), cell
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestEmphasisIsScopedToOwningChart(t *testing.T) {
	sel := &selection.Insight{ChartKey: dataset.ChartFamily, Label: "Nursing"}

	if !Emphasized(dataset.ChartFamily, "Nursing", sel) {
		t.Error("expected the selected element to be emphasized")
	}
	if Emphasized(dataset.ChartFamily, "Business", sel) {
		t.Error("sibling element must not be emphasized")
	}
	if Emphasized(dataset.ChartTrend, "Nursing", sel) {
		t.Error("same label on another chart must not be emphasized")
	}
	if Emphasized(dataset.ChartFamily, "Nursing", nil) {
		t.Error("nothing is emphasized without a selection")
	}
}

func TestBarWidthKeepsNonZeroValuesVisible(t *testing.T) {
	if got := barWidth(0.1, 100, 40); got != 1 {
		t.Errorf("tiny non-zero value: got width %d, want 1", got)
	}
	if got := barWidth(0, 100, 40); got != 0 {
		t.Errorf("zero value: got width %d, want 0", got)
	}
	if got := barWidth(100, 100, 40); got != 40 {
		t.Errorf("max value: got width %d, want 40", got)
	}
}

func TestSegmentWidthsFillAvailableSpace(t *testing.T) {
	widths := segmentWidths([]float64{35, 65}, 50)
	total := 0
	for _, w := range widths {
		total += w
	}
	if total != 50 {
		t.Errorf("segments cover %d cells, want 50", total)
	}
}

func TestChartActivationTranslatesCursorToLabel(t *testing.T) {
	m, _ := newTestModel(t)

	// Focus starts on the trend chart; move to the second month and select.
	m = press(t, m, "right", "enter")

	snap := m.store.Snapshot()
	if snap.Insight == nil {
		t.Fatal("expected a selection after enter")
	}
	if snap.Insight.ChartKey != dataset.ChartTrend || snap.Insight.Label != "Jul 2026" {
		t.Errorf("selected %s/%s, want %s/Jul 2026", snap.Insight.ChartKey, snap.Insight.Label, dataset.ChartTrend)
	}
}

func TestSelectionFlowsThroughDrawerAndSources(t *testing.T) {
	m, _ := newTestModel(t)

	// Family chart: select Nursing, which carries a drilldown record.
	m = press(t, m, "tab", "enter")

	if m.drawer.content.Kind != drilldown.KindDetail {
		t.Fatalf("drawer kind = %v, want detail", m.drawer.content.Kind)
	}
	if m.drawer.content.Detail.Headline != "Nursing postings lead outside IT" {
		t.Errorf("unexpected headline %q", m.drawer.content.Detail.Headline)
	}
	if len(m.sources.visible) != 1 || m.sources.visible[0] != "usajobs" {
		t.Errorf("sources = %v, want [usajobs]", m.sources.visible)
	}

	// Business has no drilldown record: fallback, not an error.
	m = press(t, m, "right", "enter")
	if m.drawer.content.Kind != drilldown.KindMissing {
		t.Errorf("drawer kind = %v, want missing fallback", m.drawer.content.Kind)
	}

	// Selecting the same element again toggles it off, back to the prompt.
	m = press(t, m, "enter")
	if m.drawer.content.Kind != drilldown.KindPrompt {
		t.Errorf("drawer kind = %v, want prompt after toggle-off", m.drawer.content.Kind)
	}
	if snap := m.store.Snapshot(); snap.Insight != nil {
		t.Error("expected no selection after toggle-off")
	}
}

func TestCrossChartSelectionDisplacesPrevious(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "enter")        // trend: Jun 2026
	m = press(t, m, "tab", "enter") // family: Nursing displaces it

	snap := m.store.Snapshot()
	if snap.Insight == nil || snap.Insight.ChartKey != dataset.ChartFamily {
		t.Fatalf("selection = %+v, want family chart", snap.Insight)
	}
	if m.trend.sel != nil && m.trend.sel.ChartKey == dataset.ChartTrend {
		t.Error("trend surface still holds the displaced selection")
	}
}

func TestEscapeClearsSelection(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "enter", "esc")
	if snap := m.store.Snapshot(); snap.Insight != nil {
		t.Error("expected esc to clear the selection")
	}
}

func TestShareKeyCopiesFragment(t *testing.T) {
	var copied string
	oldClipboard := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = oldClipboard }()

	m, _ := newTestModel(t)
	m = press(t, m, "enter", "s")

	want := "#chart=" + dataset.ChartTrend + "&label=Jun+2026"
	if copied != want {
		t.Errorf("copied %q, want %q", copied, want)
	}
}

func TestShareKeyWithNothingSelected(t *testing.T) {
	oldClipboard := clipboardWriteAll
	clipboardWriteAll = func(string) error {
		t.Error("clipboard must not be written without a selection")
		return nil
	}
	defer func() { clipboardWriteAll = oldClipboard }()

	m, _ := newTestModel(t)
	m = press(t, m, "s")
	if !m.bannerErr {
		t.Error("expected an error banner")
	}
}

func TestFilterKeyTogglesSourceMode(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "f")
	if got := m.store.Snapshot().Filter; got != selection.FilterAll {
		t.Errorf("filter = %v, want all", got)
	}
	m = press(t, m, "f")
	if got := m.store.Snapshot().Filter; got != selection.FilterSelection {
		t.Errorf("filter = %v, want selection", got)
	}
}

func TestReloadDropsStaleSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "tab", "enter") // family: Nursing

	replacement := testDataset()
	fam := replacement.Charts[dataset.ChartFamily]
	fam.Labels = []string{"Logistics"}
	fam.Values = []float64{2.0}
	fam.Drilldown = nil

	next, _ := m.Update(dataReloadedMsg{ds: replacement})
	m = next.(Model)

	if snap := m.store.Snapshot(); snap.Insight != nil {
		t.Errorf("selection %+v survived a reload that removed its label", snap.Insight)
	}
	if m.drawer.content.Kind != drilldown.KindPrompt {
		t.Errorf("drawer kind = %v, want prompt after stale selection dropped", m.drawer.content.Kind)
	}
}

func TestInvalidReloadKeepsOldData(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "tab", "enter")

	next, _ := m.Update(dataInvalidMsg{err: &dataset.ErrInvalid{Problems: []string{"charts missing"}}})
	m = next.(Model)

	if snap := m.store.Snapshot(); snap.Insight == nil {
		t.Error("a rejected reload must not disturb the current state")
	}
	if !m.bannerErr {
		t.Error("expected an error banner for the rejected reload")
	}
}

func TestBannerClearGuardsAgainstStaleTicks(t *testing.T) {
	m, _ := newTestModel(t)

	m.setBanner("first", false)
	staleID := m.bannerID
	m.setBanner("second", false)

	next, _ := m.Update(bannerClearMsg{id: staleID})
	m = next.(Model)
	if m.banner != "second" {
		t.Errorf("banner = %q, stale tick must not clear a newer banner", m.banner)
	}

	next, _ = m.Update(bannerClearMsg{id: m.bannerID})
	m = next.(Model)
	if m.banner != "" {
		t.Errorf("banner = %q, want cleared", m.banner)
	}
}

func TestViewMentionsEveryChartTitle(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, title := range []string{"AI mentions over time", "AI mentions by family", "AI postings outside IT"} {
		if !strings.Contains(view, title) {
			t.Errorf("view is missing chart title %q", title)
		}
	}
}
