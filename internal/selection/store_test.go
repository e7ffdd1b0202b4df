package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilldash/internal/dataset"
)

func fixtureDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Charts: map[string]*dataset.Chart{
			dataset.ChartTrend: {
				Labels:   []string{"Jun 2026", "Jul 2026"},
				Values:   []float64{3.1, 3.4},
				SourceID: "usajobs",
			},
			dataset.ChartFamily: {
				Labels:   []string{"Nursing", "Business"},
				Values:   []float64{2.5, 4.0},
				SourceID: "usajobs",
			},
			dataset.ChartOutside: {
				Labels:   []string{"Outside IT/CS", "IT/CS"},
				Values:   []float64{62, 38},
				SourceID: "usajobs-tutorial",
			},
		},
		ChartOrder: []string{dataset.ChartTrend, dataset.ChartFamily, dataset.ChartOutside},
		Sources: map[string]dataset.Source{
			"usajobs":          {Name: "USAJOBS Historic JOA API"},
			"usajobs-tutorial": {Name: "USAJOBS tutorial"},
			"bls":              {Name: "BLS"},
		},
		SourceOrder: []string{"usajobs", "usajobs-tutorial", "bls"},
		Disciplines: map[string]*dataset.Discipline{
			"Nursing":  {Sources: []string{"usajobs", "bls"}},
			"Business": {Sources: []string{"bls"}},
		},
		DisciplineOrder: []string{"Nursing", "Business"},
	}
}

type recorder struct {
	refreshes []State
}

func (r *recorder) Refresh(s State) { r.refreshes = append(r.refreshes, s) }

type fakePersister struct {
	saved []string
	err   error
}

func (p *fakePersister) SaveDiscipline(name string) error {
	p.saved = append(p.saved, name)
	return p.err
}

type fakeSink struct {
	fragments []string
}

func (s *fakeSink) WriteFragment(frag string) { s.fragments = append(s.fragments, frag) }

func newTestStore() (*Store, *recorder, *fakePersister, *fakeSink) {
	rec := &recorder{}
	persister := &fakePersister{}
	sink := &fakeSink{}
	store := New(fixtureDataset(), State{}, persister, sink)
	store.Register(rec)
	return store, rec, persister, sink
}

func TestToggleSelectsThenClears(t *testing.T) {
	store, _, _, _ := newTestStore()

	store.ToggleInsight(dataset.ChartFamily, "Nursing")
	require.NotNil(t, store.Snapshot().Insight)
	assert.Equal(t, Insight{ChartKey: dataset.ChartFamily, Label: "Nursing"}, *store.Snapshot().Insight)

	// Toggling the same element again returns to the cleared state.
	store.ToggleInsight(dataset.ChartFamily, "Nursing")
	assert.Nil(t, store.Snapshot().Insight)
}

func TestCrossChartExclusivity(t *testing.T) {
	store, _, _, _ := newTestStore()

	store.ToggleInsight(dataset.ChartFamily, "Nursing")
	store.ToggleInsight(dataset.ChartTrend, "Jul 2026")

	insight := store.Snapshot().Insight
	require.NotNil(t, insight)
	assert.Equal(t, Insight{ChartKey: dataset.ChartTrend, Label: "Jul 2026"}, *insight)
}

func TestToggleUnknownElementIgnored(t *testing.T) {
	store, rec, _, _ := newTestStore()

	store.ToggleInsight("noSuchChart", "Nursing")
	store.ToggleInsight(dataset.ChartFamily, "No Such Label")

	assert.Nil(t, store.Snapshot().Insight)
	assert.Empty(t, rec.refreshes, "invalid toggles must not trigger a render pass")
}

func TestEveryMutationRunsOneRenderPass(t *testing.T) {
	store, rec, _, _ := newTestStore()

	store.ToggleInsight(dataset.ChartFamily, "Nursing")
	store.SetDiscipline("Nursing")
	store.SetSourceFilter(FilterAll)
	store.ClearInsight()

	assert.Len(t, rec.refreshes, 4)
	last := rec.refreshes[len(rec.refreshes)-1]
	assert.Nil(t, last.Insight)
	assert.Equal(t, "Nursing", last.Discipline)
	assert.Equal(t, FilterAll, last.Filter)
}

func TestDisciplinePersistedOnlyWhenChanged(t *testing.T) {
	store, _, persister, _ := newTestStore()

	store.SetDiscipline("Nursing")
	store.SetDiscipline("Nursing") // re-select: never toggles off, no re-persist
	store.SetDiscipline("Business")

	assert.Equal(t, []string{"Nursing", "Business"}, persister.saved)
	assert.Equal(t, "Business", store.Snapshot().Discipline)
}

func TestFragmentWrittenOnEveryMutation(t *testing.T) {
	store, _, _, sink := newTestStore()

	store.SetDiscipline("Nursing")
	store.ToggleInsight(dataset.ChartTrend, "Jul 2026")
	store.ClearInsight()

	require.Len(t, sink.fragments, 3)
	assert.Equal(t, "discipline=Nursing", sink.fragments[0])
	assert.Equal(t, "discipline=Nursing&chart=aiMentionsTrend&label=Jul+2026", sink.fragments[1])
	assert.Equal(t, "discipline=Nursing", sink.fragments[2])
}

func TestSnapshotIsDetached(t *testing.T) {
	store, _, _, _ := newTestStore()
	store.ToggleInsight(dataset.ChartFamily, "Nursing")

	snap := store.Snapshot()
	snap.Insight.Label = "tampered"

	assert.Equal(t, "Nursing", store.Snapshot().Insight.Label)
}

func TestBootPriorityFragmentOverStored(t *testing.T) {
	ds := fixtureDataset()

	state := Boot(ds, "discipline=Business&chart=aiMentionsTrend&label=Jul+2026", "Nursing")
	want := State{
		Insight:    &Insight{ChartKey: dataset.ChartTrend, Label: "Jul 2026"},
		Discipline: "Business",
		Filter:     FilterSelection,
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("boot state mismatch (-want +got):\n%s", diff)
	}
}

func TestBootFallsBackToStoredDiscipline(t *testing.T) {
	ds := fixtureDataset()

	state := Boot(ds, "", "Nursing")
	assert.Equal(t, "Nursing", state.Discipline)
	assert.Nil(t, state.Insight)
	assert.Equal(t, FilterSelection, state.Filter)
}

func TestBootDropsStaleValues(t *testing.T) {
	ds := fixtureDataset()

	state := Boot(ds, "discipline=Astrology&chart=aiMentionsTrend&label=Dec+1999", "Alchemy")
	assert.Empty(t, state.Discipline)
	assert.Nil(t, state.Insight)
}

func TestSetDatasetDropsUnresolvableState(t *testing.T) {
	store, rec, _, _ := newTestStore()
	store.SetDiscipline("Nursing")
	store.ToggleInsight(dataset.ChartFamily, "Nursing")

	replacement := fixtureDataset()
	replacement.Charts[dataset.ChartFamily].Labels = []string{"Logistics"}
	delete(replacement.Disciplines, "Nursing")

	store.SetDataset(replacement)

	snap := store.Snapshot()
	assert.Nil(t, snap.Insight, "selection must not survive the label's removal")
	assert.Empty(t, snap.Discipline, "discipline must not survive its removal")
	assert.Len(t, rec.refreshes, 3, "the swap runs its own render pass")
}

func TestSetDatasetKeepsStillValidState(t *testing.T) {
	store, _, _, sink := newTestStore()
	store.SetDiscipline("Nursing")
	store.ToggleInsight(dataset.ChartTrend, "Jul 2026")

	store.SetDataset(fixtureDataset())

	snap := store.Snapshot()
	require.NotNil(t, snap.Insight)
	assert.Equal(t, "Jul 2026", snap.Insight.Label)
	assert.Equal(t, "Nursing", snap.Discipline)
	assert.Equal(t, "discipline=Nursing&chart=aiMentionsTrend&label=Jul+2026",
		sink.fragments[len(sink.fragments)-1])
}

func TestSetSourceFilterRejectsUnknownMode(t *testing.T) {
	store, rec, _, _ := newTestStore()

	store.SetSourceFilter(FilterMode("sideways"))
	assert.Equal(t, FilterSelection, store.Snapshot().Filter)
	assert.Empty(t, rec.refreshes)
}
