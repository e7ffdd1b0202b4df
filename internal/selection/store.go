// Package selection holds the process-wide selection state for the
// dashboard and is its sole writer. Chart surfaces, the drill-down drawer
// and the source list all read state from here and never mutate it
// directly; every change flows through one of the Store's mutators, which
// run a complete, synchronous persist-and-re-render pass.
package selection

import (
	"skilldash/internal/dataset"
	"skilldash/internal/fragment"
	"skilldash/internal/logging"
)

// Insight identifies one selected chart element. At most one Insight is
// selected across all three charts at any time.
type Insight struct {
	ChartKey string
	Label    string
}

// FilterMode controls which citations the source list shows.
type FilterMode string

const (
	FilterSelection FilterMode = "selection"
	FilterAll       FilterMode = "all"
)

// State is a value snapshot of the current selection.
type State struct {
	Insight    *Insight
	Discipline string
	Filter     FilterMode
}

// Renderer is anything that re-renders itself when the selection changes.
// Refresh is called synchronously from the mutating goroutine; by the time
// a mutator returns, every registered renderer has seen the new state.
type Renderer interface {
	Refresh(State)
}

// DisciplinePersister saves the selected discipline across restarts.
type DisciplinePersister interface {
	SaveDiscipline(name string) error
}

// FragmentSink receives the encoded share fragment after every mutation.
type FragmentSink interface {
	WriteFragment(frag string)
}

// Store is the single mutable selection record. Not safe for concurrent
// use; the dashboard runs it on the UI event loop where mutation and read
// never interleave.
type Store struct {
	ds        *dataset.Dataset
	state     State
	persister DisciplinePersister
	sink      FragmentSink
	renderers []Renderer
}

// New builds the store with an already-seeded boot state (see Boot).
func New(ds *dataset.Dataset, initial State, persister DisciplinePersister, sink FragmentSink) *Store {
	if initial.Filter == "" {
		initial.Filter = FilterSelection
	}
	return &Store{ds: ds, state: initial, persister: persister, sink: sink}
}

// Boot merges, in priority order, the share fragment, the locally stored
// discipline and the defaults into the initial state. Values that do not
// resolve against the dataset are dropped silently: a stale shared link
// must not wedge the dashboard.
func Boot(ds *dataset.Dataset, frag string, storedDiscipline string) State {
	decoded := fragment.Decode(frag)

	state := State{Filter: FilterSelection}

	switch {
	case decoded.Discipline != "" && validDiscipline(ds, decoded.Discipline):
		state.Discipline = decoded.Discipline
	case storedDiscipline != "" && validDiscipline(ds, storedDiscipline):
		state.Discipline = storedDiscipline
	}

	if decoded.Chart != "" && validInsight(ds, decoded.Chart, decoded.Label) {
		state.Insight = &Insight{ChartKey: decoded.Chart, Label: decoded.Label}
	}
	return state
}

// Register adds renderers to the synchronous re-render pass. Order of
// registration is the order of notification.
func (s *Store) Register(renderers ...Renderer) {
	s.renderers = append(s.renderers, renderers...)
}

// Snapshot returns a copy of the current state. The Insight pointer is
// cloned so callers cannot reach back into the store.
func (s *Store) Snapshot() State {
	state := s.state
	if state.Insight != nil {
		insight := *state.Insight
		state.Insight = &insight
	}
	return state
}

// Fragment returns the share fragment for the current state.
func (s *Store) Fragment() string {
	frag := fragment.State{Discipline: s.state.Discipline}
	if s.state.Insight != nil {
		frag.Chart = s.state.Insight.ChartKey
		frag.Label = s.state.Insight.Label
	}
	return fragment.Encode(frag)
}

// ToggleInsight selects the (chartKey, label) element, or clears the
// selection when that exact element is already selected. Selecting an
// element on any chart displaces a selection held by another chart: there
// is a single selection across all three surfaces.
func (s *Store) ToggleInsight(chartKey, label string) {
	if !validInsight(s.ds, chartKey, label) {
		logging.UI("ignoring toggle for unknown element %s/%s", chartKey, label)
		return
	}
	cur := s.state.Insight
	if cur != nil && cur.ChartKey == chartKey && cur.Label == label {
		s.state.Insight = nil
	} else {
		s.state.Insight = &Insight{ChartKey: chartKey, Label: label}
	}
	s.commit(false)
}

// ClearInsight drops the chart selection, if any.
func (s *Store) ClearInsight() {
	s.state.Insight = nil
	s.commit(false)
}

// SetDiscipline replaces the selected discipline. Re-selecting the current
// discipline is a no-op selection-wise but still runs the render pass;
// disciplines are never toggled off.
func (s *Store) SetDiscipline(name string) {
	if !validDiscipline(s.ds, name) {
		logging.UI("ignoring unknown discipline %q", name)
		return
	}
	changed := s.state.Discipline != name
	s.state.Discipline = name
	s.commit(changed)
}

// SetDataset swaps the dataset after a live data reload. Selections that
// no longer resolve against the new document are dropped, then a full
// render pass runs so every surface picks up the replacement data.
func (s *Store) SetDataset(ds *dataset.Dataset) {
	s.ds = ds
	if s.state.Insight != nil && !validInsight(ds, s.state.Insight.ChartKey, s.state.Insight.Label) {
		s.state.Insight = nil
	}
	if s.state.Discipline != "" && !validDiscipline(ds, s.state.Discipline) {
		s.state.Discipline = ""
	}
	s.commit(false)
}

// SetSourceFilter switches the source list between "selection" and "all".
func (s *Store) SetSourceFilter(mode FilterMode) {
	if mode != FilterSelection && mode != FilterAll {
		return
	}
	s.state.Filter = mode
	s.commit(false)
}

// commit runs the fixed post-mutation sequence: persist the discipline if
// it changed, write the share fragment, then re-render every registered
// surface. All of it synchronous; when commit returns the pass is done.
func (s *Store) commit(disciplineChanged bool) {
	if disciplineChanged && s.persister != nil {
		if err := s.persister.SaveDiscipline(s.state.Discipline); err != nil {
			logging.UI("persist discipline: %v", err)
		}
	}
	if s.sink != nil {
		s.sink.WriteFragment(s.Fragment())
	}
	snapshot := s.Snapshot()
	for _, r := range s.renderers {
		r.Refresh(snapshot)
	}
}

func validDiscipline(ds *dataset.Dataset, name string) bool {
	if ds == nil {
		return false
	}
	_, ok := ds.Disciplines[name]
	return ok
}

func validInsight(ds *dataset.Dataset, chartKey, label string) bool {
	if ds == nil {
		return false
	}
	chart, ok := ds.Charts[chartKey]
	return ok && chart.HasLabel(label)
}
