// Package sources computes the visible citation list for the current
// selection and filter mode.
package sources

import (
	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

// Visible returns the ordered, de-duplicated source ids to display.
//
// Filter "all": every source in declaration order. Filter "selection": the
// union of the selected chart's source and the selected discipline's
// sources, first occurrence wins. An empty result under "selection" means
// the caller should render an explicit placeholder, not an empty list.
func Visible(state selection.State, ds *dataset.Dataset) []string {
	if state.Filter == selection.FilterAll {
		ids := make([]string, len(ds.SourceOrder))
		copy(ids, ds.SourceOrder)
		return ids
	}

	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if state.Insight != nil {
		if chart, ok := ds.Charts[state.Insight.ChartKey]; ok {
			add(chart.SourceID)
		}
	}
	if state.Discipline != "" {
		if disc, ok := ds.Disciplines[state.Discipline]; ok {
			for _, id := range disc.Sources {
				add(id)
			}
		}
	}
	return ids
}
