// Package drilldown resolves the current chart selection into the
// narrative content shown in the drawer. Resolution never fails: every
// gap (no selection, no matching detail, dangling source id) maps to an
// explicit fallback record.
package drilldown

import (
	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

// Kind classifies what the drawer should show.
type Kind int

const (
	// KindPrompt is the resting state: nothing selected yet.
	KindPrompt Kind = iota
	// KindMissing means an element is selected but carries no narrative.
	KindMissing
	// KindDetail is a fully resolved drill-down.
	KindDetail
)

// PlaceholderSource labels a citation whose id resolves to nothing.
const PlaceholderSource = "Unknown source"

// Prompt and missing-detail copy, shared with tests.
const (
	PromptMessage  = "Select a point, bar or slice to see what it means."
	MissingMessage = "No details available for this selection yet."
)

// Content is the drawer's render input.
type Content struct {
	Kind Kind

	// Message carries the prompt or fallback copy for non-detail kinds.
	Message string

	// Populated when Kind == KindDetail.
	ChartTitle string
	Label      string
	Detail     *dataset.Detail
	SourceName string
	SourceURL  string
	AsOfDate   string
}

// Resolve maps the selection onto the dataset. Pure; safe to call on every
// render pass.
func Resolve(state selection.State, ds *dataset.Dataset) Content {
	if state.Insight == nil {
		return Content{Kind: KindPrompt, Message: PromptMessage}
	}

	chart, ok := ds.Charts[state.Insight.ChartKey]
	if !ok {
		// The store guards against this, but a stale snapshot after a
		// live data reload can still point at a removed chart.
		return Content{Kind: KindMissing, Message: MissingMessage}
	}

	detail, ok := chart.Drilldown[state.Insight.Label]
	if !ok || detail == nil {
		return Content{Kind: KindMissing, Message: MissingMessage}
	}

	content := Content{
		Kind:       KindDetail,
		ChartTitle: chart.Title,
		Label:      state.Insight.Label,
		Detail:     detail,
		AsOfDate:   chart.AsOfDate,
		SourceName: PlaceholderSource,
	}
	if src, ok := ds.Sources[chart.SourceID]; ok {
		content.SourceName = src.Name
		content.SourceURL = src.URL
	}
	return content
}
