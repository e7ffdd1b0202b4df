// Package dataset defines the dashboard dataset, its loader and its shape
// validator. The dataset is loaded once per session and treated as
// immutable; everything downstream (selection store, resolvers, chart
// surfaces) reads it by reference.
package dataset

import (
	"encoding/json"
	"fmt"
)

// Well-known chart identifiers. The validator requires all three to be
// present with a source reference before the dashboard is allowed to render.
const (
	ChartTrend   = "aiMentionsTrend"
	ChartFamily  = "aiMentionsByFamily"
	ChartOutside = "aiOutsideITShare"
)

// KnownCharts lists the chart identifiers in display order.
var KnownCharts = []string{ChartTrend, ChartFamily, ChartOutside}

// Dataset is the full dashboard document.
//
// Charts, Sources and Disciplines are keyed mappings in the JSON document;
// Go maps do not preserve declaration order, so each carries a companion
// order slice captured during unmarshalling. The source aggregator and the
// discipline list depend on that order.
type Dataset struct {
	LastUpdated string      `json:"lastUpdated"`
	Takeaway    Takeaway    `json:"takeaway"`
	CoreSkills  []CoreSkill `json:"coreSkills"`

	Charts          map[string]*Chart
	ChartOrder      []string
	Sources         map[string]Source
	SourceOrder     []string
	Disciplines     map[string]*Discipline
	DisciplineOrder []string
}

// Takeaway is the executive headline block shown above the charts.
type Takeaway struct {
	Headline       string   `json:"headline"`
	Subhead        string   `json:"subhead"`
	ExecutiveNotes []string `json:"executiveNotes"`
}

// CoreSkill is one entry of the cross-discipline skill list.
type CoreSkill struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Chart is a single chart slice: parallel label/value sequences plus the
// provenance and narrative detail that hang off each label.
type Chart struct {
	Title     string             `json:"title"`
	Labels    []string           `json:"labels"`
	Values    []float64          `json:"values"`
	Note      string             `json:"note"`
	SourceID  string             `json:"sourceId"`
	AsOfDate  string             `json:"asOfDate"`
	Method    string             `json:"method"`
	Drilldown map[string]*Detail `json:"drilldown"`
}

// Detail is the narrative drill-down keyed by a chart label. A label with
// no matching Detail is a recoverable gap, not an error.
type Detail struct {
	Headline       string   `json:"headline"`
	Interpretation string   `json:"interpretation"`
	WhyItMatters   string   `json:"whyItMatters"`
	Implications   []string `json:"implications"`
	TeachingFocus  string   `json:"teachingFocus"`
}

// Source is a citation record, referenced by id from charts and
// disciplines. It is never embedded by value in either.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Discipline is the teaching-discipline narrative block.
type Discipline struct {
	TopSkillsEmphasis []string `json:"topSkillsEmphasis"`
	LearningOutcomes  []string `json:"learningOutcomes"`
	SampleAssignments []string `json:"sampleAssignments"`
	WatchOuts         []string `json:"watchOuts"`
	Sources           []string `json:"sources"`
}

// UnmarshalJSON decodes the document while recording the declaration order
// of the three keyed mappings.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw struct {
		LastUpdated string          `json:"lastUpdated"`
		Takeaway    Takeaway        `json:"takeaway"`
		CoreSkills  []CoreSkill     `json:"coreSkills"`
		Charts      json.RawMessage `json:"charts"`
		Sources     json.RawMessage `json:"sources"`
		Disciplines json.RawMessage `json:"disciplines"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.LastUpdated = raw.LastUpdated
	d.Takeaway = raw.Takeaway
	d.CoreSkills = raw.CoreSkills

	var err error
	d.Charts = make(map[string]*Chart)
	if d.ChartOrder, err = decodeOrdered(raw.Charts, d.Charts); err != nil {
		return fmt.Errorf("charts: %w", err)
	}
	d.Sources = make(map[string]Source)
	if d.SourceOrder, err = decodeOrdered(raw.Sources, d.Sources); err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	d.Disciplines = make(map[string]*Discipline)
	if d.DisciplineOrder, err = decodeOrdered(raw.Disciplines, d.Disciplines); err != nil {
		return fmt.Errorf("disciplines: %w", err)
	}
	return nil
}

// MarshalJSON writes the keyed mappings back out in declaration order.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	charts, err := encodeOrdered(d.ChartOrder, d.Charts)
	if err != nil {
		return nil, err
	}
	sources, err := encodeOrdered(d.SourceOrder, d.Sources)
	if err != nil {
		return nil, err
	}
	disciplines, err := encodeOrdered(d.DisciplineOrder, d.Disciplines)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		LastUpdated string          `json:"lastUpdated"`
		Takeaway    Takeaway        `json:"takeaway"`
		CoreSkills  []CoreSkill     `json:"coreSkills"`
		Charts      json.RawMessage `json:"charts"`
		Sources     json.RawMessage `json:"sources"`
		Disciplines json.RawMessage `json:"disciplines"`
	}{d.LastUpdated, d.Takeaway, d.CoreSkills, charts, sources, disciplines})
}

// HasLabel reports whether label is one of the chart's rendered labels.
func (c *Chart) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}
