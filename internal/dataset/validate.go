package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Validate checks the raw dataset document against the shape the dashboard
// depends on and returns human-readable problems in check order. An empty
// result means the document is safe to render. Validate is pure: it never
// mutates anything and never returns an error for content gaps the UI can
// absorb (missing drilldown entries, dangling source ids).
//
// On a non-empty result the caller must surface one consolidated message
// and abort initialization; the dashboard never partially renders against
// an invalid document.
func Validate(raw []byte) []string {
	var problems []string

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return []string{"dataset is not a JSON object"}
	}

	// takeaway.headline is the anchor of the page; without it the header
	// panel has nothing to say.
	var takeaway struct {
		Headline string `json:"headline"`
	}
	if rawTakeaway, ok := top["takeaway"]; !ok {
		problems = append(problems, "missing takeaway block")
	} else if err := json.Unmarshal(rawTakeaway, &takeaway); err != nil || takeaway.Headline == "" {
		problems = append(problems, "takeaway.headline is missing or empty")
	}

	if !isArray(top["coreSkills"]) {
		problems = append(problems, "coreSkills must be a list")
	}

	var charts map[string]struct {
		SourceID string `json:"sourceId"`
	}
	if err := json.Unmarshal(top["charts"], &charts); err != nil {
		problems = append(problems, "charts must be a keyed mapping")
	} else {
		for _, id := range KnownCharts {
			chart, ok := charts[id]
			if !ok {
				problems = append(problems, fmt.Sprintf("chart %q is missing", id))
				continue
			}
			if chart.SourceID == "" {
				problems = append(problems, fmt.Sprintf("chart %q has no sourceId", id))
			}
		}
	}

	// sources and disciplines are keyed by id/name. A legacy document
	// carried sources as a list; that shape duplicates citations by value
	// and is rejected here.
	if !isObject(top["sources"]) {
		problems = append(problems, "sources must be a keyed mapping, not a list")
	}
	if !isObject(top["disciplines"]) {
		problems = append(problems, "disciplines must be a keyed mapping")
	}

	return problems
}

func isObject(raw json.RawMessage) bool {
	return firstByte(raw) == '{'
}

func isArray(raw json.RawMessage) bool {
	return firstByte(raw) == '['
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
