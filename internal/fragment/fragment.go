// Package fragment maps selection state to and from the shareable
// query-string-shaped fragment (the part after '#' in a shared dashboard
// link). The fragment is the only shareable representation of selection
// state; it is what the share key copies to the clipboard and what the
// --fragment flag accepts on boot.
package fragment

import (
	"net/url"
	"strings"
)

// Recognized keys. Anything else in a fragment is ignored on decode.
const (
	keyDiscipline = "discipline"
	keyChart      = "chart"
	keyLabel      = "label"
)

// State is the codec's view of the selection: a discipline and/or one
// (chart, label) pair. Empty fields are simply absent from the fragment.
type State struct {
	Discipline string
	Chart      string
	Label      string
}

// IsZero reports whether the state encodes to no fragment at all.
func (s State) IsZero() bool {
	return s.Discipline == "" && s.Chart == "" && s.Label == ""
}

// Encode serializes the state with fixed key order discipline, chart,
// label, omitting absent fields. The empty state encodes to "".
//
// Key order is fixed so that Encode(Decode(f)) == f for any well-formed f.
func Encode(s State) string {
	var parts []string
	add := func(key, val string) {
		if val != "" {
			parts = append(parts, key+"="+url.QueryEscape(val))
		}
	}
	add(keyDiscipline, s.Discipline)
	if s.Chart != "" && s.Label != "" {
		add(keyChart, s.Chart)
		add(keyLabel, s.Label)
	}
	return strings.Join(parts, "&")
}

// Decode parses a fragment leniently: unknown keys, malformed pairs and
// broken escapes are skipped, never errors. A chart without a label (or
// the reverse) does not form a selection and is dropped.
func Decode(frag string) State {
	frag = strings.TrimPrefix(frag, "#")

	var s State
	for _, pair := range strings.Split(frag, "&") {
		key, rawVal, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil || val == "" {
			continue
		}
		switch key {
		case keyDiscipline:
			s.Discipline = val
		case keyChart:
			s.Chart = val
		case keyLabel:
			s.Label = val
		}
	}
	if s.Chart == "" || s.Label == "" {
		s.Chart = ""
		s.Label = ""
	}
	return s
}
