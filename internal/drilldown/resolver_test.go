package drilldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilldash/internal/dataset"
	"skilldash/internal/selection"
)

func fixtureDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Charts: map[string]*dataset.Chart{
			dataset.ChartFamily: {
				Title:    "AI mentions by family",
				Labels:   []string{"Nursing", "Business"},
				SourceID: "usajobs",
				AsOfDate: "2026-08-01",
				Drilldown: map[string]*dataset.Detail{
					"Nursing": {
						Headline:       "H1",
						Interpretation: "Clinical AI tooling shows up in postings.",
						TeachingFocus:  "Responsible AI",
					},
				},
			},
			dataset.ChartOutside: {
				Title:    "AI demand beyond IT",
				Labels:   []string{"Outside IT/CS", "IT/CS"},
				SourceID: "ghost-source",
				AsOfDate: "2026-08-01",
				Drilldown: map[string]*dataset.Detail{
					"IT/CS": {Headline: "H2"},
				},
			},
		},
		Sources: map[string]dataset.Source{
			"usajobs": {Name: "USAJOBS Historic JOA API", URL: "https://developer.usajobs.gov/"},
		},
	}
}

func TestResolveNoSelection(t *testing.T) {
	got := Resolve(selection.State{}, fixtureDataset())
	assert.Equal(t, KindPrompt, got.Kind)
	assert.Equal(t, PromptMessage, got.Message)
}

func TestResolveDetail(t *testing.T) {
	state := selection.State{
		Insight: &selection.Insight{ChartKey: dataset.ChartFamily, Label: "Nursing"},
	}
	got := Resolve(state, fixtureDataset())

	assert.Equal(t, KindDetail, got.Kind)
	assert.Equal(t, "H1", got.Detail.Headline)
	assert.Equal(t, "AI mentions by family", got.ChartTitle)
	assert.Equal(t, "USAJOBS Historic JOA API", got.SourceName)
	assert.Equal(t, "2026-08-01", got.AsOfDate)
}

func TestResolveMissingDetailIsFallbackNotError(t *testing.T) {
	state := selection.State{
		Insight: &selection.Insight{ChartKey: dataset.ChartFamily, Label: "Business"},
	}
	got := Resolve(state, fixtureDataset())

	assert.Equal(t, KindMissing, got.Kind)
	assert.Equal(t, MissingMessage, got.Message)
	assert.Nil(t, got.Detail)
}

func TestResolveDanglingSourceGetsPlaceholder(t *testing.T) {
	state := selection.State{
		Insight: &selection.Insight{ChartKey: dataset.ChartOutside, Label: "IT/CS"},
	}
	got := Resolve(state, fixtureDataset())

	require.Equal(t, KindDetail, got.Kind)
	assert.Equal(t, PlaceholderSource, got.SourceName)
	assert.Empty(t, got.SourceURL)
}

func TestResolveRemovedChartAfterReload(t *testing.T) {
	state := selection.State{
		Insight: &selection.Insight{ChartKey: "retiredChart", Label: "x"},
	}
	got := Resolve(state, fixtureDataset())
	assert.Equal(t, KindMissing, got.Kind)
}
