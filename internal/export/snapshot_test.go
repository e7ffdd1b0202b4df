package export

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilldash/internal/dataset"
)

func fixtureDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Charts: map[string]*dataset.Chart{
			dataset.ChartTrend: {
				Title:  "AI mentions are rising",
				Labels: []string{"Jun 2026", "Jul 2026"},
				Values: []float64{3.1, 3.4},
			},
			dataset.ChartFamily: {
				Title:  "AI mentions by family",
				Labels: []string{"Nursing", "Business"},
				Values: []float64{2.5, 4.0},
			},
			dataset.ChartOutside: {
				Title:  "AI demand beyond IT",
				Labels: []string{"Outside IT/CS", "IT/CS"},
				Values: []float64{62, 38},
			},
		},
	}
}

func TestSnapshotWritesPNG(t *testing.T) {
	dir := t.TempDir()
	path, err := Snapshot(fixtureDataset(), dir)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4], "PNG signature")
}

func TestSnapshotEmptyDatasetFails(t *testing.T) {
	_, err := Snapshot(&dataset.Dataset{Charts: map[string]*dataset.Chart{}}, t.TempDir())
	require.Error(t, err)
}

func TestSnapshotBadDirFails(t *testing.T) {
	_, err := Snapshot(fixtureDataset(), "/no/such/dir")
	require.Error(t, err)
}

func TestEndpointTicks(t *testing.T) {
	ticks := endpointTicks{"Jan 2025", "Feb 2025", "Mar 2025"}.Ticks(0, 2)
	require.Len(t, ticks, 2)
	assert.Equal(t, "Jan 2025", ticks[0].Label)
	assert.Equal(t, "Mar 2025", ticks[1].Label)
}
