// Package export captures the dashboard's three charts into a downloadable
// PNG. Export is best effort: a failure is reported to the caller as a
// plain error for the status banner and never disturbs the dashboard
// state.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"skilldash/internal/dataset"
	"skilldash/internal/logging"
)

// Snapshot renders the dataset's three charts side by side into a PNG
// under dir and returns the written path.
func Snapshot(ds *dataset.Dataset, dir string) (string, error) {
	plots := make([]*plot.Plot, 0, len(dataset.KnownCharts))
	for _, key := range dataset.KnownCharts {
		chart, ok := ds.Charts[key]
		if !ok {
			continue
		}
		p, err := chartPlot(key, chart)
		if err != nil {
			return "", fmt.Errorf("plot %s: %w", key, err)
		}
		plots = append(plots, p)
	}
	if len(plots) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	img := vgimg.New(vg.Points(320*float64(len(plots))), vg.Points(260))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(plots),
		PadX: vg.Points(12),
	}
	for i, p := range plots {
		p.Draw(tiles.At(dc, i, 0))
	}

	name := fmt.Sprintf("skilldash_%s_%s.png",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	logging.Export("wrote %s", path)
	return path, nil
}

func chartPlot(key string, chart *dataset.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = chart.Title
	p.Title.TextStyle.Font.Size = vg.Points(9)
	p.Y.Label.Text = "%"

	switch key {
	case dataset.ChartTrend:
		pts := make(plotter.XYs, len(chart.Values))
		for i, v := range chart.Values {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.X.Tick.Marker = endpointTicks(chart.Labels)
	default:
		bars, err := plotter.NewBarChart(plotter.Values(chart.Values), vg.Points(22))
		if err != nil {
			return nil, err
		}
		p.Add(bars)
		p.NominalX(chart.Labels...)
	}
	return p, nil
}

// endpointTicks labels only the first and last points; two years of
// monthly labels do not fit a tile.
type endpointTicks []string

func (t endpointTicks) Ticks(min, max float64) []plot.Tick {
	if len(t) == 0 {
		return nil
	}
	ticks := []plot.Tick{{Value: 0, Label: t[0]}}
	if len(t) > 1 {
		ticks = append(ticks, plot.Tick{Value: float64(len(t) - 1), Label: t[len(t)-1]})
	}
	return ticks
}
