package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"skilldash/internal/dataset"
	"skilldash/internal/logging"
)

// fetchConcurrency bounds parallel month fetches; the Historic JOA
// endpoint is public and rate-limited informally, so stay polite.
const fetchConcurrency = 4

// Pipeline computes the measured chart slices.
type Pipeline struct {
	Client             *Client
	MonthsBack         int
	SnapshotMonthsBack int

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewPipeline wires a pipeline with the given client and window settings.
func NewPipeline(client *Client, monthsBack, snapshotMonthsBack int) *Pipeline {
	return &Pipeline{
		Client:             client,
		MonthsBack:         monthsBack,
		SnapshotMonthsBack: snapshotMonthsBack,
		now:                time.Now,
	}
}

// Trend computes one WindowStats per full month, oldest first, working
// back MonthsBack months from the start of the current month. The partial
// current month is excluded. Months are fetched in parallel but the result
// keeps calendar order.
func (p *Pipeline) Trend(ctx context.Context) ([]WindowStats, error) {
	firstOfThis := firstOfMonth(p.now())
	start := firstOfThis.AddDate(0, -p.MonthsBack, 0)

	var windows []time.Time
	for cursor := start; cursor.Before(firstOfThis); cursor = cursor.AddDate(0, 1, 0) {
		windows = append(windows, cursor)
	}

	stats := make([]WindowStats, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, month := range windows {
		g.Go(func() error {
			mStart, mEnd := monthWindow(month)
			postings, err := p.Client.FetchWindow(gctx, mStart, mEnd)
			if err != nil {
				return fmt.Errorf("month %s: %w", monthLabel(mStart), err)
			}
			w := WindowStats{Label: monthLabel(mStart)}
			for _, posting := range postings {
				title := strings.TrimSpace(posting.PositionTitle)
				if title == "" {
					continue
				}
				w.Total++
				if IsAITitle(title) {
					w.AI++
				}
			}
			stats[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// FamilySnapshot computes the AI share within each job family for the
// snapshot month.
func (p *Pipeline) FamilySnapshot(ctx context.Context) (map[string]float64, error) {
	postings, err := p.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	aiTotals := make(map[string]int)
	for _, posting := range postings {
		title := strings.TrimSpace(posting.PositionTitle)
		if title == "" {
			continue
		}
		family := ClassifyFamily(title)
		totals[family]++
		if IsAITitle(title) {
			aiTotals[family]++
		}
	}

	shares := make(map[string]float64, len(totals))
	for family, total := range totals {
		if total == 0 {
			shares[family] = 0
			continue
		}
		shares[family] = float64(aiTotals[family]) / float64(total) * 100.0
	}
	return shares, nil
}

// OutsideITShare splits the snapshot month's AI-flagged postings into
// outside-IT and IT percentages. Occupational series codes decide where
// they exist; titles are the fallback. The two values are complementary
// and sum to 100 unless there were no AI postings at all.
func (p *Pipeline) OutsideITShare(ctx context.Context) (outside, it int, err error) {
	postings, err := p.fetchSnapshot(ctx)
	if err != nil {
		return 0, 0, err
	}

	itAI, nonItAI := 0, 0
	for _, posting := range postings {
		title := strings.TrimSpace(posting.PositionTitle)
		if title == "" || !IsAITitle(title) {
			continue
		}
		if series := posting.Series(); len(series) > 0 {
			if IsITSeries(series) {
				itAI++
			} else {
				nonItAI++
			}
		} else if ClassifyFamily(title) == "IT/CS" {
			itAI++
		} else {
			nonItAI++
		}
	}

	total := itAI + nonItAI
	if total == 0 {
		return 0, 0, nil
	}
	outside = int(math.Round(float64(nonItAI) / float64(total) * 100))
	return outside, 100 - outside, nil
}

func (p *Pipeline) fetchSnapshot(ctx context.Context) ([]Posting, error) {
	snapMonth := firstOfMonth(p.now()).AddDate(0, -p.SnapshotMonthsBack, 0)
	start, end := monthWindow(snapMonth)
	return p.Client.FetchWindow(ctx, start, end)
}

// preferredFamilies are shown on the family chart when present; gaps are
// filled with the highest-share remaining families.
var preferredFamilies = []string{"Data & Analytics", "Marketing", "Human Resources"}

// PickFamilyLabels selects the three families to chart from a snapshot,
// never including the Other bucket.
func PickFamilyLabels(shares map[string]float64) ([]string, []float64) {
	available := make(map[string]float64)
	for family, share := range shares {
		if family != FamilyOther {
			available[family] = share
		}
	}

	var labels []string
	for _, family := range preferredFamilies {
		if _, ok := available[family]; ok {
			labels = append(labels, family)
		}
	}
	if len(labels) < 3 {
		var remaining []string
		for family := range available {
			if !contains(labels, family) {
				remaining = append(remaining, family)
			}
		}
		sort.Slice(remaining, func(i, j int) bool {
			if available[remaining[i]] != available[remaining[j]] {
				return available[remaining[i]] > available[remaining[j]]
			}
			return remaining[i] < remaining[j]
		})
		need := 3 - len(labels)
		if need > len(remaining) {
			need = len(remaining)
		}
		labels = append(labels, remaining[:need]...)
	}

	values := make([]float64, len(labels))
	for i, family := range labels {
		values[i] = round1(available[family])
	}
	return labels, values
}

// Run recomputes the measured chart slices and folds them into the
// dataset document at path, preserving all editorial content. The document
// must already pass validation; refresh never creates it from nothing.
func Run(ctx context.Context, p *Pipeline, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	if problems := dataset.Validate(raw); len(problems) > 0 {
		return &dataset.ErrInvalid{Problems: problems}
	}
	var ds dataset.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	trend, err := p.Trend(ctx)
	if err != nil {
		return fmt.Errorf("compute trend: %w", err)
	}
	shares, err := p.FamilySnapshot(ctx)
	if err != nil {
		return fmt.Errorf("compute family snapshot: %w", err)
	}
	outside, it, err := p.OutsideITShare(ctx)
	if err != nil {
		return fmt.Errorf("compute outside-IT share: %w", err)
	}

	today := p.now().Format("2006-01-02")

	trendChart := ds.Charts[dataset.ChartTrend]
	trendChart.Labels = make([]string, len(trend))
	trendChart.Values = make([]float64, len(trend))
	for i, w := range trend {
		trendChart.Labels[i] = w.Label
		trendChart.Values[i] = round2(w.Share())
	}
	trendChart.AsOfDate = today

	familyChart := ds.Charts[dataset.ChartFamily]
	familyChart.Labels, familyChart.Values = PickFamilyLabels(shares)
	familyChart.AsOfDate = today

	outsideChart := ds.Charts[dataset.ChartOutside]
	outsideChart.Labels = []string{"Outside IT/CS", "IT/CS"}
	outsideChart.Values = []float64{float64(outside), float64(it)}
	outsideChart.AsOfDate = today

	ds.LastUpdated = today

	out, err := json.MarshalIndent(&ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	logging.Refresh("rebuilt %s: %d trend months, families %v, outside-IT %d%%",
		path, len(trend), familyChart.Labels, outside)
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
