package report

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/avasisht/gradelens/internal/domain/grade"
	"github.com/avasisht/gradelens/internal/domain/model"
	"github.com/avasisht/gradelens/pkg/metrics"
)

// Chart rendering constants.
const (
	chartWidth    = 1024
	chartHeight   = 512
	chartBarWidth = 48
	percentMax    = 100
)

// Distribution aggregates each grade column across all rows of one query
// and returns the share of students per grade, in canonical grade order,
// alongside the grand total. A zero grand total returns ErrNoData.
func Distribution(rows []model.ReconciledRow) (percentages map[grade.Grade]float64, total int, err error) {
	counts := make(map[grade.Grade]int, len(grade.Canonical()))
	for _, row := range rows {
		for _, g := range grade.Canonical() {
			counts[g] += row.Count(g)
		}
	}
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil, 0, ErrNoData
	}

	percentages = make(map[grade.Grade]float64, len(counts))
	for g, n := range counts {
		pct := float64(n) / float64(total) * percentMax
		percentages[g] = math.Round(pct*10) / 10
	}
	return percentages, total, nil
}

// RenderChart writes a PNG bar chart of the aggregated grade distribution,
// one percentage bar per allowed grade in canonical order.
func RenderChart(w io.Writer, rows []model.ReconciledRow, professor string) error {
	percentages, total, err := Distribution(rows)
	if err != nil {
		return err
	}

	bars := make([]chart.Value, 0, len(grade.Canonical()))
	for _, g := range grade.Canonical() {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", g, percentages[g]),
			Value: percentages[g],
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Grade distribution for %s (%d students)", professor, total),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: chartBarWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  "percent of students",
			Range: &chart.ContinuousRange{Min: 0, Max: percentMax},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	metrics.RecordChartRendered()
	return nil
}
