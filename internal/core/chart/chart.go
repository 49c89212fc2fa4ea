// Package chart renders transform output as a self-contained echarts page
package chart

import (
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"statsdash/internal/core/series"
	"statsdash/internal/core/transform"
)

const chartWidth = "900px"
const chartHeight = "420px"

// Render writes one HTML page with a chart per non-empty metric
// category keys and metric names render in sorted order so repeated
// exports of the same output produce identical pages
func Render(w io.Writer, title string, out transform.Output) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, key := range sortedKeys(out) {
		metrics := out[key]
		for _, metric := range sortedKeys(metrics) {
			list := metrics[metric]
			if empty(list) {
				continue
			}
			page.AddCharts(build(key+" / "+metric, list))
		}
	}
	return page.Render(w)
}

// empty reports whether no series in the list carries a point
func empty(list []*series.Series) bool {
	for _, s := range list {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}

// build renders one metric as a line or bar chart, following the chart
// type the transformer stamped on the series
func build(title string, list []*series.Series) components.Charter {
	dates := dateAxis(list)

	if list[0].Chart == series.ChartBar {
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
			charts.WithTitleOpts(opts.Title{Title: title}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		)
		bar.SetXAxis(dates)
		for _, s := range list {
			data := make([]opts.BarData, len(dates))
			for i, d := range dates {
				data[i] = opts.BarData{Value: valueAt(s, d)}
			}
			bar.AddSeries(s.Name, data)
		}
		return bar
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(dates)
	for _, s := range list {
		data := make([]opts.LineData, len(dates))
		for i, d := range dates {
			data[i] = opts.LineData{Value: valueAt(s, d)}
		}
		line.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return line
}

// dateAxis returns the sorted union of dates across the series
func dateAxis(list []*series.Series) []string {
	seen := map[string]bool{}
	var dates []string
	for _, s := range list {
		for _, p := range s.Points {
			if !seen[p.Date] {
				seen[p.Date] = true
				dates = append(dates, p.Date)
			}
		}
	}
	sort.Strings(dates)
	return dates
}

// valueAt returns the series value for a date, nil when absent so
// echarts leaves a gap instead of drawing a zero
func valueAt(s *series.Series, date string) any {
	for _, p := range s.Points {
		if p.Date == date {
			return p.Value
		}
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
