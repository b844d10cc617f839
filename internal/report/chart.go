package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxChartSamples caps the number of cloud points embedded in the HTML.
const maxChartSamples = 2000

// WriteChart renders an interactive scatter chart of the mean path and the
// final position cloud as a standalone HTML page.
func WriteChart(w io.Writer, title, subtitle string, traj []PoseSummary, cloud Cloud) error {
	path := make([]opts.ScatterData, 0, len(traj))
	for i, p := range traj {
		path = append(path, opts.ScatterData{
			Name:  fmt.Sprintf("t=%d", i),
			Value: []interface{}{p.X.Mean, p.Y.Mean},
		})
	}

	n := min(len(cloud.X), len(cloud.Y))
	stride := 1
	if n > maxChartSamples {
		stride = (n + maxChartSamples - 1) / maxChartSamples
	}
	samples := make([]opts.ScatterData, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		samples = append(samples, opts.ScatterData{Value: []interface{}{cloud.X[i], cloud.Y[i]}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("mean path", path, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	if len(samples) > 0 {
		scatter.AddSeries("final samples", samples, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}))
	}

	return scatter.Render(w)
}
