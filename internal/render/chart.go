package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartSpec is a renderer-independent chart configuration. Every series
// has one value per category.
type ChartSpec struct {
	Kind       ChartKind `json:"kind"`
	Title      string    `json:"title"`
	Unit       string    `json:"unit"`
	Categories []string  `json:"categories"`
	Series     []Series  `json:"series"`
}

// Points returns the number of categories on the x axis.
func (c *ChartSpec) Points() int {
	return len(c.Categories)
}

// Render writes the chart as a standalone echarts HTML snippet.
func (c *ChartSpec) Render(w io.Writer) error {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(c.Series) > 1)}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.Unit}),
	}

	switch c.Kind {
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(c.Categories)
		for _, s := range c.Series {
			data := make([]opts.LineData, 0, len(s.Values))
			for _, v := range s.Values {
				data = append(data, opts.LineData{Value: v})
			}
			line.AddSeries(s.Name, data)
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(true),
		}))
		return line.Render(w)

	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(c.Categories)
		for _, s := range c.Series {
			data := make([]opts.BarData, 0, len(s.Values))
			for _, v := range s.Values {
				data = append(data, opts.BarData{Value: v})
			}
			bar.AddSeries(s.Name, data)
		}
		return bar.Render(w)

	default:
		return fmt.Errorf("unsupported chart kind %q", c.Kind)
	}
}
