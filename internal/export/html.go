package export

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/san-kum/drawdown/internal/field"
)

var heatColors = []string{"#313695", "#4575b4", "#74add1", "#abd9e9", "#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026"}

// SeriesChart builds an interactive line chart of the curves on a shared
// time axis. Curves must share their time grid with the first one.
func SeriesChart(title string, curves ...Curve) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "drawdown vs time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Type: "scroll", Right: "10", Top: "20"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t, s"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Δp, Pa", Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
	)
	if len(curves) == 0 {
		return line
	}

	labels := make([]string, curves[0].Series.Len())
	for i, t := range curves[0].Series.Times {
		labels[i] = formatFloat(t)
	}
	line.SetXAxis(labels)

	for _, c := range curves {
		data := make([]opts.LineData, len(c.Series.Drawdown))
		for i, v := range c.Series.Drawdown {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				data[i] = opts.LineData{Value: "-"}
				continue
			}
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(c.Name, data)
	}
	return line
}

// FieldChart builds an interactive heat map of a field plane.
func FieldChart(title string, f *field.Field) (*charts.HeatMap, error) {
	g, xName, yName, err := newPlaneGrid(f)
	if err != nil {
		return nil, err
	}
	cols, rows := g.Dims()

	xLabels := make([]string, cols)
	for i := range xLabels {
		xLabels[i] = formatFloat(g.X(i))
	}
	yLabels := make([]string, rows)
	for j := range yLabels {
		yLabels[j] = formatFloat(g.Y(j))
	}

	data := make([]opts.HeatMapData, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, g.Z(i, j)}})
		}
	}

	lo, hi := f.Values.Min(), f.Values.Max()
	if math.IsNaN(lo) {
		lo, hi = 0, 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: xName + "-" + yName + " plane"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName + ", m", Type: "category", SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName + ", m", Type: "category", Data: yLabels, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: heatColors},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("drawdown", data)
	return hm, nil
}

// WritePage renders charts into one HTML page.
func WritePage(w io.Writer, title string, chartList ...components.Charter) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(chartList...)
	return page.Render(w)
}
