package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/drawdown/internal/field"
)

var curveColors = []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow, asciigraph.Green}

// Curve plots drawdown against sample index. Series built on log-spaced
// grids therefore show log time along the x axis. Non-finite samples are
// dropped.
func Curve(caption string, width, height int, series ...*field.Series) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if s == nil {
			continue
		}
		vals := make([]float64, 0, s.Len())
		for _, v := range s.Drawdown {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				vals = append(vals, v)
			}
		}
		if len(vals) > 0 {
			data = append(data, vals)
		}
	}
	if len(data) == 0 {
		return Subtle.Render("no finite samples")
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(curveColors[:min(len(data), len(curveColors))]...),
	)
}

// Levels splits [lo, hi] into n even isobar levels, skipping both ends.
func Levels(lo, hi float64, n int) []float64 {
	if n <= 0 || !(hi > lo) {
		return nil
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n+1)
	for i := range out {
		out[i] = lo + step*float64(i+1)
	}
	return out
}
