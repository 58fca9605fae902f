package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/drawdown/internal/field"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch

	contourLevels = 12
)

// Curve is one named line of a drawdown plot.
type Curve struct {
	Name   string
	Series *field.Series
}

// SeriesPlot draws drawdown against log time. Singular and non-positive
// times are skipped.
func SeriesPlot(title string, curves ...Curve) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t, s"
	p.Y.Label.Text = "Δp, Pa"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		xys := make(plotter.XYs, 0, c.Series.Len())
		for j, t := range c.Series.Times {
			d := c.Series.Drawdown[j]
			if t <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				continue
			}
			xys = append(xys, plotter.XY{X: t, Y: d})
		}
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", c.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// planeGrid adapts a field plane to plotter.GridXYZ: columns run along the
// matrix rows' axis so that the first varying axis is horizontal.
type planeGrid struct {
	m    *mat.Dense
	x, y []float64
}

func (g planeGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g planeGrid) Z(c, r int) float64 { return g.m.At(c, r) }
func (g planeGrid) X(c int) float64    { return g.x[c] }
func (g planeGrid) Y(r int) float64    { return g.y[r] }

type lineColors []color.Color

func (c lineColors) Colors() []color.Color { return c }

func newPlaneGrid(f *field.Field) (planeGrid, string, string, error) {
	rows, cols, err := f.PlaneAxes()
	if err != nil {
		return planeGrid{}, "", "", err
	}
	// the source node holds +Inf on a line source; saturate it to the peak
	m, err := f.Plane(f.Values.Max())
	if err != nil {
		return planeGrid{}, "", "", err
	}
	return planeGrid{m: m, x: f.Coordinates(rows), y: f.Coordinates(cols)}, field.AxisName(rows), field.AxisName(cols), nil
}

// FieldPlot draws a heat map of a plane with drawdown contours on top.
func FieldPlot(title string, f *field.Field) (*plot.Plot, error) {
	g, xName, yName, err := newPlaneGrid(f)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xName + ", m"
	p.Y.Label.Text = yName + ", m"

	heat := plotter.NewHeatMap(g, palette.Heat(contourLevels, 1))
	p.Add(heat)

	lo, hi := f.Values.Min(), f.Values.Max()
	if !math.IsNaN(lo) && hi > lo {
		levels := make([]float64, contourLevels)
		for i := range levels {
			levels[i] = lo + (hi-lo)*float64(i+1)/float64(contourLevels+1)
		}
		ink := make(lineColors, len(levels))
		for i := range ink {
			ink[i] = color.Gray{Y: 40}
		}
		p.Add(plotter.NewContour(g, levels, ink))
	}
	return p, nil
}

// WritePlot renders p to w in the given format ("png", "svg", "pdf", ...).
func WritePlot(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePlot renders p to path; the extension selects the format.
func SavePlot(path string, p *plot.Plot) error {
	return p.Save(plotWidth, plotHeight, path)
}
