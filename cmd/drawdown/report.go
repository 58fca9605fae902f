package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/drawdown/internal/export"
	"github.com/san-kum/drawdown/internal/field"
	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/transient"
	"github.com/san-kum/drawdown/internal/viz"
)

const (
	graphWidth  = 70
	graphHeight = 12
	mapWidth    = 40
	mapHeight   = 16
)

func curve(s *field.Series) export.Curve {
	return export.Curve{Name: s.Model.String(), Series: s}
}

// emit sends machine formats to --output or stdout; table goes to stdout.
func emit(table func(io.Writer) error, csvFn, jsonFn func(io.Writer) error) error {
	var write func(io.Writer) error
	switch format {
	case "table", "":
		return table(os.Stdout)
	case "csv":
		write = csvFn
	case "json":
		write = jsonFn
	default:
		return fmt.Errorf("unknown format: %s (want table, csv or json)", format)
	}
	if output == "" {
		return write(os.Stdout)
	}
	return export.ToFile(output, write)
}

func saveSeriesPlots(title string, curves ...export.Curve) error {
	if pngPath != "" || svgPath != "" {
		p, err := export.SeriesPlot(title, curves...)
		if err != nil {
			return err
		}
		for _, path := range []string{pngPath, svgPath} {
			if path == "" {
				continue
			}
			if err := export.SavePlot(path, p); err != nil {
				return fmt.Errorf("save plot: %w", err)
			}
		}
	}
	if htmlPath != "" {
		chart := export.SeriesChart(title, curves...)
		return export.ToFile(htmlPath, func(w io.Writer) error {
			return export.WritePage(w, title, chart)
		})
	}
	return nil
}

func saveFieldPlots(title string, f *field.Field) error {
	if pngPath != "" || svgPath != "" {
		p, err := export.FieldPlot(title, f)
		if err != nil {
			return err
		}
		for _, path := range []string{pngPath, svgPath} {
			if path == "" {
				continue
			}
			if err := export.SavePlot(path, p); err != nil {
				return fmt.Errorf("save plot: %w", err)
			}
		}
	}
	if htmlPath != "" {
		chart, err := export.FieldChart(title, f)
		if err != nil {
			return err
		}
		return export.ToFile(htmlPath, func(w io.Writer) error {
			return export.WritePage(w, title, chart)
		})
	}
	return nil
}

func header(w io.Writer, title string, warning *transient.InstabilityWarning) {
	fmt.Fprintln(w, viz.Title.Render(title))
	if warning != nil {
		fmt.Fprintln(w, viz.WarningText.Render(warning.String()))
	}
	fmt.Fprintln(w)
}

func writeSeries(title string, s *field.Series, warning *transient.InstabilityWarning) error {
	table := func(out io.Writer) error {
		header(out, title, warning)
		fmt.Fprintln(out, viz.Curve("drawdown [Pa] vs sample (log time)", graphWidth, graphHeight, s))
		fmt.Fprintln(out)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "T[s]\tDRAWDOWN[Pa]\tPRESSURE[Pa]")
		pressure := s.Pressure()
		for i, t := range s.Times {
			fmt.Fprintf(w, "%.4g\t%.6g\t%.6g\n", t, s.Drawdown[i], pressure[i])
		}
		if err := w.Flush(); err != nil {
			return err
		}
		writeSingular(out, s.Singular)
		return nil
	}
	return emit(table,
		func(w io.Writer) error { return export.WriteSeriesCSV(w, s) },
		func(w io.Writer) error { return export.WriteJSON(w, export.NewSeriesDocument(s)) },
	)
}

func writeField(title string, f *field.Field, warning *transient.InstabilityWarning) error {
	table := func(out io.Writer) error {
		header(out, title, warning)
		fmt.Fprintf(out, "%s  %s  %s\n",
			viz.Metric("shape", fmt.Sprint(f.Grid.Shape())),
			viz.Metric("min", fmt.Sprintf("%.6g Pa", f.Values.Min())),
			viz.Metric("max", fmt.Sprintf("%.6g Pa", f.Values.Max())),
		)
		fmt.Fprintln(out)

		if m, err := f.Plane(math.NaN()); err == nil {
			levels := viz.Levels(f.Values.Min(), f.Values.Max(), 8)
			rows, cols, _ := f.PlaneAxes()
			fmt.Fprintln(out, viz.Panel.Render(viz.Isobars(m, mapWidth, mapHeight, levels).String()))
			fmt.Fprintln(out, viz.Subtle.Render(fmt.Sprintf("%s →, %s ↑", field.AxisName(rows), field.AxisName(cols))))
		} else {
			fmt.Fprintln(out, viz.Subtle.Render("no isobar map: "+err.Error()))
		}
		writeSingular(out, f.Singular)
		return nil
	}
	return emit(table,
		func(w io.Writer) error { return export.WriteFieldCSV(w, f) },
		func(w io.Writer) error { return export.WriteJSON(w, export.NewFieldDocument(f)) },
	)
}

type comparisonDocument struct {
	LineSource   export.SeriesDocument `json:"line_source"`
	FiniteRadius export.SeriesDocument `json:"finite_radius"`
	MaxRelDiff   float64               `json:"max_rel_diff"`
}

func writeComparison(title string, c *field.Comparison) error {
	table := func(out io.Writer) error {
		header(out, title, nil)
		fmt.Fprintln(out, viz.Curve("line source (cyan) and finite radius (magenta), Pa", graphWidth, graphHeight, c.LineSource, c.FiniteRadius))
		fmt.Fprintln(out)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "T[s]\tLINE[Pa]\tFINITE[Pa]\tREL_DIFF")
		for i, t := range c.Times {
			fmt.Fprintf(w, "%.4g\t%.6g\t%.6g\t%.3e\n", t, c.LineSource.Drawdown[i], c.FiniteRadius.Drawdown[i], c.RelDiff[i])
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.Metric("max rel diff", fmt.Sprintf("%.3e", c.MaxRelDiff())))
		return nil
	}
	return emit(table,
		func(w io.Writer) error { return export.WriteComparisonCSV(w, c) },
		func(w io.Writer) error {
			rel := c.MaxRelDiff()
			if math.IsNaN(rel) {
				rel = 0
			}
			return export.WriteJSON(w, comparisonDocument{
				LineSource:   export.NewSeriesDocument(c.LineSource),
				FiniteRadius: export.NewSeriesDocument(c.FiniteRadius),
				MaxRelDiff:   rel,
			})
		},
	)
}

func writeSingular(out io.Writer, sing []transient.Singularity) {
	if len(sing) == 0 {
		return
	}
	counts := map[transient.Cause]int{}
	for _, s := range sing {
		counts[s.Cause]++
	}
	for _, cause := range []transient.Cause{transient.AtSource, transient.AtTimeZero, transient.InversionFailed} {
		if n := counts[cause]; n > 0 {
			fmt.Fprintln(out, viz.WarningText.Render(fmt.Sprintf("%d singular entries: %s", n, cause)))
		}
	}
}

func writeDiagnostics(inv *laplace.Stehfest, names []string, results map[string][]laplace.Diagnostic) error {
	table := func(out io.Writer) error {
		fmt.Fprintf(out, "%s  %s\n\n",
			viz.Metric("degree", strconv.Itoa(inv.Degree())),
			viz.Metric("precision", inv.Precision().String()),
		)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TRANSFORM\tT\tINVERTED\tEXACT\tABS_ERR\tREL_ERR")
		for _, name := range names {
			for _, d := range results[name] {
				fmt.Fprintf(w, "%s\t%g\t%.10g\t%.10g\t%.3e\t%.3e\n", name, d.T, d.Inverted, d.Exact, d.AbsError, d.RelError)
			}
		}
		return w.Flush()
	}
	return emit(table,
		func(w io.Writer) error {
			cw := csv.NewWriter(w)
			if err := cw.Write([]string{"transform", "t", "inverted", "exact", "abs_error", "rel_error"}); err != nil {
				return err
			}
			for _, name := range names {
				for _, d := range results[name] {
					row := []string{name}
					for _, v := range []float64{d.T, d.Inverted, d.Exact, d.AbsError, d.RelError} {
						row = append(row, strconv.FormatFloat(v, 'g', 10, 64))
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
			}
			cw.Flush()
			return cw.Error()
		},
		func(w io.Writer) error { return export.WriteJSON(w, results) },
	)
}
