// Package export serializes drawdown results to CSV, JSON, static plots
// and interactive HTML pages.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/drawdown/internal/field"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteSeriesCSV writes one row per sample. Singular samples keep their raw
// value (+Inf or NaN) and carry their cause in the last column.
func WriteSeriesCSV(w io.Writer, s *field.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t_s", "drawdown_pa", "pressure_pa", "singular"}); err != nil {
		return err
	}

	causes := make(map[int]string, len(s.Singular))
	for _, sg := range s.Singular {
		causes[sg.Index] = sg.Cause.String()
	}
	pressure := s.Pressure()
	for i, t := range s.Times {
		row := []string{formatFloat(t), formatFloat(s.Drawdown[i]), formatFloat(pressure[i]), causes[i]}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFieldCSV writes one row per grid node in row-major order.
func WriteFieldCSV(w io.Writer, f *field.Field) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x_m", "y_m", "z_m", "drawdown_pa", "pressure_pa", "singular"}); err != nil {
		return err
	}

	causes := make(map[int]string, len(f.Singular))
	for _, sg := range f.Singular {
		causes[sg.Index] = sg.Cause.String()
	}
	values := f.Values.Data()
	for i, v := range values {
		p := f.Grid.NodeAt(i)
		row := []string{
			formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
			formatFloat(v), formatFloat(f.InitialPressure - v), causes[i],
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteComparisonCSV(w io.Writer, c *field.Comparison) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t_s", "line_source_pa", "finite_radius_pa", "rel_diff"}); err != nil {
		return err
	}
	for i, t := range c.Times {
		row := []string{
			formatFloat(t),
			formatFloat(c.LineSource.Drawdown[i]),
			formatFloat(c.FiniteRadius.Drawdown[i]),
			formatFloat(c.RelDiff[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToFile creates path and runs write on it.
func ToFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
