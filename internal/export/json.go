package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/drawdown/internal/field"
	"github.com/san-kum/drawdown/internal/transient"
)

// SingularEntry is the JSON form of a transient.Singularity.
type SingularEntry struct {
	Index int     `json:"index"`
	Time  float64 `json:"t"`
	Cause string  `json:"cause"`
}

type SeriesDocument struct {
	Model           string          `json:"model"`
	Observation     transient.Point `json:"observation"`
	InitialPressure float64         `json:"initial_pressure_pa"`
	Times           []float64       `json:"times_s"`
	Drawdown        []*float64      `json:"drawdown_pa"`
	Singular        []SingularEntry `json:"singular,omitempty"`
}

type FieldDocument struct {
	Model           string          `json:"model"`
	Time            float64         `json:"t_s"`
	InitialPressure float64         `json:"initial_pressure_pa"`
	Shape           []int           `json:"shape"`
	X               []float64       `json:"x_m"`
	Y               []float64       `json:"y_m"`
	Z               []float64       `json:"z_m"`
	Drawdown        []*float64      `json:"drawdown_pa"`
	Singular        []SingularEntry `json:"singular,omitempty"`
}

// nullable maps non-finite values to JSON null.
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = &v
	}
	return out
}

func singularEntries(in []transient.Singularity) []SingularEntry {
	out := make([]SingularEntry, len(in))
	for i, s := range in {
		out[i] = SingularEntry{Index: s.Index, Time: s.Time, Cause: s.Cause.String()}
	}
	return out
}

func NewSeriesDocument(s *field.Series) SeriesDocument {
	return SeriesDocument{
		Model:           s.Model.String(),
		Observation:     s.Observation,
		InitialPressure: s.InitialPressure,
		Times:           s.Times,
		Drawdown:        nullable(s.Drawdown),
		Singular:        singularEntries(s.Singular),
	}
}

func NewFieldDocument(f *field.Field) FieldDocument {
	return FieldDocument{
		Model:           f.Model.String(),
		Time:            f.Time,
		InitialPressure: f.InitialPressure,
		Shape:           f.Values.Shape(),
		X:               f.Grid.X,
		Y:               f.Grid.Y,
		Z:               f.Grid.Z,
		Drawdown:        nullable(f.Values.Data()),
		Singular:        singularEntries(f.Singular),
	}
}

// WriteJSON encodes v with two-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
