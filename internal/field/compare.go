package field

import (
	"context"
	"math"

	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/transient"
)

// Comparison holds both models on the same time grid.
type Comparison struct {
	Times        []float64
	LineSource   *Series
	FiniteRadius *Series
	// RelDiff is |finite - line| / |line|; NaN where either is singular or
	// the line source is zero.
	RelDiff []float64
}

// Compare evaluates both models at obs. cfg.Model is ignored.
func Compare(ctx context.Context, params reservoir.Params, wells []reservoir.Well, obs transient.Point, tg grid.TimeGrid, cfg Config) (*Comparison, error) {
	cfg.Model = transient.LineSource
	line, err := New(params, wells, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Model = transient.FiniteRadius
	finite, err := New(params, wells, cfg)
	if err != nil {
		return nil, err
	}

	ls, err := line.TimeSeries(ctx, obs, tg)
	if err != nil {
		return nil, err
	}
	fr, err := finite.TimeSeries(ctx, obs, tg)
	if err != nil {
		return nil, err
	}

	c := &Comparison{Times: ls.Times, LineSource: ls, FiniteRadius: fr, RelDiff: make([]float64, ls.Len())}
	for i := range c.RelDiff {
		a, b := ls.Drawdown[i], fr.Drawdown[i]
		if !isFinite(a) || !isFinite(b) || a == 0 {
			c.RelDiff[i] = math.NaN()
			continue
		}
		c.RelDiff[i] = math.Abs(b-a) / math.Abs(a)
	}
	return c, nil
}

// MaxRelDiff ignores NaN entries; it is NaN when every entry is.
func (c *Comparison) MaxRelDiff() float64 {
	best := math.NaN()
	for _, d := range c.RelDiff {
		if math.IsNaN(d) {
			continue
		}
		if math.IsNaN(best) || d > best {
			best = d
		}
	}
	return best
}
