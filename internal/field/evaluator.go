package field

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/models"
	"github.com/san-kum/drawdown/internal/ndarray"
	"github.com/san-kum/drawdown/internal/parallel"
	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/transient"
)

// Config selects the model and how it is evaluated.
type Config struct {
	Model     transient.ModelKind
	Inversion laplace.Config
	// Workers bounds the finite-radius pool; <= 0 uses one per CPU.
	Workers int
	// Logger defaults to log.Default().
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{Model: transient.LineSource, Inversion: laplace.DefaultConfig()}
}

type source struct {
	well   reservoir.Well
	params reservoir.Params
	sign   float64
}

// Evaluator is immutable once built and safe for concurrent use.
type Evaluator struct {
	params   reservoir.Params
	sources  []source
	model    models.Model
	inverter *laplace.Stehfest
	workers  int
	logger   *log.Logger
}

// New validates the wells against params and prepares the model. An
// inversion degree above the stable limit is logged and kept available
// through Warning.
func New(params reservoir.Params, wells []reservoir.Well, cfg Config) (*Evaluator, error) {
	if len(wells) == 0 {
		return nil, fmt.Errorf("no wells: %w", transient.ErrConfiguration)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	e := &Evaluator{
		params:  params,
		sources: make([]source, len(wells)),
		workers: parallel.Workers(cfg.Workers),
		logger:  logger.With("model", cfg.Model.String()),
	}
	for i, w := range wells {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		p, err := params.WithWell(w.Rate, w.Radius)
		if err != nil {
			return nil, fmt.Errorf("well %d: %w", i, err)
		}
		e.sources[i] = source{well: w, params: p, sign: w.Kind.Sign()}
	}

	if cfg.Model == transient.FiniteRadius {
		inv := cfg.Inversion
		if inv.Degree == 0 {
			inv.Degree = laplace.DefaultDegree
		}
		s, err := laplace.New(inv)
		if err != nil {
			return nil, err
		}
		if w := s.Warning(); w != nil {
			e.logger.Warn("unstable inversion degree", "requested", w.Requested, "used", w.Used, "limit", w.Limit)
		}
		e.inverter = s
	}

	model, err := models.New(cfg.Model, e.inverter)
	if err != nil {
		return nil, err
	}
	e.model = model
	return e, nil
}

func (e *Evaluator) Model() transient.ModelKind { return e.model.Kind() }
func (e *Evaluator) Params() reservoir.Params   { return e.params }

// Warning reports an inversion degree above the stable limit, if any.
func (e *Evaluator) Warning() *transient.InstabilityWarning {
	if e.inverter == nil {
		return nil
	}
	return e.inverter.Warning()
}

func (e *Evaluator) Wells() []reservoir.Well {
	out := make([]reservoir.Well, len(e.sources))
	for i, s := range e.sources {
		out[i] = s.well
	}
	return out
}

// TimeSeries evaluates the superposed drawdown at obs for every time of tg.
func (e *Evaluator) TimeSeries(ctx context.Context, obs transient.Point, tg grid.TimeGrid) (*Series, error) {
	start := time.Now()
	times := tg.Times()
	s := &Series{
		Model:           e.model.Kind(),
		Observation:     obs,
		Times:           times,
		Drawdown:        make([]float64, len(times)),
		InitialPressure: e.params.InitialPressure(),
	}

	h := e.params.Thickness()
	var (
		failed []bool
		err    error
	)
	if e.model.Kind() == transient.LineSource {
		err = e.lineSeries(obs, times, s.Drawdown)
	} else {
		failed, err = e.nodes(ctx, len(times), s.Drawdown, func(i int) (transient.Point, float64) {
			return obs, times[i]
		})
	}
	if err != nil {
		return nil, err
	}

	for i, v := range s.Drawdown {
		if isFinite(v) {
			continue
		}
		cause := e.classify(obs, times[i], h)
		if failed != nil && failed[i] {
			cause = transient.InversionFailed
		}
		s.Singular = append(s.Singular, transient.Singularity{Index: i, Time: times[i], Cause: cause})
	}

	e.logger.Debug("time series", "samples", len(times), "wells", len(e.sources), "singular", len(s.Singular), "elapsed", time.Since(start))
	if len(s.Singular) > 0 {
		e.logger.Warn("singular samples in time series", "count", len(s.Singular), "first", s.Singular[0].String())
	}
	return s, nil
}

func (e *Evaluator) lineSeries(obs transient.Point, times []float64, out []float64) error {
	h := e.params.Thickness()
	ts := ndarray.Vector(times)
	acc := ndarray.New(len(times))
	for _, src := range e.sources {
		r := src.well.Distance(obs, h)
		d, err := models.LineSource{}.Drawdown(src.params, ndarray.Scalar(r), ts)
		if err != nil {
			return err
		}
		if err := acc.AddScaled(src.sign, d); err != nil {
			return err
		}
	}
	copy(out, acc.Data())
	return nil
}

// SpatialField evaluates the superposed drawdown over every node of sg at
// time t. t = 0 yields an all-NaN field.
func (e *Evaluator) SpatialField(ctx context.Context, sg grid.SpatialGrid, t float64) (*Field, error) {
	if err := sg.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return nil, &transient.ConfigurationError{Param: "t", Value: t, Reason: "field time must be finite and non-negative"}
	}
	start := time.Now()
	f := &Field{
		Model:           e.model.Kind(),
		Grid:            sg,
		Time:            t,
		InitialPressure: e.params.InitialPressure(),
	}

	var (
		failed []bool
		err    error
	)
	if e.model.Kind() == transient.LineSource {
		f.Values, err = e.lineField(sg, t)
	} else {
		f.Values = ndarray.New(sg.Shape()...)
		failed, err = e.nodes(ctx, sg.Len(), f.Values.Data(), func(i int) (transient.Point, float64) {
			return sg.NodeAt(i), t
		})
	}
	if err != nil {
		return nil, err
	}

	h := e.params.Thickness()
	for i, v := range f.Values.Data() {
		if isFinite(v) {
			continue
		}
		cause := e.classify(sg.NodeAt(i), t, h)
		if failed != nil && failed[i] {
			cause = transient.InversionFailed
		}
		f.Singular = append(f.Singular, transient.Singularity{Index: i, Time: t, Cause: cause})
	}

	e.logger.Debug("spatial field", "nodes", sg.Len(), "shape", sg.Shape(), "wells", len(e.sources), "singular", len(f.Singular), "elapsed", time.Since(start))
	if len(f.Singular) > 0 {
		e.logger.Warn("singular nodes in field", "count", len(f.Singular), "first", f.Singular[0].String())
	}
	return f, nil
}

// lineField broadcasts the per-axis offsets of every node to each well
// into a distance array and evaluates the line source on it in one pass.
func (e *Evaluator) lineField(sg grid.SpatialGrid, t float64) (*ndarray.Array, error) {
	h := e.params.Thickness()
	acc := ndarray.New(sg.Shape()...)
	square := func(x, y float64) float64 { return x + y*y }

	for _, src := range e.sources {
		w := src.well
		dx := offsets(sg.X, func(x float64) float64 { return x - w.X })
		dy := offsets(sg.Y, func(y float64) float64 { return y - w.Y })
		dz := offsets(sg.Z, func(z float64) float64 {
			return w.Distance(transient.Point{X: w.X, Y: w.Y, Z: z}, h)
		})

		r2, err := ndarray.Broadcast(ndarray.Scalar(0), ndarray.Axis(dx, 0, 3), square)
		if err != nil {
			return nil, err
		}
		if r2, err = ndarray.Broadcast(r2, ndarray.Axis(dy, 1, 3), square); err != nil {
			return nil, err
		}
		if r2, err = ndarray.Broadcast(r2, ndarray.Axis(dz, 2, 3), square); err != nil {
			return nil, err
		}

		d, err := models.LineSource{}.Drawdown(src.params, r2.Map(math.Sqrt), ndarray.Scalar(t))
		if err != nil {
			return nil, err
		}
		if err := acc.AddScaled(src.sign, d); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func offsets(axis []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(axis))
	for i, v := range axis {
		out[i] = fn(v)
	}
	return out
}

// nodes runs the per-node model on the worker pool, writing into out.
// Inversions that do not yield a finite value leave NaN and are reported
// in the returned set instead of failing the batch.
func (e *Evaluator) nodes(ctx context.Context, n int, out []float64, at func(i int) (transient.Point, float64)) ([]bool, error) {
	failed := make([]bool, n)
	h := e.params.Thickness()

	err := parallel.For(ctx, n, e.workers, 1, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, t := at(i)
			sum := 0.0
			for _, src := range e.sources {
				v, err := e.model.At(src.params, src.well.Distance(p, h), t)
				if errors.Is(err, transient.ErrNonFinite) {
					failed[i] = true
					sum = math.NaN()
					break
				}
				if err != nil {
					return err
				}
				sum += src.sign * v
			}
			out[i] = sum
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return failed, nil
}

func (e *Evaluator) classify(p transient.Point, t, h float64) transient.Cause {
	if t == 0 {
		return transient.AtTimeZero
	}
	for _, src := range e.sources {
		if src.well.Distance(p, h) == 0 {
			return transient.AtSource
		}
	}
	return transient.InversionFailed
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EvaluateTimeSeries is a one-shot TimeSeries with the default inversion.
func EvaluateTimeSeries(ctx context.Context, params reservoir.Params, wells []reservoir.Well, tg grid.TimeGrid, obs transient.Point, kind transient.ModelKind) (*Series, error) {
	cfg := DefaultConfig()
	cfg.Model = kind
	e, err := New(params, wells, cfg)
	if err != nil {
		return nil, err
	}
	return e.TimeSeries(ctx, obs, tg)
}

// EvaluateSpatialField is a one-shot SpatialField with the default inversion.
func EvaluateSpatialField(ctx context.Context, params reservoir.Params, wells []reservoir.Well, sg grid.SpatialGrid, t float64, kind transient.ModelKind) (*Field, error) {
	cfg := DefaultConfig()
	cfg.Model = kind
	e, err := New(params, wells, cfg)
	if err != nil {
		return nil, err
	}
	return e.SpatialField(ctx, sg, t)
}
