package viz

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/drawdown/internal/config"
	"github.com/san-kum/drawdown/internal/field"
	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/transient"
)

type view int

const (
	viewCurve view = iota
	viewMap
)

const (
	mapPoints   = 41
	mapLevels   = 8
	radiusStep  = 1.5
	degreeStep  = 2
	minObserveX = 1e-3
)

// Explorer is a Bubble Tea model showing one scenario. Every key that
// changes the scenario rebuilds the evaluator and recomputes.
type Explorer struct {
	cfg     *config.Config
	logger  *log.Logger
	view    view
	theme   int
	presets []string
	preset  int

	series  *field.Series
	field   *field.Field
	warning *transient.InstabilityWarning
	err     error

	width, height int
}

// NewExplorer computes the initial curve for cfg. The explorer works on
// its own copy of cfg. A nil logger discards evaluator output.
func NewExplorer(cfg *config.Config, logger *log.Logger) *Explorer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := *cfg
	c.Wells = append(c.Wells[:0:0], cfg.Wells...)
	e := &Explorer{
		cfg:     &c,
		logger:  logger,
		presets: config.ListPresets(),
		preset:  -1,
		width:   80,
		height:  24,
	}
	e.recompute()
	return e
}

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
		return e, nil
	case tea.KeyMsg:
		return e.handleKey(msg.String())
	}
	return e, nil
}

func (e *Explorer) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "m":
		if e.cfg.Model == transient.FiniteRadius.String() {
			e.cfg.Model = transient.LineSource.String()
		} else {
			e.cfg.Model = transient.FiniteRadius.String()
		}
	case "+", "=", "l":
		e.cfg.Observation.X = e.observeX() * radiusStep
	case "-", "h":
		e.cfg.Observation.X = math.Max(e.observeX()/radiusStep, minObserveX)
	case "]", "k":
		e.cfg.Inversion.Degree = min(e.degree()+degreeStep, laplace.MaxDegree)
	case "[", "j":
		e.cfg.Inversion.Degree = max(e.degree()-degreeStep, degreeStep)
	case "p":
		if e.cfg.Inversion.Precision == laplace.Exact.String() {
			e.cfg.Inversion.Precision = laplace.Float64.String()
		} else {
			e.cfg.Inversion.Precision = laplace.Exact.String()
		}
	case "c":
		e.cfg.Inversion.Cap = !e.cfg.Inversion.Cap
	case "n":
		if len(e.presets) == 0 {
			return e, nil
		}
		e.preset = (e.preset + 1) % len(e.presets)
		e.cfg = config.GetPreset(e.presets[e.preset])
	case "f":
		if e.view == viewCurve {
			e.view = viewMap
		} else {
			e.view = viewCurve
		}
	case "t":
		e.theme = (e.theme + 1) % len(Themes)
		return e, nil
	default:
		return e, nil
	}
	e.recompute()
	return e, nil
}

func (e *Explorer) observeX() float64 {
	return math.Max(e.cfg.Observation.X, minObserveX)
}

func (e *Explorer) degree() int {
	if e.cfg.Inversion.Degree == 0 {
		return laplace.DefaultDegree
	}
	return e.cfg.Inversion.Degree
}

func (e *Explorer) recompute() {
	e.series, e.field, e.warning, e.err = nil, nil, nil, nil

	ev, err := e.cfg.Evaluator(e.logger)
	if err != nil {
		e.err = err
		return
	}
	e.warning = ev.Warning()

	ctx := context.Background()
	if e.view == viewCurve {
		tg, err := e.cfg.TimeGrid()
		if err != nil {
			e.err = err
			return
		}
		e.series, e.err = ev.TimeSeries(ctx, e.cfg.ObservationPoint(), tg)
		return
	}

	sg, err := grid.Plane(grid.XY, e.cfg.Grid.Extent, mapPoints, e.cfg.Reservoir.ThicknessM, e.cfg.Grid.Fixed)
	if err != nil {
		e.err = err
		return
	}
	e.field, e.err = ev.SpatialField(ctx, sg, e.cfg.Grid.Time)
}

func (e *Explorer) View() string {
	th := Themes[e.theme]
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Primary)
	panel := Panel.BorderForeground(th.Muted)

	var b strings.Builder
	b.WriteString(title.Render("DRAWDOWN EXPLORER"))
	if e.preset >= 0 {
		b.WriteString(Subtle.Render("  preset " + e.presets[e.preset]))
	}
	b.WriteString("\n\n")

	b.WriteString(strings.Join([]string{
		Metric("model", e.cfg.Model),
		Metric("wells", fmt.Sprint(len(e.cfg.Wells))),
		Metric("degree", fmt.Sprint(e.degree())),
		Metric("precision", orDefault(e.cfg.Inversion.Precision, laplace.Float64.String())),
		Metric("cap", fmt.Sprint(e.cfg.Inversion.Cap)),
	}, "  "))
	b.WriteString("\n")

	if e.warning != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render("! "+e.warning.String()) + "\n")
	}
	b.WriteString("\n")

	plotW := max(e.width-16, 20)
	plotH := max(e.height-14, 6)

	switch {
	case e.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(th.Error).Render(e.err.Error()))
	case e.view == viewCurve && e.series != nil:
		obs := e.cfg.ObservationPoint()
		caption := fmt.Sprintf("drawdown [Pa] at (%.3g, %.3g, %.3g) m over %d samples", obs.X, obs.Y, obs.Z, e.series.Len())
		b.WriteString(panel.Render(Curve(caption, plotW, plotH, e.series)))
		b.WriteString("\n")
		b.WriteString(Sparkline(e.series.Drawdown, min(plotW, 60)))
		if n := len(e.series.Singular); n > 0 {
			b.WriteString(Subtle.Render(fmt.Sprintf("  %d singular samples", n)))
		}
	case e.view == viewMap && e.field != nil:
		b.WriteString(panel.Render(e.isobars(plotW/2, plotH)))
		b.WriteString("\n")
		b.WriteString(Subtle.Render(fmt.Sprintf("xy plane at t=%.3g s, max %.4g Pa", e.cfg.Grid.Time, e.field.Values.Max())))
	}

	b.WriteString("\n\n")
	b.WriteString(KeyHint.Render("m model • +/- radius • [/] degree • p precision • c cap • n preset • f map • t theme • q quit"))
	return b.String()
}

func (e *Explorer) isobars(w, h int) string {
	plane, err := e.field.Plane(math.NaN())
	if err != nil {
		return err.Error()
	}
	levels := Levels(e.field.Values.Min(), e.field.Values.Max(), mapLevels)
	return Isobars(plane, w, h, levels).String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// RunExplorer takes over the terminal until the user quits.
func RunExplorer(cfg *config.Config, logger *log.Logger) error {
	p := tea.NewProgram(NewExplorer(cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
