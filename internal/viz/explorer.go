package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boundstates/internal/model"
	"github.com/san-kum/boundstates/internal/superposition"
	"github.com/san-kum/boundstates/internal/well"
)

const (
	width  = 80
	height = 24
	fps    = 30
	// amplitude is the share of the energy range a peak-normalized
	// wavefunction spans on screen.
	amplitude = 0.12
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Explorer is the Bubble Tea model of the interactive lab.
type Explorer struct {
	lab      *model.Model
	canvas   *Canvas
	cursor   int
	running  bool
	showHelp bool
	status   string
	// speed is the simulated time per frame in fs.
	speed float64
}

func NewExplorer(lab *model.Model) Explorer {
	return Explorer{
		lab:     lab,
		canvas:  NewCanvas(width, height),
		running: true,
		speed:   lab.TimeStep(),
	}
}

func (e Explorer) Init() tea.Cmd { return tick() }

// Update handles key presses and advances the clock on each tick.
func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg.String())
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-56)
		h := max(8, msg.Height-14)
		e.canvas = NewCanvas(w, h)
	case TickMsg:
		if e.running {
			e.lab.Advance(e.speed)
		}
		return e, tick()
	}
	return e, nil
}

func (e Explorer) handleKey(key string) (tea.Model, tea.Cmd) {
	e.status = ""
	w := e.lab.Potential()
	switch key {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "tab":
		kinds := well.Kinds()
		next := kinds[(int(w.Kind())+1)%len(kinds)]
		e.report(e.lab.SetPotential(next))
		e.cursor = 0
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < e.lab.Coefficients().Len()-1 {
			e.cursor++
		}
	case " ":
		c := e.lab.Coefficients()
		v := 1.0
		if c.Get(e.cursor) != 0 {
			v = 0
		}
		e.report(c.Set(e.cursor, v))
	case "n":
		err := e.lab.Coefficients().Normalize()
		if errors.Is(err, superposition.ErrZeroNorm) {
			e.status = "select a state before normalizing"
			break
		}
		e.report(err)
	case "m":
		e.report(e.lab.Particle().SetMass(e.lab.Particle().MassValue() * 0.9))
	case "M":
		e.report(e.lab.Particle().SetMass(e.lab.Particle().MassValue() * 1.1))
	case "[":
		e.adjust("offset", func(v float64) float64 { return v - 0.5 })
	case "]":
		e.adjust("offset", func(v float64) float64 { return v + 0.5 })
	case "w":
		e.adjust("width", func(v float64) float64 { return v * 0.9 })
	case "W":
		e.adjust("width", func(v float64) float64 { return v * 1.1 })
	case "h":
		e.adjust("height", func(v float64) float64 { return v - 1 })
	case "H":
		e.adjust("height", func(v float64) float64 { return v + 1 })
	case "f":
		e.adjust("frequency", func(v float64) float64 { return v * 0.9 })
	case "F":
		e.adjust("frequency", func(v float64) float64 { return v * 1.1 })
	case "p":
		e.running = !e.running
	case "r":
		e.lab.Reset()
		e.cursor = 0
	case "t":
		nextTheme()
	case "?":
		e.showHelp = !e.showHelp
	}
	if n := e.lab.Coefficients().Len(); e.cursor >= n {
		e.cursor = max(0, n-1)
	}
	return e, nil
}

func (e *Explorer) adjust(name string, f func(float64) float64) {
	w := e.lab.Potential()
	v, ok := w.Params()[name]
	if !ok {
		e.status = fmt.Sprintf("%s has no %s", w.Name(), name)
		return
	}
	e.report(w.SetParam(name, f(v)))
}

func (e *Explorer) report(err error) {
	if err != nil {
		e.status = err.Error()
	}
}

// draw renders the potential, the energy levels and the real part of the
// superposition drawn around its mean energy.
func (e *Explorer) draw() error {
	c := e.canvas
	c.Clear()
	w := e.lab.Potential()
	minX, maxX := w.Domain()
	minE, maxE := w.EnergyRange()
	view := Viewport{MinX: minX, MaxX: maxX, MinY: minE, MaxY: maxE}

	xs, vs := w.PotentialPoints(c.Width * 2)
	c.Plot(view, xs, vs)

	levels := w.Eigenvalues()
	for _, level := range levels {
		c.DottedLevel(view, level)
	}

	coeffs := e.lab.Coefficients()
	if len(coeffs.Selected()) == 0 {
		return nil
	}
	mean := 0.0
	for _, i := range coeffs.Selected() {
		mean += coeffs.Get(i) * coeffs.Get(i) * levels[i]
	}
	if !coeffs.Normalized() {
		mean /= sumSquares(coeffs.Values())
	}

	px, re, err := e.lab.WavefunctionPoints(e.lab.Time(), model.Real)
	if err != nil {
		return err
	}
	scale := amplitude * (maxE - minE)
	ys := make([]float64, len(re))
	for i, v := range re {
		ys[i] = mean + scale*v
	}
	c.Plot(view, Resample(px, c.Width*2), Resample(ys, c.Width*2))
	return nil
}

func sumSquares(vs []float64) float64 {
	s := 0.0
	for _, v := range vs {
		s += v * v
	}
	return s
}

// View renders the canvas, the side panel and the density strip.
func (e Explorer) View() string {
	st := themeStyles(CurrentTheme)
	if err := e.draw(); err != nil {
		e.status = err.Error()
	}
	w := e.lab.Potential()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(w.Name())) + "\n")
	state := "RUNNING"
	if !e.running {
		state = "PAUSED"
	}
	s.WriteString(state + "\n\n")
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2f fs", e.lab.Time())) + "\n")
	s.WriteString(st.label.Render("Mass") + st.value.Render(fmt.Sprintf("%.3f", e.lab.Particle().MassValue())) + "\n")
	for _, name := range well.ParamNames(w) {
		s.WriteString(st.label.Render(name) + st.value.Render(fmt.Sprintf("%.3f", w.Params()[name])) + "\n")
	}

	s.WriteString("\nSTATES\n")
	coeffs := e.lab.Coefficients()
	ground := w.GroundStateIndex()
	for i, energy := range w.Eigenvalues() {
		line := fmt.Sprintf("n=%-2d %9.4f eV %s", ground+i, energy, Bar(coeffs.Get(i), 8))
		if i == e.cursor {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.muted.Render(line) + "\n")
		}
	}
	if coeffs.Len() == 0 {
		s.WriteString(st.muted.Render("  (no bound states)") + "\n")
	}
	if !coeffs.Normalized() && len(coeffs.Selected()) > 0 {
		s.WriteString(st.warning.Render("  not normalized (n)") + "\n")
	}
	if e.status != "" {
		s.WriteString("\n" + st.warning.Render(e.status) + "\n")
	}
	s.WriteString(st.muted.Render("\n─────────────────────\nTab:Potential ↑↓:State SP:Toggle\nN:Normalize P:Pause R:Reset Q:Quit\n?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(e.canvas.String()), st.panel.Render(s.String()))

	if _, rho, err := e.lab.ProbabilityDensity(e.lab.Time()); err == nil && len(rho) > 1 {
		data := Resample(rho, e.canvas.Width*2)
		chart := asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(e.canvas.Width), asciigraph.Caption("(Re ψ)²"))
		main += "\n" + st.graph.Render(chart)
	}

	if e.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Tab      - Next potential           ║
║  Up/K     - Previous state           ║
║  Down/J   - Next state               ║
║  Space    - Toggle state             ║
║  N        - Normalize coefficients   ║
║  m / M    - Mass -10% / +10%         ║
║  [ / ]    - Offset -/+ 0.5 eV        ║
║  w / W    - Width -10% / +10%        ║
║  h / H    - Height -/+ 1 eV          ║
║  f / F    - Frequency -10% / +10%    ║
║  P        - Pause/Resume             ║
║  R        - Reset                    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the explorer in the alternate screen.
func Run(lab *model.Model) error {
	_, err := tea.NewProgram(NewExplorer(lab), tea.WithAltScreen()).Run()
	return err
}
