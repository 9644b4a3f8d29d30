package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/boundstates/internal/model"
	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(100, 100)
	c.Set(-1, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 at origin, got %U", c.Grid[0][0])
	}
	if c.Grid[1][3] != 0x2880 {
		t.Errorf("expected dot 8 in the last cell, got %U", c.Grid[1][3])
	}

	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("expected empty canvas after clear, got %U", r)
			}
		}
	}
}

func TestCanvasPlot(t *testing.T) {
	c := NewCanvas(10, 5)
	view := Viewport{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	c.Plot(view, []float64{0, 1}, []float64{0, 1})

	if c.Grid[4][0]&0x40 == 0 {
		t.Error("expected the bottom-left dot to be set")
	}
	if c.Grid[0][9]&0x08 == 0 {
		t.Error("expected the top-right dot to be set")
	}
	if lines := strings.Count(c.String(), "\n"); lines != 5 {
		t.Errorf("expected 5 rows, got %d", lines)
	}
}

func TestResample(t *testing.T) {
	ys := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	got := Resample(ys, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 4 || got[2] != 8 {
		t.Errorf("expected [0 4 8], got %v", got)
	}
	if got := Resample(ys[:2], 5); len(got) != 2 {
		t.Errorf("expected short input unchanged, got %v", got)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(0.5, 4); got != "██░░" {
		t.Errorf("expected half bar, got %q", got)
	}
	if got := Bar(-2, 3); got != "███" {
		t.Errorf("expected full bar, got %q", got)
	}
}

func newExplorer(t *testing.T) Explorer {
	t.Helper()
	lab, err := model.New(model.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(lab.Close)
	return NewExplorer(lab)
}

func press(e Explorer, keys ...tea.KeyMsg) Explorer {
	for _, k := range keys {
		next, _ := e.Update(k)
		e = next.(Explorer)
	}
	return e
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExplorerKeys(t *testing.T) {
	e := newExplorer(t)

	e = press(e, tea.KeyMsg{Type: tea.KeyTab})
	if got := e.lab.Potential().Kind(); got != well.KindAsymmetric {
		t.Errorf("expected asymmetric after tab, got %s", got)
	}

	e = press(e, runes("M"))
	if got := e.lab.Particle().MassValue(); got <= quantum.ElectronMass {
		t.Errorf("expected larger mass, got %f", got)
	}

	e = press(e, runes("]"))
	if got := e.lab.Potential().Offset().Get(); got != 0.5 {
		t.Errorf("expected offset 0.5, got %f", got)
	}

	e = press(e, runes("p"))
	if e.running {
		t.Error("expected paused")
	}

	e = press(e, runes("r"))
	if got := e.lab.Particle().MassValue(); got != quantum.ElectronMass {
		t.Errorf("expected mass reset, got %f", got)
	}
}

func TestExplorerSuperposition(t *testing.T) {
	e := newExplorer(t)
	e = press(e, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace}, runes("n"))

	c := e.lab.Coefficients()
	if !c.IsSuperposition() || !c.Normalized() {
		t.Errorf("expected a normalized two-state superposition, got %v", c.Values())
	}

	// Deselect everything, then normalizing must not fail loudly.
	e = press(e, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeySpace}, runes("n"))
	if e.status == "" {
		t.Error("expected a status message for an empty selection")
	}
}

func TestExplorerMissingParam(t *testing.T) {
	e := newExplorer(t)
	if err := e.lab.SetPotential(well.KindCoulomb3D); err != nil {
		t.Fatal(err)
	}
	e = press(e, runes("W"))
	if !strings.Contains(e.status, "width") {
		t.Errorf("expected a status about width, got %q", e.status)
	}
}

func TestExplorerView(t *testing.T) {
	e := newExplorer(t)
	view := e.View()
	for _, want := range []string{"SQUARE", "STATES", "n=1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
