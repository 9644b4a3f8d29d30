package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

func TestWriteEigenstatesCSV(t *testing.T) {
	w := well.NewHarmonicOscillator(quantum.NewParticle(quantum.ElectronMass))
	var buf bytes.Buffer
	if err := WriteEigenstatesCSV(&buf, w, []int{0, 2}); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != quantum.NumPoints+1 {
		t.Fatalf("expected %d rows, got %d", quantum.NumPoints+1, len(records))
	}
	want := []string{"x", "potential", "psi_0", "psi_2"}
	if strings.Join(records[0], ",") != strings.Join(want, ",") {
		t.Errorf("expected header %v, got %v", want, records[0])
	}
}

func TestWriteEigenstatesCSV_BadState(t *testing.T) {
	w := well.NewSquareWell(quantum.NewParticle(quantum.ElectronMass))
	var buf bytes.Buffer
	if err := WriteEigenstatesCSV(&buf, w, []int{0}); err == nil {
		t.Error("expected an error for n=0 in a well whose ground state is 1")
	}
}

func TestWriteFramesCSV(t *testing.T) {
	frames := []Frame{
		{Time: 0, Xs: []float64{0, 1}, Real: []float64{1, 0}, Imag: []float64{0, 0}, ProbabilityDensity: []float64{1, 0}},
		{Time: 0.5, Xs: []float64{0, 1}, Real: []float64{0, 1}, Imag: []float64{1, 0}, ProbabilityDensity: []float64{0, 1}},
	}
	var buf bytes.Buffer
	if err := WriteFramesCSV(&buf, frames); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Errorf("expected header plus 4 rows, got %d", len(records))
	}
	if records[3][0] != "0.500000" {
		t.Errorf("expected time 0.500000, got %s", records[3][0])
	}
}

func TestSpectrumJSON(t *testing.T) {
	w := well.NewSquareWell(quantum.NewParticle(quantum.ElectronMass))
	s, err := NewSpectrum(w, quantum.ElectronMass, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Levels) != w.NumberOfEigenstates() || len(s.Nodes) != len(s.Levels) {
		t.Fatalf("expected %d levels with nodes, got %d and %d", w.NumberOfEigenstates(), len(s.Levels), len(s.Nodes))
	}
	for i, nodes := range s.Nodes {
		if nodes != i {
			t.Errorf("level %d: expected %d nodes, got %d", s.Levels[i].N, i, nodes)
		}
	}

	var buf bytes.Buffer
	if err := WriteSpectrumJSON(&buf, s); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"potential", "mass", "params", "ground_state", "levels", "solver"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestExportJSONFile(t *testing.T) {
	w := well.NewCoulomb3D(quantum.NewParticle(quantum.ElectronMass))
	s, err := NewSpectrum(w, quantum.ElectronMass, false)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "spectrum.json")
	if err := ExportJSON(path, s); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("spectrum file not created: %v", err)
	}
}

func TestSavePlot(t *testing.T) {
	w := well.NewAsymmetric(quantum.NewParticle(quantum.ElectronMass))
	dir := t.TempDir()
	for _, name := range []string{"well.png", "well.svg"} {
		path := filepath.Join(dir, name)
		if err := SavePlot(path, w, []int{1, 2}, DefaultPlotOptions()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("%s not created: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
