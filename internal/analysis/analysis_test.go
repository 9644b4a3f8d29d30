package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/boundstates/internal/quantum"
	"gonum.org/v1/gonum/floats"
)

func gaussian(n int, lo, hi, center, sigma float64) ([]float64, []float64) {
	xs := make([]float64, n)
	floats.Span(xs, lo, hi)
	ys := make([]float64, n)
	for i, x := range xs {
		d := (x - center) / sigma
		ys[i] = math.Exp(-d * d / 4)
	}
	return xs, ys
}

func TestExpectationGaussian(t *testing.T) {
	// ψ = exp(-(x-c)²/4σ²) has density with mean c and spread σ.
	xs, ys := gaussian(4001, -10, 10, 1.5, 0.8)
	m, err := Expectation(xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Mean-1.5) > 1e-6 {
		t.Errorf("expected mean 1.5, got %f", m.Mean)
	}
	if math.Abs(m.Spread-0.8) > 1e-6 {
		t.Errorf("expected spread 0.8, got %f", m.Spread)
	}
	if math.Abs(m.MeanSquare-(1.5*1.5+0.8*0.8)) > 1e-5 {
		t.Errorf("expected ⟨x²⟩ %f, got %f", 1.5*1.5+0.8*0.8, m.MeanSquare)
	}
}

func TestExpectationErrors(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
	}{
		{"length mismatch", []float64{0, 1, 2}, []float64{1, 1}},
		{"single sample", []float64{0}, []float64{1}},
		{"zero density", []float64{0, 1}, []float64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Expectation(tt.xs, tt.ys); !errors.Is(err, quantum.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestOverlapOrthogonal(t *testing.T) {
	const n = 2001
	xs := make([]float64, n)
	floats.Span(xs, 0, 1)
	dx := xs[1] - xs[0]
	a := make([]float64, n)
	b := make([]float64, n)
	for i, x := range xs {
		a[i] = math.Sqrt2 * math.Sin(math.Pi*x)
		b[i] = math.Sqrt2 * math.Sin(2*math.Pi*x)
	}
	if got := Overlap(a, b, dx); math.Abs(got) > 1e-9 {
		t.Errorf("expected orthogonal states, got overlap %g", got)
	}
	if got := Overlap(a, a, dx); math.Abs(got-1) > 1e-6 {
		t.Errorf("expected unit norm, got %f", got)
	}
}

func TestMomentumDensity(t *testing.T) {
	xs, ys := gaussian(1024, -20, 20, 0, 1)
	dx := xs[1] - xs[0]
	ks, rho := MomentumDensity(ys, dx)
	if len(ks) != len(ys) || len(rho) != len(ys) {
		t.Fatalf("expected %d samples, got %d and %d", len(ys), len(ks), len(rho))
	}
	for i := 1; i < len(ks); i++ {
		if ks[i] <= ks[i-1] {
			t.Fatalf("wavenumbers not increasing at %d", i)
		}
	}

	dk := ks[1] - ks[0]
	if total := floats.Sum(rho) * dk; math.Abs(total-1) > 1e-9 {
		t.Errorf("expected unit total, got %f", total)
	}
	if mean := MeanMomentum(ks, rho); math.Abs(mean) > 1e-6 {
		t.Errorf("expected zero mean momentum, got %g", mean)
	}

	// A Gaussian with position spread σ has momentum spread 1/(2σ).
	k2 := 0.0
	for i, k := range ks {
		k2 += k * k * rho[i] * dk
	}
	if spread := math.Sqrt(k2); math.Abs(spread-0.5) > 1e-3 {
		t.Errorf("expected momentum spread 0.5, got %f", spread)
	}
}

func TestMomentumDensityEmpty(t *testing.T) {
	if ks, rho := MomentumDensity(nil, 0.1); ks != nil || rho != nil {
		t.Error("expected nil results for empty input")
	}
}

func TestTurningPoints(t *testing.T) {
	xs := make([]float64, 201)
	floats.Span(xs, -2, 2)
	vs := make([]float64, len(xs))
	for i, x := range xs {
		vs[i] = x * x
	}
	got := TurningPoints(xs, vs, 1)
	if len(got) != 2 {
		t.Fatalf("expected 2 turning points, got %v", got)
	}
	if math.Abs(got[0]+1) > 1e-3 || math.Abs(got[1]-1) > 1e-3 {
		t.Errorf("expected ±1, got %v", got)
	}
}

func TestForbiddenFraction(t *testing.T) {
	xs := make([]float64, 401)
	floats.Span(xs, -2, 2)
	ys := make([]float64, len(xs))
	vs := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 1
		if math.Abs(x) > 1 {
			vs[i] = 10
		}
	}
	got, err := ForbiddenFraction(xs, ys, vs, 5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.5) > 0.01 {
		t.Errorf("expected half the probability outside, got %f", got)
	}
}
