package model

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/well"
)

var _ = Describe("Model", func() {
	var m *Model

	BeforeEach(func() {
		var err error
		m, err = New(DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(m.Close)
	})

	Describe("construction", func() {
		It("activates the square well with its ground state selected", func() {
			Expect(m.Potential().Kind()).To(Equal(well.KindSquare))
			Expect(m.Coefficients().Selected()).To(Equal([]int{0}))
			Expect(m.Coefficients().Normalized()).To(BeTrue())
		})

		It("holds one well per kind", func() {
			Expect(m.Wells()).To(HaveLen(len(well.Kinds())))
		})
	})

	Describe("changing the particle mass", func() {
		It("invalidates every well", func() {
			revs := map[well.Kind]int{}
			for _, w := range m.Wells() {
				revs[w.Kind()] = w.Revision().Get()
			}
			Expect(m.Particle().SetMass(2 * quantum.ElectronMass)).To(Succeed())
			for _, w := range m.Wells() {
				Expect(w.Revision().Get()).To(BeNumerically(">", revs[w.Kind()]), w.Name())
			}
		})

		It("lowers the square-well ground energy", func() {
			before, err := m.Potential().NthEigenvalue(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Particle().SetMass(2 * quantum.ElectronMass)).To(Succeed())
			after, err := m.Potential().NthEigenvalue(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(BeNumerically("<", before))
		})

		It("rejects non-positive values", func() {
			Expect(m.Particle().SetMass(-1)).To(MatchError(quantum.ErrInvalidParameter))
		})
	})

	Describe("time evolution", func() {
		BeforeEach(func() {
			Expect(m.SetPotential(well.KindHarmonic)).To(Succeed())
			c := m.Coefficients()
			Expect(c.Set(0, 0.6)).To(Succeed())
			Expect(c.Set(1, 0.8)).To(Succeed())
			Expect(c.Normalize()).To(Succeed())
		})

		It("is periodic with the beat period of the two states", func() {
			period := 2 * math.Pi / 1.0
			_, a, err := m.AbsoluteSquare(0.3)
			Expect(err).NotTo(HaveOccurred())
			_, b, err := m.AbsoluteSquare(0.3 + period)
			Expect(err).NotTo(HaveOccurred())
			for i := range a {
				Expect(b[i]).To(BeNumerically("~", a[i], 1e-9))
			}
		})

		It("is not stationary within a period", func() {
			_, a, _ := m.AbsoluteSquare(0)
			_, b, _ := m.AbsoluteSquare(math.Pi)
			diff := 0.0
			for i := range a {
				diff = math.Max(diff, math.Abs(a[i]-b[i]))
			}
			Expect(diff).To(BeNumerically(">", 0.1))
		})
	})

	Describe("errors", func() {
		It("reports eigenstates beyond the spectrum", func() {
			w := m.Potential()
			_, _, err := w.NthEigenstate(w.GroundStateIndex() + w.NumberOfEigenstates())
			Expect(err).To(MatchError(quantum.ErrUnsupportedIndex))
		})
	})
})
