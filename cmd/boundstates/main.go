package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boundstates/internal/analysis"
	"github.com/san-kum/boundstates/internal/config"
	"github.com/san-kum/boundstates/internal/export"
	"github.com/san-kum/boundstates/internal/model"
	"github.com/san-kum/boundstates/internal/quantum"
	"github.com/san-kum/boundstates/internal/solver"
	"github.com/san-kum/boundstates/internal/sweep"
	"github.com/san-kum/boundstates/internal/viz"
	"github.com/san-kum/boundstates/internal/well"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	verbose    bool
	// Overrides applied on top of the config file and preset.
	mass      float64
	offset    float64
	width     float64
	height    float64
	frequency float64

	output    string
	states    []int
	coeffs    []float64
	withNodes bool
	momentum  bool
	steps     int
	dt        float64
	plotWidth int
	runs      int
	theme     string

	param        string
	from, to     float64
	points       int
	targetState  int
	targetEnergy float64
)

// main registers the commands and runs the root command, which opens the
// explorer when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "boundstates",
		Short: "quantum bound state lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		Args: cobra.MaximumNArgs(1),
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&mass, "mass", quantum.ElectronMass, "particle mass (eV·fs²/nm²)")
	pf.Float64Var(&offset, "offset", 0, "potential offset (eV)")
	pf.Float64Var(&width, "width", well.DefaultWellWidth, "well width (nm)")
	pf.Float64Var(&height, "height", well.DefaultWellHeight, "well height (eV)")
	pf.Float64Var(&frequency, "frequency", well.DefaultFrequency, "oscillator frequency (1/fs)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [potential]",
		Short: "list bound state energies and observables",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showSpectrum,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [potential] [n]",
		Short: "plot the potential and one eigenstate in the terminal",
		Args:  cobra.MaximumNArgs(2),
		RunE:  plotState,
	}
	plotCmd.Flags().BoolVar(&momentum, "momentum", false, "also plot the momentum density")
	plotCmd.Flags().IntVar(&plotWidth, "plot-width", 70, "plot width in columns")

	evolveCmd := &cobra.Command{
		Use:   "evolve [potential]",
		Short: "evolve a superposition and report ⟨x⟩ over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  evolve,
	}
	evolveCmd.Flags().Float64SliceVar(&coeffs, "coeffs", nil, "superposition coefficients from the ground state up")
	evolveCmd.Flags().IntVar(&steps, "steps", 20, "number of samples")
	evolveCmd.Flags().Float64Var(&dt, "dt", 0.5, "time between samples (fs)")
	evolveCmd.Flags().StringVarP(&output, "output", "o", "", "write frames as csv")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [potential]",
		Short: "export eigenstates as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportCSVCmd.Flags().IntSliceVar(&states, "states", nil, "quantum numbers (default all)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [potential]",
		Short: "export the spectrum as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportJSONCmd.Flags().BoolVar(&withNodes, "nodes", false, "include node counts")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [potential]",
		Short: "render the potential and eigenstates to an image",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (png, svg or pdf; default <potential>.png)")
	exportPNGCmd.Flags().IntSliceVar(&states, "states", nil, "quantum numbers (default all)")

	presetsCmd := &cobra.Command{
		Use:   "presets [potential]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [potential]",
		Short: "benchmark the eigenvalue search",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 3, "solves per mass")

	sweepCmd := &cobra.Command{
		Use:   "sweep [potential]",
		Short: "energy levels as one parameter varies",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepLevels,
	}
	sweepCmd.Flags().StringVar(&param, "param", "width", "parameter to vary")
	sweepCmd.Flags().Float64Var(&from, "from", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&to, "to", 2.0, "last value")
	sweepCmd.Flags().IntVar(&points, "points", 31, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune [potential]",
		Short: "search a parameter range for a target state energy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tune,
	}
	tuneCmd.Flags().StringVar(&param, "param", "width", "parameter to search")
	tuneCmd.Flags().Float64Var(&from, "from", 0.5, "first value")
	tuneCmd.Flags().Float64Var(&to, "to", 2.0, "last value")
	tuneCmd.Flags().IntVar(&points, "points", 31, "number of values")
	tuneCmd.Flags().IntVar(&targetState, "state", 1, "quantum number")
	tuneCmd.Flags().Float64Var(&targetEnergy, "energy", 1.0, "target energy (eV)")

	tuiCmd := &cobra.Command{
		Use:   "tui [potential]",
		Short: "interactive explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&theme, "theme", viz.CurrentTheme.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	}

	rootCmd.AddCommand(spectrumCmd, plotCmd, evolveCmd, exportCSVCmd, exportJSONCmd, exportPNGCmd, presetsCmd, benchCmd, sweepCmd, tuneCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadLab builds a model from the config file, the preset and the flags, in
// that order of precedence, with potential selected when non-empty.
func loadLab(cmd *cobra.Command, potential string) (*model.Model, *config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	if potential != "" {
		cfg.Potential = potential
	}
	if preset != "" {
		p := config.GetPreset(cfg.Potential, preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset %q for %s (have: %s)",
				preset, cfg.Potential, strings.Join(config.ListPresets(cfg.Potential), ", "))
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	overrides := []struct {
		name string
		v    float64
	}{
		{"offset", offset},
		{"width", width},
		{"height", height},
		{"frequency", frequency},
	}
	for _, o := range overrides {
		if !flags.Changed(o.name) {
			continue
		}
		if err := cfg.SetParam(cfg.Potential, o.name, o.v); err != nil {
			return nil, nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	mc, err := cfg.ModelConfig()
	if err != nil {
		return nil, nil, err
	}
	mc.Logger = slog.Default()
	m, err := model.New(mc)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Apply(m); err != nil {
		m.Close()
		return nil, nil, err
	}
	return m, cfg, nil
}

func potentialArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func showSpectrum(cmd *cobra.Command, args []string) error {
	m, cfg, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()
	w := m.Potential()

	fmt.Printf("%s  mass=%.4f  %s\n\n", w.Name(), cfg.Mass, formatParams(w))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "N\tENERGY (eV)\tNODES\t<x> (nm)\tΔx (nm)\tFORBIDDEN")

	_, vs := w.PotentialPoints(quantum.NumPoints)
	for i, e := range w.Eigenvalues() {
		n := w.GroundStateIndex() + i
		xs, ys, err := w.NthEigenstate(n)
		if err != nil {
			return err
		}
		mom, err := analysis.Expectation(xs, ys)
		if err != nil {
			return err
		}
		forbidden, err := analysis.ForbiddenFraction(xs, ys, vs, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%.6f\t%d\t%+.4f\t%.4f\t%.2f%%\n",
			n, e, solver.CountNodes(ys, 1e-6), mom.Mean, mom.Spread, 100*forbidden)
	}
	tw.Flush()

	d := w.Diagnostics()
	if d.Solves > 0 {
		fmt.Printf("\nsolver: %d solves, %d iterations, %d unconverged\n", d.Solves, d.Iterations, d.Unconverged)
	}
	return nil
}

func formatParams(w well.Well) string {
	params := w.Params()
	parts := make([]string, 0, len(params))
	for _, name := range well.ParamNames(w) {
		parts = append(parts, fmt.Sprintf("%s=%g", name, params[name]))
	}
	return strings.Join(parts, "  ")
}

func plotState(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()
	w := m.Potential()

	n := w.GroundStateIndex()
	if len(args) > 1 {
		n, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantum number %q: %w", args[1], err)
		}
	}
	e, err := w.NthEigenvalue(n)
	if err != nil {
		return err
	}
	xs, ys, err := w.NthEigenstate(n)
	if err != nil {
		return err
	}

	minE, maxE := w.EnergyRange()
	_, vs := w.PotentialPoints(plotWidth)
	for i, v := range vs {
		vs[i] = max(minE, min(maxE, v))
	}
	fmt.Println(asciigraph.Plot(vs, asciigraph.Height(10), asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("%s potential (eV)", w.Name()))))
	fmt.Println()
	fmt.Println(asciigraph.Plot(viz.Resample(ys, plotWidth), asciigraph.Height(12), asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("ψ_%d  E=%.6f eV", n, e))))

	if momentum {
		ks, rho := analysis.MomentumDensity(ys, xs[1]-xs[0])
		// Only the central band carries weight.
		lo, hi := len(ks)/2-len(ks)/8, len(ks)/2+len(ks)/8
		fmt.Println()
		fmt.Println(asciigraph.Plot(viz.Resample(rho[lo:hi], plotWidth), asciigraph.Height(8), asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("|φ(k)|²  k ∈ [%.1f, %.1f] 1/nm", ks[lo], ks[hi-1]))))
	}
	return nil
}

func evolve(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()

	if len(coeffs) > 0 {
		c := m.Coefficients()
		if len(coeffs) > c.Len() {
			return fmt.Errorf("%d coefficients for %d states: %w", len(coeffs), c.Len(), quantum.ErrUnsupportedIndex)
		}
		for i := 0; i < c.Len(); i++ {
			v := 0.0
			if i < len(coeffs) {
				v = coeffs[i]
			}
			if err := c.Set(i, v); err != nil {
				return err
			}
		}
		if err := c.Normalize(); err != nil {
			return err
		}
	}

	fmt.Printf("evolving %s, coefficients %v\n\n", m.Potential().Name(), formatCoeffs(m.Coefficients().Values()))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME (fs)\t<x> (nm)\tΔx (nm)")

	var frames []export.Frame
	means := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		t := m.Time()
		xs, re, err := m.WavefunctionPoints(t, model.Real)
		if err != nil {
			return err
		}
		_, im, err := m.WavefunctionPoints(t, model.Imaginary)
		if err != nil {
			return err
		}
		_, abs, err := m.AbsoluteSquare(t)
		if err != nil {
			return err
		}
		psi := make([]float64, len(abs))
		for j, a := range abs {
			psi[j] = math.Sqrt(max(0, a))
		}
		mom, err := analysis.Expectation(xs, psi)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%.3f\t%+.5f\t%.5f\n", t, mom.Mean, mom.Spread)
		means = append(means, mom.Mean)

		if output != "" {
			_, rho, err := m.ProbabilityDensity(t)
			if err != nil {
				return err
			}
			frames = append(frames, export.Frame{Time: t, Xs: xs, Real: re, Imag: im, ProbabilityDensity: rho})
		}
		m.Advance(dt)
	}
	tw.Flush()

	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means, asciigraph.Height(8), asciigraph.Caption("<x>(t) nm")))
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteFramesCSV(f, frames); err != nil {
			return err
		}
		fmt.Printf("\nwrote %d frames to %s\n", len(frames), output)
	}
	return nil
}

func formatCoeffs(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', 3, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func exportCSV(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()

	toFile := output != "" && output != "-"
	out := os.Stdout
	if toFile {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := export.WriteEigenstatesCSV(out, m.Potential(), states); err != nil {
		return err
	}
	if toFile {
		fmt.Printf("exported to %s\n", output)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	m, cfg, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()

	s, err := export.NewSpectrum(m.Potential(), cfg.Mass, withNodes)
	if err != nil {
		return err
	}
	path := output
	if path == "" {
		path = "-"
	}
	if err := export.ExportJSON(path, s); err != nil {
		return err
	}
	if path != "-" {
		fmt.Printf("exported to %s\n", output)
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()

	path := output
	if path == "" {
		path = m.Potential().Name() + ".png"
	}
	if err := export.SavePlot(path, m.Potential(), states, export.DefaultPlotOptions()); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	potentials := args
	if len(potentials) == 0 {
		for name := range config.Presets {
			potentials = append(potentials, name)
		}
		sort.Strings(potentials)
	}
	for _, potential := range potentials {
		presets := config.ListPresets(potential)
		if len(presets) == 0 {
			fmt.Printf("no presets for potential: %s\n", potential)
			continue
		}
		fmt.Printf("presets for %s:\n", potential)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

// bench times a full spectrum solve at several masses. Each solve starts from
// empty caches.
func bench(cmd *cobra.Command, args []string) error {
	m, cfg, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()
	w := m.Potential()

	fmt.Printf("benchmarking %s\n\n", w.Name())
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MASS\tSTATES\tSOLVES\tITERATIONS\tTIME\tPER STATE")

	for _, factor := range []float64{0.5, 1, 2, 4} {
		if err := m.Particle().SetMass(cfg.Mass * factor); err != nil {
			return err
		}
		var elapsed time.Duration
		count := 0
		before := w.Diagnostics()
		for r := 0; r < runs; r++ {
			// Force a re-solve by touching the offset.
			off := w.Offset().Get()
			w.Offset().Set(off + 1e-9)
			w.Offset().Set(off)

			start := time.Now()
			for n := w.GroundStateIndex(); n < w.GroundStateIndex()+w.NumberOfEigenstates(); n++ {
				if _, _, err := w.NthEigenstate(n); err != nil {
					return err
				}
			}
			elapsed += time.Since(start)
			count = w.NumberOfEigenstates()
		}
		after := w.Diagnostics()
		perState := time.Duration(0)
		if count > 0 {
			perState = elapsed / time.Duration(runs*count)
		}
		fmt.Fprintf(tw, "%.3f\t%d\t%d\t%d\t%v\t%v\n",
			cfg.Mass*factor, count, after.Solves-before.Solves, after.Iterations-before.Iterations,
			(elapsed / time.Duration(max(1, runs))).Round(time.Microsecond), perState.Round(time.Microsecond))
	}
	tw.Flush()
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()
	viz.SetTheme(theme)
	return viz.Run(m)
}

func sweepLevels(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()
	w := m.Potential()

	pts, err := sweep.Levels(context.Background(), w, param, sweep.Range(from, to, points))
	if err != nil {
		return err
	}

	maxLevels := 0
	for _, p := range pts {
		maxLevels = max(maxLevels, len(p.Energies))
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(param)}
	for i := 0; i < maxLevels; i++ {
		header = append(header, fmt.Sprintf("E%d", w.GroundStateIndex()+i))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, p := range pts {
		row := []string{strconv.FormatFloat(p.Value, 'f', 4, 64)}
		for i := 0; i < maxLevels; i++ {
			if i < len(p.Energies) {
				row = append(row, strconv.FormatFloat(p.Energies[i], 'f', 4, 64))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	// One series per level that exists at every point.
	common := maxLevels
	for _, p := range pts {
		common = min(common, len(p.Energies))
	}
	if common > 0 && len(pts) > 1 {
		series := make([][]float64, common)
		for i := range series {
			for _, p := range pts {
				series[i] = append(series[i], p.Energies[i])
			}
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series, asciigraph.Height(14), asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s levels vs %s", w.Name(), param))))
	}
	return nil
}

func tune(cmd *cobra.Command, args []string) error {
	m, _, err := loadLab(cmd, potentialArg(args))
	if err != nil {
		return err
	}
	defer m.Close()
	w := m.Potential()

	g := sweep.NewGridSearch([]string{param}, [][]float64{sweep.Range(from, to, points)})
	best, score, err := g.Search(context.Background(), w, sweep.TargetEnergy(targetState, targetEnergy))
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no %s in [%g, %g] gives %s a state n=%d", param, from, to, w.Name(), targetState)
	}
	if err := w.SetParam(param, best[param]); err != nil {
		return err
	}
	e, err := w.NthEigenvalue(targetState)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s=%.4f puts n=%d at %.4f eV (target %.4f eV, off by %.2g eV)\n",
		w.Name(), param, best[param], targetState, e, targetEnergy, score)
	return nil
}
