package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/springlab/internal/analysis"
	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/metrics"
	"github.com/san-kum/springlab/internal/oscillator"
	"github.com/san-kum/springlab/internal/sim"
	"github.com/san-kum/springlab/internal/storage"
	"github.com/san-kum/springlab/internal/viz"
)

var (
	dataDir  string
	mass     float64
	damping  float64
	springK  float64
	y0       float64
	v0       float64
	dt       float64
	duration float64
	// forcing selection
	forceName   string
	amplitude   float64
	frequency   float64
	force       float64
	stepTime    float64
	impulseTime float64
	width       float64
	// scenario sources
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "springlab",
		Short: "driven mass-spring-damper laboratory",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addPhysicsFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	propertiesCmd := &cobra.Command{
		Use:   "properties",
		Short: "derived system properties for given parameters",
		RunE:  showProperties,
	}
	addPhysicsFlags(propertiesCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS\tDAMPING\tK\tFORCING\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%s\t%.1fs\n",
					name, p.Mass, p.Damping, p.SpringConstant, p.Forcing, p.Duration)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, propertiesCmd, listCmd, plotCmd, phaseCmd,
		analyzeCmd, exportJSONCmd, exportCSVCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "mass (kg)")
	cmd.Flags().Float64Var(&damping, "damping", 0.5, "damping coefficient")
	cmd.Flags().Float64Var(&springK, "k", 10.0, "spring constant")
	cmd.Flags().Float64Var(&y0, "y0", 1.0, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().StringVar(&forceName, "forcing", "none", "forcing preset")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "forcing amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", 1.0, "forcing frequency (hz)")
	cmd.Flags().Float64Var(&force, "force", 1.0, "constant force value")
	cmd.Flags().Float64Var(&stepTime, "step-time", 1.0, "step onset time")
	cmd.Flags().Float64Var(&impulseTime, "impulse-time", 1.0, "impulse onset time")
	cmd.Flags().Float64Var(&width, "impulse-width", 0.01, "impulse width")
}

// scenario resolves the effective configuration: preset values first,
// then the config file, with explicitly set flags winning over both.
func scenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("damping") {
		cfg.Damping = damping
	}
	if cmd.Flags().Changed("k") {
		cfg.SpringConstant = springK
	}
	if cmd.Flags().Changed("y0") {
		cfg.Y0 = y0
	}
	if cmd.Flags().Changed("v0") {
		cfg.V0 = v0
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("forcing") {
		cfg.Forcing = forceName
		cfg.ForcingParams = nil
	}

	overrides := forcingOverrides(cmd)
	if len(overrides) > 0 {
		if cfg.ForcingParams == nil {
			cfg.ForcingParams = make(map[string]float64)
		}
		for k, v := range overrides {
			cfg.ForcingParams[k] = v
		}
	}

	return cfg, nil
}

// forcingOverrides collects only the forcing flags the user actually
// set, so preset defaults stay in charge of everything else.
func forcingOverrides(cmd *cobra.Command) map[string]float64 {
	overrides := make(map[string]float64)
	flags := []struct {
		flag  string
		param string
		value float64
	}{
		{"amplitude", "amplitude", amplitude},
		{"frequency", "frequency", frequency},
		{"force", "force", force},
		{"step-time", "stepTime", stepTime},
		{"impulse-time", "impulseTime", impulseTime},
		{"impulse-width", "width", width},
	}
	for _, f := range flags {
		if cmd.Flags().Changed(f.flag) {
			overrides[f.param] = f.value
		}
	}
	return overrides
}

func buildSystem(cfg *config.Config) (*oscillator.System, error) {
	sys, err := oscillator.New(cfg.Mass, cfg.Damping, cfg.SpringConstant, cfg.Y0, cfg.V0)
	if err != nil {
		return nil, err
	}
	if err := sys.SetForcing(cfg.Forcing, cfg.ForcingParams); err != nil {
		return nil, err
	}
	return sys, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(sys)
	runner.AddMetric(metrics.NewEnergyDrift(cfg.Mass, cfg.SpringConstant))
	runner.AddMetric(metrics.NewPeakAmplitude())
	runner.AddMetric(metrics.NewSettlingTime(0.02))

	fmt.Println("running simulation...")
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Mass:           cfg.Mass,
		Damping:        cfg.Damping,
		SpringConstant: cfg.SpringConstant,
		Forcing:        cfg.Forcing,
		ForcingParams:  cfg.ForcingParams,
		Dt:             cfg.Dt,
		Duration:       cfg.Duration,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	fmt.Println()
	return printProperties(sys)
}

func showProperties(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	return printProperties(sys)
}

func printProperties(sys *oscillator.System) error {
	p := sys.Properties()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "natural frequency\tω₀ = %.4f rad/s\tf₀ = %.4f hz\n", p.Omega0, p.F0)
	fmt.Fprintf(w, "period\tT₀ = %.4f s\n", p.Period)
	fmt.Fprintf(w, "damping ratio\tζ = %.4f\n", p.Zeta)
	fmt.Fprintf(w, "regime\t%s\n", p.Regime)
	if p.Regime == oscillator.Underdamped {
		fmt.Fprintf(w, "damped frequency\tω_D = %.4f rad/s\tf_D = %.4f hz\n", p.OmegaD, p.FD)
	}
	fmt.Fprintf(w, "quality factor\tQ = %.4f\n", p.Q)
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMASS\tDAMPING\tK\tFORCING\tDURATION\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%.2fs\t%.4fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mass,
			run.Damping,
			run.SpringConstant,
			run.Forcing,
			run.Duration,
			run.Dt,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(result.Times))

	fmt.Println(viz.TimeSeries(result.Positions, "position (m)"))
	fmt.Println()
	fmt.Println(viz.TimeSeries(result.Velocities, "velocity (m/s)"))
	fmt.Println()
	fmt.Println(viz.TimeSeries(result.Energies, "energy (J)"))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Println("phase portrait (position vs velocity)")
	fmt.Println()
	fmt.Print(viz.PhasePortrait(result.Positions, result.Velocities, 60, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if len(result.Positions) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(result.Positions)
	fmt.Println(viz.TimeSeries(ps[:len(ps)/4], "power spectrum"))
	fmt.Println()

	freq := analysis.DominantFrequency(result.Positions, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity", "energy"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Positions[i], 'f', 6, 64),
			strconv.FormatFloat(result.Velocities[i], 'f', 6, 64),
			strconv.FormatFloat(result.Energies[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(sys, cfg.Dt), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
