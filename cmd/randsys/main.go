package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"randsys/adapters/excel"
	"randsys/adapters/report"
	"randsys/adapters/sources"
	"randsys/app"
	"randsys/domain/source"
	"randsys/domain/stats"
	"randsys/internal/config"
	"randsys/internal/logging"
	"randsys/internal/rng"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "randsys",
		Short:         "Compare how evenly randomness sources spread their values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var overrides studyFlags
	overrides.register(rootCmd)

	rootCmd.AddCommand(
		newRunCmd(&overrides),
		newSearchCmd(&overrides),
		newMeasureCmd(&overrides),
		newKindsCmd(),
		newShowCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

// studyFlags are persistent flags that override the environment configuration
type studyFlags struct {
	values     int
	steps      int
	trials     int
	minEntropy float64
	seed       uint64
	logLevel   string
}

func (f *studyFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.IntVar(&f.values, "values", 0, "Alphabet size (overrides RANDSYS_VALUES)")
	flags.IntVar(&f.steps, "steps", 0, "Draws per trial (overrides RANDSYS_STEPS)")
	flags.IntVar(&f.trials, "trials", 0, "Independent trials (overrides RANDSYS_TRIALS)")
	flags.Float64Var(&f.minEntropy, "min-entropy", 0, "Entropy floor for the search (overrides RANDSYS_MIN_ENTROPY)")
	flags.Uint64Var(&f.seed, "seed", 0, "Random seed, 0 derives one from the clock (overrides RANDSYS_SEED)")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

// loadConfig reads .env and the environment, applies explicitly set flags,
// validates the result and configures logging
func (f *studyFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("values") {
		cfg.Study.AlphabetSize = f.values
	}
	if flags.Changed("steps") {
		cfg.Study.Steps = f.steps
	}
	if flags.Changed("trials") {
		cfg.Study.Trials = f.trials
	}
	if flags.Changed("min-entropy") {
		cfg.Study.MinEntropy = f.minEntropy
	}
	if flags.Changed("seed") {
		cfg.Study.Seed = f.seed
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(f.logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunCmd(overrides *studyFlags) *cobra.Command {
	var output, format, reportPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search both parameterized families and measure every winner",
		Long: `Run the full study: search the generalized deck grid and the dynamic dice
sweep, then measure deck, dice and both winners and write their entropy and
variance rows.

Example: randsys run --values 6 --steps 25 --trials 10000 --output out.xlsx --report report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := overrides.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = strings.ToLower(format)
			}
			if cmd.Flags().Changed("report") {
				cfg.Output.ReportPath = reportPath
			}
			return runStudy(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Result file (overrides RANDSYS_OUTPUT)")
	cmd.Flags().StringVar(&format, "format", "", "csv or xlsx, inferred from --output when empty")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional Markdown (.md) or HTML (.html) report")

	return cmd
}

func runStudy(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("🎲 Running study: n=%d, steps=%d, trials=%d, min entropy=%.2f\n",
		cfg.Study.AlphabetSize, cfg.Study.Steps, cfg.Study.Trials, cfg.Study.MinEntropy)

	service := app.NewStudyService(logrus.StandardLogger())
	result, err := service.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("\n📊 PARAMETER SEARCH\n")
	report.WriteSearchSummary(os.Stdout, result.Searches)
	for _, kind := range result.Skipped() {
		fmt.Printf("⚠️  %s skipped: no candidate reached the entropy floor\n", kind.DisplayName())
	}

	fmt.Printf("\n📈 TRAJECTORIES\n")
	report.WriteTrajectorySummary(os.Stdout, result.Trajectories)

	writer := excel.NewDataWriterWithFormat(cfg.Output.Path, cfg.Output.ResolvedFormat())
	if err := writer.WriteRows(result.Rows()); err != nil {
		return err
	}
	fmt.Printf("\n💾 Results written to %s (%s)\n", writer.Path(), writer.Format())

	manifestPath := app.ManifestPath(cfg.Output.Path)
	if err := app.SaveManifest(manifestPath, result.Manifest); err != nil {
		return err
	}
	fmt.Printf("🧾 Manifest written to %s\n", manifestPath)

	if cfg.Output.ReportPath != "" {
		if err := report.WriteFile(cfg.Output.ReportPath, result.Report()); err != nil {
			return err
		}
		fmt.Printf("📝 Report written to %s\n", cfg.Output.ReportPath)
	}

	fmt.Printf("\n✅ STUDY COMPLETED in %dms\n", result.RuntimeMs)
	fmt.Printf("Seed %d, fingerprint %s. Rerun with --seed %d to reproduce.\n",
		result.Manifest.Seed, result.Manifest.Fingerprint.Fingerprint.Short(), result.Manifest.Seed)

	return nil
}

func newSearchCmd(overrides *studyFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [family]",
		Short: "Search one parameterized family and list every candidate",
		Long: `Search the candidate grid of one family and print each candidate's score.

Example: randsys search generalized_deck --trials 2000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := sources.ParseKind(args[0])
			if err != nil {
				return err
			}
			cfg, err := overrides.loadConfig(cmd)
			if err != nil {
				return err
			}

			seed := rng.Resolve(cfg.Study.Seed)
			service := app.NewStudyService(logrus.StandardLogger())
			result, err := service.Search(cfg, kind, seed)
			if err != nil {
				return err
			}

			fmt.Printf("🔍 %s search (seed %d, min entropy %.2f)\n", kind.DisplayName(), seed, cfg.Study.MinEntropy)
			report.WriteCandidates(os.Stdout, result)
			if !result.Found() {
				fmt.Printf("\n⚠️  No candidate reached the entropy floor\n")
				return nil
			}
			fmt.Printf("\n✅ Best: %s (variance %.4f)\n", result.Descriptor(), result.Variance)
			return nil
		},
	}
	return cmd
}

func newMeasureCmd(overrides *studyFlags) *cobra.Command {
	var params source.Params
	var output string

	cmd := &cobra.Command{
		Use:   "measure [kind]",
		Short: "Measure the entropy and variance trajectory of a single source",
		Long: `Measure one source with explicit parameters.

Example: randsys measure dynamic_dice --decrease-factor 0.35 --steps 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := sources.ParseKind(args[0])
			if err != nil {
				return err
			}
			cfg, err := overrides.loadConfig(cmd)
			if err != nil {
				return err
			}

			seed := rng.Resolve(cfg.Study.Seed)
			service := app.NewStudyService(logrus.StandardLogger())
			traj, err := service.Measure(cfg, kind, params, seed)
			if err != nil {
				return err
			}

			fmt.Printf("📈 %s (seed %d)\n", traj.Source, seed)
			report.WriteTrajectorySummary(os.Stdout, []stats.Trajectory{traj})

			if output != "" {
				writer := excel.NewDataWriter(output)
				if err := writer.WriteRows(traj.Rows()); err != nil {
					return err
				}
				fmt.Printf("💾 Rows written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.SizeFactor, "size-factor", 1, "Copies of each value (generalized deck)")
	cmd.Flags().IntVar(&params.RefillThreshold, "refill-threshold", 1, "Refill when fewer cards remain (generalized deck)")
	cmd.Flags().Float64Var(&params.DecreaseFactor, "decrease-factor", 0.5, "Weight multiplier for the drawn value (dynamic dice)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Optional csv or xlsx file for the rows")

	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available source families",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, kc := range sources.Configs() {
				fmt.Printf("🎲 %s (%s)\n", kc.Kind, kc.Kind.DisplayName())
				fmt.Printf("   Aliases: %s\n", strings.Join(kc.Aliases, ", "))
				if len(kc.Parameters) > 0 {
					fmt.Printf("   Parameters: %s\n", strings.Join(kc.Parameters, ", "))
				}
				fmt.Printf("   %s\n\n", kc.Description)
			}
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the rows of a csv or xlsx result file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := excel.NewDataReader(args[0]).ReadRows()
			if err != nil {
				return err
			}
			fmt.Printf("📄 %s: %d rows\n\n", args[0], len(rows))
			for _, row := range rows {
				fmt.Printf("%-28s", row.Label)
				for _, v := range row.Values {
					fmt.Printf(" %.4f", v)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
