// Command plsda runs the PLS-DA classification and validation pipeline over
// a CSV sample table and writes figures plus a console report.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/plsgo/pipeline"
	"github.com/YuminosukeSato/plsgo/plotting"
	"github.com/YuminosukeSato/plsgo/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := pipeline.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "plsda --input samples.csv",
		Short: "PLS-DA classification with cross-validation, VIP scoring and a permutation test",
		Long: `plsda classifies samples into groups with partial least squares
discriminant analysis. It selects the latent component count by stratified
cross-validation, reports two cross-validated accuracies and a confusion
matrix, computes VIP feature importances, runs a permutation significance
test, and writes score, loading, correlation and VIP figures.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := pipeline.LoadConfig(configPath)
				if err != nil {
					return err
				}
				// Flags set on the command line win over the file.
				applyFlagOverrides(cmd, &loaded, cfg)
				cfg = loaded
			}
			if cfg.InputPath == "" {
				return fmt.Errorf("--input is required")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.SetupLogger(cfg.LogLevel)
			console := log.NewConsoleLogger(os.Stderr, zerolog.WarnLevel)
			log.BridgeWarnings(console)

			renderer := plotting.NewRenderer(cfg.OutputDir)
			renderer.Formats = cfg.PlotFormats

			p, err := pipeline.New(cfg, renderer)
			if err != nil {
				return err
			}
			_, err = p.RunCSV(context.Background())
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "input CSV file")
	flags.StringVar(&cfg.IDColumn, "id-column", cfg.IDColumn, "sample identifier column")
	flags.StringVar(&cfg.GroupColumn, "group-column", cfg.GroupColumn, "group label column")
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "directory for figures and the model bundle")
	flags.IntVar(&cfg.MaxComponents, "max-components", cfg.MaxComponents, "upper end of the component search range")
	flags.IntVar(&cfg.Folds, "folds", cfg.Folds, "stratified cross-validation folds")
	flags.IntVar(&cfg.Permutations, "permutations", cfg.Permutations, "permutation test iterations")
	flags.IntVar(&cfg.FoldSeed, "fold-seed", cfg.FoldSeed, "seed for fold assignment")
	flags.Int64Var(&cfg.PermutationSeed, "permutation-seed", cfg.PermutationSeed, "seed for label shuffles (negative = nondeterministic)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "permutation worker count (0 = all CPUs)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringSliceVar(&cfg.PlotFormats, "formats", cfg.PlotFormats, "figure file formats")
	flags.BoolVar(&cfg.SaveBundle, "save-bundle", cfg.SaveBundle, "write the fitted model bundle to the output directory")
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file; flags override its values")

	return cmd
}

// applyFlagOverrides copies every flag the user set explicitly from the
// flag-bound config over the file-loaded one.
func applyFlagOverrides(cmd *cobra.Command, dst *pipeline.Config, flagged pipeline.Config) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("input") {
		dst.InputPath = flagged.InputPath
	}
	if set("id-column") {
		dst.IDColumn = flagged.IDColumn
	}
	if set("group-column") {
		dst.GroupColumn = flagged.GroupColumn
	}
	if set("output-dir") {
		dst.OutputDir = flagged.OutputDir
	}
	if set("max-components") {
		dst.MaxComponents = flagged.MaxComponents
	}
	if set("folds") {
		dst.Folds = flagged.Folds
	}
	if set("permutations") {
		dst.Permutations = flagged.Permutations
	}
	if set("fold-seed") {
		dst.FoldSeed = flagged.FoldSeed
	}
	if set("permutation-seed") {
		dst.PermutationSeed = flagged.PermutationSeed
	}
	if set("workers") {
		dst.Workers = flagged.Workers
	}
	if set("log-level") {
		dst.LogLevel = flagged.LogLevel
	}
	if set("formats") {
		dst.PlotFormats = flagged.PlotFormats
	}
	if set("save-bundle") {
		dst.SaveBundle = flagged.SaveBundle
	}
}
