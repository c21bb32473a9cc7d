package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/evobench/archmoea/pkg/experiment"
	"github.com/evobench/archmoea/pkg/moea/algorithms"
	"github.com/evobench/archmoea/pkg/moea/operators"
)

var (
	// CLI flags for the experiment run matrix
	moea       string // algorithm family to run
	runs       int    // number of runs to repeat per problem
	problems   []int  // problem ids to benchmark
	outputDir  string // directory report files are written into
	configPath string // optional yaml run config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "archmoea",
	Short:        "Multi-objective evolutionary benchmark harness for architecture search",
	SilenceUsage: true,
}

// runCmd executes the experiment using parameters from the optional config
// file and CLI flags; flags win.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark experiment",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := klog.Background()

		cfg := experiment.DefaultConfig()
		if configPath != "" {
			loaded, err := experiment.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			logger.Info("loaded run config", "path", configPath)
		}
		if cmd.Flags().Changed("moea") {
			cfg.Algorithm = moea
		}
		if cmd.Flags().Changed("runs") {
			cfg.Repeats = runs
		}
		if cmd.Flags().Changed("problems") {
			cfg.Problems = problems
		}
		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir = outputDir
		}

		family, err := algorithms.ParseFamily(cfg.Algorithm)
		if err != nil {
			return err
		}

		var ops *operators.Params
		if cfg.Operators != nil {
			base := operators.Defaults()
			if family == algorithms.FamilyMOEAD {
				base = operators.DecompositionDefaults()
			}
			applied := cfg.Operators.Apply(base)
			ops = &applied
		}

		driver, err := experiment.NewDriver(experiment.DriverConfig{
			Family:    family,
			Repeats:   cfg.Repeats,
			Operators: ops,
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		// One report file per problem id, written as soon as its repeats
		// complete; earlier reports survive a later failure.
		for _, id := range cfg.Problems {
			report, err := driver.RunProblem(id)
			if err != nil {
				return fmt.Errorf("problem %d: %w", id, err)
			}
			path, err := experiment.WriteReport(cfg.OutputDir, report)
			if err != nil {
				return fmt.Errorf("problem %d: %w", id, err)
			}
			logger.Info("report written", "path", path)
		}
		return nil
	},
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVar(&moea, "moea", "nsga2", "which MOEA to run (nsga2, moead or nsga3)")
	fs.IntVar(&runs, "runs", 1, "number of runs to repeat per problem")
	fs.IntSliceVar(&problems, "problems", nil, "problem ids to run (default 1 through 9)")
	fs.StringVar(&outputDir, "output-dir", ".", "directory for report files")
	fs.StringVar(&configPath, "config", "", "optional yaml run config file")
}

func init() {
	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	addRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
