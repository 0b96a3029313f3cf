// Command akao loads rule and philosophy documents and runs them against
// a target source tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akaoio/akao-sub001/internal/config"
	"github.com/akaoio/akao-sub001/internal/logging"
)

var (
	verbose    bool
	trace      bool
	configPath string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "akao",
	Short: "akao runs declarative rule and philosophy documents against a source tree",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Verbose = true
		}
		if trace {
			cfg.Eval.EnableTrace = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "enable per-node evaluation tracing")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "akao.yaml", "path to akao's configuration file")

	rootCmd.AddCommand(checkCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
