// Package main is the entry point for the digo-plan binary.
// It resolves a registration manifest and prints the binding report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/internal/logging"
	"github.com/centraunit/digo/manifest"
)

const defaultLogLevel = "warn"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for digo-plan
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "digo-plan <manifest>",
		Short: "Print the bindings a registration manifest resolves to",
		Long: `Resolve a YAML or TOML registration manifest and print, in order, every
ignored interface followed by every (type, interface, lifetime) binding.

Example:
  digo-plan --lifetime scoped services.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlan,
	}

	rootCmd.Flags().StringP("lifetime", "l", "", "Default lifetime (transient, scoped, singleton); overrides the manifest")
	rootCmd.Flags().String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().Bool("pretty", false, "Human-readable log output")

	return rootCmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	lifetimeFlag, err := cmd.Flags().GetString("lifetime")
	if err != nil {
		return fmt.Errorf("failed to get lifetime flag: %w", err)
	}
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	pretty, err := cmd.Flags().GetBool("pretty")
	if err != nil {
		return fmt.Errorf("failed to get pretty flag: %w", err)
	}

	var lifetime digo.Lifetime
	if lifetimeFlag != "" {
		if lifetime, err = digo.ParseLifetime(lifetimeFlag); err != nil {
			return err
		}
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Config{Level: logLevel, Pretty: pretty})

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug().Str("manifest", args[0]).Int("candidates", len(m.Candidates)).Msg("manifest loaded")

	bindings, err := m.Plan(digo.NewCollection(), lifetime, digo.WithLogger(logger))
	if werr := digo.WriteReport(cmd.OutOrStdout(), bindings); werr != nil {
		return fmt.Errorf("failed to write report: %w", werr)
	}
	return err
}
