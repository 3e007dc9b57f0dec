// Package cli implements the oraculum command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sohamshetty07/oraculum-core/internal/config"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the oraculum CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "oraculum",
		Short: "Oraculum simulation client",
		Long: "Submit market-simulation jobs to an Oraculum backend, track their " +
			"progress, and export the reconciled results.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			if opts.Verbose {
				cfg.LogLevel = "debug"
			}
			config.InitLogger(cfg)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}
