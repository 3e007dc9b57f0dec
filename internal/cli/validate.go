package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <job-config.yaml>",
		Short: "Validate a job configuration without submitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadJobConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("OK: %s scenario for %q with %d agents\n",
				cfg.Scenario, cfg.ProductName, cfg.AgentCount)
			return nil
		},
	}
}
