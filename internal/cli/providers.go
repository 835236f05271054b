package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newProvidersCmd creates the 'providers' command.
func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured data providers",
		Long: `List the provider options the form and submit command accept.

Providers are configured in the [options] section of the config file:
  providers = springer:Springer,ebl:EBL,safari:Safari`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			for _, opt := range cfg.Providers {
				fmt.Printf("%-16s %s\n", opt.Value, opt.Label)
			}
			return nil
		},
	}
}
