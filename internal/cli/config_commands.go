package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/libsys/ils-importer/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage client configuration",
	}

	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetCmd())

	return configCmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Printf("Platform URL: %s\n", valueOrUnset(cfg.PlatformURL))
			fmt.Printf("API token: %s\n", maskToken(cfg.APIToken))
			fmt.Printf("Providers: %s\n", config.FormatOptions(cfg.Providers))
			return nil
		},
	}
}

// newConfigSetCmd creates the 'config set' command.
func newConfigSetCmd() *cobra.Command {
	var (
		platformURL string
		setToken    bool
		providers   string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update and save the configuration",
		Long: `Update configuration values and save them to the config file.

The API token is read interactively without echo; pass --token to be
prompted for it.

Example:
  ils-importer config set --url https://catalogue.example.org --token`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if platformURL != "" {
				cfg.PlatformURL = platformURL
			}
			if providers != "" {
				opts, err := config.ParseOptions(providers)
				if err != nil {
					return fmt.Errorf("invalid --providers value: %w", err)
				}
				cfg.Providers = opts
			}
			if setToken {
				token, err := readTokenNoEcho()
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				cfg.APIToken = token
			}

			if err := config.Save(cfg, cfgFile); err != nil {
				return err
			}

			fmt.Println("Configuration saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&platformURL, "url", "", "Importer service base URL")
	cmd.Flags().BoolVar(&setToken, "token", false, "Prompt for the API token (input hidden)")
	cmd.Flags().StringVar(&providers, "providers", "", "Provider options as value:Label,value:Label")

	return cmd
}

// readTokenNoEcho prompts for the API token without echoing it.
func readTokenNoEcho() (string, error) {
	fmt.Print("API token: ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(token)), nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func maskToken(token string) string {
	if token == "" {
		return "(unset)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + strings.Repeat("*", len(token)-4) + token[len(token)-2:]
}
