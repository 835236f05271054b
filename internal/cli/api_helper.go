// Package cli provides API client helper functions.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/libsys/ils-importer/internal/api"
	"github.com/libsys/ils-importer/internal/config"
)

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if apiBaseURL != "" {
		cfg.PlatformURL = apiBaseURL
	}
	if apiToken != "" {
		cfg.APIToken = apiToken
	} else if tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file: %w", err)
		}
		cfg.APIToken = strings.TrimSpace(string(data))
	}

	return cfg, nil
}

// getAPIClient loads configuration and creates an API client.
// This is the standard way to get an API client in CLI commands.
func getAPIClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := api.NewClient(cfg, GetLogger())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, cfg, nil
}
