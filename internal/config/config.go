// Package config provides configuration management for the importer CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/libsys/ils-importer/internal/models"
)

// Config is the client configuration.
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\ils-importer\config
//   - Unix: ~/.config/ils-importer/config
//
// INI format:
//
//	[importer]
//	platform_url = https://catalogue.example.org
//	api_token = <token>
//
//	[options]
//	providers = springer:Springer,ebl:EBL,safari:Safari
type Config struct {
	// Importer service connection settings
	PlatformURL string `ini:"platform_url"`
	APIToken    string `ini:"api_token"`

	// Providers the backend knows how to map. Label/value pairs; the
	// form treats the list as opaque configuration.
	Providers []models.Option
}

// Validation errors
var (
	ErrMissingPlatformURL = errors.New("platform_url is required")
	ErrMissingAPIToken    = errors.New("api_token is required")
	ErrNoProviders        = errors.New("at least one provider option is required")
)

// ModeOptions is the fixed option list for the mode selector.
func ModeOptions() []models.Option {
	return []models.Option{
		{Value: "IMPORT", Label: "Import"},
		{Value: "DELETE", Label: "Delete"},
	}
}

func defaultProviders() []models.Option {
	return []models.Option{
		{Value: "springer", Label: "Springer"},
		{Value: "ebl", Label: "EBL"},
		{Value: "safari", Label: "Safari"},
	}
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", "ils-importer")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "ils-importer")
	}

	return filepath.Join(configDir, "config"), nil
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Providers: defaultProviders(),
	}
}

// Load reads configuration from an INI file. A missing file yields the
// defaults with no error; a present but unreadable file is an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	importerSection := iniFile.Section("importer")
	cfg.PlatformURL = importerSection.Key("platform_url").String()
	cfg.APIToken = importerSection.Key("api_token").String()

	optionsSection := iniFile.Section("options")
	if raw := optionsSection.Key("providers").String(); raw != "" {
		providers, err := ParseOptions(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid providers option: %w", err)
		}
		cfg.Providers = providers
	}

	return cfg, nil
}

// Save writes configuration to an INI file, creating parent directories
// as needed. The token is sensitive: the file is written with 0600 and
// renamed into place atomically.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	importerSection, err := iniFile.NewSection("importer")
	if err != nil {
		return fmt.Errorf("failed to create importer section: %w", err)
	}
	importerSection.Key("platform_url").SetValue(cfg.PlatformURL)
	importerSection.Key("api_token").SetValue(cfg.APIToken)

	optionsSection, err := iniFile.NewSection("options")
	if err != nil {
		return fmt.Errorf("failed to create options section: %w", err)
	}
	optionsSection.Key("providers").SetValue(FormatOptions(cfg.Providers))

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set config permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive the client.
func (cfg *Config) Validate() error {
	if err := cfg.ValidateForConnection(); err != nil {
		return err
	}
	if len(cfg.Providers) == 0 {
		return ErrNoProviders
	}
	return nil
}

// ValidateForConnection checks only the connection settings.
func (cfg *Config) ValidateForConnection() error {
	if strings.TrimSpace(cfg.PlatformURL) == "" {
		return ErrMissingPlatformURL
	}
	if strings.TrimSpace(cfg.APIToken) == "" {
		return ErrMissingAPIToken
	}
	return nil
}

// ParseOptions parses a "value:Label,value:Label" list. A bare value
// with no label uses the value as its own label.
func ParseOptions(raw string) ([]models.Option, error) {
	var options []models.Option
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		value, label, found := strings.Cut(entry, ":")
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("option entry %q has an empty value", entry)
		}
		if !found || strings.TrimSpace(label) == "" {
			label = value
		}
		options = append(options, models.Option{Value: value, Label: strings.TrimSpace(label)})
	}
	if len(options) == 0 {
		return nil, errors.New("option list is empty")
	}
	return options, nil
}

// FormatOptions renders options back to the "value:Label" list form.
func FormatOptions(options []models.Option) string {
	entries := make([]string, 0, len(options))
	for _, opt := range options {
		entries = append(entries, opt.Value+":"+opt.Label)
	}
	return strings.Join(entries, ",")
}
