// Package cli provides the command-line interface for ils-importer.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/libsys/ils-importer/internal/logging"
	"github.com/libsys/ils-importer/internal/version"
)

var (
	// Global flags
	cfgFile    string
	apiToken   string
	tokenFile  string // Path to file containing API token
	apiBaseURL string
	verbose    bool

	// Global logger
	logger zerolog.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ils-importer",
		Short: "Submit bibliographic-metadata files to the importer service",
		Long: `ils-importer ` + version.Version + ` - Built: ` + version.BuildTime + `
Client for the catalogue importer service.

Submit an XML metadata file for a provider in import or delete mode,
preview the effect of either, and track the resulting tasks.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewCLILogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiToken, "api-token", "", "Importer API token (overrides config)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Path to file containing the API token")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "Importer service base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newFormCmd())
	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newProvidersCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() zerolog.Logger {
	return logger
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}
