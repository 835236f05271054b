package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/libsys/ils-importer/internal/api"
	"github.com/libsys/ils-importer/internal/config"
	"github.com/libsys/ils-importer/internal/form"
	"github.com/libsys/ils-importer/internal/models"
	"github.com/libsys/ils-importer/internal/nav"
)

// newSubmitCmd creates the 'submit' command.
func newSubmitCmd() *cobra.Command {
	var (
		provider           string
		modeName           string
		preview            bool
		ignoreMissingRules bool
		assumeYes          bool
	)

	cmd := &cobra.Command{
		Use:   "submit <file.xml>",
		Short: "Submit a metadata file to the importer",
		Long: `Submit a bibliographic-metadata XML file to the importer service.

The provider names the data source whose format the backend can map.
Mode "import" imports the parsed records, mode "delete" deletes them;
--preview reports the intended effect of either without committing.

Examples:
  # Import Springer records
  ils-importer submit records.xml --provider springer --mode import

  # Preview a delete without committing it
  ils-importer submit records.xml --provider ebl --mode delete --preview

  # Delete without the interactive confirmation
  ils-importer submit records.xml --provider ebl --mode delete --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, cfg, err := getAPIClient()
			if err != nil {
				return err
			}

			draft := form.Draft{
				Provider:           provider,
				IgnoreMissingRules: ignoreMissingRules,
			}
			if len(args) == 1 {
				draft.FilePath = args[0]
			}

			switch strings.ToLower(modeName) {
			case "import":
				draft.Mode = form.ModeImport
			case "delete":
				draft.Mode = form.ModeDelete
			case "":
				// Left empty so validation flags it below.
			default:
				return fmt.Errorf("invalid mode %q: must be import or delete", modeName)
			}

			if flags, ok := form.Validate(draft); !ok {
				reportMissing(cmd, flags)
				return fmt.Errorf("missing required fields")
			}

			if !strings.EqualFold(filepath.Ext(draft.FilePath), ".xml") {
				return fmt.Errorf("file %q is not an XML file: the importer accepts .xml only", draft.FilePath)
			}
			if err := validateProvider(cfg, draft.Provider); err != nil {
				return err
			}

			intent := form.IntentCommit
			if preview {
				intent = form.IntentPreview
			}
			effectiveMode := form.EffectiveMode(draft.Mode, intent)

			// Destructive commits pass through the confirmation gate.
			if effectiveMode == form.ModeDelete && !assumeYes {
				confirmed, err := confirmDelete(draft.Provider, filepath.Base(draft.FilePath))
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				if !confirmed {
					fmt.Println("Submission cancelled")
					return nil
				}
			}

			logger := GetLogger()
			logger.Info().
				Str("provider", draft.Provider).
				Str("mode", string(effectiveMode)).
				Msg("Submitting metadata file")

			task, err := apiClient.CreateTask(GetContext(), models.TaskRequest{
				Provider:           draft.Provider,
				Mode:               string(effectiveMode),
				FilePath:           draft.FilePath,
				IgnoreMissingRules: draft.IgnoreMissingRules,
			})
			if err != nil {
				logger.Error().Err(err).Msg("create task failed")
				fmt.Fprintln(cmd.ErrOrStderr(), api.ErrorMessage(err))
				return fmt.Errorf("failed to submit: %w", err)
			}

			fmt.Printf("Task created: %s\n", task.ID)
			fmt.Printf("  Mode: %s\n", task.Mode)
			fmt.Printf("  Status: %s\n", task.Status)
			fmt.Printf("  Detail: %s\n", nav.TaskDetail(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Data provider (see 'ils-importer providers')")
	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "Mode: import or delete")
	cmd.Flags().BoolVar(&preview, "preview", false, "Dry run: report intended effects without committing")
	cmd.Flags().BoolVar(&ignoreMissingRules, "ignore-missing-rules", false, "Tolerate records without mapping rules")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the delete confirmation prompt")

	return cmd
}

// reportMissing prints one line per missing required field.
func reportMissing(cmd *cobra.Command, flags form.Flags) {
	if flags.ProviderMissing {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: provider is required (--provider)")
	}
	if flags.ModeMissing {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: mode is required (--mode import|delete)")
	}
	if flags.FileMissing {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: metadata file is required (positional argument)")
	}
}

// validateProvider checks the provider against the configured options.
func validateProvider(cfg *config.Config, provider string) error {
	values := make([]string, 0, len(cfg.Providers))
	for _, opt := range cfg.Providers {
		if opt.Value == provider {
			return nil
		}
		values = append(values, opt.Value)
	}
	return fmt.Errorf("unknown provider %q: configured providers are %s", provider, strings.Join(values, ", "))
}
