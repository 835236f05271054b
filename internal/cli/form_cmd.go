package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/libsys/ils-importer/internal/tui"
)

// newFormCmd creates the 'form' command, which runs the interactive
// submission form.
func newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive submission form",
		Long: `Open a full-screen form for submitting a metadata file.

Pick a provider and a mode, select an .xml file, optionally toggle
leniency toward missing mapping rules, then preview or submit. Delete
submissions ask for confirmation. After a successful submission the
form navigates to the task detail view.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, cfg, err := getAPIClient()
			if err != nil {
				return err
			}

			model := tui.NewModel(tui.Deps{
				Tasks:     apiClient,
				Providers: cfg.Providers,
				Logger:    GetLogger(),
				Ctx:       GetContext(),
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(GetContext()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("form exited with error: %w", err)
			}
			return nil
		},
	}
}
