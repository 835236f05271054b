// Package cli provides task operation commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/libsys/ils-importer/internal/models"
)

// newTasksCmd creates the 'tasks' command group.
func newTasksCmd() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Importer task operations (list, get)",
		Long:  `Commands for inspecting tasks on the importer service.`,
	}

	tasksCmd.AddCommand(newTasksListCmd())
	tasksCmd.AddCommand(newTasksGetCmd())

	return tasksCmd
}

// newTasksListCmd creates the 'tasks list' command.
func newTasksListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List importer tasks",
		Long: `List importer tasks, newest first.

Example:
  # List all tasks
  ils-importer tasks list

  # List first 10 tasks
  ils-importer tasks list --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, _, err := getAPIClient()
			if err != nil {
				return err
			}

			logger := GetLogger()
			logger.Info().Msg("Fetching tasks")
			tasks, err := apiClient.ListTasks(GetContext())
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found")
				return nil
			}

			fmt.Printf("Found %d task(s):\n\n", len(tasks))

			displayCount := len(tasks)
			if limit > 0 && limit < len(tasks) {
				displayCount = limit
			}

			for i := 0; i < displayCount; i++ {
				task := tasks[i]
				fmt.Printf("Task #%d:\n", i+1)
				printTask(&task)
				fmt.Println()
			}

			if limit > 0 && limit < len(tasks) {
				fmt.Printf("(Showing %d of %d tasks. Use --limit to change)\n", displayCount, len(tasks))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of tasks displayed (0 = all)")

	return cmd
}

// newTasksGetCmd creates the 'tasks get' command.
func newTasksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show details for one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, _, err := getAPIClient()
			if err != nil {
				return err
			}

			task, err := apiClient.GetTask(GetContext(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			printTask(task)
			return nil
		},
	}
}

// printTask prints one task in the detail layout.
func printTask(task *models.ImportTask) {
	fmt.Printf("  ID: %s\n", task.ID)
	fmt.Printf("  Provider: %s\n", task.Provider)
	fmt.Printf("  Mode: %s\n", task.Mode)
	fmt.Printf("  Status: %s\n", task.Status)
	if task.OriginalFilename != "" {
		fmt.Printf("  File: %s\n", task.OriginalFilename)
	}
	if task.EntriesCount > 0 {
		fmt.Printf("  Entries: %d (created %d, updated %d, deleted %d, errors %d)\n",
			task.EntriesCount, task.CreatedCount, task.UpdatedCount, task.DeletedCount, task.ErrorCount)
	}
	if task.StartDate != "" {
		fmt.Printf("  Started: %s\n", task.StartDate)
	}
	if task.EndDate != "" {
		fmt.Printf("  Finished: %s\n", task.EndDate)
	}
	if task.ErrorMessage != "" {
		fmt.Printf("  Error: %s\n", task.ErrorMessage)
	}
}
