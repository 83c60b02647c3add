package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nextup/internal/task"
)

// listOutput is the JSON output type for the list command.
type listOutput struct {
	Pending   []*task.Task `json:"pending"`
	Blocked   []*task.Task `json:"blocked"`
	Completed []string     `json:"completed"`
}

// newListCmd creates the "nextup list" command.
func newListCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"pending"},
		Short:   "Show pending tasks in scheduling order",
		Long: `List the tasks that are ready to work on, most urgent first, plus
the tasks still blocked on prerequisites. Use --json for structured
output suitable for scripting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output structured JSON to stdout")
	return cmd
}

func runList(cmd *cobra.Command, jsonOut bool) error {
	_, mgr, err := loadContext()
	if err != nil {
		return err
	}

	pending := mgr.Pending()
	blocked := mgr.Blocked()
	completed := mgr.Completed()

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(listOutput{
			Pending:   pending,
			Blocked:   blocked,
			Completed: completed,
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), renderPending(pending, blocked, len(completed)))
	return nil
}

func init() {
	rootCmd.AddCommand(newListCmd())
}
