package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nextup/internal/task"
)

// nextOutput is the JSON output type for the next command. Task is null
// when nothing is ready.
type nextOutput struct {
	Task *task.Task `json:"task"`
}

// newNextCmd creates the "nextup next" command.
func newNextCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next task to work on",
		Long: `Show the most urgent task whose prerequisites are all completed.
The task stays pending; mark it done with "nextup done" when finished.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output structured JSON to stdout")
	return cmd
}

func runNext(cmd *cobra.Command, jsonOut bool) error {
	_, mgr, err := loadContext()
	if err != nil {
		return err
	}

	t := mgr.Next()

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(nextOutput{Task: t})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderNext(t))
	return nil
}

func init() {
	rootCmd.AddCommand(newNextCmd())
}
