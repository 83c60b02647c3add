package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// addFlags holds the flag values for the add command.
type addFlags struct {
	Priority int      // --priority, lower = more urgent
	Due      string   // --due, YYYY-MM-DD; empty means the config default
	Deps     []string // --deps, prerequisite task names
}

// newAddCmd creates the "nextup add" command.
func newAddCmd() *cobra.Command {
	var flags addFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task to the schedule",
		Long: `Add a task. The task becomes eligible for scheduling immediately
unless it names prerequisite tasks, in which case it stays blocked until
every prerequisite is completed.

Task names are unique among active tasks. A completed task's name may be
reused for a new task.`,
		Example: `  # A task with no prerequisites
  nextup add "write report" -p 2 --due 2026-09-15

  # Blocked until both prerequisites are done
  nextup add "publish report" -p 1 --due 2026-09-20 --deps "write report,review report"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.Priority, "priority", "p", 0, "Priority (integer, lower = more urgent)")
	cmd.Flags().StringVarP(&flags.Due, "due", "d", "", "Due date in YYYY-MM-DD format (default from config)")
	cmd.Flags().StringSliceVar(&flags.Deps, "deps", nil, "Comma-separated prerequisite task names")
	return cmd
}

func runAdd(cmd *cobra.Command, name string, flags addFlags) error {
	cfg, mgr, err := loadContext()
	if err != nil {
		return err
	}

	due := flags.Due
	if due == "" {
		due = cfg.Tasks.DefaultDueDate
	}

	t, err := mgr.Add(name, flags.Priority, due, flags.Deps)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %s\n", styleTaskName.Render(t.String()))
	if !t.Ready() {
		fmt.Fprintln(out, styleMeta.Render(
			fmt.Sprintf("blocked, waiting on %s", strings.Join(t.DependencyNames(), ", "))))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newAddCmd())
}
