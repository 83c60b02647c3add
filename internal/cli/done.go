package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newDoneCmd creates the "nextup done" command.
func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "done <name>",
		Aliases: []string{"complete"},
		Short:   "Mark a task as completed",
		Long: `Complete a task. Tasks that were waiting on it as a prerequisite are
released; any of them whose last prerequisite this was become ready and
join the schedule immediately. Completion cannot be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDone(cmd, args[0])
		},
	}
	return cmd
}

func runDone(cmd *cobra.Command, name string) error {
	_, mgr, err := loadContext()
	if err != nil {
		return err
	}

	released, err := mgr.Complete(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completed %s\n", styleTaskName.Render(name))
	if len(released) > 0 {
		fmt.Fprintln(out, styleReady.Render(
			fmt.Sprintf("now ready: %s", strings.Join(released, ", "))))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newDoneCmd())
}
