package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"nextup/internal/config"
	"nextup/internal/task"
)

// menuWidth is the fixed form width for the interactive menu. 60
// columns fits comfortably in any usable terminal.
const menuWidth = 60

// Menu actions.
const (
	actionNext     = "next"
	actionPending  = "pending"
	actionAdd      = "add"
	actionComplete = "complete"
	actionQuit     = "quit"
)

// runMenu drives the interactive loop shown when nextup is started
// without a subcommand. Every engine error is printed and the loop
// continues; only I/O failures and quitting end it. Ctrl+C exits
// cleanly from any prompt.
func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, mgr, err := loadContext()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	for {
		action := actionNext
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("nextup").
					Description(menuSummary(mgr)).
					Options(
						huh.NewOption("Next task", actionNext),
						huh.NewOption("Show pending tasks", actionPending),
						huh.NewOption("Add a task", actionAdd),
						huh.NewOption("Complete a task", actionComplete),
						huh.NewOption("Quit", actionQuit),
					).
					Value(&action),
			),
		).
			WithTheme(huh.ThemeCharm()).
			WithWidth(menuWidth).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case actionNext:
			fmt.Fprintln(out, renderNext(mgr.Next()))
		case actionPending:
			fmt.Fprint(out, renderPending(mgr.Pending(), mgr.Blocked(), len(mgr.Completed())))
		case actionAdd:
			if err := menuAdd(out, cfg, mgr); err != nil {
				return err
			}
		case actionComplete:
			if err := menuComplete(out, mgr); err != nil {
				return err
			}
		case actionQuit:
			return nil
		}
	}
}

// menuSummary is the one-line state overview under the menu title.
func menuSummary(mgr *task.Manager) string {
	return fmt.Sprintf("%d ready, %d active, %d completed",
		len(mgr.Pending()), mgr.ActiveCount(), len(mgr.Completed()))
}

// menuAdd prompts for the four task fields and adds the task. Aborting
// the form returns to the menu; engine errors (duplicate name, for
// instance) are printed and the menu continues.
func menuAdd(out io.Writer, cfg *config.Config, mgr *task.Manager) error {
	var (
		name        string
		priorityStr = "0"
		due         = cfg.Tasks.DefaultDueDate
		depsStr     string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task name:").
				Value(&name).
				Validate(validateName),
			huh.NewInput().
				Title("Priority (integer, lower = more urgent):").
				Value(&priorityStr).
				Validate(validatePriority),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD):").
				Value(&due).
				Validate(validateDueDate),
			huh.NewInput().
				Title("Prerequisites (comma-separated, empty for none):").
				Value(&depsStr),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(menuWidth).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	// Validators already guaranteed these parse.
	priority, _ := strconv.Atoi(strings.TrimSpace(priorityStr))

	t, err := mgr.Add(strings.TrimSpace(name), priority, strings.TrimSpace(due), splitDeps(depsStr))
	if err != nil {
		fmt.Fprintln(out, styleError.Render(err.Error()))
		return nil
	}

	fmt.Fprintf(out, "Added %s\n", styleTaskName.Render(t.String()))
	if !t.Ready() {
		fmt.Fprintln(out, styleMeta.Render(
			fmt.Sprintf("blocked, waiting on %s", strings.Join(t.DependencyNames(), ", "))))
	}
	return nil
}

// menuComplete prompts for a task name and completes it.
func menuComplete(out io.Writer, mgr *task.Manager) error {
	var name string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name of the task to complete:").
				Value(&name).
				Validate(validateName),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(menuWidth).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	name = strings.TrimSpace(name)
	released, err := mgr.Complete(name)
	if err != nil {
		fmt.Fprintln(out, styleError.Render(err.Error()))
		return nil
	}

	fmt.Fprintf(out, "Completed %s\n", styleTaskName.Render(name))
	if len(released) > 0 {
		fmt.Fprintln(out, styleReady.Render(
			fmt.Sprintf("now ready: %s", strings.Join(released, ", "))))
	}
	return nil
}

// validateName rejects blank or whitespace-only names.
func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return task.ErrEmptyName
	}
	return nil
}

// validatePriority rejects anything strconv.Atoi will not take.
func validatePriority(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errors.New("priority must be an integer")
	}
	return nil
}

// validateDueDate rejects dates that do not parse as YYYY-MM-DD.
func validateDueDate(s string) error {
	if !task.ValidDate(strings.TrimSpace(s)) {
		return task.ErrInvalidDate
	}
	return nil
}

// splitDeps turns the comma-separated prerequisites field into a name
// list, trimming whitespace and dropping empties.
func splitDeps(s string) []string {
	var deps []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			deps = append(deps, trimmed)
		}
	}
	return deps
}
