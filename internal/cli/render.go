package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nextup/internal/task"
)

// Shared styles for command output. Colors degrade to plain text under
// --no-color (the profile is forced to Ascii in PersistentPreRunE).
var (
	styleTaskName = lipgloss.NewStyle().Bold(true)
	styleMeta     = lipgloss.NewStyle().Faint(true)
	styleReady    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderTaskLine formats one pending task as an indented list row.
func renderTaskLine(t *task.Task) string {
	return fmt.Sprintf("  %s  %s",
		styleTaskName.Render(t.Name),
		styleMeta.Render(fmt.Sprintf("priority %d, due %s", t.Priority, t.DueDate)))
}

// renderNext formats the result of Manager.Next. A nil task means
// nothing is ready right now.
func renderNext(t *task.Task) string {
	if t == nil {
		return styleMeta.Render("No tasks are ready. Add a task or complete a prerequisite.")
	}
	return fmt.Sprintf("Next up: %s", styleReady.Render(t.String()))
}

// renderPending formats the full pending listing: ready tasks in
// scheduling order, blocked tasks with what they wait on, and a
// completed-count footer.
func renderPending(pending, blocked []*task.Task, completedCount int) string {
	var b strings.Builder

	if len(pending) == 0 {
		b.WriteString(styleMeta.Render("No tasks are ready."))
		b.WriteString("\n")
	} else {
		b.WriteString("Pending tasks:\n")
		for _, t := range pending {
			b.WriteString(renderTaskLine(t))
			b.WriteString("\n")
		}
	}

	if len(blocked) > 0 {
		b.WriteString("Blocked:\n")
		for _, t := range blocked {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				styleTaskName.Render(t.Name),
				styleMeta.Render(fmt.Sprintf("waiting on %s", strings.Join(t.DependencyNames(), ", ")))))
		}
	}

	if completedCount > 0 {
		b.WriteString(styleMeta.Render(fmt.Sprintf("%d completed", completedCount)))
		b.WriteString("\n")
	}

	return b.String()
}
