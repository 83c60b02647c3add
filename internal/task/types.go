// Package task implements the scheduling engine: the task entity, the
// ready queue, the persistence codec, and the manager that ties them
// together. The CLI layer only ever talks to the Manager.
package task

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the due date format accepted everywhere in the engine.
const DateLayout = "2006-01-02"

// DefaultDueDate is substituted when a persisted record carries no due
// date. It is far enough in the future that legacy tasks sort after any
// dated task of the same priority.
const DefaultDueDate = "2100-01-01"

// Task is a single unit of work. Name is its identity within one store;
// Priority orders scheduling (lower value = more urgent) with DueDate as
// the tie-break. Dependencies holds the names of tasks that must be
// completed before this one becomes eligible for scheduling. The set
// only ever shrinks: the Manager removes entries as prerequisites
// complete.
type Task struct {
	Name         string
	Priority     int
	DueDate      string
	Dependencies map[string]struct{}
}

// New constructs a Task. Duplicate and blank dependency names are
// dropped. Validation of the due date happens at the Manager boundary,
// not here.
func New(name string, priority int, dueDate string, deps []string) *Task {
	set := make(map[string]struct{}, len(deps))
	for _, d := range deps {
		if d == "" {
			continue
		}
		set[d] = struct{}{}
	}
	return &Task{
		Name:         name,
		Priority:     priority,
		DueDate:      dueDate,
		Dependencies: set,
	}
}

// Less reports whether t schedules before other: lower priority first,
// then earlier due date. ISO dates compare correctly as strings. Tasks
// with equal priority and due date are equivalent; their relative order
// is unspecified.
func (t *Task) Less(other *Task) bool {
	if t.Priority != other.Priority {
		return t.Priority < other.Priority
	}
	return t.DueDate < other.DueDate
}

// Ready reports whether the task has no unmet dependencies.
func (t *Task) Ready() bool {
	return len(t.Dependencies) == 0
}

// DependsOn reports whether name is an unmet dependency of t.
func (t *Task) DependsOn(name string) bool {
	_, ok := t.Dependencies[name]
	return ok
}

// DependencyNames returns the unmet dependency names in sorted order.
func (t *Task) DependencyNames() []string {
	names := make([]string, 0, len(t.Dependencies))
	for d := range t.Dependencies {
		names = append(names, d)
	}
	sort.Strings(names)
	return names
}

// ValidDate reports whether s is a syntactically valid DateLayout date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// record is the persisted form of a Task. Dependencies are stored as a
// list because JSON has no set type; they are sorted on the way out so
// saved files are deterministic.
type record struct {
	Name         string   `json:"name"`
	Priority     int      `json:"priority"`
	DueDate      string   `json:"due_date"`
	Dependencies []string `json:"dependencies"`
}

// MarshalJSON encodes the task as its persisted record.
func (t *Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		Name:         t.Name,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		Dependencies: t.DependencyNames(),
	})
}

// UnmarshalJSON decodes a persisted record, applying backward-compatible
// defaults at the boundary: records written before due dates existed get
// DefaultDueDate, and a missing dependency list means no dependencies.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	due := rec.DueDate
	if due == "" {
		due = DefaultDueDate
	}
	*t = *New(rec.Name, rec.Priority, due, rec.Dependencies)
	return nil
}

// String renders the task for interactive output.
// Example: "write report (priority 2, due 2026-09-01)"
func (t *Task) String() string {
	return fmt.Sprintf("%s (priority %d, due %s)", t.Name, t.Priority, t.DueDate)
}
