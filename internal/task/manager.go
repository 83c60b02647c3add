package task

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"
	"strings"

	"nextup/internal/logging"
)

// Manager owns the scheduler state for one store file: the active set
// (tasks created but not yet completed), the completed name set, and
// the ready queue. Every mutation ends with a full-state save; if the
// save fails the in-memory change is rolled back so memory and disk
// never diverge.
//
// A Manager is single-threaded. Construct one, drive it from one
// goroutine, and let it go out of scope; there is no teardown beyond
// the save performed by each mutation.
type Manager struct {
	store     *Store
	active    map[string]*Task
	completed map[string]bool
	queue     readyQueue
}

// NewManager loads the store and rebuilds the ready queue. A corrupt
// store is reported and discarded: the manager starts empty rather than
// failing, and the damaged file stays on disk until the next mutation
// overwrites it. Other I/O errors are returned.
func NewManager(store *Store) (*Manager, error) {
	// Created here rather than at package init so it picks up the
	// level and formatter configured by logging.Setup.
	logger := logging.New("task")

	active, completed, err := store.Load()
	if err != nil {
		if !errors.Is(err, ErrCorruptStore) {
			return nil, err
		}
		logger.Warn("discarding corrupt store, starting empty", "path", store.Path())
		active = map[string]*Task{}
		completed = map[string]bool{}
	}

	m := &Manager{store: store, active: active, completed: completed}
	m.rebuildQueue()
	return m, nil
}

// rebuildQueue re-derives the ready queue from the active set. Used
// after load and after a failed save, when the incremental pushes can
// no longer be trusted.
func (m *Manager) rebuildQueue() {
	q := make(readyQueue, 0, len(m.active))
	for _, t := range m.active {
		if t.Ready() {
			q = append(q, t)
		}
	}
	heap.Init(&q)
	m.queue = q
}

// Add creates a task and persists the new state. It fails with
// ErrEmptyName, ErrInvalidDate, or ErrDuplicate before touching
// anything.
//
// The duplicate check consults the active set only: a completed task's
// name may be reused for a fresh task. Dependency names are not
// required to exist; a dependency that is never added and never
// completed simply keeps its dependents off the queue forever.
func (m *Manager) Add(name string, priority int, dueDate string, deps []string) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if !ValidDate(dueDate) {
		return nil, fmt.Errorf("due date %q: %w", dueDate, ErrInvalidDate)
	}
	if _, exists := m.active[name]; exists {
		return nil, fmt.Errorf("task %q: %w", name, ErrDuplicate)
	}

	t := New(name, priority, dueDate, deps)
	m.active[name] = t
	if t.Ready() {
		heap.Push(&m.queue, t)
	}

	if err := m.store.Save(m.active, m.completed); err != nil {
		delete(m.active, name)
		m.rebuildQueue()
		return nil, fmt.Errorf("saving after add: %w", err)
	}

	logging.New("task").Debug("task added",
		"name", name, "priority", priority, "due", dueDate, "deps", len(t.Dependencies))
	return t, nil
}

// Complete moves name from the active set to the completed set,
// releases it from every dependent's dependency set, pushes dependents
// whose set just emptied onto the ready queue, and persists. The
// returned slice holds the names of newly ready tasks, sorted.
//
// Completing a name with no active task fails with ErrNotFound and
// changes nothing. Completion is one-way; there is no un-complete.
func (m *Manager) Complete(name string) ([]string, error) {
	t, ok := m.active[name]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", name, ErrNotFound)
	}

	wasCompleted := m.completed[name]
	delete(m.active, name)
	m.completed[name] = true

	var touched []*Task
	var released []string
	for _, dep := range m.active {
		if !dep.DependsOn(name) {
			continue
		}
		delete(dep.Dependencies, name)
		touched = append(touched, dep)
		if dep.Ready() {
			heap.Push(&m.queue, dep)
			released = append(released, dep.Name)
		}
	}
	sort.Strings(released)

	if err := m.store.Save(m.active, m.completed); err != nil {
		m.active[name] = t
		if !wasCompleted {
			delete(m.completed, name)
		}
		for _, dep := range touched {
			dep.Dependencies[name] = struct{}{}
		}
		m.rebuildQueue()
		return nil, fmt.Errorf("saving after complete: %w", err)
	}

	logging.New("task").Debug("task completed", "name", name, "released", len(released))
	return released, nil
}

// Next returns the most urgent ready task without claiming it, or nil
// when nothing is ready. Stale queue heads left behind by completions
// are purged on the way. Calling Next repeatedly without a mutation
// returns the same task.
func (m *Manager) Next() *Task {
	return m.queue.peek(m.active)
}

// Pending returns the ready tasks in scheduling order. It is a
// read-only snapshot for display; it never mutates the queue.
func (m *Manager) Pending() []*Task {
	return m.queue.live(m.active)
}

// Completed returns the completed task names, sorted.
func (m *Manager) Completed() []string {
	names := make([]string, 0, len(m.completed))
	for name := range m.completed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveCount returns the number of active tasks, ready or blocked.
func (m *Manager) ActiveCount() int {
	return len(m.active)
}

// Blocked returns the active tasks still waiting on dependencies,
// sorted by the scheduling order. Display-only, like Pending.
func (m *Manager) Blocked() []*Task {
	var out []*Task
	for _, t := range m.active {
		if !t.Ready() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
