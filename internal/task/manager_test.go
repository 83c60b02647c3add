package task

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextup/internal/logging"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(tempStore(t))
	require.NoError(t, err)
	return m
}

// ---- Add --------------------------------------------------------------------

func TestManager_Add_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		taskName string
		dueDate  string
		wantErr  error
	}{
		{name: "empty name", taskName: "", dueDate: "2026-09-01", wantErr: ErrEmptyName},
		{name: "whitespace-only name", taskName: "   ", dueDate: "2026-09-01", wantErr: ErrEmptyName},
		{name: "malformed date", taskName: "a", dueDate: "next tuesday", wantErr: ErrInvalidDate},
		{name: "impossible date", taskName: "a", dueDate: "2026-02-30", wantErr: ErrInvalidDate},
		{name: "empty date", taskName: "a", dueDate: "", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestManager(t)

			_, err := m.Add(tt.taskName, 1, tt.dueDate, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))

			// Failed adds leave no trace, in memory or on disk.
			assert.Equal(t, 0, m.ActiveCount())
			_, statErr := os.Stat(m.store.Path())
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestManager_Add_Duplicate(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("report", 1, "2026-09-01", nil)
	require.NoError(t, err)

	_, err = m.Add("report", 2, "2026-10-01", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, 1, m.ActiveCount())
}

func TestManager_Add_CompletedNameIsReusable(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("report", 1, "2026-09-01", nil)
	require.NoError(t, err)
	_, err = m.Complete("report")
	require.NoError(t, err)

	// The duplicate check only consults the active set.
	_, err = m.Add("report", 2, "2026-10-01", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ActiveCount())
	assert.Equal(t, []string{"report"}, m.Completed())
}

func TestManager_Add_BlockedTaskStaysOffQueue(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("publish", 1, "2026-09-01", []string{"write"})
	require.NoError(t, err)

	assert.Nil(t, m.Next())
	assert.Empty(t, m.Pending())
	require.Len(t, m.Blocked(), 1)
	assert.Equal(t, "publish", m.Blocked()[0].Name)
}

func TestManager_Add_PersistsImmediately(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("report", 1, "2026-09-01", nil)
	require.NoError(t, err)

	// A second manager over the same file sees the task.
	reloaded, err := NewManager(m.store)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Next())
	assert.Equal(t, "report", reloaded.Next().Name)
}

// ---- Next / Pending ---------------------------------------------------------

func TestManager_Next_PriorityWins(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("A", 2, "2025-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("B", 1, "2025-06-01", nil)
	require.NoError(t, err)

	next := m.Next()
	require.NotNil(t, next)
	assert.Equal(t, "B", next.Name)
}

func TestManager_Next_DueDateBreaksTies(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("late", 1, "2026-12-01", nil)
	require.NoError(t, err)
	_, err = m.Add("soon", 1, "2026-01-15", nil)
	require.NoError(t, err)

	next := m.Next()
	require.NotNil(t, next)
	assert.Equal(t, "soon", next.Name)
}

func TestManager_Next_EmptyState(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	assert.Nil(t, m.Next())
}

func TestManager_Next_IdempotentBetweenMutations(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("a", 1, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("b", 2, "2026-01-01", nil)
	require.NoError(t, err)

	assert.Same(t, m.Next(), m.Next())
}

func TestManager_Pending_SchedulingOrder(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("third", 3, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("first", 1, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("second", 2, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("blocked", 0, "2026-01-01", []string{"first"})
	require.NoError(t, err)

	pending := m.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, "first", pending[0].Name)
	assert.Equal(t, "second", pending[1].Name)
	assert.Equal(t, "third", pending[2].Name)
}

// ---- Complete ---------------------------------------------------------------

func TestManager_Complete_NotFound(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Complete("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	// No-op: nothing was persisted either.
	_, statErr := os.Stat(m.store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestManager_Complete_ReleasesDependents(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("A", 1, "2025-01-01", []string{"B"})
	require.NoError(t, err)
	_, err = m.Add("B", 1, "2025-01-01", nil)
	require.NoError(t, err)

	next := m.Next()
	require.NotNil(t, next)
	assert.Equal(t, "B", next.Name)

	released, err := m.Complete("B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, released)

	// Visible immediately, with no further operation in between.
	next = m.Next()
	require.NotNil(t, next)
	assert.Equal(t, "A", next.Name)
}

func TestManager_Complete_PartialReleaseKeepsBlocking(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("ship", 1, "2026-01-01", []string{"build", "test"})
	require.NoError(t, err)
	_, err = m.Add("build", 2, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("test", 3, "2026-01-01", nil)
	require.NoError(t, err)

	released, err := m.Complete("build")
	require.NoError(t, err)
	assert.Empty(t, released)

	// ship still waits on test.
	for _, p := range m.Pending() {
		assert.NotEqual(t, "ship", p.Name)
	}

	released, err = m.Complete("test")
	require.NoError(t, err)
	assert.Equal(t, []string{"ship"}, released)

	next := m.Next()
	require.NotNil(t, next)
	assert.Equal(t, "ship", next.Name)
}

func TestManager_Complete_ReleasesMultipleDependents(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("base", 1, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("left", 2, "2026-01-01", []string{"base"})
	require.NoError(t, err)
	_, err = m.Add("right", 3, "2026-01-01", []string{"base"})
	require.NoError(t, err)

	released, err := m.Complete("base")
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right"}, released)
	assert.Len(t, m.Pending(), 2)
}

func TestManager_Complete_IsOneWay(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.Add("a", 1, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Complete("a")
	require.NoError(t, err)

	// Completing again reports not found; the task left the active set.
	_, err = m.Complete("a")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, []string{"a"}, m.Completed())
}

// ---- Persistence round-trips ------------------------------------------------

func TestManager_StateSurvivesReload(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	m, err := NewManager(store)
	require.NoError(t, err)

	_, err = m.Add("deploy", 1, "2026-09-15", []string{"build"})
	require.NoError(t, err)
	_, err = m.Add("build", 2, "2026-09-01", nil)
	require.NoError(t, err)
	_, err = m.Add("docs", 3, "2026-10-01", nil)
	require.NoError(t, err)
	_, err = m.Complete("docs")
	require.NoError(t, err)

	reloaded, err := NewManager(store)
	require.NoError(t, err)

	assert.Equal(t, 2, reloaded.ActiveCount())
	assert.Equal(t, []string{"docs"}, reloaded.Completed())

	// The queue was rebuilt from dependency sets: only build is ready.
	pending := reloaded.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "build", pending[0].Name)

	// Releasing still works after the round-trip.
	released, err := reloaded.Complete("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy"}, released)
}

func TestNewManager_CorruptStoreStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("][ definitely not json"), 0644))

	m, err := NewManager(NewStore(path))
	require.NoError(t, err)
	assert.Equal(t, 0, m.ActiveCount())
	assert.Empty(t, m.Completed())
	assert.Nil(t, m.Next())

	// The manager is fully usable after discarding the corrupt file.
	_, err = m.Add("fresh", 1, "2026-09-01", nil)
	require.NoError(t, err)
}

func TestManager_DebugLoggingFollowsSetup(t *testing.T) {
	// Mutates global logger state; deliberately not parallel.
	var buf bytes.Buffer
	logging.Setup(true, false, false)
	logging.SetOutput(&buf)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.Setup(false, false, false)
	})

	m := newTestManager(t)
	_, err := m.Add("a", 1, "2026-01-01", nil)
	require.NoError(t, err)

	// --verbose configured before the manager ran, so its debug
	// logging must be visible.
	assert.Contains(t, buf.String(), "task added")
}

func TestManager_SaveFailureRollsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "tasks.json"))
	m, err := NewManager(store)
	require.NoError(t, err)

	_, err = m.Add("a", 1, "2026-01-01", nil)
	require.NoError(t, err)
	_, err = m.Add("b", 2, "2026-01-01", []string{"a"})
	require.NoError(t, err)

	// Make the save fail: the store path becomes a directory.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0755))

	_, err = m.Complete("a")
	require.Error(t, err)

	// In-memory state rolled back: a is still active and next.
	assert.Equal(t, 2, m.ActiveCount())
	assert.Empty(t, m.Completed())
	next := m.Next()
	require.NotNil(t, next)
	assert.Equal(t, "a", next.Name)
	assert.True(t, m.Blocked()[0].DependsOn("a"))

	_, err = m.Add("c", 3, "2026-01-01", nil)
	require.Error(t, err)
	assert.Equal(t, 2, m.ActiveCount())
}
