package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"nextup/internal/jsonutil"
	"nextup/internal/logging"
)

// DefaultStoreName is the store filename used when neither the --file
// flag nor the config file names one.
const DefaultStoreName = "tasks.json"

// document is the on-disk shape of the store: every active task keyed
// by name, plus the names of completed tasks. The ready queue is never
// persisted; it is rebuilt from the active set after every load.
type document struct {
	Tasks     map[string]*Task `json:"tasks"`
	Completed []string         `json:"completed"`
}

// Store reads and writes the full scheduler state as one pretty-printed
// JSON file. The file is treated as exclusively owned by one running
// process; there is no cross-process locking.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the full state. The write is atomic: the document goes to
// a temporary file in the same directory which is then renamed into
// place, so a crash mid-write never leaves a truncated store behind.
func (s *Store) Save(active map[string]*Task, completed map[string]bool) error {
	doc := document{
		Tasks:     active,
		Completed: make([]string, 0, len(completed)),
	}
	if doc.Tasks == nil {
		doc.Tasks = map[string]*Task{}
	}
	for name := range completed {
		doc.Completed = append(doc.Completed, name)
	}
	sort.Strings(doc.Completed)

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating store directory %q: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp store file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("renaming temp store file to %q: %w", s.path, err)
	}
	return nil
}

// Load reads the full state. A missing file is an empty store, not an
// error. An unparsable file gets one salvage attempt (extracting the
// first intact JSON object, which recovers files damaged by trailing
// garbage); if that also fails, the returned error wraps
// ErrCorruptStore and callers decide whether to start empty.
func (s *Store) Load() (map[string]*Task, map[string]bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Task{}, map[string]bool{}, nil
		}
		return nil, nil, fmt.Errorf("reading store %q: %w", s.path, err)
	}

	logger := logging.New("task")

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		salvaged, ok := jsonutil.ExtractFirst(string(data))
		if !ok || !looksLikeDocument(salvaged) || json.Unmarshal([]byte(salvaged), &doc) != nil {
			return nil, nil, fmt.Errorf("parsing store %q: %w", s.path, ErrCorruptStore)
		}
		logger.Warn("store file was damaged, recovered embedded document", "path", s.path)
	}

	active := doc.Tasks
	if active == nil {
		active = map[string]*Task{}
	}
	for name, t := range active {
		// A null record is valid JSON but not a task; keep the rest
		// of the file usable instead of failing every command.
		if t == nil {
			logger.Warn("dropping null task record", "name", name, "path", s.path)
			delete(active, name)
			continue
		}
		// The map key is authoritative for identity; old files may
		// have records without a name field.
		if t.Name == "" {
			t.Name = name
		}
	}

	completed := make(map[string]bool, len(doc.Completed))
	for _, name := range doc.Completed {
		completed[name] = true
	}
	return active, completed, nil
}

// looksLikeDocument reports whether a salvaged JSON object carries at
// least one of the store's top-level keys. A truncated file can yield
// a perfectly valid embedded object that is just one task record;
// treating that as the document would silently load empty state.
func looksLikeDocument(s string) bool {
	var keys map[string]json.RawMessage
	if json.Unmarshal([]byte(s), &keys) != nil {
		return false
	}
	_, hasTasks := keys["tasks"]
	_, hasCompleted := keys["completed"]
	return hasTasks || hasCompleted
}
