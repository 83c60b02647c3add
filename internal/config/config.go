// Package config loads nextup.toml: where the task store lives and
// what defaults apply when adding tasks. The file is optional; every
// key has a default and flags override everything.
package config

// Config is the top-level structure mapping to nextup.toml.
type Config struct {
	Store StoreConfig `toml:"store"`
	Tasks TasksConfig `toml:"tasks"`
}

// StoreConfig maps to the [store] section.
type StoreConfig struct {
	// Path is the task store file. Relative paths resolve against the
	// working directory.
	Path string `toml:"path"`
}

// TasksConfig maps to the [tasks] section.
type TasksConfig struct {
	// DefaultDueDate is used by `nextup add` when --due is omitted.
	// Must be a YYYY-MM-DD date.
	DefaultDueDate string `toml:"default_due_date"`
}
