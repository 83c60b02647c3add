package config

import "nextup/internal/task"

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Store: StoreConfig{
			Path: task.DefaultStoreName,
		},
		Tasks: TasksConfig{
			DefaultDueDate: task.DefaultDueDate,
		},
	}
}
