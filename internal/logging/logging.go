// Package logging wraps charmbracelet/log with the conventions used
// across nextup: component-prefixed loggers, level configuration from
// the CLI flags, and stderr-only output so stdout stays clean for task
// listings and JSON.
//
// Setup must run before New: charmbracelet/log child loggers copy the
// default logger's settings at creation time, so loggers created first
// would keep the old level and formatter.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup configures the global logging defaults. Call once during CLI
// initialization.
//
// verbose lowers the level to Debug; quiet raises it to Error and wins
// over verbose, so --quiet always silences a noisy invocation.
// jsonFormat switches to NDJSON output for log aggregation.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New returns a logger prefixed with the given component name, e.g.
//
//	logger := logging.New("task")
//	logger.Info("store loaded", "path", path)
//
// Call it where the logging happens, not at package init: the child
// copies the default logger's settings at creation time, so a
// package-level logger would never see what Setup configured.
// An empty component produces an unprefixed logger.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput redirects the default logger, primarily so tests can
// capture output in a bytes.Buffer. Restore the original writer with
// t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
