// Package charmlog provides an implementation of todogo.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/benjamonnguyen/todogo"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
}

func NewLogger(opts Options) todogo.Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.WarnLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level: lvl,
	})
}

// NewFileLogger logs to the given path, appending. Falls back to a
// discard logger if the file cannot be opened so the CLI never dies on
// logging.
func NewFileLogger(path, level string) (todogo.Logger, func() error) {
	_ = os.MkdirAll(filepath.Dir(path), 0o744)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		return NewLogger(Options{Writer: io.Discard, Level: level}), func() error { return nil }
	}
	return NewLogger(Options{Writer: f, Level: level}), f.Close
}
