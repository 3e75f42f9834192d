// Package logger provides verbose logging for lookup.
// When verbose mode is enabled via the --verbose flag, debug messages
// trace the search pipeline: debounced queries, cache hits, fetches and
// their supersession. While the terminal picker owns the screen the log
// is redirected to a rotating file with ToFile.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for file logs.
const (
	fileMaxSizeMB  = 5
	fileMaxBackups = 3
	fileMaxAgeDays = 14
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// ToFile redirects verbose logs to a size-rotated file at path.
// The returned function closes the file and restores the previous writer.
func ToFile(path string) (restore func() error) {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
	}

	mu.Lock()
	previous := output
	output = sink
	mu.Unlock()

	return func() error {
		mu.Lock()
		if output == sink {
			output = previous
		}
		mu.Unlock()
		return sink.Close()
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// logf serialises writes so concurrent fetches never interleave lines.
func logf(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}
