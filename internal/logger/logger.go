package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// VerboseChecker reports whether debug and info output is wanted.
// Warnings and errors print regardless.
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes timestamped component-tagged lines to stderr
type Logger struct {
	component string
	verbose   VerboseChecker
	writer    io.Writer
}

// New creates a logger for the named component
func New(component string, verbose VerboseChecker) *Logger {
	return &Logger{
		component: component,
		verbose:   verbose,
		writer:    os.Stderr,
	}
}

// NewWithCallback creates a logger gated by a callback, typically a
// flag accessor
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// WithComponent returns a logger sharing the same gate and writer
// under a different component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		writer:    l.writer,
	}
}

type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	return c.callback != nil && c.callback()
}

// Debug logs only when verbose
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.write("DEBUG", msg, args...)
	}
}

// Info logs only when verbose
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.write("INFO", msg, args...)
	}
}

// Warn always logs
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write("WARN", msg, args...)
}

// Error always logs
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write("ERROR", msg, args...)
}

func (l *Logger) isVerbose() bool {
	return l.verbose != nil && l.verbose.IsVerbose()
}

func (l *Logger) write(level, msg string, args ...interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}

	line := fmt.Sprintf("[%s] %s [%s] %s\n",
		time.Now().Format("15:04:05.000"), level, component,
		fmt.Sprintf(msg, args...))

	// A failed stderr write leaves nowhere to report it
	_, _ = fmt.Fprint(l.writer, line)
}
