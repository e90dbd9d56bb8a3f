package interfaces

import (
	"fmt"
	"sync"
)

// TestLogger is a Logger implementation for tests. It records every entry so
// tests can assert on what was logged, and optionally echoes debug/info
// entries to stdout. Warnings and errors are always printed.
type TestLogger struct {
	mu      sync.Mutex
	verbose bool
	entries []TestEntry
}

// TestEntry is a single recorded log call.
type TestEntry struct {
	Level  string
	Msg    string
	Fields []Field
}

// NewTestLogger creates a new test logger.
func NewTestLogger(verbose bool) *TestLogger {
	return &TestLogger{verbose: verbose}
}

func (tl *TestLogger) record(level, msg string, echo bool, fields []Field) {
	tl.mu.Lock()
	tl.entries = append(tl.entries, TestEntry{Level: level, Msg: msg, Fields: fields})
	tl.mu.Unlock()
	if echo {
		fmt.Printf("[%s] %s %v\n", level, msg, fields)
	}
}

func (tl *TestLogger) Debug(msg string, fields ...Field) {
	tl.record("DEBUG", msg, tl.verbose, fields)
}

func (tl *TestLogger) Info(msg string, fields ...Field) {
	tl.record("INFO", msg, tl.verbose, fields)
}

func (tl *TestLogger) Warn(msg string, fields ...Field) {
	tl.record("WARN", msg, true, fields)
}

func (tl *TestLogger) Error(msg string, fields ...Field) {
	tl.record("ERROR", msg, true, fields)
}

// With returns the same logger so child loggers keep recording to the root.
func (tl *TestLogger) With(fields ...Field) Logger {
	return tl
}

// Entries returns a copy of the recorded entries at the given level.
// An empty level returns everything.
func (tl *TestLogger) Entries(level string) []TestEntry {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	out := make([]TestEntry, 0, len(tl.entries))
	for _, e := range tl.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Field returns the value of the named field on entry e, or nil.
func (e TestEntry) Field(key string) interface{} {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}
