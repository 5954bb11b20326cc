package services

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
	"github.com/ochairo/regguard/internal/domain/validation"
)

// fixed returns a loader serving objects from a map
func fixed[T any](objects map[string]T) validation.Loader[T] {
	return func(path string) (T, error) {
		obj, ok := objects[path]
		if !ok {
			var zero T
			return zero, errors.New("not found: " + path)
		}
		return obj, nil
	}
}

// writeFile creates a file with content under dir and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type logEntry struct {
	level string
	msg   string
}

// recordingLogger captures log calls
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg})
}

func (r *recordingLogger) Debug(msg string, _ ...interfaces.Field) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...interfaces.Field)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...interfaces.Field)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...interfaces.Field) { r.record("error", msg) }
func (r *recordingLogger) Named(_ string) interfaces.Logger        { return r }

func (r *recordingLogger) messages(level string) []string {
	var out []string
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func messages(errs entities.ErrorSet) []string {
	out := make([]string, 0, errs.Len())
	for _, e := range errs.Sorted() {
		out = append(out, e.Message)
	}
	return out
}
