package cmdlog

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is a single recorded log line
type Entry struct {
	Level   string
	Msg     string
	Keyvals []interface{}
}

// Recorder is a Logger that keeps every entry in memory. Used in tests
// to tell advisory outcomes apart from hard failures.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) add(level string, msg interface{}, keyvals []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{level, fmt.Sprint(msg), keyvals})
}

func (r *Recorder) Debug(msg interface{}, keyvals ...interface{}) { r.add("debug", msg, keyvals) }
func (r *Recorder) Warn(msg interface{}, keyvals ...interface{})  { r.add("warn", msg, keyvals) }

// Entries returns a copy of all entries
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Warnings returns the messages of all warn entries
func (r *Recorder) Warnings() []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == "warn" {
			out = append(out, e.Msg)
		}
	}
	return out
}

// HasWarning reports whether a warning containing substr was logged
func (r *Recorder) HasWarning(substr string) bool {
	for _, w := range r.Warnings() {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
