package logger

import "fmt"

// Entry is a single formatted message captured by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder is a Logger which keeps every message in memory. It is meant for tests
// which need to assert on emitted diagnostics.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) record(level, msg string, args []any) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: fmt.Sprintf(msg, args...)})
}

func (r *Recorder) Debugf(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Infof(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warnf(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Errorf(msg string, args ...any) { r.record("error", msg, args) }
func (r *Recorder) Fatalf(msg string, args ...any) { r.record("fatal", msg, args) }

// Messages returns the messages logged at the given level, in order.
func (r *Recorder) Messages(level string) []string {
	var messages []string
	for _, entry := range r.Entries {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}
