package ux

import "fmt"

// Level is the severity of a recorded log entry.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is one recorded log call.
type Entry struct {
	Level   Level
	Message string
	Fields  []LogField
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Field returns the value of the named field, if present.
func (e Entry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// RecordingLogger keeps every log call in memory. Tests use it to assert on
// the diagnostics an operation emitted.
type RecordingLogger struct {
	entries []Entry
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level Level, msg string, fields []LogField) {
	l.entries = append(l.entries, Entry{Level: level, Message: msg, Fields: fields})
}

func (l *RecordingLogger) Info(msg string, fields ...LogField)  { l.record(LevelInfo, msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...LogField)  { l.record(LevelWarn, msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...LogField) { l.record(LevelError, msg, fields) }
func (l *RecordingLogger) Debug(msg string, fields ...LogField) { l.record(LevelDebug, msg, fields) }

// Entries returns a copy of everything recorded so far.
func (l *RecordingLogger) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Last returns the most recent entry.
func (l *RecordingLogger) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Count returns how many entries were recorded at level.
func (l *RecordingLogger) Count(level Level) int {
	n := 0
	for _, e := range l.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset drops all recorded entries.
func (l *RecordingLogger) Reset() {
	l.entries = nil
}
