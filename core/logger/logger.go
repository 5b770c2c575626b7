package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// Recorder is a callback that stores events in an external datastore.
type Recorder func(e *Entry) error

// Logger captures structured interaction events for later review.
type Logger struct {
	Record Recorder
}

// NewJSONLinesRecorder creates a Logger that exports events in newline
// delimited JSON object format.
func NewJSONLinesRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(e *Entry) error {
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// Discard creates a Logger that drops every event.
func Discard() *Logger {
	return &Logger{
		Record: func(*Entry) error { return nil },
	}
}

// Entry is one logged event with its envelope.
type Entry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`
	Event           Event  `json:"event"`
}

// Event holds exactly one event payload; the other fields stay nil.
type Event struct {
	SessionStart *SessionStart `json:"session_start,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
	Command      *Command      `json:"command,omitempty"`
	RecallMiss   *RecallMiss   `json:"recall_miss,omitempty"`
}

// SessionStart records a session opening.
type SessionStart struct {
	Username   string `json:"username,omitempty"`
	RemoteAddr string `json:"remote_addr,omitempty"`
}

// SessionEnd records a session closing.
type SessionEnd struct{}

// Command records one dispatched command line and its outcome.
type Command struct {
	Raw        string   `json:"raw"`
	Argv       []string `json:"argv"`
	Background bool     `json:"background,omitempty"`
	Outcome    string   `json:"outcome"`
}

// RecallMiss records a "!N" reference that named no surviving event.
type RecallMiss struct {
	Token string `json:"token"`
}

func (l *Logger) record(sessionID string, event Event) error {
	e := &Entry{
		TimestampMicros: time.Now().UnixNano() / int64(time.Microsecond),
		SessionID:       sessionID,
		Event:           event,
	}
	return l.Record(e)
}

// NewSession creates a logger with an attached random session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger with no session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

func (l *SessionLogger) RecordEvent(event Event) error {
	return l.record(l.sessionID, event)
}
