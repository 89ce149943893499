package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogEventType identifies the type of logged event
type LogEventType string

const (
	LogEventScramble LogEventType = "scramble"
	LogEventSaved    LogEventType = "saved"
	LogEventKeyPress LogEventType = "key_press"
)

// LogEvent represents a single logged event
type LogEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	ElapsedMs  int64        `json:"elapsed_ms"`
	EventType  LogEventType `json:"event_type"`
	KeyPress   string       `json:"key_press,omitempty"`
	Mode       string       `json:"mode,omitempty"`
	Seed       int64        `json:"seed,omitempty"`
	Scramble   string       `json:"scramble,omitempty"`
	ScrambleID string       `json:"scramble_id,omitempty"`
}

// SessionLogger writes session events as JSON lines.
// A zero SessionLogger is disabled and drops every event.
type SessionLogger struct {
	startTime time.Time
	file      *os.File
	path      string
}

// defaultLogDir returns ~/.scrambler/logs.
func defaultLogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".scrambler", "logs"), nil
}

// StartSessionLogger creates a new log file in logDir and writes its header.
func StartSessionLogger(logDir, sessionID string) (*SessionLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("session_%s.jsonl", time.Now().Format("20060102_150405"))
	path := filepath.Join(logDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := &SessionLogger{startTime: time.Now(), file: file, path: path}

	header := map[string]any{
		"version":    "1.0",
		"created_at": l.startTime,
		"type":       "header",
		"session_id": sessionID,
	}
	if err := l.writeJSON(header); err != nil {
		file.Close()
		return nil, err
	}

	return l, nil
}

// Path returns the log file path, or "" for a disabled logger.
func (l *SessionLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log appends an event, filling in its timestamps.
func (l *SessionLogger) Log(event LogEvent) {
	if l == nil || l.file == nil {
		return
	}
	event.Timestamp = time.Now()
	event.ElapsedMs = time.Since(l.startTime).Milliseconds()
	l.writeJSON(event)
}

// Close closes the log file.
func (l *SessionLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *SessionLogger) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal log event: %w", err)
	}
	data = append(data, '\n')
	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("failed to write log event: %w", err)
	}
	return nil
}

// ReadSessionLog reads the events of a log file, skipping the header.
func ReadSessionLog(path string) ([]LogEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []LogEvent
	dec := json.NewDecoder(f)
	for dec.More() {
		var raw map[string]json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode log line: %w", err)
		}
		if _, isHeader := raw["type"]; isHeader {
			continue
		}

		var e LogEvent
		if err := remarshal(raw, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func remarshal(raw map[string]json.RawMessage, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
