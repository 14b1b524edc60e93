// Package audit records session history per profile.
// Events are stored as JSON Lines (JSONL) files, one per profile.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/fleetctl/internal/config"
)

// EventType classifies a session event.
type EventType string

const (
	EventLogin   EventType = "login"
	EventLogout  EventType = "logout"
	EventExpired EventType = "expired"
)

// Event represents a single history entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Profile   string    `json:"profile"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads session history.
// Events are stored in {dir}/{profile}.jsonl.
type Logger struct {
	dir string
}

// NewLogger creates a new history logger rooted at dir.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir}
}

// eventPath returns the path to the JSONL event log for a profile.
func (l *Logger) eventPath(profile string) (string, error) {
	if err := config.ValidateProfileName(profile); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(l.dir, profile+".jsonl")
}

// Log appends an event to the profile's history.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path, err := l.eventPath(event.Profile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, profile, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Profile:   profile,
		Details:   details,
	})
}

// Events reads all events for a profile in chronological order.
func (l *Logger) Events(profile string) ([]Event, error) {
	path, err := l.eventPath(profile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	return events, nil
}

// Last returns the most recent event of the given type, or nil.
func (l *Logger) Last(profile string, eventType EventType) (*Event, error) {
	events, err := l.Events(profile)
	if err != nil {
		return nil, err
	}
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == eventType {
			return &events[i], nil
		}
	}
	return nil, nil
}

// Remove deletes the history of a profile.
func (l *Logger) Remove(profile string) error {
	path, err := l.eventPath(profile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
