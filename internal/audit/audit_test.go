package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogger_LogAndEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	now := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: now, Type: EventLogin, Profile: "default", Details: "alice"},
		{Timestamp: now.Add(time.Second), Type: EventExpired, Profile: "default"},
		{Timestamp: now.Add(2 * time.Second), Type: EventLogin, Profile: "default", Details: "alice"},
		{Timestamp: now.Add(3 * time.Second), Type: EventLogout, Profile: "default"},
	}

	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	result, err := logger.Events("default")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != len(events) {
		t.Fatalf("got %d events, want %d", len(result), len(events))
	}

	for i, e := range result {
		if e.Type != events[i].Type {
			t.Errorf("event %d: type = %q, want %q", i, e.Type, events[i].Type)
		}
		if e.Profile != events[i].Profile {
			t.Errorf("event %d: profile = %q, want %q", i, e.Profile, events[i].Profile)
		}
		if e.Details != events[i].Details {
			t.Errorf("event %d: details = %q, want %q", i, e.Details, events[i].Details)
		}
	}
}

func TestLogger_EventsEmpty(t *testing.T) {
	logger := NewLogger(t.TempDir())

	result, err := logger.Events("nonexistent")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != 0 {
		t.Errorf("got %d events, want 0", len(result))
	}
}

func TestLogger_LogEvent(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.LogEvent(EventLogin, "staging", "bob"); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	events, err := logger.Events("staging")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Type != EventLogin {
		t.Errorf("type = %q, want %q", e.Type, EventLogin)
	}
	if e.Details != "bob" {
		t.Errorf("details = %q, want %q", e.Details, "bob")
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp should be set automatically")
	}

	info, err := os.Stat(filepath.Join(dir, "staging.jsonl"))
	if err != nil {
		t.Fatalf("history file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("history file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLogger_Last(t *testing.T) {
	logger := NewLogger(t.TempDir())

	base := time.Now()
	logger.Log(Event{Timestamp: base, Type: EventLogin, Profile: "default", Details: "first"})
	logger.Log(Event{Timestamp: base.Add(time.Second), Type: EventLogout, Profile: "default"})
	logger.Log(Event{Timestamp: base.Add(2 * time.Second), Type: EventLogin, Profile: "default", Details: "second"})

	last, err := logger.Last("default", EventLogin)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if last == nil || last.Details != "second" {
		t.Errorf("Last() = %+v, want the second login", last)
	}

	none, err := logger.Last("default", EventExpired)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if none != nil {
		t.Errorf("Last() = %+v, want nil", none)
	}
}

func TestLogger_InvalidProfile(t *testing.T) {
	logger := NewLogger(t.TempDir())

	if err := logger.LogEvent(EventLogin, "../escape", ""); err == nil {
		t.Error("LogEvent should reject an invalid profile name")
	}
	if _, err := logger.Events("Bad Name"); err == nil {
		t.Error("Events should reject an invalid profile name")
	}
}

func TestLogger_Remove(t *testing.T) {
	logger := NewLogger(t.TempDir())

	logger.LogEvent(EventLogin, "removable", "")

	if err := logger.Remove("removable"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	events, err := logger.Events("removable")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after remove, want 0", len(events))
	}
}

func TestLogger_RemoveNonexistent(t *testing.T) {
	logger := NewLogger(t.TempDir())

	// Should not error
	if err := logger.Remove("nonexistent"); err != nil {
		t.Errorf("Remove should not error for nonexistent: %v", err)
	}
}

func TestLogger_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	logger.LogEvent(EventLogin, "default", "ok")
	f, err := os.OpenFile(filepath.Join(dir, "default.jsonl"), os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not json\n\n")
	f.Close()
	logger.LogEvent(EventLogout, "default", "")

	events, err := logger.Events("default")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}
