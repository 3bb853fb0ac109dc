package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStringRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetString("state", "pomodoro"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	got, err := s.GetString("state")
	if err != nil {
		t.Fatalf("GetString returned error: %v", err)
	}
	if got != "pomodoro" {
		t.Errorf("expected 'pomodoro', got %q", got)
	}

	// second write replaces the value
	if err := s.SetString("state", "pause"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, _ := s.GetString("state"); got != "pause" {
		t.Errorf("expected 'pause', got %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetString("absent"); err == nil {
		t.Errorf("expected error for missing key, got nil")
	}
	if _, err := s.GetNumber("absent"); err == nil {
		t.Errorf("expected error for missing numeric key, got nil")
	}
}

func TestNumberRoundTrip(t *testing.T) {
	s := newTestStore(t)

	for _, value := range []float64{0, 4, -1.5, 12345.25} {
		if err := s.SetNumber("session-count", value); err != nil {
			t.Fatalf("SetNumber(%v) returned error: %v", value, err)
		}
		got, err := s.GetNumber("session-count")
		if err != nil {
			t.Fatalf("GetNumber returned error: %v", err)
		}
		if got != value {
			t.Errorf("expected %v, got %v", value, got)
		}
	}
}

func TestNumberRejectsText(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetString("state", "pomodoro"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if _, err := s.GetNumber("state"); err == nil {
		t.Errorf("expected error reading text as number, got nil")
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := s.SetString("state", "pause"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer s.Close()

	got, err := s.GetString("state")
	if err != nil {
		t.Fatalf("GetString after reopen returned error: %v", err)
	}
	if got != "pause" {
		t.Errorf("expected 'pause' after reopen, got %q", got)
	}
}
