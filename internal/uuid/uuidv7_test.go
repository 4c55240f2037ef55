package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew_IsVersion7(t *testing.T) {
	id := New()

	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("New() returned unparsable id %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	prev := New()
	for i := 0; i < 50; i++ {
		next := New()
		if next <= prev {
			t.Fatalf("ids not increasing: %s then %s", prev, next)
		}
		prev = next
	}
}

func TestNewSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewSessionID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(id) != 43 {
			t.Errorf("expected 43-char id, got %d (%q)", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}

func TestParseAndIsValid(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Errorf("expected %q to be valid", id)
	}
	if IsValid("not-a-uuid") {
		t.Error("expected invalid uuid to be rejected")
	}
	if _, err := Parse("123"); err == nil {
		t.Error("expected parse error")
	}
}
