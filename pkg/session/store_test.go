package session

import (
	"testing"

	"github.com/cockroachdb/pebble"

	"forumcli/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if got := s.Get(); got != nil {
		t.Fatalf("expected nil session on fresh store, got %+v", got)
	}

	user := models.User{ID: 5, Username: "ada"}
	if err := s.Set("tok-123", user); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got := s.Get()
	if got == nil {
		t.Fatal("expected session after Set")
	}
	if got.Token != "tok-123" || got.User != user {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := s.Get(); got != nil {
		t.Fatalf("expected nil session after Clear, got %+v", got)
	}
}

func TestCorruptUserBlobDegradesToNil(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set("tok", models.User{ID: 1, Username: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// damage the stored user blob directly
	if err := s.db.Set([]byte(keyUser), []byte("{not json"), pebble.Sync); err != nil {
		t.Fatalf("corrupting blob: %v", err)
	}
	if got := s.Get(); got != nil {
		t.Fatalf("expected nil session for corrupt user blob, got %+v", got)
	}
}

func TestMissingUserBlobDegradesToNil(t *testing.T) {
	s := openTestStore(t)
	if err := s.db.Set([]byte(keyToken), []byte("tok-only"), pebble.Sync); err != nil {
		t.Fatalf("seeding token: %v", err)
	}
	if got := s.Get(); got != nil {
		t.Fatalf("expected nil session when user blob is missing, got %+v", got)
	}
}

func TestSubscribeNotifications(t *testing.T) {
	s := openTestStore(t)

	var events []Event
	unsub := s.Subscribe(func(ev Event) { events = append(events, ev) })

	var other []Event
	unsubOther := s.Subscribe(func(ev Event) { other = append(other, ev) })

	if err := s.Set("tok", models.User{ID: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	want := []Event{EventLogin, EventLogout}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("subscriber saw %v, want %v", events, want)
	}
	if len(other) != 2 {
		t.Fatalf("second subscriber saw %v", other)
	}

	// after unsubscribing no further events arrive; double-unsubscribe is harmless
	unsub()
	unsub()
	if err := s.Set("tok2", models.User{ID: 2}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("unsubscribed view still received events: %v", events)
	}
	if len(other) != 3 {
		t.Fatalf("remaining subscriber missed event: %v", other)
	}
	unsubOther()
}
