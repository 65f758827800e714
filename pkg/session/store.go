package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"

	"forumcli/pkg/logger"
	"forumcli/pkg/models"
)

// Fixed storage keys. Absence of either means "logged out".
const (
	keyToken = "session:token"
	keyUser  = "session:user"
)

// Event is broadcast to subscribers when the session changes.
type Event int

const (
	EventLogin Event = iota + 1
	EventLogout
)

// Store is the durable session accessor. It owns a small pebble database
// under the client data dir and a subscriber list so independently-built
// views converge on login/logout without sharing memory.
type Store struct {
	db *pebble.DB

	mu      sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Open opens (or creates) the session database under dataDir.
func Open(dataDir string) (*Store, error) {
	path := filepath.Join(dataDir, "session")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db %s: %w", path, err)
	}
	logger.Debug("session_db_opened", "path", path)
	return &Store{db: db, subs: map[int]func(Event){}}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns the current session, or nil when logged out. A missing token,
// a missing user blob or a user blob that fails to parse all degrade to nil
// rather than surfacing an error; stale half-written state must never crash
// a view.
func (s *Store) Get() *models.Session {
	token, ok := s.get(keyToken)
	if !ok || len(token) == 0 {
		return nil
	}
	raw, ok := s.get(keyUser)
	if !ok {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		logger.Warn("session_user_blob_invalid", "error", err)
		return nil
	}
	return &models.Session{Token: string(token), User: u}
}

func (s *Store) get(key string) ([]byte, bool) {
	val, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			logger.Warn("session_read_failed", "key", key, "error", err)
		}
		return nil, false
	}
	out := append([]byte(nil), val...)
	_ = closer.Close()
	return out, true
}

// Set stores the token and user atomically (single batch, so readers see
// both or neither) and notifies subscribers of a login.
func (s *Store) Set(token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	b := s.db.NewBatch()
	_ = b.Set([]byte(keyToken), []byte(token), nil)
	_ = b.Set([]byte(keyUser), raw, nil)
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	logger.Info("session_set", "user_id", user.ID, "username", user.Username)
	s.notify(EventLogin)
	return nil
}

// Clear removes both fields and notifies subscribers of a logout. Clearing
// an already-empty store still notifies; subscribers treat logout as
// idempotent.
func (s *Store) Clear() error {
	b := s.db.NewBatch()
	_ = b.Delete([]byte(keyToken), nil)
	_ = b.Delete([]byte(keyUser), nil)
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logger.Info("session_cleared")
	s.notify(EventLogout)
	return nil
}

// Subscribe registers fn for login/logout events and returns a revocation
// func. Views subscribe on construction and must unsubscribe on teardown so
// events never reach a defunct view. Unsubscribing twice is harmless.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
