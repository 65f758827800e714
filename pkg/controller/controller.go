// Package controller holds the entity view controllers: each owns a
// snapshot of one remote collection, a loading state and transient edit
// state, and orchestrates fetch-then-render plus refresh-after-mutation.
// Snapshots are replaced wholesale, never field-mutated in place; the model
// of truth is always whatever the last successful list fetch said.
package controller

import (
	"errors"

	"forumcli/pkg/models"
	"forumcli/pkg/session"
)

// State is the fetch lifecycle of a controller. Fetch failures still land
// in StateLoaded: the policy is to log and keep rendering whatever the last
// successful fetch produced (an empty list when none has succeeded), not to
// surface an error state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
)

// ErrNotLoggedIn is returned by mutations that require a session.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrClosed is returned by mutations attempted after Close.
var ErrClosed = errors.New("view closed")

// SessionStore is the slice of the session accessor controllers need:
// current identity for ownership gating and change notifications so edit
// state is dropped when the viewer changes.
type SessionStore interface {
	Get() *models.Session
	Subscribe(fn func(session.Event)) (unsubscribe func())
}

// currentUserID returns the viewer's id, or 0 and false when logged out.
func currentUserID(s SessionStore) (int, bool) {
	if s == nil {
		return 0, false
	}
	sess := s.Get()
	if sess == nil {
		return 0, false
	}
	return sess.User.ID, true
}
