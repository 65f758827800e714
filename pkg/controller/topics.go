package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"forumcli/pkg/client"
	"forumcli/pkg/logger"
	"forumcli/pkg/models"
	"forumcli/pkg/session"
	"forumcli/pkg/view"
)

// Topics owns the topic list view: the snapshot, search/sort parameters and
// the id currently being edited.
type Topics struct {
	api      *client.Client
	sessions SessionStore

	mu        sync.Mutex
	topics    []models.Topic
	state     State
	closed    bool
	search    string
	sortMode  view.SortMode
	editingID int

	unsubscribe func()
}

// NewTopics builds a topics controller subscribed to session changes; call
// Close when the view is torn down.
func NewTopics(api *client.Client, sessions SessionStore) *Topics {
	c := &Topics{api: api, sessions: sessions, sortMode: view.SortAlphabetic}
	if sessions != nil {
		c.unsubscribe = sessions.Subscribe(c.onSessionEvent)
	}
	return c
}

// onSessionEvent drops transient edit state when the viewer changes: an
// in-flight edit belongs to the previous identity.
func (c *Topics) onSessionEvent(session.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.editingID = 0
}

// Close marks the view defunct. Responses from requests still in flight are
// dropped instead of being applied to a torn-down view.
func (c *Topics) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// State returns the fetch lifecycle state.
func (c *Topics) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetSearch sets the free-text filter applied at render time.
func (c *Topics) SetSearch(q string) {
	c.mu.Lock()
	c.search = q
	c.mu.Unlock()
}

// SetSort sets the ordering applied at render time.
func (c *Topics) SetSort(m view.SortMode) {
	c.mu.Lock()
	c.sortMode = m
	c.mu.Unlock()
}

// StartEdit marks a topic as being edited; CancelEdit clears it.
func (c *Topics) StartEdit(id int) {
	c.mu.Lock()
	c.editingID = id
	c.mu.Unlock()
}

func (c *Topics) CancelEdit() {
	c.mu.Lock()
	c.editingID = 0
	c.mu.Unlock()
}

// EditingID returns the id under edit, or 0.
func (c *Topics) EditingID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Refresh re-fetches the topic list. A fetch failure logs and transitions
// to Loaded without touching the snapshot, so a failed re-fetch keeps the
// previous list visible (empty on a failed initial fetch).
func (c *Topics) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = StateLoading
	c.mu.Unlock()

	topics, err := c.api.ListTopics(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err != nil {
		logger.Error("topics_fetch_failed", "error", err)
	} else {
		c.topics = topics
	}
	c.state = StateLoaded
}

// Snapshot returns a copy of the raw collection.
func (c *Topics) Snapshot() []models.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Topic(nil), c.topics...)
}

// Items returns the presented view: filtered by the search term, ordered by
// the sort mode.
func (c *Topics) Items() []models.Topic {
	c.mu.Lock()
	topics := append([]models.Topic(nil), c.topics...)
	search, mode := c.search, c.sortMode
	c.mu.Unlock()
	return view.Present(topics, search, mode)
}

// CanModify reports whether the current viewer owns the topic. This gates
// presentation only; the backend is the authority.
func (c *Topics) CanModify(t models.Topic) bool {
	uid, ok := currentUserID(c.sessions)
	return ok && uid == t.UserID
}

// Add creates a topic and re-fetches. Blank titles are ignored, matching
// the source behavior of a disabled submit.
func (c *Topics) Add(ctx context.Context, title string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if strings.TrimSpace(title) == "" {
		return nil
	}
	if _, err := c.api.CreateTopic(ctx, title); err != nil {
		logger.Error("topic_add_failed", "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

// Rename updates a topic's title and re-fetches.
func (c *Topics) Rename(ctx context.Context, id int, title string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if strings.TrimSpace(title) == "" {
		return nil
	}
	if err := c.api.UpdateTopic(ctx, id, title); err != nil {
		logger.Error("topic_rename_failed", "id", id, "error", err)
		return err
	}
	c.CancelEdit()
	c.Refresh(ctx)
	return nil
}

// Remove deletes a topic and splices it out of the local snapshot after the
// server confirms. No refetch: the splice is the optimistic part.
func (c *Topics) Remove(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if err := c.api.DeleteTopic(ctx, id); err != nil {
		logger.Error("topic_delete_failed", "id", id, "error", err)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	kept := c.topics[:0:0]
	for _, t := range c.topics {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.topics = kept
	return nil
}

func (c *Topics) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Render writes the presented list to w, marking topics the viewer owns.
func (c *Topics) Render(w io.Writer) {
	if c.State() == StateLoading {
		fmt.Fprintln(w, "Loading topics...")
		return
	}
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No topics found.")
		return
	}
	for _, t := range items {
		owner := ""
		if c.CanModify(t) {
			owner = "  [yours]"
		}
		fmt.Fprintf(w, "%6d  %s%s\n", t.ID, t.Title, owner)
	}
}
