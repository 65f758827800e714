package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"forumcli/pkg/client"
	"forumcli/pkg/logger"
	"forumcli/pkg/models"
	"forumcli/pkg/session"
	"forumcli/pkg/view"
)

// Posts owns the post list of one topic.
type Posts struct {
	api      *client.Client
	sessions SessionStore
	topicID  int

	mu        sync.Mutex
	posts     []models.Post
	state     State
	closed    bool
	search    string
	sortMode  view.SortMode
	editingID int

	unsubscribe func()
}

// NewPosts builds a posts controller scoped to topicID.
func NewPosts(api *client.Client, sessions SessionStore, topicID int) *Posts {
	c := &Posts{api: api, sessions: sessions, topicID: topicID, sortMode: view.SortRecent}
	if sessions != nil {
		c.unsubscribe = sessions.Subscribe(c.onSessionEvent)
	}
	return c
}

func (c *Posts) onSessionEvent(session.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.editingID = 0
}

// Close marks the view defunct; late responses are dropped.
func (c *Posts) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Posts) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Posts) TopicID() int { return c.topicID }

func (c *Posts) SetSearch(q string) {
	c.mu.Lock()
	c.search = q
	c.mu.Unlock()
}

func (c *Posts) SetSort(m view.SortMode) {
	c.mu.Lock()
	c.sortMode = m
	c.mu.Unlock()
}

func (c *Posts) StartEdit(id int) {
	c.mu.Lock()
	c.editingID = id
	c.mu.Unlock()
}

func (c *Posts) CancelEdit() {
	c.mu.Lock()
	c.editingID = 0
	c.mu.Unlock()
}

func (c *Posts) EditingID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Refresh re-fetches the topic's posts; failures log and keep the previous
// snapshot, landing in Loaded either way.
func (c *Posts) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = StateLoading
	c.mu.Unlock()

	posts, err := c.api.ListPosts(ctx, c.topicID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err != nil {
		logger.Error("posts_fetch_failed", "topic_id", c.topicID, "error", err)
	} else {
		c.posts = posts
	}
	c.state = StateLoaded
}

func (c *Posts) Snapshot() []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Post(nil), c.posts...)
}

// Items returns the presented view (filter + sort applied).
func (c *Posts) Items() []models.Post {
	c.mu.Lock()
	posts := append([]models.Post(nil), c.posts...)
	search, mode := c.search, c.sortMode
	c.mu.Unlock()
	return view.Present(posts, search, mode)
}

// CanModify reports whether the current viewer owns the post.
func (c *Posts) CanModify(p models.Post) bool {
	uid, ok := currentUserID(c.sessions)
	return ok && uid == p.UserID
}

// Add creates a post and re-fetches. Blank title or content is a no-op.
func (c *Posts) Add(ctx context.Context, title, content string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil
	}
	if _, err := c.api.CreatePost(ctx, c.topicID, title, content); err != nil {
		logger.Error("post_add_failed", "topic_id", c.topicID, "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

// Edit replaces a post's title and content, then re-fetches.
func (c *Posts) Edit(ctx context.Context, id int, title, content string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil
	}
	if err := c.api.UpdatePost(ctx, id, title, content); err != nil {
		logger.Error("post_edit_failed", "id", id, "error", err)
		return err
	}
	c.CancelEdit()
	c.Refresh(ctx)
	return nil
}

// Remove deletes a post and splices it out after server confirmation.
func (c *Posts) Remove(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if err := c.api.DeletePost(ctx, id); err != nil {
		logger.Error("post_delete_failed", "id", id, "error", err)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	kept := c.posts[:0:0]
	for _, p := range c.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.posts = kept
	return nil
}

// Like registers a like, then re-fetches so the count and the viewer flag
// come from the server rather than a local increment.
func (c *Posts) Like(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if err := c.api.LikePost(ctx, id); err != nil {
		logger.Error("post_like_failed", "id", id, "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

// Unlike withdraws a like, then re-fetches.
func (c *Posts) Unlike(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if err := c.api.UnlikePost(ctx, id); err != nil {
		logger.Error("post_unlike_failed", "id", id, "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

func (c *Posts) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Render writes the presented posts to w.
func (c *Posts) Render(w io.Writer) {
	if c.State() == StateLoading {
		fmt.Fprintln(w, "Loading posts...")
		return
	}
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No posts yet.")
		return
	}
	now := time.Now()
	for _, p := range items {
		liked := ""
		if p.LikedByUser {
			liked = " *"
		}
		owner := ""
		if c.CanModify(p) {
			owner = "  [yours]"
		}
		fmt.Fprintf(w, "%6d  %-40s  %3d likes%s  %s%s\n", p.ID, p.Title, p.Likes, liked, view.TimeAgo(now, p.CreatedAt), owner)
		fmt.Fprintf(w, "        %s\n", p.Content)
	}
}
