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

// Comments owns the comment list of one post.
type Comments struct {
	api      *client.Client
	sessions SessionStore
	postID   int

	mu        sync.Mutex
	comments  []models.Comment
	state     State
	closed    bool
	search    string
	sortMode  view.SortMode
	editingID int

	unsubscribe func()
}

// NewComments builds a comments controller scoped to postID.
func NewComments(api *client.Client, sessions SessionStore, postID int) *Comments {
	c := &Comments{api: api, sessions: sessions, postID: postID, sortMode: view.SortRecent}
	if sessions != nil {
		c.unsubscribe = sessions.Subscribe(c.onSessionEvent)
	}
	return c
}

func (c *Comments) onSessionEvent(session.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.editingID = 0
}

// Close marks the view defunct; late responses are dropped.
func (c *Comments) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Comments) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Comments) PostID() int { return c.postID }

func (c *Comments) SetSearch(q string) {
	c.mu.Lock()
	c.search = q
	c.mu.Unlock()
}

func (c *Comments) SetSort(m view.SortMode) {
	c.mu.Lock()
	c.sortMode = m
	c.mu.Unlock()
}

func (c *Comments) StartEdit(id int) {
	c.mu.Lock()
	c.editingID = id
	c.mu.Unlock()
}

func (c *Comments) CancelEdit() {
	c.mu.Lock()
	c.editingID = 0
	c.mu.Unlock()
}

func (c *Comments) EditingID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Refresh re-fetches the post's comments; failures log and keep the
// previous snapshot, landing in Loaded either way.
func (c *Comments) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = StateLoading
	c.mu.Unlock()

	comments, err := c.api.ListComments(ctx, c.postID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err != nil {
		logger.Error("comments_fetch_failed", "post_id", c.postID, "error", err)
	} else {
		c.comments = comments
	}
	c.state = StateLoaded
}

func (c *Comments) Snapshot() []models.Comment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Comment(nil), c.comments...)
}

// Items returns the presented view. For comments the searchable text is the
// content body.
func (c *Comments) Items() []models.Comment {
	c.mu.Lock()
	comments := append([]models.Comment(nil), c.comments...)
	search, mode := c.search, c.sortMode
	c.mu.Unlock()
	return view.Present(comments, search, mode)
}

// CanModify reports whether the current viewer owns the comment.
func (c *Comments) CanModify(cm models.Comment) bool {
	uid, ok := currentUserID(c.sessions)
	return ok && uid == cm.UserID
}

// Add creates a comment and re-fetches. Blank content is a no-op.
func (c *Comments) Add(ctx context.Context, content string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if _, err := c.api.CreateComment(ctx, c.postID, content); err != nil {
		logger.Error("comment_add_failed", "post_id", c.postID, "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

// Edit replaces a comment's content, then re-fetches.
func (c *Comments) Edit(ctx context.Context, id int, content string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if err := c.api.UpdateComment(ctx, id, content); err != nil {
		logger.Error("comment_edit_failed", "id", id, "error", err)
		return err
	}
	c.CancelEdit()
	c.Refresh(ctx)
	return nil
}

// Remove deletes a comment and splices it out after server confirmation.
func (c *Comments) Remove(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if err := c.api.DeleteComment(ctx, id); err != nil {
		logger.Error("comment_delete_failed", "id", id, "error", err)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	kept := c.comments[:0:0]
	for _, cm := range c.comments {
		if cm.ID != id {
			kept = append(kept, cm)
		}
	}
	c.comments = kept
	return nil
}

// Like registers a like and re-fetches.
func (c *Comments) Like(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if err := c.api.LikeComment(ctx, id); err != nil {
		logger.Error("comment_like_failed", "id", id, "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

// Unlike withdraws a like and re-fetches.
func (c *Comments) Unlike(ctx context.Context, id int) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, ok := currentUserID(c.sessions); !ok {
		return ErrNotLoggedIn
	}
	if err := c.api.UnlikeComment(ctx, id); err != nil {
		logger.Error("comment_unlike_failed", "id", id, "error", err)
		return err
	}
	c.Refresh(ctx)
	return nil
}

func (c *Comments) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Render writes the presented comments to w.
func (c *Comments) Render(w io.Writer) {
	if c.State() == StateLoading {
		fmt.Fprintln(w, "Loading comments...")
		return
	}
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	now := time.Now()
	for _, cm := range items {
		liked := ""
		if cm.LikedByUser {
			liked = " *"
		}
		owner := ""
		if c.CanModify(cm) {
			owner = "  [yours]"
		}
		fmt.Fprintf(w, "%6d  %3d likes%s  %s%s\n", cm.ID, cm.Likes, liked, view.TimeAgo(now, cm.CreatedAt), owner)
		fmt.Fprintf(w, "        %s\n", cm.Content)
	}
}
