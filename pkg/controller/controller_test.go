package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"forumcli/pkg/client"
	"forumcli/pkg/httpx"
	"forumcli/pkg/models"
	"forumcli/pkg/session"
)

// fakeSessions implements SessionStore without touching disk.
type fakeSessions struct {
	mu   sync.Mutex
	sess *models.Session
	subs []func(session.Event)
}

func (f *fakeSessions) Get() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess
}

func (f *fakeSessions) Subscribe(fn func(session.Event)) func() {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
	return func() {}
}

func (f *fakeSessions) login(id int, name string) {
	f.mu.Lock()
	f.sess = &models.Session{Token: "tok", User: models.User{ID: id, Username: name}}
	subs := append([]func(session.Event){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(session.EventLogin)
	}
}

func (f *fakeSessions) logout() {
	f.mu.Lock()
	f.sess = nil
	subs := append([]func(session.Event){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(session.EventLogout)
	}
}

func newAPI(t *testing.T, h http.Handler) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.NewWithTransport(srv.URL, httpx.NewNetHTTP(5*time.Second), nil)
}

func TestTopicsFetchFailureLeavesEmptyLoaded(t *testing.T) {
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	c := NewTopics(api, &fakeSessions{})
	defer c.Close()

	c.Refresh(context.Background())

	assert.Equal(t, StateLoaded, c.State())
	assert.Empty(t, c.Snapshot())
}

func TestTopicsRefreshFailureKeepsPriorSnapshot(t *testing.T) {
	var fail bool
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Topic{{ID: 1, Title: "keep", UserID: 5}})
	}))
	c := NewTopics(api, &fakeSessions{})
	defer c.Close()

	c.Refresh(context.Background())
	assert.Len(t, c.Snapshot(), 1)

	fail = true
	c.Refresh(context.Background())

	assert.Equal(t, StateLoaded, c.State())
	snap := c.Snapshot()
	if assert.Len(t, snap, 1, "failed re-fetch must keep the previous list") {
		assert.Equal(t, "keep", snap[0].Title)
	}
}

func TestTopicsOwnershipGating(t *testing.T) {
	sessions := &fakeSessions{}
	c := NewTopics(nil, sessions)
	defer c.Close()

	mine := models.Topic{ID: 1, Title: "a", UserID: 5}
	theirs := models.Topic{ID: 2, Title: "b", UserID: 7}

	assert.False(t, c.CanModify(mine), "logged out viewers own nothing")

	sessions.login(5, "ada")
	assert.True(t, c.CanModify(mine))
	assert.False(t, c.CanModify(theirs))
}

func TestOwnershipGatingAllEntityKinds(t *testing.T) {
	sessions := &fakeSessions{}
	sessions.login(5, "ada")

	tc := NewTopics(nil, sessions)
	defer tc.Close()
	pc := NewPosts(nil, sessions, 1)
	defer pc.Close()
	cc := NewComments(nil, sessions, 1)
	defer cc.Close()

	assert.True(t, tc.CanModify(models.Topic{UserID: 5}))
	assert.False(t, tc.CanModify(models.Topic{UserID: 7}))
	assert.True(t, pc.CanModify(models.Post{UserID: 5}))
	assert.False(t, pc.CanModify(models.Post{UserID: 7}))
	assert.True(t, cc.CanModify(models.Comment{UserID: 5}))
	assert.False(t, cc.CanModify(models.Comment{UserID: 7}))
}

func TestTopicsRemoveSplicesWithoutRefetch(t *testing.T) {
	var gets, deletes int
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/topics":
			gets++
			_ = json.NewEncoder(w).Encode([]models.Topic{
				{ID: 1, Title: "keep", UserID: 5},
				{ID: 2, Title: "drop", UserID: 5},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/topics/2":
			deletes++
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	sessions := &fakeSessions{}
	sessions.login(5, "ada")
	c := NewTopics(api, sessions)
	defer c.Close()

	c.Refresh(context.Background())
	assert.Len(t, c.Snapshot(), 2)

	assert.NoError(t, c.Remove(context.Background(), 2))
	assert.Equal(t, 1, deletes)
	assert.Equal(t, 1, gets, "delete must splice locally, not refetch")

	snap := c.Snapshot()
	assert.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].ID)
}

func TestPostsAddRefetches(t *testing.T) {
	var gets int
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/topics/3/posts":
			gets++
			_ = json.NewEncoder(w).Encode([]models.Post{{ID: 1, Title: "hello", TopicID: 3, UserID: 5}})
		case r.Method == http.MethodPost && r.URL.Path == "/topics/3/posts":
			_ = json.NewEncoder(w).Encode(models.Post{ID: 2, Title: "new", TopicID: 3, UserID: 5})
		default:
			http.NotFound(w, r)
		}
	}))
	sessions := &fakeSessions{}
	sessions.login(5, "ada")
	c := NewPosts(api, sessions, 3)
	defer c.Close()

	assert.NoError(t, c.Add(context.Background(), "new", "body"))
	assert.Equal(t, 1, gets, "add must trigger a full refetch")
}

func TestPostsAddRequiresLoginAndContent(t *testing.T) {
	var posts int
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
		w.WriteHeader(http.StatusOK)
	}))
	sessions := &fakeSessions{}
	c := NewPosts(api, sessions, 3)
	defer c.Close()

	assert.ErrorIs(t, c.Add(context.Background(), "t", "c"), ErrNotLoggedIn)

	sessions.login(5, "ada")
	// blank title or content is silently ignored, mirroring a disabled submit
	assert.NoError(t, c.Add(context.Background(), "  ", "c"))
	assert.NoError(t, c.Add(context.Background(), "t", ""))
	assert.Zero(t, posts, "no request should have been sent")
}

func TestPostsLikeRefetchesServerTruth(t *testing.T) {
	likes := 0
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/posts/1/like":
			likes++
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && r.URL.Path == "/topics/3/posts":
			_ = json.NewEncoder(w).Encode([]models.Post{{ID: 1, Likes: likes, LikedByUser: likes > 0, TopicID: 3}})
		default:
			http.NotFound(w, r)
		}
	}))
	sessions := &fakeSessions{}
	sessions.login(5, "ada")
	c := NewPosts(api, sessions, 3)
	defer c.Close()

	c.Refresh(context.Background())
	assert.Equal(t, 0, c.Snapshot()[0].Likes)

	assert.NoError(t, c.Like(context.Background(), 1))
	snap := c.Snapshot()
	assert.Equal(t, 1, snap[0].Likes, "like count comes from the refetch, not a local increment")
	assert.True(t, snap[0].LikedByUser)
}

func TestClosedControllerDropsResponses(t *testing.T) {
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Topic{{ID: 1, Title: "late"}})
	}))
	c := NewTopics(api, &fakeSessions{})
	c.Close()

	c.Refresh(context.Background())
	assert.Empty(t, c.Snapshot(), "refresh after Close must not commit state")
	assert.Equal(t, StateIdle, c.State())

	assert.ErrorIs(t, c.Add(context.Background(), "x"), ErrClosed)
	assert.ErrorIs(t, c.Remove(context.Background(), 1), ErrClosed)
}

func TestSessionEventClearsEditState(t *testing.T) {
	sessions := &fakeSessions{}
	c := NewTopics(nil, sessions)
	defer c.Close()

	c.StartEdit(7)
	assert.Equal(t, 7, c.EditingID())

	sessions.logout()
	assert.Zero(t, c.EditingID(), "viewer change must drop transient edit state")
}

func TestCommentsRenderShowsOwnership(t *testing.T) {
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Comment{
			{ID: 1, Content: "mine", PostID: 9, UserID: 5, Likes: 1},
			{ID: 2, Content: "theirs", PostID: 9, UserID: 7},
		})
	}))
	sessions := &fakeSessions{}
	sessions.login(5, "ada")
	c := NewComments(api, sessions, 9)
	defer c.Close()

	c.Refresh(context.Background())
	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "mine")
	assert.Contains(t, out, "theirs")
	// exactly one row is marked editable
	assert.Equal(t, 1, strings.Count(out, "[yours]"))
}

func TestPostsSearchAndSortApplied(t *testing.T) {
	api := newAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Post{
			{ID: 1, Title: "alpha news", Likes: 2},
			{ID: 2, Title: "beta news", Likes: 9},
			{ID: 3, Title: "other", Likes: 5},
		})
	}))
	c := NewPosts(api, &fakeSessions{}, 1)
	defer c.Close()
	c.Refresh(context.Background())

	c.SetSearch("news")
	c.SetSort("liked")
	items := c.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, 1, items[1].ID)
}
