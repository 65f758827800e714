package client

import (
	"context"
	"fmt"
	"net/http"

	"forumcli/pkg/models"
)

// ListPosts fetches the posts in a topic. No auth required; likedByUser in
// the response is joined against the bearer token when one is sent.
func (c *Client) ListPosts(ctx context.Context, topicID int) ([]models.Post, error) {
	var out []models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/topics/%d/posts", topicID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type postBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	TopicID int    `json:"topic_id,omitempty"`
}

// CreatePost adds a post to a topic.
func (c *Client) CreatePost(ctx context.Context, topicID int, title, content string) (models.Post, error) {
	var out models.Post
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/topics/%d/posts", topicID),
		postBody{Title: title, Content: content, TopicID: topicID}, &out)
	return out, err
}

// UpdatePost replaces a post's title and content.
func (c *Client) UpdatePost(ctx context.Context, id int, title, content string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id),
		postBody{Title: title, Content: content}, nil)
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

// LikePost registers the current user's like on a post.
func (c *Client) LikePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), nil, nil)
}

// UnlikePost withdraws the current user's like from a post.
func (c *Client) UnlikePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/unlike", id), nil, nil)
}
