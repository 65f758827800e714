package client

import (
	"context"
	"fmt"
	"net/http"

	"forumcli/pkg/models"
)

// ListComments fetches the comments on a post. No auth required.
func (c *Client) ListComments(ctx context.Context, postID int) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(ctx context.Context, postID int, content string) (models.Comment, error) {
	var out models.Comment
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID),
		map[string]string{"content": content}, &out)
	return out, err
}

// UpdateComment replaces a comment's content.
func (c *Client) UpdateComment(ctx context.Context, id int, content string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id),
		map[string]string{"content": content}, nil)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil)
}

// LikeComment registers the current user's like on a comment.
func (c *Client) LikeComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/comments/%d/like", id), nil, nil)
}

// UnlikeComment withdraws the current user's like from a comment.
func (c *Client) UnlikeComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/comments/%d/unlike", id), nil, nil)
}
