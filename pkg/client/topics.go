package client

import (
	"context"
	"fmt"
	"net/http"

	"forumcli/pkg/models"
)

// ListTopics fetches all topics. No auth required.
func (c *Client) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var out []models.Topic
	if err := c.do(ctx, http.MethodGet, "/topics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTopic fetches one topic by id.
func (c *Client) GetTopic(ctx context.Context, id int) (models.Topic, error) {
	var out models.Topic
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/topics/%d", id), nil, &out)
	return out, err
}

// CreateTopic creates a topic owned by the current user.
func (c *Client) CreateTopic(ctx context.Context, title string) (models.Topic, error) {
	var out models.Topic
	err := c.do(ctx, http.MethodPost, "/topics", map[string]string{"title": title}, &out)
	return out, err
}

// UpdateTopic renames a topic. The backend enforces ownership.
func (c *Client) UpdateTopic(ctx context.Context, id int, title string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/topics/%d", id), map[string]string{"title": title}, nil)
}

// DeleteTopic removes a topic. The backend enforces ownership.
func (c *Client) DeleteTopic(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/topics/%d", id), nil, nil)
}
