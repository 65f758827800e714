package client

import (
	"context"
	"net/http"

	"forumcli/pkg/models"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a token and identity. The caller decides
// whether to persist the result.
func (c *Client) Login(ctx context.Context, username, password string) (string, models.User, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/login", credentials{Username: username, Password: password}, &out)
	if err != nil {
		return "", models.User{}, err
	}
	return out.Token, out.User, nil
}

// Register creates a new account. Registration does not log the user in;
// a subsequent Login is required.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/register", credentials{Username: username, Password: password}, nil)
}
