package zendesk

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/spec-kit/contact-bridge/internal/domain"
)

type usersEnvelope struct {
	Users []domain.User `json:"users"`
}

type userEnvelope struct {
	User domain.User `json:"user"`
}

// SearchUsersByEmail runs an exact email query.
func (c *Client) SearchUsersByEmail(ctx context.Context, email string) ([]domain.User, error) {
	var env usersEnvelope
	err := c.do(ctx, resty.MethodGet, "/users/search.json", func(r *resty.Request) {
		r.SetQueryParam("query", "email:"+email)
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.Users, nil
}

// CreateUser creates a user and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, user domain.UserCreate) (*domain.User, error) {
	var env userEnvelope
	err := c.do(ctx, resty.MethodPost, "/users.json", func(r *resty.Request) {
		r.SetBody(map[string]any{"user": user})
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.User, nil
}
