package gateway

import (
	"context"

	"moviedeck/internal/models"
)

// AuthClient wraps the authentication service. Login and register are the
// only unauthenticated calls in the system.
type AuthClient struct {
	core *core
}

func NewAuthClient(config Config) *AuthClient {
	return &AuthClient{core: newCore(config)}
}

func (c *AuthClient) Login(ctx context.Context, credentials models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.core.post(ctx, "/auth/login", credentials, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) Register(ctx context.Context, profile models.Profile) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.core.post(ctx, "/auth/register", profile, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
