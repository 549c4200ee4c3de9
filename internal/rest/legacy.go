package rest

import (
	"context"

	"github.com/funthingsnearme/nearby/internal/model"
)

// LegacyRegisterRequest is the pre-managed-auth registration payload.
type LegacyRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city"`
}

// LegacyLogin signs in against the pre-managed-auth endpoint, returning the
// access/refresh token pair the client stores itself. Superseded by the
// managed auth provider in later revisions.
func (c *Client) LegacyLogin(ctx context.Context, username, password string) (*model.TokenPair, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var tokens model.TokenPair
	if err := c.postJSON(ctx, c.endpoint("core/login", nil), "", &payload, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// LegacyRegister creates an account against the pre-managed-auth endpoint.
func (c *Client) LegacyRegister(ctx context.Context, req *LegacyRegisterRequest) (*model.TokenPair, error) {
	var tokens model.TokenPair
	if err := c.postJSON(ctx, c.endpoint("api/register", nil), "", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}
