package provider

import (
	"context"
	"errors"

	"hrcore/internal/apperrors"
	"hrcore/internal/auth"
	"hrcore/internal/models"
)

// Client binds a bearer token to the provider, scoping session retrieval and
// sign-out to a single principal. It is the gateway handed to a session
// resolver embedded in a client process.
type Client struct {
	p     *Provider
	token string
}

// Bind returns a Client for the given token. An empty token yields an
// anonymous client.
func (p *Provider) Bind(token string) *Client {
	return &Client{p: p, token: token}
}

// GetSession returns the identity behind the bound token, or nil when there
// is no live session. Transport failures are surfaced; a dead or missing
// session is not an error, just anonymity.
func (c *Client) GetSession(ctx context.Context) (*models.Identity, error) {
	if c.token == "" {
		return nil, nil
	}
	ident, err := c.p.SessionFromToken(ctx, c.token)
	if err != nil {
		var ae *apperrors.AuthError
		if errors.As(err, &ae) && ae.Reason == apperrors.ReasonInvalidCredentials {
			return nil, nil
		}
		return nil, err
	}
	return ident, nil
}

// SignOut revokes the bound session server-side.
func (c *Client) SignOut(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	claims, err := auth.Verify(c.token)
	if err != nil {
		return nil
	}
	return c.p.SignOut(ctx, claims.JWTID)
}

// Subscribe registers for auth state change notifications.
func (c *Client) Subscribe() (<-chan Event, func()) {
	return c.p.Subscribe()
}
