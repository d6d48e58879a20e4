package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "identityClaims"

// Claims is the per-request authenticated principal, extracted from a
// verified session token.
type Claims struct {
	Subject string
	Role    string
	JWTID   string
}

// HasRole reports whether the principal carries the given role. An identity
// with no role metadata matches nothing.
func (c Claims) HasRole(role string) bool {
	return c.Role != "" && c.Role == role
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(claimsKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// Subject returns the authenticated identity id, or "" when anonymous.
func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
