package utils

import (
	"context"

	"github.com/vaughan-dsouza/betasks/internal/session"
)

// context key
type ctxKey string

const CtxClaimsKey ctxKey = "claims"

func WithClaims(ctx context.Context, c *session.Claims) context.Context {
	return context.WithValue(ctx, CtxClaimsKey, c)
}

// ClaimsFrom returns the verified session claims placed by the auth
// middleware.
func ClaimsFrom(ctx context.Context) (*session.Claims, bool) {
	c, ok := ctx.Value(CtxClaimsKey).(*session.Claims)
	return c, ok && c != nil
}
