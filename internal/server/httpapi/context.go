package httpapi

import (
	"context"

	"github.com/opennote-dev/opennote/internal/server/auth"
)

type contextKey int

const tokenContextKey contextKey = iota

func contextWithToken(ctx context.Context, token *auth.Token) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the access token the auth filter attached to the
// request, if any.
func TokenFromContext(ctx context.Context) (*auth.Token, bool) {
	token, ok := ctx.Value(tokenContextKey).(*auth.Token)
	return token, ok
}
