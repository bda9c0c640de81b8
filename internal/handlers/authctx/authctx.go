package authctx

import (
	"context"

	"github.com/osokin/authgate/internal/models"
)

type ctxKey struct{}

// New returns a context carrying the request's resolved identity.
// The identity lives in the request context only, so concurrent requests
// can never observe each other's principal.
func New(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// FromContext extracts the identity set by the authorization interceptor
func FromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(models.Identity)
	return identity, ok
}
