package auth

import "context"

type identityKey struct{}

// WithIdentity attaches a verified principal to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the principal attached by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// IsAdmin reports whether the principal holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}
