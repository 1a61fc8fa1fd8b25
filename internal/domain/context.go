package domain

import "context"

type contextKey string

const userContextKey contextKey = "auth_user"

// WithUser attaches the authenticated user to the request context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user resolved by the auth
// middleware, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
