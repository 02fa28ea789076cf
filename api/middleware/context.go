package middleware

import "context"

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxEmail    contextKey = "user_email"
	ctxUsername contextKey = "user_username"
)

// Identity is the authenticated shopper attached by the auth middleware.
type Identity struct {
	UserID   uint
	Email    string
	Username string
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(ctxUserID).(uint)
	return v, ok && v > 0
}

// UserIDPtr returns the user id as a pointer, or nil for guests.
func UserIDPtr(ctx context.Context) *uint {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &id
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return Identity{}, false
	}
	email, _ := ctx.Value(ctxEmail).(string)
	username, _ := ctx.Value(ctxUsername).(string)
	return Identity{UserID: id, Email: email, Username: username}, true
}

// WithIdentity injects the authenticated shopper into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, identity.UserID)
	ctx = context.WithValue(ctx, ctxEmail, identity.Email)
	return context.WithValue(ctx, ctxUsername, identity.Username)
}
