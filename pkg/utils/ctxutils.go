package utils

import (
	"context"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
)

// GetUserIDFromCtx extracts the authenticated user id placed into the request
// context by the auth middleware.
func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

// WithUserID returns a context carrying the authenticated user id. Used by the
// middleware and by tests.
func WithUserID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, id)
}
