package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	IsSuperuserKey contextKey = "is_superuser"
)

// GetUserIDFromContext extracts the authenticated user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetIsSuperuserFromContext reports whether the authenticated user is a superuser.
func GetIsSuperuserFromContext(ctx context.Context) bool {
	is, ok := ctx.Value(IsSuperuserKey).(bool)
	return ok && is
}
