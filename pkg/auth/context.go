package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userKey struct{}

// WithUserID stores the authenticated user's id in ctx.
func WithUserID(ctx context.Context, id primitive.ObjectID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFromCtx returns the id stored by WithUserID.
func UserIDFromCtx(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(userKey{}).(primitive.ObjectID)
	return id, ok && !id.IsZero()
}
