// Package ctxutil carries request-scoped identity across layer
// boundaries without threading extra parameters through every call.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// One unexported key type per value.
type (
	userIDKey    struct{}
	requestIDKey struct{}
	channelKey   struct{}
)

// WithUserID stores the authenticated user's ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx returns the authenticated user's ID. ok is false when
// the request is anonymous or the stored value is unusable.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request ID, or "" when absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithChannel stores the command channel ("chat", "email") in the
// context. Set by the transport layer so agent logs can tell entry
// points apart.
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, channelKey{}, channel)
}

// ChannelFromCtx returns the command channel, or "" when absent.
func ChannelFromCtx(ctx context.Context) string {
	ch, _ := ctx.Value(channelKey{}).(string)
	return ch
}
