// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; services and stores read them
// without importing net/http. Tests inject fixed values (notably the request
// time) through the same accessors.
package requestcontext

import (
	"context"
	"time"

	id "ftf/pkg/domain"
)

type (
	actorIDKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	userAgentKey   struct{}
)

// WithActorID records the authenticated actor for downstream audit writes.
func WithActorID(ctx context.Context, actorID id.ActorID) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actorID)
}

// ActorID returns the authenticated actor, or the zero value when the request
// is unauthenticated.
func ActorID(ctx context.Context) id.ActorID {
	actor, _ := ctx.Value(actorIDKey{}).(id.ActorID)
	return actor
}

// WithRequestID records the correlation id assigned by the HTTP layer.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation id, or "" when none was assigned.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// WithTime pins "now" for the rest of the request. All date arithmetic in the
// validation pipeline reads this so one request sees one clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithUserAgent records the normalized client user agent.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// UserAgent returns the normalized client user agent, or "".
func UserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}
