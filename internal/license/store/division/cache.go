package division

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	"ftf/internal/platform/redis"
	id "ftf/pkg/domain"
)

// CachedResolver decorates a DivisionResolver with a redis lookaside cache.
// Divisions change at most once per season, so a generous TTL is safe. Cache
// failures fall through to the inner resolver; they are never surfaced.
type CachedResolver struct {
	inner  ports.DivisionResolver
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(inner ports.DivisionResolver, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedResolver {
	return &CachedResolver{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *CachedResolver) TeamDivision(ctx context.Context, teamID id.TeamID) (models.Division, error) {
	key := cacheKey(teamID)

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return models.Division(cached), nil
	}
	if err != nil && !errors.Is(err, goredis.Nil) {
		r.logger.Warn("division cache read failed", "team_id", teamID.String(), "error", err)
	}

	division, err := r.inner.TeamDivision(ctx, teamID)
	if err != nil {
		return "", err
	}

	if err := r.client.Set(ctx, key, string(division), r.ttl).Err(); err != nil {
		r.logger.Warn("division cache write failed", "team_id", teamID.String(), "error", err)
	}
	return division, nil
}

func cacheKey(teamID id.TeamID) string {
	return "ftf:division:" + teamID.String()
}
