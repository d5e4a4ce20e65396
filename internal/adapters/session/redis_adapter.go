package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	redisclient "github.com/santecare/pharmacare-backend/internal/infrastructure/clients/redis"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// RedisAdapter implements SessionRepository on a single Redis key holding
// the serialized current user. A corrupt payload reads as no session so a
// bad write never locks a user out.
type RedisAdapter struct {
	client *redisclient.Client
	key    string
	ttl    time.Duration
}

// Ensure RedisAdapter implements SessionRepository
var _ repositories.SessionRepository = (*RedisAdapter)(nil)

// NewRedisAdapter creates a new Redis session adapter
func NewRedisAdapter(client *redisclient.Client, key string, ttl time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, key: key, ttl: ttl}
}

// Save stores the current user
func (a *RedisAdapter) Save(ctx context.Context, user *entities.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize session user", err)
	}

	if err := a.client.Client().Set(ctx, a.key, data, a.ttl).Err(); err != nil {
		return apperrors.NewInternalError("failed to save session", err)
	}
	return nil
}

// Load returns the stored user, or nil when no session exists
func (a *RedisAdapter) Load(ctx context.Context) (*entities.User, error) {
	data, err := a.client.Client().Get(ctx, a.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load session", err)
	}

	var user entities.User
	if err := json.Unmarshal(data, &user); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("discarding corrupt session payload")
		if delErr := a.client.Client().Del(ctx, a.key).Err(); delErr != nil {
			return nil, apperrors.NewInternalError("failed to clear corrupt session", delErr)
		}
		return nil, nil
	}

	return &user, nil
}

// Clear drops the stored session
func (a *RedisAdapter) Clear(ctx context.Context) error {
	if err := a.client.Client().Del(ctx, a.key).Err(); err != nil {
		return apperrors.NewInternalError("failed to clear session", err)
	}
	return nil
}
