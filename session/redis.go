package session

import (
	"context"
	"encoding/json"
	"fmt"

	"carelink/models"

	"github.com/go-redis/redis/v8"
)

const (
	redisTokenKey = "carelink:authToken"
	redisUserKey  = "carelink:currentUser"
)

// RedisStore keeps the session in Redis so several terminals on one machine
// share a login.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Token() (string, error) {
	ctx := context.Background()
	token, err := r.client.Get(ctx, redisTokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}
	return token, nil
}

func (r *RedisStore) SetToken(token string) error {
	ctx := context.Background()
	if err := r.client.Set(ctx, redisTokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to save auth token: %w", err)
	}
	return nil
}

func (r *RedisStore) ClearToken() error {
	ctx := context.Background()
	if err := r.client.Del(ctx, redisTokenKey).Err(); err != nil {
		return fmt.Errorf("failed to clear auth token: %w", err)
	}
	return nil
}

func (r *RedisStore) User() (*models.User, error) {
	ctx := context.Background()
	data, err := r.client.Get(ctx, redisUserKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current user: %w", err)
	}
	return &user, nil
}

func (r *RedisStore) SetUser(user *models.User) error {
	ctx := context.Background()
	if user == nil {
		return r.ClearUser()
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal current user: %w", err)
	}
	if err := r.client.Set(ctx, redisUserKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save current user: %w", err)
	}
	return nil
}

func (r *RedisStore) ClearUser() error {
	ctx := context.Background()
	if err := r.client.Del(ctx, redisUserKey).Err(); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}
