package repository

import (
	"context"
	"time"

	redisapp "stayflow/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// RedisTokenRepo stores one key per live refresh token so rotation can
// invalidate exactly one credential and logout can sweep a whole user.
type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(userID, token), "1", exp).Err()
}

func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	val, err := r.Client.Get(ctx, refreshTokenKey(userID, token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	return val == "1", err
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	return r.Client.Del(ctx, refreshTokenKey(userID, token)).Err()
}

// DeleteAllUserTokens sweeps every refresh token a user holds. SCAN
// instead of KEYS so a large keyspace does not block the server.
func (r *RedisTokenRepo) DeleteAllUserTokens(ctx context.Context, userID string) error {
	var keys []string

	iter := r.Client.Scan(ctx, 0, refreshTokenKey(userID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

func refreshTokenKey(userID, token string) string {
	return "auth:refresh:" + userID + ":" + token
}
