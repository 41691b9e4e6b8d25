package repository

import (
	"context"
	"testing"
	"time"

	redisapp "stayflow/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedTokenRepo(t *testing.T) (*RedisTokenRepo, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	repo := NewRedisTokenRepo(&redisapp.Client{Client: db})

	return repo, mock
}

func TestRedisTokenRepo_SaveRefreshToken(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectSet("auth:refresh:user-1:tok-1", "1", 7*24*time.Hour).SetVal("OK")

	err := repo.SaveRefreshToken(context.Background(), "user-1", "tok-1", 7*24*time.Hour)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_GetRefreshToken(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectGet("auth:refresh:user-1:tok-1").SetVal("1")

	ok, err := repo.GetRefreshToken(context.Background(), "user-1", "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_GetRefreshToken_Missing(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectGet("auth:refresh:user-1:unknown").RedisNil()

	ok, err := repo.GetRefreshToken(context.Background(), "user-1", "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_DeleteRefreshToken(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectDel("auth:refresh:user-1:tok-1").SetVal(1)

	err := repo.DeleteRefreshToken(context.Background(), "user-1", "tok-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_DeleteAllUserTokens(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectScan(0, "auth:refresh:user-1:*", 100).
		SetVal([]string{"auth:refresh:user-1:a", "auth:refresh:user-1:b"}, 0)
	mock.ExpectDel("auth:refresh:user-1:a", "auth:refresh:user-1:b").SetVal(2)

	err := repo.DeleteAllUserTokens(context.Background(), "user-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_DeleteAllUserTokens_Empty(t *testing.T) {
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectScan(0, "auth:refresh:user-1:*", 100).SetVal([]string{}, 0)

	err := repo.DeleteAllUserTokens(context.Background(), "user-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
