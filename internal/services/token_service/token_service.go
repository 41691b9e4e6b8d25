package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"stayflow/internal/domain/models"
	libjwt "stayflow/internal/lib/jwt"
	"stayflow/internal/metrics"
	"stayflow/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenNotInStorage = errors.New("token not found in storage")
)

type UserGetter interface {
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenService struct {
	repo       repository.TokenRepository
	users      UserGetter
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(repo repository.TokenRepository, users UserGetter, secret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		repo:       repo,
		users:      users,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateTokens issues a fresh access/refresh pair and persists the refresh
// token under the user's key. expires_in carries the access token lifetime in
// seconds for the client's refresh scheduler.
func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	accessToken, err := libjwt.NewToken(user, s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := newRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.repo.SaveRefreshToken(ctx, user.ID.String(), refreshToken, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// RefreshTokens trades a stored refresh token for a new pair. The old token is
// deleted before the new pair is issued, so a token can be exchanged once.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	userID, _, found := strings.Cut(refreshToken, ".")
	if !found {
		metrics.RefreshExchangesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidToken
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		metrics.RefreshExchangesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidToken
	}

	exists, err := s.repo.GetRefreshToken(ctx, userID, refreshToken)
	if err != nil || !exists {
		metrics.RefreshExchangesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrTokenNotInStorage
	}

	if err := s.repo.DeleteRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, err
	}

	// access token claims come from the current user record, not from the
	// consumed credential
	user, err := s.users.GetUserById(ctx, uid)
	if err != nil {
		metrics.RefreshExchangesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidToken
	}

	pair, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RefreshExchangesTotal.WithLabelValues("ok").Inc()

	return pair, nil
}

// RevokeAll drops every stored refresh token for the user (logout everywhere).
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllUserTokens(ctx, userID.String())
}

// newRefreshToken mints an opaque credential: the owner's id joined with 32
// random bytes. It carries no claims and no signature; validity comes entirely
// from the storage lookup, so every mint is unique and exchanging one always
// invalidates exactly that credential.
func newRefreshToken(userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return userID.String() + "." + hex.EncodeToString(buf), nil
}
