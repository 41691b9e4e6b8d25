package pmsclient

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
	keyTenant       = "tenant"

	// refreshTokenTTL mirrors the server-side refresh token lifetime.
	refreshTokenTTL = 7 * 24 * time.Hour
)

// credentialStore keeps the session credentials in an expiry-aware cache so a
// stale access token simply disappears instead of being handed out.
type credentialStore struct {
	c *gocache.Cache
}

func newCredentialStore() *credentialStore {
	return &credentialStore{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (s *credentialStore) storeTokens(access, refresh string, expiresIn time.Duration) {
	if expiresIn > 0 {
		s.c.Set(keyAccessToken, access, expiresIn)
	} else {
		s.c.Delete(keyAccessToken)
	}
	s.c.Set(keyRefreshToken, refresh, refreshTokenTTL)
}

func (s *credentialStore) storeIdentity(user User, tenant Tenant) {
	s.c.Set(keyUser, user, gocache.NoExpiration)
	s.c.Set(keyTenant, tenant, gocache.NoExpiration)
}

func (s *credentialStore) accessToken() (string, bool) {
	v, ok := s.c.Get(keyAccessToken)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *credentialStore) refreshToken() (string, bool) {
	v, ok := s.c.Get(keyRefreshToken)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *credentialStore) user() (User, bool) {
	v, ok := s.c.Get(keyUser)
	if !ok {
		return User{}, false
	}
	return v.(User), true
}

func (s *credentialStore) tenant() (Tenant, bool) {
	v, ok := s.c.Get(keyTenant)
	if !ok {
		return Tenant{}, false
	}
	return v.(Tenant), true
}

func (s *credentialStore) clear() {
	s.c.Flush()
}
