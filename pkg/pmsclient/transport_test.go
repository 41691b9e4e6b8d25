package pmsclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiServer serves login/refresh plus one protected resource whose behavior
// tests control per scenario.
type apiServer struct {
	srv *httptest.Server

	refreshCalls  atomic.Int64
	resourceCalls atomic.Int64

	rejectTokens atomic.Bool
	// reject the resource this many times before accepting
	deny atomic.Int64

	lastAuth atomic.Value // string
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	a := &apiServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"user":   User{ID: uuid.New(), Email: "front@hotel.test"},
				"tenant": Tenant{ID: uuid.New()},
				"token": TokenPair{
					AccessToken:  "access-0",
					RefreshToken: "refresh-0",
					ExpiresIn:    900,
				},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/refresh", func(w http.ResponseWriter, r *http.Request) {
		n := a.refreshCalls.Add(1)
		if a.rejectTokens.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "refresh_failed"})
			return
		}
		json.NewEncoder(w).Encode(TokenPair{
			AccessToken:  "access-" + strconv.FormatInt(n, 10),
			RefreshToken: "refresh-" + strconv.FormatInt(n, 10),
			ExpiresIn:    900,
		})
	})
	mux.HandleFunc("/api/v1/properties/", func(w http.ResponseWriter, r *http.Request) {
		a.resourceCalls.Add(1)
		a.lastAuth.Store(r.Header.Get("Authorization"))

		if a.deny.Load() > 0 {
			a.deny.Add(-1)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "invalid or expired token"})
			return
		}

		json.NewEncoder(w).Encode(Property{ID: uuid.New(), Name: "Seaside Hotel"})
	})

	a.srv = httptest.NewServer(mux)
	t.Cleanup(a.srv.Close)
	return a
}

func newTestClient(t *testing.T, srv *apiServer, opts ...Option) *Client {
	t.Helper()

	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	c := New(srv.srv.URL, opts...)
	t.Cleanup(c.Session.Close)

	_, err := c.Login(context.Background(), "front@hotel.test", "secret-password")
	require.NoError(t, err)

	return c
}

func TestTransport_AttachesBearerToken(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	_, err := c.Properties.Get(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-0", srv.lastAuth.Load().(string))
	assert.Equal(t, int64(0), srv.refreshCalls.Load())
}

func TestTransport_401RefreshesAndReplaysOnce(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	srv.deny.Store(1)

	property, err := c.Properties.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Seaside Hotel", property.Name)

	assert.Equal(t, int64(1), srv.refreshCalls.Load())
	assert.Equal(t, int64(2), srv.resourceCalls.Load())
	assert.Equal(t, "Bearer access-1", srv.lastAuth.Load().(string))
}

func TestTransport_SecondConsecutive401Propagates(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	srv.deny.Store(2)

	_, err := c.Properties.Get(context.Background(), uuid.New())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// refresh happened once, replay happened once, no loop
	assert.Equal(t, int64(1), srv.refreshCalls.Load())
	assert.Equal(t, int64(2), srv.resourceCalls.Load())
}

func TestTransport_RefreshFailureEndsSessionOnce(t *testing.T) {
	srv := newAPIServer(t)

	var expirations atomic.Int64
	c := newTestClient(t, srv, WithSessionExpiredHook(func() {
		expirations.Add(1)
	}))

	srv.deny.Store(10)
	srv.rejectTokens.Store(true)

	_, err := c.Properties.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	// credentials are gone
	_, ok := c.Session.AccessToken()
	assert.False(t, ok)

	// a second failing request does not re-fire the hook
	_, err = c.Properties.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, int64(1), expirations.Load())
}

func TestTransport_SuccessfulCallCountsAsActivity(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	// simulate the inactivity timer having fired
	c.Session.onInactivity()

	_, err := c.Properties.Get(context.Background(), uuid.New())
	require.NoError(t, err)

	c.Session.mu.Lock()
	active := c.Session.active
	c.Session.mu.Unlock()
	assert.True(t, active)
}

func TestTransport_NetworkErrorsPassThrough(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	boom := errors.New("connection reset by peer")
	c.http.Transport = &authTransport{
		session: c.Session,
		base:    failingTransport{err: boom},
	}

	_, err := c.Properties.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAuthenticationRequired)
}

type failingTransport struct {
	err error
}

func (t failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, t.err
}

func TestClient_ValidatesBeforeSending(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	before := srv.resourceCalls.Load()

	_, err := c.Properties.Create(context.Background(), CreatePropertyRequest{
		// missing tenant and name
		Country: "not-a-country",
	})
	require.Error(t, err)
	assert.Equal(t, before, srv.resourceCalls.Load())
}

func TestClient_ReplaysRequestBody(t *testing.T) {
	var bodies []string
	var calls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"user":   User{ID: uuid.New()},
				"tenant": Tenant{ID: uuid.New()},
				"token":  TokenPair{AccessToken: "access-0", RefreshToken: "refresh-0", ExpiresIn: 900},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/refresh", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1", ExpiresIn: 900})
	})
	mux.HandleFunc("POST /api/v1/channels", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(raw))
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(SalesChannel{ID: uuid.New(), Code: "web"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(c.Session.Close)

	_, err := c.Login(context.Background(), "front@hotel.test", "secret-password")
	require.NoError(t, err)

	_, err = c.Channels.Create(context.Background(), CreateChannelRequest{
		TenantID:          uuid.New(),
		Name:              "Direct Web",
		Code:              "web",
		CommissionPercent: 0,
		Active:            true,
	})
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.True(t, strings.Contains(bodies[1], `"code":"web"`))
}

func TestClient_TenSecondTimeout(t *testing.T) {
	srv := newAPIServer(t)
	c := newTestClient(t, srv)

	assert.Equal(t, 10*time.Second, c.http.Timeout)
}
