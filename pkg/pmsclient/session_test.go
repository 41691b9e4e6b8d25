package pmsclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

// fakeScheduler records every timer the session manager arms so tests can
// fire them by hand.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) newTimer(d time.Duration, fn func()) stopTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) live() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	return live
}

// fire runs the timer's callback as if it had elapsed.
func (s *fakeScheduler) fire(t *fakeTimer) {
	t.fired = true
	t.fn()
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type authServer struct {
	srv *httptest.Server

	refreshCalls atomic.Int64
	logoutCalls  atomic.Int64

	mu           sync.Mutex
	expiresIn    int64
	rejectLogin  bool
	rejectTokens bool
	holdRefresh  chan struct{}
}

func newAuthServer(t *testing.T) *authServer {
	t.Helper()

	a := &authServer{expiresIn: 900}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		reject := a.rejectLogin
		expires := a.expiresIn
		a.mu.Unlock()

		if reject {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "authentication_failed"})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"user":   User{ID: uuid.New(), Email: "front@hotel.test"},
				"tenant": Tenant{ID: uuid.New(), Name: "Seaside Group"},
				"token": TokenPair{
					AccessToken:  "access-1",
					RefreshToken: "refresh-1",
					ExpiresIn:    expires,
				},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/refresh", func(w http.ResponseWriter, r *http.Request) {
		n := a.refreshCalls.Add(1)

		a.mu.Lock()
		reject := a.rejectTokens
		hold := a.holdRefresh
		expires := a.expiresIn
		a.mu.Unlock()

		if hold != nil {
			<-hold
		}
		if reject {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "refresh_failed"})
			return
		}

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		json.NewEncoder(w).Encode(TokenPair{
			AccessToken:  "access-" + body.RefreshToken,
			RefreshToken: "rotated-" + body.RefreshToken,
			ExpiresIn:    expires + n, // distinguishable per exchange
		})
	})
	mux.HandleFunc("POST /api/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		a.logoutCalls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	a.srv = httptest.NewServer(mux)
	t.Cleanup(a.srv.Close)
	return a
}

func newTestSession(t *testing.T, srv *authServer) (*SessionManager, *fakeScheduler, *fakeClock) {
	t.Helper()

	sched := &fakeScheduler{}
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := newSessionManager(srv.srv.URL, &http.Client{Timeout: requestTimeout}, log, nil)
	m.newTimer = sched.newTimer
	m.now = clock.now

	return m, sched, clock
}

func login(t *testing.T, m *SessionManager) *LoginResult {
	t.Helper()
	result, err := m.Login(context.Background(), "front@hotel.test", "secret-password")
	require.NoError(t, err)
	return result
}

func TestLogin_SchedulesRefreshBeforeExpiry(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, _ := newTestSession(t, srv)

	result := login(t, m)
	require.NotNil(t, result.Token)
	assert.Equal(t, "access-1", result.Token.AccessToken)

	// expires_in 900s minus the 5 minute buffer
	require.Len(t, sched.live(), 2)
	assert.Equal(t, 10*time.Minute, sched.timers[1].delay)
	assert.Equal(t, inactivityTimeout, sched.timers[0].delay)
}

func TestLogin_ShortLivedTokenUsesFloorDelay(t *testing.T) {
	srv := newAuthServer(t)
	srv.expiresIn = 300
	m, sched, _ := newTestSession(t, srv)

	login(t, m)

	assert.Equal(t, minRefreshInterval, sched.timers[1].delay)
}

func TestRefresh_RearmingCancelsPredecessor(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, _ := newTestSession(t, srv)

	login(t, m)
	first := sched.timers[1]

	_, err := m.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, first.stopped)
	assert.Len(t, sched.live(), 2)
}

func TestProactiveRefresh_SkippedWhileInactive(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, _ := newTestSession(t, srv)

	login(t, m)
	activityTimer := sched.timers[0]
	refreshTimer := sched.timers[1]

	sched.fire(activityTimer)
	sched.fire(refreshTimer)

	assert.Equal(t, int64(0), srv.refreshCalls.Load())
	assert.Empty(t, sched.live())
}

func TestProactiveRefresh_FiresWhileActive(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, _ := newTestSession(t, srv)

	login(t, m)
	sched.fire(sched.timers[1])

	assert.Equal(t, int64(1), srv.refreshCalls.Load())
	// success re-armed the scheduler
	require.Len(t, sched.live(), 2)
}

func TestTouch_AfterInactivityRearmsTimers(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, clock := newTestSession(t, srv)

	login(t, m)
	sched.fire(sched.timers[0]) // inactivity fires
	sched.fire(sched.timers[1]) // proactive refresh skipped

	clock.advance(2 * time.Minute)
	m.Touch()

	live := sched.live()
	require.Len(t, live, 2)
	// 13m left on the token, minus the 5m buffer
	var delays []time.Duration
	for _, timer := range live {
		delays = append(delays, timer.delay)
	}
	assert.Contains(t, delays, 8*time.Minute)
	assert.Contains(t, delays, inactivityTimeout)
	assert.Equal(t, int64(0), srv.refreshCalls.Load())
}

func TestTouch_NearExpiryTriggersCatchUpRefresh(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, clock := newTestSession(t, srv)

	login(t, m)
	sched.fire(sched.timers[0])
	sched.fire(sched.timers[1])

	clock.advance(12 * time.Minute) // 3m left, inside the buffer
	m.Touch()

	require.Eventually(t, func() bool {
		return srv.refreshCalls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTouch_WithoutSessionIsNoop(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, _ := newTestSession(t, srv)

	m.Touch()

	assert.Empty(t, sched.live())
}

func TestLogout_ClearsCredentialsAndTimers(t *testing.T) {
	srv := newAuthServer(t)
	m, sched, _ := newTestSession(t, srv)

	login(t, m)
	require.NoError(t, m.Logout(context.Background()))

	_, ok := m.AccessToken()
	assert.False(t, ok)
	assert.Empty(t, sched.live())
	assert.Equal(t, int64(1), srv.logoutCalls.Load())

	// a later refresh attempt is terminal
	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefresh_WithoutStoredTokenFails(t *testing.T) {
	srv := newAuthServer(t)
	m, _, _ := newTestSession(t, srv)

	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)

	_, err = m.EnsureValidToken(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefresh_RejectionIsTyped(t *testing.T) {
	srv := newAuthServer(t)
	m, _, _ := newTestSession(t, srv)

	login(t, m)
	srv.mu.Lock()
	srv.rejectTokens = true
	srv.mu.Unlock()

	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshRejected)
}

func TestRefresh_ConcurrentCallersShareOneExchange(t *testing.T) {
	srv := newAuthServer(t)
	m, _, _ := newTestSession(t, srv)

	login(t, m)

	hold := make(chan struct{})
	srv.mu.Lock()
	srv.holdRefresh = hold
	srv.mu.Unlock()

	const callers = 5
	results := make(chan TokenPair, callers)
	errs := make(chan error, callers)
	started := make(chan struct{}, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			pair, err := m.Refresh(context.Background())
			results <- pair
			errs <- err
		}()
	}

	for i := 0; i < callers; i++ {
		<-started
	}
	require.Eventually(t, func() bool {
		return srv.refreshCalls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(hold)
	wg.Wait()

	close(results)
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var access string
	for pair := range results {
		if access == "" {
			access = pair.AccessToken
		}
		assert.Equal(t, access, pair.AccessToken)
	}
	assert.Equal(t, int64(1), srv.refreshCalls.Load())
}

func TestEnsureValidToken_RefreshesWhenAccessGone(t *testing.T) {
	srv := newAuthServer(t)
	m, _, _ := newTestSession(t, srv)

	login(t, m)
	m.creds.c.Delete(keyAccessToken)

	tok, err := m.EnsureValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-refresh-1", tok)
	assert.Equal(t, int64(1), srv.refreshCalls.Load())
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newAuthServer(t)
	srv.rejectLogin = true
	m, sched, _ := newTestSession(t, srv)

	_, err := m.Login(context.Background(), "front@hotel.test", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Empty(t, sched.live())
}
