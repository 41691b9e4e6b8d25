package pmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// refreshBuffer is how long before access token expiry the proactive
	// refresh fires.
	refreshBuffer = 5 * time.Minute

	// minRefreshInterval is the floor for the proactive refresh delay, so a
	// short-lived token cannot put the scheduler into a tight loop.
	minRefreshInterval = 5 * time.Minute

	// inactivityTimeout marks the session inactive after this much time
	// without a Touch or an authenticated call.
	inactivityTimeout = 15 * time.Minute

	requestTimeout = 10 * time.Second
)

type stopTimer interface {
	Stop() bool
}

// timerFactory lets tests drive the scheduler without real clocks.
type timerFactory func(d time.Duration, fn func()) stopTimer

func defaultTimerFactory(d time.Duration, fn func()) stopTimer {
	return time.AfterFunc(d, fn)
}

// refreshCall is a single in-flight refresh exchange shared by every caller
// that needs its outcome.
type refreshCall struct {
	done chan struct{}
	pair TokenPair
	err  error
}

// SessionManager owns the credential store, the proactive refresh scheduler
// and activity tracking. One instance serves one signed-in user.
type SessionManager struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	onExpired func()

	newTimer timerFactory
	now      func() time.Time

	mu            sync.Mutex
	creds         *credentialStore
	active        bool
	expiredFired  bool
	expiresAt     time.Time
	refreshTimer  stopTimer
	activityTimer stopTimer
	inflight      *refreshCall
}

func newSessionManager(baseURL string, httpClient *http.Client, log *slog.Logger, onExpired func()) *SessionManager {
	return &SessionManager{
		baseURL:   baseURL,
		http:      httpClient,
		log:       log,
		onExpired: onExpired,
		newTimer:  defaultTimerFactory,
		now:       time.Now,
		creds:     newCredentialStore(),
	}
}

// Login authenticates against the service and arms the session timers.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "pmsclient.SessionManager.Login"

	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/v1/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var envelope struct {
		Status string      `json:"status"`
		Data   LoginResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if envelope.Data.Token == nil {
		return nil, fmt.Errorf("%s: login response without token", op)
	}

	m.mu.Lock()
	m.expiredFired = false
	m.active = true
	m.creds.storeIdentity(envelope.Data.User, envelope.Data.Tenant)
	m.armActivityLocked()
	m.storeTokensLocked(*envelope.Data.Token)
	m.mu.Unlock()

	m.log.Info("session established", slog.String("email", email))

	return &envelope.Data, nil
}

// Logout revokes the session server-side (best effort) and tears everything
// down locally.
func (m *SessionManager) Logout(ctx context.Context) error {
	const op = "pmsclient.SessionManager.Logout"

	if access, ok := m.creds.accessToken(); ok {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/v1/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+access)
			if resp, err := m.http.Do(req); err != nil {
				m.log.Warn("server-side logout failed", slog.String("op", op), slog.String("error", err.Error()))
			} else {
				resp.Body.Close()
			}
		}
	}

	m.mu.Lock()
	m.stopTimersLocked()
	m.creds.clear()
	m.active = false
	m.mu.Unlock()

	return nil
}

// Touch records user activity. After an idle period it restores the session
// to active and, if a proactive refresh was skipped meanwhile, catches up.
func (m *SessionManager) Touch() {
	m.mu.Lock()

	if _, ok := m.creds.refreshToken(); !ok {
		m.mu.Unlock()
		return
	}

	wasInactive := !m.active
	m.active = true
	m.armActivityLocked()

	var catchUp bool
	if wasInactive && m.refreshTimer == nil {
		remaining := m.expiresAt.Sub(m.now())
		if remaining <= refreshBuffer {
			catchUp = true
		} else {
			m.refreshTimer = m.newTimer(remaining-refreshBuffer, m.onRefreshTimer)
		}
	}
	m.mu.Unlock()

	if catchUp {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			if _, err := m.Refresh(ctx); err != nil {
				m.log.Warn("catch-up refresh failed", slog.String("error", err.Error()))
			}
		}()
	}
}

// Close cancels all timers. The credential store is left intact.
func (m *SessionManager) Close() {
	m.mu.Lock()
	m.stopTimersLocked()
	m.mu.Unlock()
}

// AccessToken returns the current access token if one is stored and unexpired.
func (m *SessionManager) AccessToken() (string, bool) {
	return m.creds.accessToken()
}

// CurrentUser returns the identity cached at login.
func (m *SessionManager) CurrentUser() (User, bool) {
	return m.creds.user()
}

// CurrentTenant returns the tenant cached at login.
func (m *SessionManager) CurrentTenant() (Tenant, bool) {
	return m.creds.tenant()
}

// EnsureValidToken returns a usable access token, refreshing first when the
// stored one has expired.
func (m *SessionManager) EnsureValidToken(ctx context.Context) (string, error) {
	if tok, ok := m.creds.accessToken(); ok {
		return tok, nil
	}

	pair, err := m.Refresh(ctx)
	if err != nil {
		return "", err
	}

	return pair.AccessToken, nil
}

// Refresh performs the refresh exchange. Concurrent callers share a single
// in-flight exchange; whoever arrives while one is running waits for its
// outcome instead of firing another.
func (m *SessionManager) Refresh(ctx context.Context) (TokenPair, error) {
	m.mu.Lock()
	if call := m.inflight; call != nil {
		m.mu.Unlock()
		select {
		case <-call.done:
			return call.pair, call.err
		case <-ctx.Done():
			return TokenPair{}, ctx.Err()
		}
	}

	refresh, ok := m.creds.refreshToken()
	if !ok {
		m.mu.Unlock()
		return TokenPair{}, ErrNoRefreshToken
	}

	call := &refreshCall{done: make(chan struct{})}
	m.inflight = call
	m.mu.Unlock()

	pair, err := m.doRefresh(ctx, refresh)

	m.mu.Lock()
	m.inflight = nil
	if err == nil {
		m.storeTokensLocked(pair)
	}
	m.mu.Unlock()

	call.pair, call.err = pair, err
	close(call.done)

	return pair, err
}

func (m *SessionManager) doRefresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	const op = "pmsclient.SessionManager.doRefresh"

	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/v1/refresh", bytes.NewReader(payload))
	if err != nil {
		return TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return TokenPair{}, ErrRefreshRejected
	default:
		return TokenPair{}, decodeAPIError(resp)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// storeTokensLocked persists the pair and re-arms the proactive refresh
// timer. Callers hold m.mu.
func (m *SessionManager) storeTokensLocked(pair TokenPair) {
	expiresIn := time.Duration(pair.ExpiresIn) * time.Second
	m.creds.storeTokens(pair.AccessToken, pair.RefreshToken, expiresIn)
	m.expiresAt = m.now().Add(expiresIn)

	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
	}
	delay := expiresIn - refreshBuffer
	if delay < minRefreshInterval {
		delay = minRefreshInterval
	}
	m.refreshTimer = m.newTimer(delay, m.onRefreshTimer)
}

func (m *SessionManager) onRefreshTimer() {
	m.mu.Lock()
	m.refreshTimer = nil
	if !m.active {
		// user idle: skip and stay un-armed until Touch or the reactive path
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := m.Refresh(ctx); err != nil {
		// the reactive path in the transport is the authoritative fallback
		m.log.Warn("proactive refresh failed", slog.String("error", err.Error()))
	}
}

func (m *SessionManager) armActivityLocked() {
	if m.activityTimer != nil {
		m.activityTimer.Stop()
	}
	m.activityTimer = m.newTimer(inactivityTimeout, m.onInactivity)
}

func (m *SessionManager) onInactivity() {
	m.mu.Lock()
	m.activityTimer = nil
	m.active = false
	m.mu.Unlock()
}

func (m *SessionManager) stopTimersLocked() {
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	if m.activityTimer != nil {
		m.activityTimer.Stop()
		m.activityTimer = nil
	}
}

// sessionExpired ends the session after an unrecoverable refresh failure and
// notifies the embedding application once.
func (m *SessionManager) sessionExpired() {
	m.mu.Lock()
	fired := m.expiredFired
	m.expiredFired = true
	m.stopTimersLocked()
	m.creds.clear()
	m.active = false
	hook := m.onExpired
	m.mu.Unlock()

	if !fired && hook != nil {
		hook()
	}
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Status  string `json:"status"`
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       body.Error,
		Details:    body.Details,
	}
}
