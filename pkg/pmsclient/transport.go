package pmsclient

import (
	"fmt"
	"net/http"
)

// authTransport attaches the bearer token and recovers from a single 401 by
// refreshing and replaying the request. Retry state lives here, never on the
// request itself.
type authTransport struct {
	session *SessionManager
	base    http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok, ok := t.session.AccessToken(); ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		// network failures pass through untouched
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		t.session.Touch()
		return resp, nil
	}

	resp.Body.Close()

	pair, err := t.session.Refresh(req.Context())
	if err != nil {
		t.session.sessionExpired()
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationRequired, err)
	}

	retry, err := cloneForRetry(req)
	if err != nil {
		return nil, err
	}
	retry.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	// one replay only; a second 401 propagates to the caller as-is
	return t.base.RoundTrip(retry)
}

func cloneForRetry(req *http.Request) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	return retry, nil
}
