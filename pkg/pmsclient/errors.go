package pmsclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRefreshToken means there is nothing to refresh with: the user has
	// to log in again.
	ErrNoRefreshToken = errors.New("pmsclient: no refresh token stored")

	// ErrRefreshRejected means the server refused the refresh token. The
	// session is over.
	ErrRefreshRejected = errors.New("pmsclient: refresh token rejected")

	// ErrAuthenticationRequired is returned for requests that failed with 401
	// after the session could not be recovered.
	ErrAuthenticationRequired = errors.New("pmsclient: authentication required")
)

// APIError carries a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("pmsclient: api error %d (%s): %s", e.StatusCode, e.Code, e.Details)
	}
	return fmt.Sprintf("pmsclient: api error %d (%s)", e.StatusCode, e.Code)
}
