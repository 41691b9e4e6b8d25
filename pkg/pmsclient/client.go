// Package pmsclient is the Go client for the stayflow property management
// API. It owns the user session: tokens are stored, refreshed ahead of
// expiry while the user is active, and recovered reactively on 401.
package pmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	log      *slog.Logger

	Session *SessionManager

	Properties   *PropertiesService
	Reservations *ReservationsService
	Payments     *PaymentsService
	Channels     *ChannelsService
	Availability *AvailabilityService
}

type Option func(*options)

type options struct {
	transport http.RoundTripper
	logger    *slog.Logger
	onExpired func()
}

// WithTransport replaces the underlying round tripper (the auth wrapper is
// still layered on top).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithSessionExpiredHook is called exactly once when the session cannot be
// recovered. The embedding application decides what "back to login" means.
func WithSessionExpiredHook(fn func()) Option {
	return func(o *options) { o.onExpired = fn }
}

func New(baseURL string, opts ...Option) *Client {
	o := &options{
		transport: http.DefaultTransport,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	baseURL = strings.TrimRight(baseURL, "/")

	// the session manager talks to the auth endpoints without the auth
	// wrapper, so a refresh can never recurse into itself
	authHTTP := &http.Client{
		Timeout:   requestTimeout,
		Transport: o.transport,
	}

	session := newSessionManager(baseURL, authHTTP, o.logger, o.onExpired)

	c := &Client{
		baseURL:  baseURL,
		validate: validator.New(),
		log:      o.logger,
		Session:  session,
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: &authTransport{session: session, base: o.transport},
		},
	}

	c.Properties = &PropertiesService{c: c}
	c.Reservations = &ReservationsService{c: c}
	c.Payments = &PaymentsService{c: c}
	c.Channels = &ChannelsService{c: c}
	c.Availability = &AvailabilityService{c: c}

	return c
}

// Login authenticates and primes the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return c.Session.Login(ctx, email, password)
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.Session.Logout(ctx)
}

// do sends one JSON request through the authenticated transport and decodes
// the response into out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	const op = "pmsclient.Client.do"

	if body != nil {
		if err := c.validate.Struct(body); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// envelope matches the service's {status, data} wrapper for list responses.
type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}
