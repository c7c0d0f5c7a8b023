// Package api is a thin typed client for the car-control backend REST API.
// Every method performs exactly one best-effort round trip: no retry, no
// caching. Read operations degrade to nil on failure (the caller renders an
// empty state); write operations surface a typed *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/marufujisaki/car-control-cli/internal/errs"
	"github.com/marufujisaki/car-control-cli/internal/model"
)

// Client calls the backend over HTTP against a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
	token      string
}

// New constructs a Client. log must not be nil.
func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// SetToken attaches a session bearer token to subsequent requests.
// An empty token removes the header again.
func (c *Client) SetToken(tok string) { c.token = tok }

// APIError is a non-success response from the backend, with the message
// parsed from the body when the body was parseable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto sentinel errors so callers can use
// errors.Is without inspecting the status code.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.ErrUnauthorized
	case http.StatusNotFound:
		return errs.ErrNotFound
	}
	return nil
}

// ExchangeToken trades an identity-provider ID token for an application
// user via POST /auth/firebase.
func (c *Client) ExchangeToken(ctx context.Context, idToken string) (model.User, error) {
	payload := map[string]string{"token": idToken}
	var resp struct {
		User model.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/firebase", payload, &resp); err != nil {
		return model.User{}, err
	}
	if resp.User.ID == "" {
		return model.User{}, fmt.Errorf("%w: auth exchange returned no user", errs.ErrDecode)
	}
	return resp.User, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if rid, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", rid.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = errResp.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", errs.ErrDecode, method, path, err)
	}
	return nil
}

// getList performs a read that degrades to failure=true on any error, so
// resource-specific wrappers can log and hand nil to the caller. A nil
// result means "no data available", not "empty collection".
func (c *Client) getList(ctx context.Context, path string, out any) bool {
	if err := c.doJSON(ctx, http.MethodGet, path, nil, out); err != nil {
		c.log.Error("read failed", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}
