package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kazino55/client/internal/event"
	"github.com/kazino55/client/internal/logger"
	"github.com/kazino55/client/internal/model"
	"github.com/kazino55/client/internal/session"
)

const (
	// DefaultBaseURL points at the production backend, versioned prefix included.
	DefaultBaseURL = "https://beta.kazino55.net/api/v1"
	// DefaultTimeout applies uniformly to every request.
	DefaultTimeout = 30 * time.Second
)

// Normalized failure messages. Backend internals are never exposed for
// server or transport failures.
const (
	msgServerError  = "server error, please try again later"
	msgNetworkError = "network connection failed"
	msgSessionEnded = "session expired, please log in again"
	msgBadResponse  = "unexpected response from server"
)

// envelope is the uniform wrapper every backend response is packaged in.
// An envelope with success=false is an application error even on HTTP 2xx.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Error     json.RawMessage `json:"error,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// fieldErrors extracts a field->message map from the envelope's error
// payload. Two shapes are tolerated: {"fields":{...}} and a bare map.
func (e *envelope) fieldErrors() map[string]string {
	if len(e.Error) == 0 {
		return nil
	}
	var wrapped struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(e.Error, &wrapped); err == nil && len(wrapped.Fields) > 0 {
		return wrapped.Fields
	}
	var bare map[string]string
	if err := json.Unmarshal(e.Error, &bare); err == nil && len(bare) > 0 {
		return bare
	}
	return nil
}

// Client is the uniform transport to the backend. It attaches the session's
// access token to every request, unwraps the response envelope, normalizes
// failures into *Error, and runs the refresh-then-retry policy on 401.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Manager
	bus     *event.Bus
}

// Options tune the client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// New creates a Client bound to the given session manager and event bus.
func New(sess *session.Manager, bus *event.Bus, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: sess,
		bus:     bus,
	}
}

// do issues a request and decodes the envelope's data into out (which may be
// nil for endpoints whose payload the caller ignores).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.doRetry(ctx, method, path, query, body, out, false)
}

func (c *Client) doRetry(ctx context.Context, method, path string, query url.Values, body, out any, retried bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: msgBadResponse, cause: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: msgBadResponse, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.L().Debugw("request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: KindNetwork, Message: msgNetworkError, cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: msgNetworkError, cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if retried {
			// Refreshed token was rejected too; give up and log out.
			c.resetSession()
			return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: msgSessionEnded}
		}
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		return c.doRetry(ctx, method, path, query, body, out, true)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logger.L().Warnw("server error", "method", method, "path", path, "status", resp.StatusCode)
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msgServerError}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msgBadResponse, cause: err}
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		// Message stays as the backend sent it, possibly empty; callers
		// that show it apply their own localized fallback.
		return &Error{
			Kind:    KindBusiness,
			Status:  resp.StatusCode,
			Message: env.Message,
			Fields:  env.fieldErrors(),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msgBadResponse, cause: err}
		}
	}
	return nil
}

// refreshSession rotates the token pair via the refresh endpoint. Any
// failure, including a missing refresh token, tears down the session and
// publishes the logged-out event so the rest of the application re-renders
// unauthenticated.
func (c *Client) refreshSession(ctx context.Context) error {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.resetSession()
		return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msgSessionEnded}
	}

	logger.L().Debugw("access token rejected, attempting refresh")

	var result model.AuthResult
	err := c.doRetry(ctx, http.MethodPost, "/auth/refresh", nil,
		map[string]string{"refreshToken": refreshToken}, &result, true)
	if err != nil {
		logger.L().Warnw("token refresh failed", "error", err)
		c.resetSession()
		return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msgSessionEnded, cause: err}
	}

	c.session.SetTokens(result.Token, result.RefreshToken)
	return nil
}

// resetSession clears all session state and notifies subscribers. This is
// the explicit replacement for reloading the whole application.
func (c *Client) resetSession() {
	c.session.ClearSession()
	if c.bus != nil {
		c.bus.Publish(event.Session{User: nil})
	}
}
