// Package api is the typed client for the artori REST backend. One method
// per endpoint; every method returns the parsed response or an
// apperrors.APIError.
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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/apperrors"
	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/logger"
	"github.com/brunopinheiroeu/artori-sub001/internal/session"
)

// basePath is the versioned prefix of every endpoint except /healthz.
const basePath = "/api/v1"

// Client talks to the artori backend. It holds the bearer token of the
// current session in memory, mirrored to the session store when one is
// attached. Safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	httpc     *http.Client
	store     *session.Store
	logger    zerolog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithSessionStore attaches a durable session slot. The persisted token, if
// any, becomes the client's current token.
func WithSessionStore(store *session.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "artori-go",
		httpc:     http.DefaultClient,
		logger:    logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store != nil {
		if token, err := c.store.Token(); err == nil && token != "" {
			c.token = token
		}
	}
	return c
}

// Token returns the current bearer token, "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether a bearer token is held.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// adoptSession stores the token in memory and mirrors the session to the
// store so every subsequent call carries it implicitly.
func (c *Client) adoptSession(res dto.TokenResponse) {
	c.mu.Lock()
	c.token = res.AccessToken
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.SetToken(res.AccessToken); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to persist token")
	}
	if err := c.store.SetCachedUser(res.User); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to persist cached user")
	}
	if res.User.SelectedExamID != nil {
		if err := c.store.SetSelectedExam(*res.User.SelectedExamID); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to persist exam selection")
		}
	}
}

// Logout clears the in-memory token and every persisted session key. It has
// no network effect; the token is simply forgotten.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}

// do performs one request and decodes the response into T. Non-2xx statuses
// and transport failures come back as *apperrors.APIError. No retries, no
// timeouts; both belong to the caller.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return out, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return out, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("Request failed before reaching the server")
		return out, apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, apperrors.NewNetworkError(err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, decodeError(resp.StatusCode, raw)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return out, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return out, nil
}

// decodeError maps a non-2xx response onto the error taxonomy, preferring
// the server's detail message and falling back to a generic status message
// when the body is not parseable JSON.
func decodeError(status int, raw []byte) error {
	var envelope dto.APIErrorBody
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Detail == nil {
		return apperrors.FromStatus(status, "")
	}

	switch detail := envelope.Detail.(type) {
	case string:
		return apperrors.FromStatus(status, detail)
	case []any:
		apiErr := apperrors.FromStatus(status, "validation failed")
		apiErr.Fields = map[string]string{}
		for _, item := range detail {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			field, _ := entry["field"].(string)
			message, _ := entry["message"].(string)
			if field != "" {
				apiErr.Fields[field] = message
			}
		}
		return apiErr
	default:
		return apperrors.FromStatus(status, fmt.Sprintf("%v", detail))
	}
}
