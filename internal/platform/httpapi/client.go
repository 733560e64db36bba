package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"kqtrainer/internal/platform/id"
)

// FallbackMessage is shown when the gateway reports a failure without a
// usable error string, and for transport-level failures.
const FallbackMessage = "Something went wrong. Please try again."

// TokenSource supplies the bearer token attached to every request. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// APIError is a failure reported by the gateway itself: either a false
// envelope or a non-2xx status. Message carries the server's error string
// verbatim when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the uniform result wrapper every gateway operation returns.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Client speaks the gateway's envelope protocol on top of net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
	ids        id.Generator
}

func New(baseURL string, httpClient *http.Client, tokens TokenSource, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
		ids:        id.UUID{},
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := c.ids.New()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("method", method), zap.String("path", path), zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("gateway %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBytes, &env); err != nil {
		c.logger.Error("gateway response is not an envelope",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("request_id", requestID), zap.Error(err))
		return &APIError{StatusCode: resp.StatusCode, Message: FallbackMessage}
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		message := strings.TrimSpace(env.Error)
		if message == "" {
			message = FallbackMessage
		}
		c.logger.Warn("gateway reported failure",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("request_id", requestID), zap.String("error", env.Error))
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode gateway payload: %w", err)
		}
	}
	return nil
}

// MediaURL resolves a video asset reference. Absolute URLs pass through
// unchanged. Relative paths are joined against the gateway host with the
// API sub-path stripped: a base of http://host/api/v1 serves media from
// http://host.
func (c *Client) MediaURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return raw
	}
	if idx := strings.Index(u.Path, "/api"); idx >= 0 {
		u.Path = u.Path[:idx]
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(raw, "/")
	return u.String()
}
