// Package forpharma is the HTTP client for the platform REST backend. It implements
// gateway.ForPharmaGateway.
package forpharma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"forpharma-console/config"
	"forpharma-console/internal/domain/gateway"

	"github.com/sirupsen/logrus"
)

// ErrInvalidResponse is returned when the backend answers with a body that is not
// the expected JSON shape.
var ErrInvalidResponse = errors.New("invalid response from platform backend")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform backend returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == gateway.ErrUpstreamRejected &&
		e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// envelope is the {success, data, message} wrapper used by every endpoint except login.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

var _ gateway.ForPharmaGateway = (*Client)(nil)

func NewClient(cfg config.UpstreamConfig, log *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do sends one JSON request and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) ([]byte, error) {
	if body == nil {
		return c.send(ctx, method, path, token, nil, "")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, method, path, token, bytes.NewReader(payload), "application/json")
}

func (c *Client) send(ctx context.Context, method, path, token string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).Warnf("Failed to call platform backend: %+v", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("Platform backend call")

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, gateway.ErrUpstreamUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

// call sends a request and decodes the envelope's data into out, when out is non-nil.
func (c *Client) call(ctx context.Context, method, path, token string, body, out interface{}) (*envelope, error) {
	raw, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}

	env := &envelope{}
	if len(bytes.TrimSpace(raw)) == 0 {
		env.Success = true
		return env, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return env, nil
}

// decodeBody reads a body that is either the data envelope or the bare value. The
// user and organization endpoints answer both ways.
func decodeBody(raw []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			trimmed = env.Data
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
