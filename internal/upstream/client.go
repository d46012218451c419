// Package upstream is the REST client for the heating controller backend.
// Every call carries the configured bearer credential; failures map onto the
// dashboard's error taxonomy and are surfaced without retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecoheat_dashboard/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client talks to the backend API rooted at baseURL (e.g. "http://ctrl:8000/api/").
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// New builds a client. A zero timeout falls back to a conservative default.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		token:   token,
	}
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	switch {
	case b.Error != "":
		return b.Error
	case b.Detail != "":
		return b.Detail
	default:
		return b.Message
	}
}

// do issues one request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " /" + path

	if err := c.checkCredential(); err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.FetchError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &models.FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	msg := eb.text()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%s: %s: %w", op, msg, models.ErrUnauthorized)
	case resp.StatusCode == http.StatusConflict:
		if msg == "" {
			msg = "conflicting state on the backend"
		}
		return &models.ConflictError{Reason: msg}
	case resp.StatusCode == http.StatusBadRequest:
		if msg == "" {
			msg = "backend rejected the request"
		}
		return models.NewValidationError("", msg)
	default:
		return &models.FetchError{Op: op, StatusCode: resp.StatusCode}
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}
