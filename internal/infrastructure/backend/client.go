// Package backend contains the HTTP adapters for the intake backend API,
// the external collaborator that owns persistence. Each gateway implements
// a port from internal/core/ports; all requests share one Client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/api/metrics"
	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/ports"
)

const maxErrorBody = 1 << 20 // cap on error-envelope reads

// Client is the shared HTTP plumbing for all backend gateways: base URL,
// timeouts, request IDs, bearer attachment and error mapping.
type Client struct {
	base   string
	http   *http.Client
	tokens ports.TokenSource
	log    zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    log,
	}
}

// newRequest builds a JSON request. When authed is true the current session
// token is attached as a bearer credential; a missing token fails fast with
// domain.ErrUnauthenticated before anything reaches the wire.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		token, ok := c.tokens.Token()
		if !ok {
			return nil, domain.ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send executes the request and returns the response on any 2xx status.
// Non-2xx responses are drained, mapped onto the domain error taxonomy and
// closed. Transport failures never leak details to the caller: the real
// cause is logged and domain.ErrBackendUnavailable returned.
func (c *Client) send(endpoint string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return nil, domain.ErrBackendUnavailable
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "ok").Observe(time.Since(start).Seconds())
		return resp, nil
	}

	metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()

	mapped := mapStatus(resp.StatusCode, body)
	c.log.Warn().
		Int("status", resp.StatusCode).
		Str("endpoint", endpoint).
		Err(mapped).
		Msg("backend rejected request")
	return nil, mapped
}

// doJSON runs a request/response cycle and decodes the body into out when
// out is non-nil.
func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, body, out any, authed bool) error {
	req, err := c.newRequest(ctx, method, path, body, authed)
	if err != nil {
		return err
	}
	resp, err := c.send(endpoint, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("backend response decode failed")
		return domain.ErrBackendUnavailable
	}
	return nil
}

// mapStatus converts a non-2xx backend response to the domain taxonomy:
//
//	409                → ErrDuplicateEmail
//	401, 403           → ErrUnauthenticated
//	other, with detail → *RejectionError carrying the verbatim message
//	other, no detail   → ErrBackendUnavailable
func mapStatus(status int, body []byte) error {
	switch status {
	case http.StatusConflict:
		return domain.ErrDuplicateEmail
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthenticated
	}
	if msg := rejectionMessage(body); msg != "" {
		return &domain.RejectionError{Message: msg}
	}
	return domain.ErrBackendUnavailable
}

// rejectionMessage extracts the backend's human-readable detail. Both the
// {"detail": ...} and {"error": ...} envelopes occur in the wild.
func rejectionMessage(body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return ""
	}
	if envelope.Detail != "" {
		return envelope.Detail
	}
	return envelope.Error
}
