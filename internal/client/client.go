// Package client calls the reconciliation API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/guttosm/reconciliation-service/internal/domain/dto"
	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

const (
	// DefaultURL is the reconcile endpoint used when RECO_SERVICE_URL is unset.
	DefaultURL = "http://localhost:8080/api/reconcile"
	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 60 * time.Second

	healthPath     = "/healthz"
	payloadPreview = 700
)

// ErrAPI is matched by every error the service answered with.
var ErrAPI = errors.New("reconciliation API error")

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
	Details    map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("reconciliation API: status %d", e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	for _, field := range slices.Sorted(maps.Keys(e.Details)) {
		msg += fmt.Sprintf(" (%s %s)", field, e.Details[field])
	}
	return msg
}

// Is reports whether target is ErrAPI.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// Result is a decoded reconcile answer.
type Result struct {
	Report    model.Report
	RequestID string
	// Raw is the report exactly as the service serialized it.
	Raw json.RawMessage
}

// Client is a reconciliation API client. It is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the reconcile endpoint. An empty endpoint selects DefaultURL.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the reconcile endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Reconcile posts a reconciliation request and decodes the report.
func (c *Client) Reconcile(ctx context.Context, req dto.ReconcileRequest) (*Result, error) {
	log := logger.WithComponent("client")

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	log.Debug().
		Int("invoices", len(req.Invoices)).
		Int("bytes", len(payload)).
		Str("payload", preview(payload)).
		Str("url", c.endpoint).
		Msg("sending reconciliation request")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	result := &Result{RequestID: envelope.RequestID, Raw: envelope.Data}
	if err := json.Unmarshal(envelope.Data, &result.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	log.Debug().
		Str("request_id", result.RequestID).
		Str("status", result.Report.Status).
		Msg("reconciliation response received")
	return result, nil
}

// Health probes the liveness endpoint of the service behind the reconcile endpoint.
func (c *Client) Health(ctx context.Context) error {
	base, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	target := base.ResolveReference(&url.URL{Path: healthPath})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	_, err = c.do(httpReq)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp dto.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil {
			apiErr.Code = errResp.Error
			apiErr.Message = errResp.Message
			apiErr.RequestID = errResp.RequestID
			apiErr.Details = errResp.Details
		}
		return nil, apiErr
	}
	return body, nil
}

func preview(payload []byte) string {
	if len(payload) <= payloadPreview {
		return string(payload)
	}
	return string(payload[:payloadPreview]) + "..."
}
