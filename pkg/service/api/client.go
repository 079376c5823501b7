// Package api is the REST client of the case management backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	wire "github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 2
)

// Client implements interfaces.Backend over HTTP
type Client struct {
	http *resty.Client

	mu       sync.RWMutex
	userID   string
	userName string
}

var _ interfaces.Backend = &Client{}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRetry sets how often a failed GET is retried. Writes are never retried.
func WithRetry(count int, wait time.Duration) Option {
	return func(c *Client) {
		c.http.SetRetryCount(count).SetRetryWaitTime(wait)
	}
}

// WithHTTPClient replaces the underlying transport, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).
			SetBaseURL(c.http.BaseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json")
		c.http.AddRetryCondition(retryIdempotent)
	}
}

func New(baseURL string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetRetryCount(DefaultRetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		AddRetryCondition(retryIdempotent)

	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUser attributes subsequent requests to the logged in agent. An empty ID
// clears it.
func (c *Client) SetUser(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = id
	c.userName = name
}

func retryIdempotent(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

// call describes one request. A nil out skips body decoding. With list set
// the body must be a JSON array; null or an object is malformed.
type call struct {
	method string
	path   string
	params map[string]string
	query  url.Values
	body   any
	out    any
	list   bool
}

func (c *Client) do(ctx context.Context, req call) error {
	r := c.http.R().SetContext(ctx)

	c.mu.RLock()
	if c.userID != "" {
		r.SetHeader(wire.UserHeader, c.userID)
		if c.userName != "" {
			r.SetHeader(wire.UserNameHeader, c.userName)
		}
	}
	c.mu.RUnlock()

	if req.params != nil {
		r.SetPathParams(req.params)
	}
	if req.query != nil {
		r.SetQueryParamsFromValues(req.query)
	}
	if req.body != nil {
		r.SetBody(req.body)
	}

	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		return goerr.Wrap(err, "request to backend failed",
			goerr.V("method", req.method), goerr.V("path", req.path))
	}

	if resp.IsError() {
		return responseError(req, resp)
	}

	if req.out == nil {
		return nil
	}
	if req.list && !isJSONArray(resp.Body()) {
		return goerr.Wrap(interfaces.ErrMalformedResponse, "expected a JSON array",
			goerr.V("method", req.method), goerr.V("path", req.path))
	}
	if err := json.Unmarshal(resp.Body(), req.out); err != nil {
		return goerr.Wrap(interfaces.ErrMalformedResponse, "failed to decode backend response",
			goerr.V("method", req.method), goerr.V("path", req.path), goerr.V("reason", err.Error()))
	}
	return nil
}

func isJSONArray(body []byte) bool {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// responseError maps an error status to the backend sentinels, keeping the
// server's message
func responseError(req call, resp *resty.Response) error {
	var body wire.ErrorResponse
	msg := resp.Status()
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	values := []goerr.Option{
		goerr.V("method", req.method),
		goerr.V("path", req.path),
		goerr.V("status", resp.StatusCode()),
		goerr.V("message", msg),
	}

	switch resp.StatusCode() {
	case http.StatusConflict:
		values = append(values, goerr.V("requires_confirmation", body.RequiresConfirmation))
		return goerr.Wrap(interfaces.ErrConflict, "backend reported a conflict", values...)
	case http.StatusNotFound:
		return goerr.Wrap(interfaces.ErrNotFound, "backend resource not found", values...)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return goerr.Wrap(interfaces.ErrInvalidInput, "backend rejected the request", values...)
	default:
		return goerr.New("backend request failed", values...)
	}
}
