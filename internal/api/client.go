// Package api is the HTTP client for the scoring backend.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/network/encoding"
	"github.com/oapi-codegen/runtime"
)

const DefaultTimeout = 15 * time.Second

var (
	ErrRequest    = errors.New("failed to create request")
	ErrResponse   = errors.New("request failed")
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrServerURL  = errors.New("invalid server url")
)

// HTTPRequestDoer performs HTTP requests. *http.Client satisfies it.
type HTTPRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn can modify a request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

type ClientOption func(*Client) error

func WithHTTPClient(doer HTTPRequestDoer) ClientOption {
	return func(c *Client) error {
		c.client = doer

		return nil
	}
}

func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.editors = append(c.editors, fn)

		return nil
	}
}

type Client struct {
	server  string
	client  HTTPRequestDoer
	editors []RequestEditorFn
}

// NewClient creates a client for the backend rooted at server.
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	if _, err := url.Parse(server); err != nil || server == "" {
		return nil, errors.Join(err, ErrServerURL)
	}

	if !strings.HasSuffix(server, "/") {
		server += "/"
	}

	client := &Client{server: server}
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	if client.client == nil {
		client.client = &http.Client{Timeout: DefaultTimeout}
	}

	return client, nil
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that is sent as the X-Request-ID header.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any) (*http.Response, error) {
	operation, errURL := url.Parse(c.server + strings.TrimPrefix(path, "/"))
	if errURL != nil {
		return nil, errors.Join(errURL, ErrRequest)
	}

	if len(query) > 0 {
		operation.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, errEncode := encoding.MarshalJSON(body)
		if errEncode != nil {
			return nil, errors.Join(errEncode, ErrRequest)
		}

		reader = encoded
	}

	req, errReq := http.NewRequestWithContext(ctx, method, operation.String(), reader)
	if errReq != nil {
		return nil, errors.Join(errReq, ErrRequest)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	for _, editor := range c.editors {
		if err := editor(ctx, req); err != nil {
			return nil, errors.Join(err, ErrRequest)
		}
	}

	resp, errResp := c.client.Do(req)
	if errResp != nil {
		return nil, errors.Join(errResp, ErrResponse)
	}

	return resp, nil
}

// getJSON fetches a resource and decodes it into T. Any non 2xx status is an error.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var empty T

	resp, errResp := c.do(ctx, http.MethodGet, path, query, nil)
	if errResp != nil {
		return empty, errResp
	}

	defer closeBody(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("%w: %s %d", ErrHTTPStatus, path, resp.StatusCode)
	}

	value, errDecode := encoding.UnmarshalJSON[T](resp.Body)
	if errDecode != nil {
		return empty, errors.Join(errDecode, ErrResponse)
	}

	return value, nil
}

// readBody returns the raw response body. Non 2xx responses are returned with their body
// when it is JSON, so that business errors can be shown to the user.
func (c *Client) readBody(ctx context.Context, method string, path string, query url.Values, body any) ([]byte, error) {
	resp, errResp := c.do(ctx, method, path, query, body)
	if errResp != nil {
		return nil, errResp
	}

	defer closeBody(resp.Body)

	raw, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return nil, errors.Join(errRead, ErrResponse)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return raw, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return raw, nil
	}

	return nil, fmt.Errorf("%w: %s %d", ErrHTTPStatus, path, resp.StatusCode)
}

func closeBody(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Error("Failed to close response body", slog.String("error", err.Error()))
	}
}

// pathParam renders a simple style path parameter.
func pathParam(name string, value any) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", errors.Join(err, ErrRequest)
	}

	return param, nil
}

// queryParams renders form style query parameters, in the order given.
func queryParams(pairs ...any) (url.Values, error) {
	values := url.Values{}

	for idx := 0; idx+1 < len(pairs); idx += 2 {
		name, ok := pairs[idx].(string)
		if !ok {
			return nil, ErrRequest
		}

		fragment, errStyle := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, pairs[idx+1])
		if errStyle != nil {
			return nil, errors.Join(errStyle, ErrRequest)
		}

		parsed, errParse := url.ParseQuery(fragment)
		if errParse != nil {
			return nil, errors.Join(errParse, ErrRequest)
		}

		for key, entries := range parsed {
			for _, entry := range entries {
				values.Add(key, entry)
			}
		}
	}

	return values, nil
}
