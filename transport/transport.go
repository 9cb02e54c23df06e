// Package transport builds and executes the single HTTP GET request a
// service evaluation issues against the resolved gateway URL. One request
// per invocation, no retries, no connection reuse across evaluations.
package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/c360/semfed/errors"
)

// BuildRequest constructs the outbound GET request: the query text is
// percent-encoded and appended as the query parameter, and a single
// Accept header advertises the configured result media type. No other
// headers, no body, no authentication.
func BuildRequest(ctx context.Context, endpointURL, queryText, accept string) (*http.Request, error) {
	target := endpointURL + "?query=" + encodeQuery(queryText)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Transport", "BuildRequest", "request construction")
	}
	req.Header.Set("Accept", accept)
	return req, nil
}

// encodeQuery percent-encodes the query text as a URL query component.
// QueryEscape uses '+' for spaces; gateways expect RFC 3986 percent
// encoding, so spaces become %20.
func encodeQuery(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Executor performs the remote round trip and validates the response
// status. Each Execute call owns its client and response: every exit path
// releases them, and idle connections are dropped when the returned body
// is closed.
type Executor struct {
	timeout time.Duration
	client  *http.Client // nil means a fresh client per call
	logger  *slog.Logger
}

// NewExecutor creates an executor with the given per-request timeout.
// A nil logger falls back to slog.Default.
func NewExecutor(timeout time.Duration, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{timeout: timeout, logger: logger}
}

// WithClient pins the executor to a caller-supplied HTTP client instead
// of a per-call one. Intended for tests that need the httptest client.
func (e *Executor) WithClient(client *http.Client) *Executor {
	e.client = client
	return e
}

// Execute sends the request and validates the status line.
//
// On status 200 it returns the response body for the result converter;
// closing the returned ReadCloser drains the remainder and releases the
// connection. On any other status the body is drained, discarded, and an
// HTTP-status error carrying the code is returned. Transport failures are
// rewrapped as transport-kind errors, or cancellation-kind when the
// request context was cancelled or timed out.
func (e *Executor) Execute(req *http.Request) (io.ReadCloser, error) {
	client := e.client
	ownsClient := false
	if client == nil {
		client = &http.Client{Timeout: e.timeout}
		ownsClient = true
	}

	resp, err := client.Do(req)
	if err != nil {
		if ownsClient {
			client.CloseIdleConnections()
		}
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, errors.WrapCancelled(err, "Executor", "Execute", "remote request")
		}
		return nil, errors.WrapTransport(err, "Executor", "Execute", "remote request")
	}

	if resp.StatusCode != http.StatusOK {
		e.logger.Debug("remote returned non-success status",
			"url", req.URL.Redacted(), "status", resp.StatusCode)
		discard(resp.Body)
		if ownsClient {
			client.CloseIdleConnections()
		}
		return nil, errors.WrapHTTPStatus(resp.StatusCode, "Executor", "Execute")
	}

	body := &scopedBody{rc: resp.Body}
	if ownsClient {
		body.release = client.CloseIdleConnections
	}
	return body, nil
}

// discard drains and closes a response body so the transport can release
// the connection.
func discard(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}

// scopedBody ties the response body to the per-call client: Close drains
// the remainder, closes the body, and releases idle connections. Close is
// idempotent.
type scopedBody struct {
	rc      io.ReadCloser
	release func()
	closed  bool
}

func (b *scopedBody) Read(p []byte) (int, error) {
	return b.rc.Read(p)
}

func (b *scopedBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	_, _ = io.Copy(io.Discard, b.rc)
	err := b.rc.Close()
	if b.release != nil {
		b.release()
	}
	return err
}
