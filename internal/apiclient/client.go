package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/client/internal/auth"
	"github.com/rs/zerolog"
)

// CorrelationHeader carries a per-request identifier.
const CorrelationHeader = "X-Correlation-ID"

const (
	maxErrorBody   = 1 << 20
	defaultTimeout = 30 * time.Second
)

var ErrInvalidPagination = errors.New("page must be >= 0 and size > 0")

// Client issues authenticated JSON requests against the API base URL. It
// holds no domain state: every call is independent and attempted once.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	tokens  auth.TokenSource
	log     zerolog.Logger
	newID   func() string
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient sends requests through a copy of hc. hc itself is never
// modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. It overrides the timeout of a client
// passed to WithHTTPClient, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, tokens auth.TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &Client{
		baseURL: u,
		tokens:  tokens,
		log:     zerolog.Nop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := http.Client{Timeout: defaultTimeout}
	if c.http != nil {
		hc = *c.http
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = &hc
	return c, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends one request. body, when non-nil, is encoded as JSON; out, when
// non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return &RemoteError{Kind: KindUnauthorized, Err: err}
	}

	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Kind: KindClient, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return &RemoteError{Kind: KindClient, Err: err}
	}

	correlationID := c.newID()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(CorrelationHeader, correlationID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With().
		Str("method", method).
		Str("path", endpoint.Path).
		Str("correlation_id", correlationID).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Request failed")
		return &RemoteError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	remote := &RemoteError{Kind: KindForStatus(resp.StatusCode), Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return remote
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Message != "":
			remote.Message = body.Message
		case body.Error != "" && body.Error != http.StatusText(resp.StatusCode):
			remote.Message = body.Error
		}
	}
	return remote
}
