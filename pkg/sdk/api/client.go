package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	abhttp "github.com/algobulls/gobulls/pkg/sdk/http"
)

// DefaultBaseURL is the production AlgoBulls origin.
const DefaultBaseURL = "https://api.algobulls.com/"

// defaultPageSize matches the platform's paging default for logs and order
// history.
const defaultPageSize = 1000

// Client talks to the AlgoBulls REST API. Create one with NewClient, set an
// access token obtained from the external login flow, then call the
// operation methods. Strategy registration keys are cached per
// (strategy, trading type) pair for the lifetime of the client.
type Client struct {
	baseURL     string
	http        *abhttp.Client
	accessToken string
	pageSize    int
	log         *logrus.Entry

	keyMu sync.Mutex
	keys  map[keyCacheKey]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the transport timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = abhttp.NewClient(d)
	}
}

// WithPageSize sets the page size used by GetLogs and order-history
// reports.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger overrides the client's log entry.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates an API client. An empty baseURL falls back to the
// production origin.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL:  baseURL,
		http:     abhttp.NewClient(0),
		pageSize: defaultPageSize,
		log:      logrus.WithField("component", "algobulls-api"),
		keys:     make(map[keyCacheKey]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetAccessToken stores the token sent as the Authorization header on every
// authorized call. It is expected to be set once, right after login.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// requestOptions carries the per-call knobs of sendRequest.
type requestOptions struct {
	params map[string]any
	json   any
	// noAuth skips the Authorization header (instrument search only).
	noAuth bool
	// passUnknownStatus returns the decoded body for status codes outside
	// the documented contract instead of raising ErrUnknown.
	passUnknownStatus bool
}

// sendRequest is the single chokepoint between the operation methods and
// the network. On 200 it decodes the JSON body, degrading to a
// {"response": <raw text>} wrapper when the body is not a JSON object. Any
// other status is classified into an *APIError.
func (c *Client) sendRequest(ctx context.Context, method, endpoint string, opt requestOptions) (map[string]any, error) {
	url := c.baseURL + endpoint

	var headers map[string]string
	if !opt.noAuth && c.accessToken != "" {
		headers = map[string]string{"Authorization": c.accessToken}
	}

	resp, err := c.http.DoRequest(ctx, method, url, &abhttp.RequestOptions{
		Headers: headers,
		Params:  opt.params,
		JSON:    opt.json,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}

	body := resp.Body()
	status := resp.StatusCode()

	if status == http.StatusOK {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			// Non-JSON 200 bodies are valid responses on this platform.
			return map[string]any{"response": string(body)}, nil
		}
		return decoded, nil
	}

	if kind, ok := classifyStatus(status); ok {
		return nil, newAPIError(kind, method, url, status, body)
	}

	if opt.passUnknownStatus {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, errors.Wrapf(err, "decode %d response from %s %s", status, method, url)
		}
		return decoded, nil
	}

	return nil, newAPIError(ErrUnknown, method, url, status, body)
}

// swallowQuotaError logs and absorbs Forbidden / InsufficientBalance
// failures. The platform signals quota and permission problems on the
// write-heavy operations this way, and those four operations soft-fail by
// contract instead of surfacing the error.
func (c *Client) swallowQuotaError(err error, op string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Kind != ErrForbidden && apiErr.Kind != ErrInsufficientBalance {
		return false
	}
	c.log.WithFields(logrus.Fields{
		"op":     op,
		"kind":   apiErr.Kind,
		"status": apiErr.StatusCode,
	}).Warnf("platform rejected %s: %s", op, apiErr.Body)
	return true
}
