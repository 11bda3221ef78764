package http

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a thin wrapper around resty. Every request the SDK makes goes
// through DoRequest; there is deliberately no retry or backoff here, each
// call is a single synchronous round trip.
type Client struct {
	client *resty.Client
}

// NewClient creates a transport client. resty picks up proxy settings from
// the environment (HTTP_PROXY / HTTPS_PROXY) on its own.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout)

	return &Client{client: client}
}

// RequestOptions carries the per-request pieces: extra headers, query
// parameters and an optional JSON body.
type RequestOptions struct {
	Headers map[string]string
	Params  map[string]any
	JSON    any
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.client.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	r.SetHeader("Accept", "*/*")
	r.SetHeader("Connection", "keep-alive")
	r.SetHeader("User-Agent", "@algobulls/gobulls")
	return r
}

// DoRequest issues one request against url. The method string is used as-is
// after upper-casing, so verbs like OPTIONS work too.
func (c *Client) DoRequest(ctx context.Context, method, url string, opt *RequestOptions) (*resty.Response, error) {
	rc := c.newRequest(ctx)
	if opt != nil {
		for k, v := range opt.Headers {
			rc.SetHeader(k, v)
		}
		if opt.Params != nil {
			rc.SetQueryParamsFromValues(toValues(opt.Params))
		}
		if opt.JSON != nil {
			rc.SetHeader("Content-Type", "application/json")
			rc.SetBody(opt.JSON)
		}
	}

	return rc.Execute(strings.ToUpper(method), url)
}

func toValues(m map[string]any) map[string][]string {
	v := make(map[string][]string, len(m))
	for k, val := range m {
		switch t := val.(type) {
		case []string:
			v[k] = t
		default:
			v[k] = []string{fmt.Sprint(val)}
		}
	}
	return v
}
