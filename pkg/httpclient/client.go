// Package httpclient wraps the HTTP client used for feed fetches behind
// a small interface so tests can substitute canned responses.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response exposes the pieces of an HTTP response the fetchers consume.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client issues GET requests with per-request headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

type restyClient struct {
	c *resty.Client
}

// NewRestyClient builds the default resty-backed client. No retries; the
// run accepts whatever a single attempt yields.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &restyClient{c: c}
}

func (r *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.c.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
