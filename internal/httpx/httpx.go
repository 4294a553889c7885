// Package httpx wraps net/http with the defaults the quote provider expects.
package httpx

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Yahoo rejects requests without a recognizable browser identity.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client is a small wrapper around http.Client with sane defaults.
// Every request carries the configured User-Agent and Accept headers unless
// the caller has already set them.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Accept    string
}

// New returns a Client with a tuned transport and the given overall request
// timeout. The timeout is the only cancellation source for outbound calls.
func New(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: defaultUserAgent,
		Accept:    "application/json",
	}
}

// Get issues a GET request with the client's default headers applied.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Accept != "" && req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", c.Accept)
	}
	return c.HTTP.Do(req)
}
