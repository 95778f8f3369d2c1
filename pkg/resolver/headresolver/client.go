// Package headresolver provides a resolver.Resolver that follows redirects
// with HTTP HEAD requests and rejects destinations that are still hosted by a
// known URL shortener.
package headresolver

import (
	"context"
	"net/http"
	"time"

	"unshortener/pkg/domain"
	"unshortener/pkg/resolver"
)

// DefaultTimeout bounds a single resolution, redirects included.
const DefaultTimeout = 10 * time.Second

// shortenerHosts is the fixed denylist of shortener hosts. Matching is exact
// against URL.Host, so a port or a subdomain does not match.
var shortenerHosts = map[string]struct{}{ //nolint: gochecknoglobals
	"bit.ly":      {},
	"tinyurl.com": {},
	"goo.gl":      {},
	"t.co":        {},
	"shorturl.at": {},
	"lnkd.in":     {},
}

// IsShortenerHost reports whether host belongs to the shortener denylist.
func IsShortenerHost(host string) bool {
	_, ok := shortenerHosts[host]

	return ok
}

// Options configure a Client.
type Options struct {
	// Timeout bounds the whole redirect chain. Zero means DefaultTimeout.
	Timeout time.Duration
	// UserAgent is sent with every request when not empty.
	UserAgent string
}

// Client resolves URLs by issuing a single HEAD request and letting the
// underlying http.Client follow redirects. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs the request and follows redirects
	options    Options
}

// Resolve issues one HEAD request for URL and classifies the final URL
// reached after redirects. The status code of the final response is not
// inspected and the response body is never read.
func (c *Client) Resolve(ctx context.Context, URL string) domain.Resolution {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, URL, nil)
	if err != nil {
		return domain.NetworkFailure(err)
	}
	if c.options.UserAgent != "" {
		req.Header.Set("User-Agent", c.options.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NetworkFailure(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// the request that produced the final response carries the final URL
	final := req.URL
	if resp.Request != nil {
		final = resp.Request.URL
	}

	if IsShortenerHost(final.Host) {
		return domain.ShortenerFailure()
	}

	return domain.Resolved(final.String())
}

// Ensure Client conforms to the resolver.Resolver interface at compile time.
var _ resolver.Resolver = (*Client)(nil)

// New constructs a Client that sends requests through httpClient.
func New(httpClient *http.Client, options Options) *Client {
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		options:    options,
	}
}
