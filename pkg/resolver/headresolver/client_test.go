package headresolver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"unshortener/pkg/domain"
	"unshortener/pkg/resolver/headresolver"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newStubClient(fn rtFunc) *headresolver.Client {
	return headresolver.New(&http.Client{Transport: fn}, headresolver.Options{UserAgent: "unshortener-test"})
}

func respond(r *http.Request, status int, location string) *http.Response {
	h := http.Header{}
	if location != "" {
		h.Set("Location", location)
	}

	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    r,
	}
}

func TestIsShortenerHost(t *testing.T) {
	for _, host := range []string{"bit.ly", "tinyurl.com", "goo.gl", "t.co", "shorturl.at", "lnkd.in"} {
		require.True(t, headresolver.IsShortenerHost(host), host)
	}
	for _, host := range []string{"example.com", "www.bit.ly", "bit.ly:443", "BIT.LY", ""} {
		require.False(t, headresolver.IsShortenerHost(host), host)
	}
}

func TestClient_Resolve_FollowsRedirectsWithHead(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()

		switch r.URL.Path {
		case "/s/abc":
			http.Redirect(w, r, "/hop", http.StatusMovedPermanently)
		case "/hop":
			http.Redirect(w, r, "/final?x=1", http.StatusFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := headresolver.New(srv.Client(), headresolver.Options{Timeout: 5 * time.Second})
	res := c.Resolve(context.Background(), srv.URL+"/s/abc")

	require.Equal(t, domain.OutcomeResolved, res.Outcome)
	require.Equal(t, srv.URL+"/final?x=1", res.String())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{http.MethodHead, http.MethodHead, http.MethodHead}, methods)
}

func TestClient_Resolve_NonSuccessStatusStillResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/s/gone" {
			http.Redirect(w, r, "/missing", http.StatusFound)

			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	res := headresolver.New(srv.Client(), headresolver.Options{}).Resolve(context.Background(), srv.URL+"/s/gone")
	require.Equal(t, domain.Resolved(srv.URL+"/missing"), res)
}

func TestClient_Resolve_ShortenerHosts(t *testing.T) {
	c := newStubClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodHead, r.Method)
		require.Equal(t, "unshortener-test", r.Header.Get("User-Agent"))

		switch r.URL.Host + r.URL.Path {
		case "bit.ly/good":
			return respond(r, http.StatusMovedPermanently, "https://example.com/final"), nil
		case "bit.ly/dead":
			return respond(r, http.StatusMovedPermanently, "https://t.co/"), nil
		default:
			return respond(r, http.StatusOK, ""), nil
		}
	})

	require.Equal(t, domain.Resolved("https://example.com/final"),
		c.Resolve(context.Background(), "https://bit.ly/good"))

	res := c.Resolve(context.Background(), "https://bit.ly/dead")
	require.Equal(t, domain.OutcomeShortenerLoop, res.Outcome)
	require.Equal(t, "Error: Still on shortener domain", res.String())

	// no redirect at all: the short URL itself is the final URL
	res = c.Resolve(context.Background(), "https://lnkd.in/xyz")
	require.Equal(t, "Error: Still on shortener domain", res.String())
}

func TestClient_Resolve_NetworkFailure(t *testing.T) {
	c := newStubClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: lookup badhost.invalid: no such host")
	})

	res := c.Resolve(context.Background(), "http://badhost.invalid")
	require.Equal(t, domain.OutcomeNetworkError, res.Outcome)
	require.True(t, strings.HasPrefix(res.String(), "Error: "), res.String())
	require.Contains(t, res.String(), "no such host")
}

func TestClient_Resolve_InvalidURLs(t *testing.T) {
	// the default transport rejects these before dialing
	c := headresolver.New(&http.Client{}, headresolver.Options{})

	for _, in := range []string{"", "not a url", "ftp://example.com/file", "http://exa mple.com"} {
		res := c.Resolve(context.Background(), in)
		require.Equal(t, domain.OutcomeNetworkError, res.Outcome, in)
		require.True(t, strings.HasPrefix(res.String(), "Error: "), res.String())
	}
}

func TestClient_Resolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := headresolver.New(srv.Client(), headresolver.Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	res := c.Resolve(context.Background(), srv.URL)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, domain.OutcomeNetworkError, res.Outcome)
	require.Contains(t, res.String(), context.DeadlineExceeded.Error())
}

func TestClient_Resolve_TooManyRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	res := headresolver.New(srv.Client(), headresolver.Options{}).Resolve(context.Background(), srv.URL+"/loop")
	require.Equal(t, domain.OutcomeNetworkError, res.Outcome)
	require.Contains(t, res.String(), "stopped after 10 redirects")
}
