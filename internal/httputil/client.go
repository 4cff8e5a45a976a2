// Package httputil provides the shared HTTP client, the fixed site request
// headers and input sanitization utilities.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// MaxBodySize caps how much of a response body is read into memory.
const MaxBodySize = 10 * 1024 * 1024

// DefaultTimeout bounds a whole request when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

const (
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHTML  = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	siteCookies = "agreeterms=1; age_verified=1; sbr=sec:xview.tv; has_signing_key=1"
)

// Options configures the shared client.
type Options struct {
	Proxy   string        // upstream proxy URL; empty means use the environment
	Timeout time.Duration // total per-request timeout
}

// NewClient creates the process-wide client. The pool is bounded: at most
// five connections per host and ten idle connections overall.
func NewClient(opts Options) (*http.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	proxy := http.ProxyFromEnvironment
	if opts.Proxy != "" {
		u, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}
		proxy = http.ProxyURL(u)
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: proxy,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			MaxConnsPerHost:     5,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  false,
		},
	}, nil
}

// SetSiteHeaders applies the fixed browser-like header set, including the
// age-verification cookies the site expects.
// Accept-Encoding is left to the transport so gzip bodies are decoded
// transparently.
func SetSiteHeaders(req *http.Request, referer string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Sec-Ch-Ua", `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`)
	req.Header.Set("Sec-Ch-Ua-Mobile", "?0")
	req.Header.Set("Sec-Ch-Ua-Platform", `"Windows"`)
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Cookie", siteCookies)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}

// Get performs a GET request bound to ctx with the site header set.
// The caller owns the response body.
func Get(ctx context.Context, client *http.Client, rawURL, referer string) (*http.Response, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	SetSiteHeaders(req, referer)

	return client.Do(req)
}

// ReadBody drains at most MaxBodySize bytes from r.
func ReadBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
