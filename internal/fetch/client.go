// Package fetch loads pages for the tracker: over HTTP, through a headless
// browser, or from a saved file. Each visit makes exactly one attempt.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"github.com/brogergvhs/yomikazu/internal/site"
)

// Fetcher loads one page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*site.Page, error)
}

type DebugLogger interface {
	Debugf(string, ...any)
}

type ClientOptions struct {
	Timeout    time.Duration
	UserAgent  string
	Cookie     string
	CookieFile string
	// Cloudflare wraps the transport with browser-like TLS and headers.
	Cloudflare  bool
	Transport   http.RoundTripper
	DebugLogger DebugLogger
}

type Client struct {
	rc  *resty.Client
	log DebugLogger
}

func NewClient(opts ClientOptions) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	var base http.RoundTripper
	if opts.Transport != nil {
		base = opts.Transport
	} else {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			ForceAttemptHTTP2:   true,
		}
	}
	if opts.Cloudflare {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	rc := resty.New().
		SetTimeout(opts.Timeout).
		SetCookieJar(jar).
		SetRetryCount(0).
		SetLogger(disableLogger{}).
		SetTransport(roundTripper{
			base:         base,
			ua:           PickUserAgent(opts.UserAgent),
			cookieHeader: joinCookies(opts.Cookie, opts.CookieFile),
			log:          opts.DebugLogger,
		})

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (timeout=%s, cloudflare=%t, cookieFile=%q)\n",
			opts.Timeout, opts.Cloudflare, opts.CookieFile)
	}

	return &Client{rc: rc, log: opts.DebugLogger}, nil
}

// Fetch downloads rawURL and parses it. The returned page carries the final
// URL after redirects, the same location a browser would report.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*site.Page, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	body := resp.RawBody()
	defer func() {
		_ = body.Close()
	}()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", rawURL, resp.StatusCode())
	}

	r, err := charset.NewReader(body, resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}

	final := rawURL
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		final = resp.RawResponse.Request.URL.String()
	}

	return site.NewPage(final, r)
}

type roundTripper struct {
	base         http.RoundTripper
	ua           string
	cookieHeader string
	log          DebugLogger
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.ua != "" {
		req.Header.Set("User-Agent", rt.ua)
	}

	if rt.cookieHeader != "" && req.Header.Get("Cookie") == "" {
		req.Header.Set("Cookie", rt.cookieHeader)
	}

	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s\n", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}

func joinCookies(inline, file string) string {
	s := strings.TrimSpace(inline)
	if file == "" {
		return s
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return s
	}

	// first non-empty line
	sc := bufio.NewScanner(strings.NewReader(string(b)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if s == "" {
			return line
		}
		return s + "; " + line
	}

	return s
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
}

type disableLogger struct{}

func (disableLogger) Errorf(string, ...any) {}
func (disableLogger) Warnf(string, ...any)  {}
func (disableLogger) Debugf(string, ...any) {}
