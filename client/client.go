package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ncobase/pagelink/config"
	"github.com/ncobase/pagelink/ctxutil"
	"github.com/ncobase/pagelink/logging/logger"
	"github.com/ncobase/pagelink/version"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	tracerName   = "github.com/ncobase/pagelink/client"
	maxBodySize  = 32 << 20
	maxErrorBody = 512
)

// Client performs page fetches against a paged HTTP API
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	logger    *logger.Logger
	tracer    trace.Tracer
	userAgent string
	headers   map[string]string
	perPage   int
	token     string
	maxBody   int64
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger replaces the standard logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHeader adds a header to every request
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithMaxBodySize caps the bytes read from a response body
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a client from configuration
func New(cfg *config.Client, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("client configuration is nil")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logger.StdLogger(),
		tracer:    otel.Tracer(tracerName),
		userAgent: cfg.UserAgent,
		headers:   make(map[string]string, len(cfg.Headers)),
		perPage:   cfg.PerPage,
		token:     cfg.Token,
		maxBody:   maxBodySize,
	}
	if c.userAgent == "" {
		c.userAgent = version.UserAgent("pagelink")
	}
	for k, v := range cfg.Headers {
		c.headers[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.token != "" {
		c.http = withToken(c.http, c.token)
	}
	c.breaker = newBreaker(base.Host, cfg.Breaker)
	return c, nil
}

// BaseURL returns a copy of the configured base URL
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Resolve resolves a path or URL against the base URL
func (c *Client) Resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(u), nil
}

// withToken wraps hc so every request carries a bearer token
func withToken(hc *http.Client, token string) *http.Client {
	wrapped := *hc
	wrapped.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   hc.Transport,
	}
	return &wrapped
}

func newBreaker(name string, cfg *config.Breaker) *gobreaker.CircuitBreaker {
	if cfg == nil {
		cfg = config.DefaultBreaker()
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests || counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return !statusErr.Temporary()
			}
			return false
		},
	})
}

// response is a fully read HTTP response
type response struct {
	status int
	header http.Header
	body   []byte
}

// noContent reports whether the API signalled that there is nothing to decode
func (r *response) noContent() bool {
	return r.status == http.StatusNoContent || len(bytes.TrimSpace(r.body)) == 0
}

// get fetches u through the circuit breaker
func (c *Client) get(ctx context.Context, u *url.URL) (*response, error) {
	ctx, traceID := ctxutil.EnsureTraceID(ctx)
	ctx = ctxutil.SetPageURL(ctx, u.String())

	ctx, span := c.tracer.Start(ctx, "client.get", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.method", http.MethodGet), attribute.String("http.url", u.Redacted()))

	start := time.Now()
	c.logger.Debugf(ctx, "fetching page")

	out, err := c.breaker.Execute(func() (any, error) {
		return c.do(ctx, u, traceID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &IOError{URL: u.Redacted(), Err: fmt.Errorf("%w: %v", ErrCircuitOpen, err)}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warnf(ctx, "page fetch failed after %s: %v", time.Since(start), err)
		return nil, err
	}

	resp := out.(*response)
	span.SetAttributes(attribute.Int("http.status_code", resp.status))
	c.logger.Debugf(ctx, "fetched page status=%d bytes=%d in %s", resp.status, len(resp.body), time.Since(start))
	return resp, nil
}

func (c *Client) do(ctx context.Context, u *url.URL, traceID string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &IOError{URL: u.Redacted(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", traceID)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &IOError{URL: u.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &IOError{URL: u.Redacted(), Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		return nil, &IOError{URL: u.Redacted(), Err: fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, c.maxBody)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = strings.ToValidUTF8(msg[:maxErrorBody], "")
		}
		return nil, &StatusError{URL: u.Redacted(), StatusCode: resp.StatusCode, Body: msg}
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}
