package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const DefaultBaseURL = "http://localhost:9001"

// Client talks to the task service REST API.
type Client struct {
	rest    *resty.Client
	HTTP    *http.Client
	BaseURL string

	group   Group
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

type options struct {
	verbose bool
	log     *zap.Logger
	timeout time.Duration
	breaker *BreakerConfig
	base    http.RoundTripper
}

type Option func(*options)

// WithVerbose logs one line per request and response, including latency.
func WithVerbose(enabled bool) Option {
	return func(o *options) {
		o.verbose = enabled
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithTimeout bounds every single HTTP call. Zero means no client-side bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithBreaker guards all calls with a circuit breaker.
func WithBreaker(cfg BreakerConfig) Option {
	return func(o *options) {
		c := cfg
		o.breaker = &c
	}
}

// WithTransport replaces the base round tripper. Auth and logging still wrap it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// loggingRoundTripper wraps an underlying transport and emits one entry per
// request and response when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	log  *zap.Logger
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.log.Debug("task api request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		t.log.Debug("task api error", zap.Duration("after", dur), zap.Error(err))
	} else {
		t.log.Debug("task api response",
			zap.Int("status", resp.StatusCode),
			zap.String("status_text", http.StatusText(resp.StatusCode)),
			zap.Duration("latency", dur))
	}
	return resp, err
}

func NewClient(ctx context.Context, baseURL, token string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("task api client: ctx is nil")
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("task api client: invalid base URL %q", baseURL)
	}

	transport := o.base
	if transport == nil {
		transport = http.DefaultTransport
	}
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, log: o.log}
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	// Always provide an http.Client so verbose logging works even without a token.
	hc := &http.Client{Transport: transport, Timeout: o.timeout}

	rest := resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	c := &Client{
		rest:    rest,
		HTTP:    hc,
		BaseURL: baseURL,
		log:     o.log,
	}
	if o.breaker != nil {
		c.breaker = newBreaker(*o.breaker, o.log)
	}
	return c, nil
}

type call struct {
	method string
	path   string // resty template, e.g. /api/tasks/{id}
	params map[string]string
	query  url.Values
	body   any
}

func (c *call) key() string {
	return c.method + " " + c.path + "|" + stableParamsKey(c.params) + "|" + c.query.Encode()
}

// expandedPath is the request path with identifiers filled in. Used for
// error messages only.
func (c *call) expandedPath() string {
	p := c.path
	for k, v := range c.params {
		p = strings.ReplaceAll(p, "{"+k+"}", url.PathEscape(v))
	}
	return p
}

// get performs a GET and decodes the JSON body into out. Identical concurrent
// GETs share one round trip. The shared call is detached from the caller that
// started it, so one caller giving up does not fail the others; each caller
// still stops waiting when its own ctx is done.
func (c *Client) get(ctx context.Context, cl call, out any) error {
	if ctx == nil {
		return errors.New("task api: nil context")
	}
	cl.method = http.MethodGet
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(cl.key(), func() (interface{}, error) {
		return c.send(shared, cl)
	})
	select {
	case <-ctx.Done():
		return &TransportError{Method: cl.method, Path: cl.expandedPath(), Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		body, _ := res.Val.([]byte)
		return decode(cl, body, out)
	}
}

// exec performs a mutating call and decodes the JSON body into out when out
// is non-nil and the body is non-empty.
func (c *Client) exec(ctx context.Context, cl call, out any) error {
	body, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(cl, body, out)
}

func (c *Client) send(ctx context.Context, cl call) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("task api: nil context")
	}
	if c == nil || c.rest == nil {
		return nil, errors.New("task api: nil client (use NewClient)")
	}

	do := func() ([]byte, error) {
		req := c.rest.R().SetContext(ctx)
		if len(cl.params) > 0 {
			req.SetPathParams(cl.params)
		}
		if len(cl.query) > 0 {
			req.SetQueryParamsFromValues(cl.query)
		}
		if cl.body != nil {
			req.SetBody(cl.body)
		}
		resp, err := req.Execute(cl.method, cl.path)
		if err != nil {
			return nil, &TransportError{Method: cl.method, Path: cl.expandedPath(), Err: err}
		}
		if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() > 299 {
			return nil, newStatusError(cl.method, cl.expandedPath(), resp.StatusCode(), resp.Body())
		}
		return resp.Body(), nil
	}

	if c.breaker == nil {
		return do()
	}
	v, err := c.breaker.Execute(func() (interface{}, error) {
		return do()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &TransportError{Method: cl.method, Path: cl.expandedPath(), Err: fmt.Errorf("%w: %w", ErrServiceUnavailable, err)}
		}
		return nil, err
	}
	body, _ := v.([]byte)
	return body, nil
}

func decode(cl call, body []byte, out any) error {
	if out == nil || len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", cl.method, cl.expandedPath(), err)
	}
	return nil
}

func stableParamsKey(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}
