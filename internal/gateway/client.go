// Package gateway holds one typed client per backend domain. Every client
// shares the same HTTP core: base URL, tuned transport, rate limiting,
// bearer-token attachment and error classification. Clients never retry;
// retry policy belongs to the caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"moviedeck/internal/apierrors"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = rate.Limit(20)
	defaultBurst     = 10
	userAgent        = "moviedeck/1.0"

	// limit response size to prevent memory issue
	maxResponseSize = 5 * 1024 * 1024 // 5MB
)

// TokenSource supplies the current bearer token, if any. The session store
// implements it; the core never caches the token itself.
type TokenSource interface {
	Token() (string, bool)
}

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit rate.Limit
	Burst     int
	Logger    *logrus.Logger
	Tokens    TokenSource
}

type core struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	tokens     TokenSource
}

func newCore(config Config) *core {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = defaultRateLimit
	}
	if config.Burst == 0 {
		config.Burst = defaultBurst
	}

	return &core{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		limiter: rate.NewLimiter(config.RateLimit, config.Burst),
		logger:  config.Logger,
		tokens:  config.Tokens,
	}
}

func (c *core) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *core) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *core) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do runs one request end to end: rate limit, serialize, attach the bearer
// token when present, classify failures, decode the payload into out.
func (c *core) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &apierrors.NetworkError{Err: err}
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"url":    requestURL,
			"error":  err.Error(),
		}).Warn("HTTP request failed")
		return &apierrors.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := c.readRespBody(resp)
	if err != nil {
		return &apierrors.NetworkError{Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"method":        method,
		"url":           requestURL,
		"status":        resp.StatusCode,
		"response_size": len(respBody),
	}).Debug("API request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierrors.FromResponse(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *core) readRespBody(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > maxResponseSize {
		return nil, fmt.Errorf("response too large: %d bytes", resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("response too large: exceeded %d bytes", maxResponseSize)
	}
	return body, nil
}
