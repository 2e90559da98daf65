package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/me/schedopt/pkg/model"
)

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	InitialInterval     time.Duration // Initial retry interval (default 100ms)
	MaxInterval         time.Duration // Maximum retry interval (default 5s)
	MaxElapsedTime      time.Duration // Maximum total retry time (default 30s)
	Multiplier          float64       // Backoff multiplier (default 2.0)
	RandomizationFactor float64       // Jitter factor (default 0.5)
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialInterval:     100 * time.Millisecond,
		MaxInterval:         5 * time.Second,
		MaxElapsedTime:      30 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.5,
	}
}

// StatusError is returned for non-2xx responses. APIErr carries the
// decoded body when the server sent a structured error.
type StatusError struct {
	StatusCode int
	APIErr     *model.APIError
}

func (e *StatusError) Error() string {
	if e.APIErr != nil {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.APIErr.Error())
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client calls a schedopt server over HTTP. It implements
// solver.Optimizer: network errors and 5xx responses are retried with
// exponential backoff, 4xx responses are not, and a circuit breaker
// stops hammering a server that keeps failing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	breaker    *gobreaker.CircuitBreaker
	retry      RetryConfig
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(rc RetryConfig) Option {
	return func(c *Client) { c.retry = rc }
}

// New creates a client for the schedopt server at baseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger.With("component", "client"),
		retry:  DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "schedopt",
		MaxRequests: 3, // test requests allowed in half-open state
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation is not a server failure.
			if err == nil {
				return true
			}
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})
	return c
}

// Optimize implements solver.Optimizer over HTTP. An instance carrying
// timeout_ms bounds the whole call, retries included.
func (c *Client) Optimize(ctx context.Context, inst *model.Instance) (*model.Schedule, error) {
	if inst.TimeoutMS != nil && *inst.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*inst.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	payload, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("marshal instance: %w", err)
	}

	var sched *model.Schedule
	operation := func() error {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		result, err := c.breaker.Execute(func() (any, error) {
			return c.postOptimize(ctx, payload)
		})
		if err != nil {
			// Open circuit: give up instead of waiting it out.
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(err)
			}
			// Client errors will not heal on retry.
			var se *StatusError
			if errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		sched = result.(*model.Schedule)
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retry.InitialInterval
	policy.MaxInterval = c.retry.MaxInterval
	policy.MaxElapsedTime = c.retry.MaxElapsedTime
	policy.Multiplier = c.retry.Multiplier
	policy.RandomizationFactor = c.retry.RandomizationFactor

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	return sched, nil
}

func (c *Client) postOptimize(ctx context.Context, payload []byte) (*model.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/optimize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("POST /optimize", "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{StatusCode: resp.StatusCode}
		var apiErr model.APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Code != "" {
			se.APIErr = &apiErr
		}
		return nil, se
	}

	var sched model.Schedule
	if err := json.Unmarshal(body, &sched); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return &sched, nil
}

// HealthStatus is the server's /healthz document.
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health probes the server's liveness endpoint. Point-in-time: no retry,
// no circuit breaker.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var health HealthStatus
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("parse health: %w", err)
	}
	return &health, nil
}
