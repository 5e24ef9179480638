package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Quote is a spot price for one BTC.
type Quote struct {
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ErrCooldown is returned when a fetch is attempted before the cooldown since the
// caller's previous fetch has elapsed.
var ErrCooldown = errors.New("price fetch cooling down")

// PriceError represents a non-success answer from the quote endpoint.
type PriceError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *PriceError) Error() string {
	return e.Message
}

// retryable reports whether another attempt could succeed.
func (e *PriceError) retryable() bool {
	return e.StatusCode >= 500
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL       string
	Currency      string
	Timeout       time.Duration
	Cooldown      time.Duration
	Retries       int
	RetryInterval time.Duration
	Cache         QuoteCache
	HTTPClient    *http.Client
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Client fetches the live BTC spot price from a CoinGecko-compatible endpoint.
// It keeps no record of when it was last called; callers pass that in.
type Client struct {
	baseURL       string
	currency      string
	cooldown      time.Duration
	retries       int
	retryInterval time.Duration
	cache         QuoteCache
	http          *http.Client
	breaker       *gobreaker.CircuitBreaker
	log           zerolog.Logger
	now           func() time.Time
}

// NewClient creates a quote client.
// If BaseURL is empty, defaults to "https://api.coingecko.com".
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.coingecko.com"
	}
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 200 * time.Millisecond
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		currency:      strings.ToLower(opts.Currency),
		cooldown:      opts.Cooldown,
		retries:       opts.Retries,
		retryInterval: opts.RetryInterval,
		cache:         opts.Cache,
		http:          opts.HTTPClient,
		breaker:       newBreaker("pricefeed"),
		log:           opts.Logger.With().Str("component", "pricefeed").Logger(),
		now:           opts.Now,
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 5
	}
	// Client errors mean the upstream is healthy; only transport and 5xx count.
	st.IsSuccessful = func(err error) bool {
		var pe *PriceError
		if errors.As(err, &pe) {
			return !pe.retryable() && pe.StatusCode != http.StatusTooManyRequests
		}
		return err == nil
	}
	return gobreaker.NewCircuitBreaker(st)
}

// CooldownRemaining is how long a caller whose previous fetch happened at lastFetch must
// still wait. A zero lastFetch never waits.
func (c *Client) CooldownRemaining(lastFetch time.Time) time.Duration {
	if lastFetch.IsZero() || c.cooldown <= 0 {
		return 0
	}
	if rem := c.cooldown - c.now().Sub(lastFetch); rem > 0 {
		return rem
	}
	return 0
}

// Spot returns the current BTC price. lastFetch is the time of the caller's previous
// fetch; inside the cooldown window Spot fails with ErrCooldown without any I/O.
func (c *Client) Spot(ctx context.Context, lastFetch time.Time) (Quote, error) {
	if rem := c.CooldownRemaining(lastFetch); rem > 0 {
		return Quote{}, fmt.Errorf("%w: retry in %s", ErrCooldown, rem.Round(time.Second))
	}

	key := c.cacheKey()
	if c.cache != nil {
		q, found, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Str("key", key).Msg("quote cache read failed")
		case found:
			c.log.Debug().Float64("price", q.Price).Msg("quote cache hit")
			return q, nil
		}
	}

	q, err := c.fetchWithRetry(ctx)
	if err != nil {
		return Quote{}, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, q); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("quote cache write failed")
		}
	}
	return q, nil
}

func (c *Client) cacheKey() string {
	return "btcplanner:quote:bitcoin:" + c.currency
}

func (c *Client) fetchWithRetry(ctx context.Context) (Quote, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxInterval = c.retryInterval * 10

	notify := func(err error, d time.Duration) {
		c.log.Warn().Err(err).Dur("backoff", d).Msg("retrying price fetch")
	}

	operation := func() (Quote, error) {
		v, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetch(ctx)
		})
		if err != nil {
			var pe *PriceError
			if errors.As(err, &pe) && !pe.retryable() {
				return Quote{}, backoff.Permanent(err)
			}
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return Quote{}, backoff.Permanent(err)
			}
			return Quote{}, err
		}
		return v.(Quote), nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.retries+1)),
		backoff.WithNotify(notify))
}

func (c *Client) fetch(ctx context.Context) (Quote, error) {
	u, err := url.Parse(c.baseURL + "/api/v3/simple/price")
	if err != nil {
		return Quote{}, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("ids", "bitcoin")
	q.Set("vs_currencies", c.currency)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.log.Warn().Err(err).Dur("duration", duration).Msg("price request failed")
		return Quote{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Dur("duration", duration).Str("path", u.Path).Msg("price response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return Quote{}, &PriceError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return Quote{}, &PriceError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("price API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, &PriceError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_QUOTE",
			Message:    fmt.Sprintf("failed to decode price response: %v", err),
		}
	}
	price, ok := body["bitcoin"][c.currency]
	if !ok || price <= 0 {
		return Quote{}, &PriceError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_QUOTE",
			Message:    fmt.Sprintf("price response has no positive bitcoin.%s value", c.currency),
		}
	}

	c.log.Info().Float64("price", price).Str("currency", c.currency).Msg("fetched spot price")
	return Quote{
		Price:     price,
		Currency:  c.currency,
		Source:    c.baseURL,
		FetchedAt: c.now().UTC(),
	}, nil
}
