package address

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"rhystmorgan/regform/internal/utils"
)

const (
	DefaultBaseURL   = "https://viacep.com.br"
	DefaultTimeout   = 10 * time.Second
	DefaultCacheTTL  = 10 * time.Minute
	DefaultRateLimit = 2.0
	DefaultBurst     = 4

	// PostcodeLength is the number of digits in a CEP
	PostcodeLength = 8

	maxBodySize = 64 << 10
)

// Fetcher resolves a postcode into an address
type Fetcher interface {
	Fetch(ctx context.Context, postcode string) (*Address, error)
}

type Client struct {
	http    *http.Client
	config  Config
	cache   *AddressCache
	limiter *rate.Limiter
	group   singleflight.Group
	logger  *zap.Logger
}

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(config.BaseURL, "http://") && !strings.HasPrefix(config.BaseURL, "https://") {
		return nil, fmt.Errorf("invalid base url: %s", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if config.RateLimit == 0 {
		config.RateLimit = DefaultRateLimit
	}
	if config.Burst == 0 {
		config.Burst = DefaultBurst
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		http:    &http.Client{Timeout: config.Timeout},
		config:  config,
		cache:   NewAddressCache(config.CacheTTL),
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.Burst),
		logger:  logger.Named("address"),
	}

	c.cache.StartCleanupRoutine(config.CacheTTL)

	return c, nil
}

// NormalizePostcode strips formatting and requires exactly eight digits
func NormalizePostcode(raw string) (string, error) {
	digits := utils.OnlyDigits(raw)
	if len(digits) != PostcodeLength {
		return "", NewInvalidPostcodeError(raw)
	}
	return digits, nil
}

// Fetch looks up the address of a postcode. Concurrent calls for the same
// postcode share one request, and successful answers are cached.
func (c *Client) Fetch(ctx context.Context, postcode string) (*Address, error) {
	cep, err := NormalizePostcode(postcode)
	if err != nil {
		return nil, err
	}

	if cached, found := c.cache.Get(cep); found {
		c.logger.Debug("cache hit", zap.String("cep", cep))
		return &cached, nil
	}

	// The shared request outlives any single caller; only the client
	// timeout bounds it.
	ch := c.group.DoChan(cep, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.Timeout)
		defer cancel()
		return c.fetchFromNetwork(fetchCtx, cep)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		addr := res.Val.(Address)
		return &addr, nil
	case <-ctx.Done():
		return nil, ClassifyError(ctx.Err())
	}
}

func (c *Client) fetchFromNetwork(ctx context.Context, cep string) (Address, error) {
	requestID := uuid.NewString()
	logger := c.logger.With(zap.String("request_id", requestID), zap.String("cep", cep))

	if err := c.limiter.Wait(ctx); err != nil {
		logger.Warn("rate limiter refused lookup", zap.Error(err))
		return Address{}, NewLookupError(ErrRateLimited, "rate limited", err)
	}

	start := time.Now()
	addr, err := c.doFetch(ctx, cep)
	if err != nil {
		lookupErr := ClassifyError(err)
		lookupErr.Postcode = cep
		logger.Warn("lookup failed",
			zap.String("type", string(lookupErr.Type)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Address{}, lookupErr
	}

	c.cache.Set(cep, addr)
	logger.Info("lookup succeeded", zap.Duration("elapsed", time.Since(start)))
	return addr, nil
}

func (c *Client) doFetch(ctx context.Context, cep string) (Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.config.BaseURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return Address{}, NewInvalidPostcodeError(cep)
	case resp.StatusCode == http.StatusTooManyRequests:
		return Address{}, NewLookupError(ErrRateLimited, "rate limited by server", nil)
	case resp.StatusCode != http.StatusOK:
		return Address{}, NewStatusError(resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return Address{}, NewMalformedResponseError(err)
	}

	if body.Erro {
		return Address{}, NewNotFoundError(cep)
	}

	return body.toAddress(), nil
}

func (c *Client) Invalidate(postcode string) {
	if cep, err := NormalizePostcode(postcode); err == nil {
		c.cache.Invalidate(cep)
	}
}

// Close stops the cache cleanup and releases idle connections
func (c *Client) Close() {
	c.cache.Stop()
	c.http.CloseIdleConnections()
}
