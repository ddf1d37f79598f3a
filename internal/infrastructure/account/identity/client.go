// Package identity verifies bearer tokens against the identity service's
// introspection endpoint and resolves them to principals.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/user"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/cache"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/resilience"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

const defaultRequestTimeout = 5 * time.Second

// errTransient marks failures where the identity service itself is
// unreachable or broken, as opposed to a rejected token. Only transient
// failures count against the circuit breaker.
var errTransient = errors.New("identity service transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	RequestTimeout time.Duration
	TokenCacheTTL  time.Duration
	Breaker        resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient    *fasthttp.Client
	introspectURL string
	adminKey      string
	timeout       time.Duration
	breaker       *resilience.CircuitBreaker
	useBreaker    bool
	tokens        *cache.Store
	flight        resilience.SingleFlight
	logger        *logging.Logger
}

func NewClient(httpClient *fasthttp.Client, cfg Config, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &fasthttp.Client{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	var tokens *cache.Store
	if cfg.TokenCacheTTL > 0 {
		tokens = cache.NewStore(cfg.TokenCacheTTL)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      cfg.AdminKey,
		timeout:       cfg.RequestTimeout,
		breaker:       resilience.NewCircuitBreaker(cfg.Breaker),
		useBreaker:    cfg.Breaker.Enabled,
		tokens:        tokens,
		logger:        logger,
	}
}

// VerifyAccessToken introspects a bearer token. Concurrent checks of the
// same token share one upstream call, and verified principals are held in
// a short-lived cache.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if c.tokens != nil {
		if cached, ok := c.tokens.Get(ctx, key); ok {
			if principal, ok := cached.(user.Principal); ok {
				return principal, nil
			}
		}
	}

	value, err, _ := c.flight.Do(key, func() (any, error) {
		principal, err := c.introspect(ctx, token)
		if err != nil {
			return nil, err
		}
		if c.tokens != nil {
			c.tokens.Set(ctx, key, principal)
		}
		return principal, nil
	})
	if err != nil {
		if errors.Is(err, errTransient) {
			return user.Principal{}, fmt.Errorf("%w: identity service", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	principal, ok := value.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected introspection result type")
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.useBreaker {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, errors.Mark(err, errTransient)
		}
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	if err := sonic.ConfigDefault.NewEncoder(body).Encode(introspectRequest{Token: token}); err != nil {
		return user.Principal{}, fmt.Errorf("encode introspect request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}
	req.SetBody(body.B)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		c.recordFailure()
		c.logger.WarnContext(ctx, "identity introspection request failed", "error", err)
		return user.Principal{}, errors.Mark(errors.Wrap(err, "request introspection"), errTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		c.recordSuccess()
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case status != fasthttp.StatusOK:
		c.recordFailure()
		c.logger.WarnContext(ctx, "identity introspection non-200", "status_code", status)
		return user.Principal{}, errors.Mark(errors.Newf("introspection failed with status %d", status), errTransient)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		c.recordFailure()
		return user.Principal{}, errors.Mark(errors.Wrap(err, "decode introspect response"), errTransient)
	}
	c.recordSuccess()

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID:   decoded.UserID,
		Username: decoded.Username,
	}, nil
}

func (c *Client) recordSuccess() {
	if c.useBreaker {
		c.breaker.RecordSuccess()
	}
}

func (c *Client) recordFailure() {
	if c.useBreaker {
		c.breaker.RecordFailure()
	}
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active   bool   `json:"active"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
