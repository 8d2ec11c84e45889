package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/platform/logging"
	"github.com/calebmartin/scorestream/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultTimeout = 30 * time.Second

	// 6 MiB is comfortably above the largest scoreboard day observed.
	maxBodyBytes = 6 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches one league's scoreboard and normalizes it into the domain
// game model. Retries are deliberately absent: the refresh loop's next tick
// is the retry policy.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

// FetchScoreboard retrieves and normalizes one league's games. Concurrent
// calls for the same league share a single upstream request.
func (c *Client) FetchScoreboard(ctx context.Context, league catalog.League) ([]game.Game, error) {
	if !league.Valid() {
		return nil, crerr.Wrapf(ErrInvalidURL, "unknown league %q", league)
	}

	fullURL := fmt.Sprintf("%s/%s/%s/scoreboard", c.baseURL, league.SportSegment(), league.LeagueSegment())
	if _, err := url.ParseRequestURI(fullURL); err != nil {
		return nil, crerr.Wrapf(ErrInvalidURL, "league %s: %v", league, err)
	}

	// The breaker is consulted inside the flight so a coalesced burst reserves
	// exactly one half-open probe slot and settles it with one record call.
	out, err, shared := c.flight.Do(league.ID(), func() (any, error) {
		if c.circuitEnabled {
			if err := c.breaker.Allow(); err != nil {
				c.logger.WarnContext(ctx, "scoreboard circuit breaker rejected request",
					"league", league.ID(),
					"state", c.breaker.State(),
				)
				return nil, err
			}
		}

		raw, reqErr := c.fetchRaw(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "scoreboard fetch coalesced", "league", league.ID())
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Wrapf(ErrDecode, "unexpected payload type %T", out)
	}

	var payload scoreboardResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrapf(ErrDecode, "league %s: %v", league, err)
	}

	return c.normalize(ctx, payload, league), nil
}

func (c *Client) fetchRaw(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrapf(ErrInvalidURL, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Wrapf(errTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Wrapf(ErrInvalidResponse, "read response body: %v", err)
	}

	return raw, nil
}
