package fpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/manager"
	"github.com/riskibarqy/fpl-superlatives/internal/domain/player"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/cache"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/resilience"
	"github.com/riskibarqy/fpl-superlatives/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://fantasy.premierleague.com/api"
	defaultUserAgent   = "fpl-superlatives/1.0"
	bootstrapCacheKey  = "bootstrap-static"
	maxStandingsPages  = 200
	maxResponseBytes   = 16 << 20
	defaultCacheTTL    = 10 * time.Minute
	defaultHTTPTimeout = 20 * time.Second
)

var errFPLTransient = crerr.New("fpl transient failure")

var _ usecase.SeasonDataProvider = (*Client)(nil)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RateLimit      float64
	RateBurst      int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public fantasy API. It implements usecase.SeasonDataProvider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	limiter    *rate.Limiter
	flight     resilience.SingleFlight
	bootstrap  *cache.Store[usecase.ExternalBootstrap]
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// Defaults apply to a copy of the caller's client.
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: maxInt(cfg.MaxRetries, 0),
		logger:     logger,
		breaker: resilience.NewCircuitBreaker("fpl", cfg.CircuitBreaker, isFPLCircuitFailure,
			func(name string, from, to resilience.CircuitState) {
				logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
			},
		),
		limiter:   rate.NewLimiter(limit, burst),
		bootstrap: cache.NewStore[usecase.ExternalBootstrap](ttl),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) FetchBootstrap(ctx context.Context) (usecase.ExternalBootstrap, error) {
	return c.bootstrap.GetOrLoad(ctx, bootstrapCacheKey, func(ctx context.Context) (usecase.ExternalBootstrap, error) {
		var payload bootstrapResponse
		if err := c.doJSON(ctx, "/bootstrap-static/", nil, &payload); err != nil {
			return usecase.ExternalBootstrap{}, fmt.Errorf("fetch bootstrap-static: %w", err)
		}
		return c.mapBootstrap(ctx, payload), nil
	})
}

func (c *Client) FetchPlayerHistory(ctx context.Context, playerID string) ([]player.FixtureResult, error) {
	id, err := parseID(playerID)
	if err != nil {
		return nil, err
	}

	var payload elementSummaryResponse
	if err := c.doJSON(ctx, fmt.Sprintf("/element-summary/%d/", id), nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch element-summary element=%d: %w", id, err)
	}

	out := make([]player.FixtureResult, 0, len(payload.History))
	for _, row := range payload.History {
		out = append(out, mapFixtureResult(row))
	}
	return out, nil
}

// FetchLeagueStandings walks every standings page of a classic league.
func (c *Client) FetchLeagueStandings(ctx context.Context, leagueID int64) (usecase.ExternalLeague, error) {
	if leagueID <= 0 {
		return usecase.ExternalLeague{}, fmt.Errorf("league id must be greater than zero")
	}

	out := usecase.ExternalLeague{ID: leagueID}
	path := fmt.Sprintf("/leagues-classic/%d/standings/", leagueID)
	for page := 1; page <= maxStandingsPages; page++ {
		var payload leagueStandingsResponse
		query := map[string]string{"page_standings": strconv.Itoa(page)}
		if err := c.doJSON(ctx, path, query, &payload); err != nil {
			return usecase.ExternalLeague{}, fmt.Errorf("fetch league standings league=%d page=%d: %w", leagueID, page, err)
		}

		out.Name = firstNonEmpty(out.Name, payload.League.Name)
		for _, row := range payload.Standings.Results {
			out.Standings = append(out.Standings, mapStanding(row))
		}
		if !payload.Standings.HasNext {
			return out, nil
		}
	}

	c.logger.WarnContext(ctx, "league standings truncated", "league_id", leagueID, "pages", maxStandingsPages)
	return out, nil
}

func (c *Client) FetchEntryHistory(ctx context.Context, entryID string) (usecase.ExternalEntryHistory, error) {
	id, err := parseID(entryID)
	if err != nil {
		return usecase.ExternalEntryHistory{}, err
	}

	var payload entryHistoryResponse
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/history/", id), nil, &payload); err != nil {
		return usecase.ExternalEntryHistory{}, fmt.Errorf("fetch entry history entry=%d: %w", id, err)
	}

	out := usecase.ExternalEntryHistory{
		History: make([]manager.GameweekEntry, 0, len(payload.Current)),
		Chips:   make([]manager.ChipUsage, 0, len(payload.Chips)),
	}
	for _, row := range payload.Current {
		out.History = append(out.History, manager.GameweekEntry{
			Gameweek:           row.Event,
			Points:             row.Points,
			TotalPoints:        row.TotalPoints,
			Rank:               row.Rank,
			OverallRank:        row.OverallRank,
			Bank:               row.Bank,
			Value:              row.Value,
			EventTransfers:     row.EventTransfers,
			EventTransfersCost: row.EventTransfersCost,
			PointsOnBench:      row.PointsOnBench,
		})
	}
	for _, chip := range payload.Chips {
		out.Chips = append(out.Chips, manager.ChipUsage{
			Gameweek: chip.Event,
			Name:     manager.Chip(chip.Name),
			PlayedAt: chip.Time,
		})
	}
	return out, nil
}

func (c *Client) FetchEntryPicks(ctx context.Context, entryID string, gameweek int) (usecase.ExternalEntryPicks, error) {
	id, err := parseID(entryID)
	if err != nil {
		return usecase.ExternalEntryPicks{}, err
	}
	if gameweek <= 0 {
		return usecase.ExternalEntryPicks{}, fmt.Errorf("gameweek must be greater than zero")
	}

	var payload entryPicksResponse
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", id, gameweek), nil, &payload); err != nil {
		return usecase.ExternalEntryPicks{}, fmt.Errorf("fetch entry picks entry=%d event=%d: %w", id, gameweek, err)
	}

	out := usecase.ExternalEntryPicks{ActiveChip: payload.ActiveChip}
	for _, pick := range payload.Picks {
		out.Picks = append(out.Picks, mapPick(pick))
	}
	for _, sub := range payload.AutomaticSubs {
		out.AutoSubs = append(out.AutoSubs, manager.AutoSub{
			Gameweek:    sub.Event,
			PlayerInID:  strconv.Itoa(sub.ElementIn),
			PlayerOutID: strconv.Itoa(sub.ElementOut),
		})
	}
	return out, nil
}

func (c *Client) FetchEntryTransfers(ctx context.Context, entryID string) ([]manager.Transfer, error) {
	id, err := parseID(entryID)
	if err != nil {
		return nil, err
	}

	var payload []transferItem
	if err := c.doJSON(ctx, fmt.Sprintf("/entry/%d/transfers/", id), nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch entry transfers entry=%d: %w", id, err)
	}

	out := make([]manager.Transfer, 0, len(payload))
	for _, item := range payload {
		out = append(out, manager.Transfer{
			Gameweek:      item.Event,
			PlayerInID:    strconv.Itoa(item.ElementIn),
			PlayerInCost:  item.ElementInCost,
			PlayerOutID:   strconv.Itoa(item.ElementOut),
			PlayerOutCost: item.ElementOutCost,
			MadeAt:        item.Time,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.breaker.Execute(func() (any, error) {
			raw, reqErr := c.executeRequest(ctx, fullURL)
			if reqErr != nil {
				return nil, reqErr
			}
			return raw, nil
		})
	})
	if err != nil {
		switch {
		case stderrors.Is(err, resilience.ErrCircuitOpen):
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return fmt.Errorf("%w: fantasy api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		case isFPLCircuitFailure(err):
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fpl payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", defaultUserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Wrapf(errFPLTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errFPLTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: fpl status=%d url=%s", usecase.ErrNotFound, resp.StatusCode, fullURL)
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errFPLTransient, "fpl status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("fpl status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("fpl request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isFPLCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid fpl id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
