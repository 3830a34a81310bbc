// Package footballdata implements the football-data.org v4 API client
// used by the ingestion pipeline.
package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/super-predictor/internal/config"
)

// Fetcher is the provider surface the ingestion pipeline depends on.
type Fetcher interface {
	// FinishedMatches retrieves the full finished-match history for a competition.
	FinishedMatches(ctx context.Context, competition string) ([]Match, error)

	// FinishedMatchesBetween retrieves finished matches inside a date range.
	FinishedMatchesBetween(ctx context.Context, competition string, from, to time.Time) ([]Match, error)

	// ScheduledMatches retrieves upcoming fixtures for a competition.
	ScheduledMatches(ctx context.Context, competition string) ([]Match, error)
}

// Client is the retrying HTTP wrapper around the provider. Retry policy
// per call: up to MaxAttempts attempts; a 429 waits out the fixed
// cooldown and retries in place; any other non-success status is
// permanent and abandons the call immediately.
type Client struct {
	http     *retryablehttp.Client
	limiter  *rate.Limiter
	baseURL  string
	apiToken string
	logger   *logrus.Logger
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.FootballDataConfig, logger *logrus.Logger) *Client {
	cooldown := time.Duration(cfg.CooldownSeconds) * time.Second

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	rc.RetryMax = cfg.MaxAttempts - 1
	rc.RetryWaitMin = time.Second
	rc.RetryWaitMax = cooldown
	rc.Logger = nil
	rc.CheckRetry = checkRetry
	rc.Backoff = cooldownBackoff(cooldown)
	// Hand back the final response on exhausted retries so the caller
	// sees the last status instead of a wrapped transport error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:     rc,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		logger:   logger,
	}
}

// checkRetry retries rate limits and transport errors only. Any other
// non-success status is not transient, so the call gives up at once.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	return resp.StatusCode == http.StatusTooManyRequests, nil
}

// cooldownBackoff waits the fixed provider cooldown after a 429 and a
// short pause otherwise (transport errors).
func cooldownBackoff(cooldown time.Duration) retryablehttp.Backoff {
	return func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return cooldown
		}
		return min
	}
}

// FinishedMatches retrieves the full finished-match history for a competition.
func (c *Client) FinishedMatches(ctx context.Context, competition string) ([]Match, error) {
	url := fmt.Sprintf("%scompetitions/%s/matches?status=%s", c.baseURL, competition, StatusFinished)
	return c.fetchMatches(ctx, url, competition)
}

// FinishedMatchesBetween retrieves finished matches inside a date range
// (both bounds inclusive, provider semantics).
func (c *Client) FinishedMatchesBetween(ctx context.Context, competition string, from, to time.Time) ([]Match, error) {
	url := fmt.Sprintf("%scompetitions/%s/matches?status=%s&dateFrom=%s&dateTo=%s",
		c.baseURL, competition, StatusFinished, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return c.fetchMatches(ctx, url, competition)
}

// ScheduledMatches retrieves upcoming fixtures for a competition.
func (c *Client) ScheduledMatches(ctx context.Context, competition string) ([]Match, error) {
	url := fmt.Sprintf("%scompetitions/%s/matches?status=%s", c.baseURL, competition, StatusScheduled)
	return c.fetchMatches(ctx, url, competition)
}

// fetchMatches performs one provider call and normalizes the payload.
func (c *Client) fetchMatches(ctx context.Context, url, competition string) ([]Match, error) {
	payload, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"competition": competition,
			"url":         url,
		}).WithError(err).Warn("Provider fetch failed")
		return nil, fmt.Errorf("%w: %s", ErrNoData, competition)
	}

	var decoded matchesResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, NewProviderError(ErrCodeInvalidPayload, "failed to decode matches payload", 0, err)
	}

	matches := make([]Match, 0, len(decoded.Matches))
	for i := range decoded.Matches {
		matches = append(matches, decoded.Matches[i].normalize(competition))
	}
	return matches, nil
}

// fetch executes a single authenticated GET with the retry policy applied.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewProviderError(ErrCodeRequestFailed, "rate limiter interrupted", 0, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewProviderError(ErrCodeRequestFailed, "failed to build request", 0, err)
	}
	req.Header.Set("X-Auth-Token", c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewProviderError(ErrCodeRequestFailed, "request did not complete", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		// Every attempt was rate limited; the error handler returned
		// the final 429.
		return nil, NewProviderError(ErrCodeRateLimitExceeded, "rate limit persisted through all attempts", resp.StatusCode, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(ErrCodeBadStatus, fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewProviderError(ErrCodeInvalidPayload, "failed to read response body", resp.StatusCode, err)
	}
	return body, nil
}
