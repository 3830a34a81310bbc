package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/super-predictor/internal/config"
)

const matchesPayload = `{
	"matches": [
		{
			"utcDate": "2026-08-29T15:00:00Z",
			"status": "FINISHED",
			"competition": {"code": "PL", "name": "Premier League"},
			"homeTeam": {"name": "Arsenal"},
			"awayTeam": {"name": "Chelsea"},
			"score": {"fullTime": {"home": 2, "away": 1}}
		},
		{
			"utcDate": "2026-08-30T17:30:00Z",
			"status": "SCHEDULED",
			"competition": {"code": "PL", "name": "Premier League"},
			"homeTeam": {"name": "Spurs"},
			"awayTeam": {"name": "Everton"},
			"score": {"fullTime": {"home": null, "away": null}}
		}
	]
}`

func testClientConfig(baseURL string) *config.FootballDataConfig {
	return &config.FootballDataConfig{
		BaseURL:         baseURL + "/",
		APIToken:        "test-token",
		Competitions:    []string{"PL"},
		RequestsPerSec:  1000,
		MaxAttempts:     3,
		CooldownSeconds: 0, // keep retries instant under test
		TimeoutSeconds:  5,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestClientFinishedMatches(t *testing.T) {
	var gotToken atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.Header.Get("X-Auth-Token"))
		assert.Contains(t, r.URL.RawQuery, "status=FINISHED")
		w.Write([]byte(matchesPayload))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	matches, err := client.FinishedMatches(context.Background(), "PL")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "test-token", gotToken.Load())
	assert.Equal(t, "PL", matches[0].Competition)
	assert.Equal(t, "Premier League", matches[0].League)
	assert.Equal(t, "Arsenal", matches[0].HomeTeam)
	require.NotNil(t, matches[0].HomeGoals)
	assert.Equal(t, 2, *matches[0].HomeGoals)
	assert.Nil(t, matches[1].HomeGoals)
}

func TestClientRetriesRateLimit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(matchesPayload))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	matches, err := client.FinishedMatches(context.Background(), "PL")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "one retry after the rate limit")
}

func TestClientGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	_, err := client.FinishedMatches(context.Background(), "PL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "rate limits retry up to max attempts")
}

func TestClientExhaustedRateLimitErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	_, err := client.fetch(context.Background(), server.URL+"/")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodeRateLimitExceeded, perr.Code)
	assert.Equal(t, http.StatusTooManyRequests, perr.Status)
}

func TestClientDoesNotRetryOtherErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	_, err := client.FinishedMatches(context.Background(), "PL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "non-429 failures are permanent")
}

func TestClientScheduledMatchesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "status=SCHEDULED")
		w.Write([]byte(`{"matches": []}`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	matches, err := client.ScheduledMatches(context.Background(), "PL")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestClientDateRangeQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "dateFrom=2026-08-28")
		assert.Contains(t, r.URL.RawQuery, "dateTo=2026-08-29")
		w.Write([]byte(`{"matches": []}`))
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), quietLogger())
	from := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	_, err := client.FinishedMatchesBetween(context.Background(), "PL", from, to)
	require.NoError(t, err)
}
