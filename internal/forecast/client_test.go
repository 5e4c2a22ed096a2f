package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{URL: srv.URL + "/", Timeout: time.Second, DefaultMonths: 12})
	c.now = func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestMonths(t *testing.T) {
	c := NewClient(Config{DefaultMonths: 12})

	tests := []struct {
		requested int
		want      int
	}{
		{0, 12},
		{1, 1},
		{6, 6},
		{36, 36},
		{60, 36},
		{-3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Months(tt.requested), "requested %d", tt.requested)
	}
}

func TestForecastDropsPastMonths(t *testing.T) {
	var got struct {
		Area   string `json:"area"`
		Months int    `json:"months"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/forecast", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ds":"2026-08","yhat":5000,"yhat_lower":4800,"yhat_upper":5200},
			{"ds":"2026-09","yhat":5100,"yhat_lower":4900,"yhat_upper":5300},
			{"ds":"2026-10","yhat":5200,"yhat_lower":5000,"yhat_upper":5400},
			{"ds":"2026-11","yhat":5300,"yhat_lower":5100,"yhat_upper":5500},
			{"ds":"2026-12","yhat":5400,"yhat_lower":5200,"yhat_upper":5600}
		]`))
	})

	points, err := c.Forecast(context.Background(), "Adyar", 2)
	require.NoError(t, err)

	assert.Equal(t, "Adyar", got.Area)
	assert.Equal(t, 2, got.Months)

	require.Len(t, points, 2)
	assert.Equal(t, "2026-10", points[0].Month)
	assert.Equal(t, "2026-11", points[1].Month)
	assert.InDelta(t, 5100, points[1].ValueLower, 1e-9)
}

func TestForecastSkipsInvalidMonth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"ds":"soon","yhat":1},{"ds":"2027-01","yhat":2}]`))
	})

	points, err := c.Forecast(context.Background(), "Adyar", 0)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2027-01", points[0].Month)
}

func TestForecastAreaNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No data found for area: Atlantis"}`))
	})

	_, err := c.Forecast(context.Background(), "Atlantis", 12)
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestForecastServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model failed to converge"}`))
	})

	_, err := c.Forecast(context.Background(), "Adyar", 12)
	require.Error(t, err)

	var serr *ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, "model failed to converge", serr.Message)
}

func TestForecastBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 5; i++ {
		_, err := c.Forecast(context.Background(), "Adyar", 12)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	_, err := c.Forecast(context.Background(), "Adyar", 12)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(5), calls.Load())
}

func TestForecastNotFoundDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 8; i++ {
		_, err := c.Forecast(context.Background(), "Atlantis", 12)
		assert.ErrorIs(t, err, ErrAreaNotFound)
	}
	assert.Equal(t, int32(8), calls.Load())
}
