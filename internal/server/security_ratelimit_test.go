package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/farms/f1/plots/0/water", nil)
	req.RemoteAddr = "192.168.1.100:1234"

	for i := 0; i < MaxRequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	retry, err := strconv.Atoi(rec.Header().Get(HeaderRetryAfter))
	require.NoError(t, err)
	assert.Positive(t, retry)
	assert.LessOrEqual(t, retry, int(RateWindow.Seconds()))

	var body middlewareError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrMsgTooManyRequests, body.Error)

	// Another client is unaffected
	other := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	detector := NewSuspiciousActivityDetector()
	detector.now = func() time.Time { return now }
	detector.windowStart = now

	for i := 0; i < MaxRequestsPerWindow; i++ {
		require.True(t, detector.RecordRequest("10.0.0.5"))
	}
	assert.False(t, detector.RecordRequest("10.0.0.5"))
	detector.RecordFailedAuth("10.0.0.5")

	now = now.Add(time.Minute)
	assert.Equal(t, RateWindow-time.Minute, detector.RetryAfter())

	now = now.Add(RateWindow)
	assert.True(t, detector.RecordRequest("10.0.0.5"))
	assert.Equal(t, RateWindow, detector.RetryAfter())

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 1, detector.requestCountByIP["10.0.0.5"])
	assert.Zero(t, detector.failedAuthByIP["10.0.0.5"])
}
