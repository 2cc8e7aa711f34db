package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/fitment/internal/infrastructure/ratelimit"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := serve(engine, http.MethodGet, "/", map[string]string{HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", seen)

	w = serve(engine, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func (s *stubLimiter) Reset(context.Context, string) error { return nil }

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
		wantRetry  string
	}{
		{
			name:       "allowed",
			limiter:    &stubLimiter{decision: ratelimit.Decision{Allowed: true, Remaining: 9}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "limited",
			limiter:    &stubLimiter{decision: ratelimit.Decision{ResetIn: 1500 * time.Millisecond}},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "2",
		},
		{
			name:       "limiter failure fails open",
			limiter:    &stubLimiter{err: errors.New("redis: connection refused")},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(RateLimit(tt.limiter, logger.Nop()))
			engine.GET("/api/stats", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := serve(engine, http.MethodGet, "/api/stats", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRetry, w.Header().Get("Retry-After"))
			require.Len(t, tt.limiter.keys, 1)
			assert.Equal(t, "ip:192.0.2.1", tt.limiter.keys[0])
		})
	}
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.Nop()))
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error occurred")
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://parts.example.com"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodGet, "/", map[string]string{"Origin": "https://parts.example.com"})
	assert.Equal(t, "https://parts.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(engine, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(engine, http.MethodOptions, "/", map[string]string{"Origin": "https://parts.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}
