package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LaunchpadPlatform/pkg/logger"
)

// stubLimiter управляемая реализация RateLimiter для тестов
type stubLimiter struct {
	exceeded bool
	err      error
}

func (s *stubLimiter) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return s.exceeded, s.err
}

func newTestMiddleware(t *testing.T, limiter *stubLimiter) *RateLimitMiddleware {
	t.Helper()

	log, err := logger.NewLogger("dev", "debug", "middleware-test")
	require.NoError(t, err)

	return &RateLimitMiddleware{logger: log, rateLimiter: limiter}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestRateLimit_Allowed проверяет пропуск запроса в пределах лимита
func TestRateLimit_Allowed(t *testing.T) {
	m := newTestMiddleware(t, &stubLimiter{})

	handler := m.RateLimit(100, time.Minute)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
}

// TestRateLimit_Exceeded проверяет отказ при превышении лимита
func TestRateLimit_Exceeded(t *testing.T) {
	m := newTestMiddleware(t, &stubLimiter{exceeded: true})

	handler := m.RateLimit(1, time.Minute)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

// TestRateLimit_LimiterError проверяет, что ошибка лимитера не блокирует запрос
func TestRateLimit_LimiterError(t *testing.T) {
	m := newTestMiddleware(t, &stubLimiter{exceeded: true, err: context.DeadlineExceeded})

	handler := m.RateLimit(1, time.Minute)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRateLimitKey проверяет выбор ключа по заголовкам запроса
func TestRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "ip:10.0.0.1:1234", rateLimitKey(req))

	req.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "ip:10.0.0.2", rateLimitKey(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.3")
	assert.Equal(t, "ip:10.0.0.3", rateLimitKey(req))
}
