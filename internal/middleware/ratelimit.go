package middleware

import (
	"net/http"
	"strconv"
	"time"

	"LaunchpadPlatform/pkg/logger"
	"LaunchpadPlatform/pkg/ratelimit"
	"LaunchpadPlatform/pkg/redis"
)

// RateLimitMiddleware middleware для rate limiting запросов
type RateLimitMiddleware struct {
	logger      logger.Logger
	rateLimiter ratelimit.RateLimiter
}

// NewRateLimitMiddleware создает новый middleware для rate limiting
func NewRateLimitMiddleware(redisClient *redis.Client, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		logger:      log,
		rateLimiter: ratelimit.NewRedisRateLimiter(redisClient.Client),
	}
}

// RateLimit применяет rate limiting к запросам по IP адресу
func (m *RateLimitMiddleware) RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)

			exceeded, err := m.rateLimiter.CheckRateLimit(r.Context(), key, requests, window)
			if err != nil {
				m.logger.Error("Rate limit check failed",
					logger.String("key", key),
					logger.Error(err))
				// При ошибке rate limiting пропускаем запрос
				next.ServeHTTP(w, r)
				return
			}

			if exceeded {
				m.logger.Warn("Rate limit exceeded",
					logger.String("key", key),
					logger.String("path", r.URL.Path),
					logger.String("method", r.Method))

				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(requests))
			w.Header().Set("X-RateLimit-Window", window.String())

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey возвращает ключ для rate limiting по IP адресу клиента
func rateLimitKey(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
