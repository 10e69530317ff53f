package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, response size and request ID (if available).
//
// Behavior:
//   - Captures start time before request handling.
//   - After request is processed, calculates latency.
//   - Logs at warn level for 4xx and error level for 5xx responses.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"component":"http","request_id":"123e4567-...","method":"GET","path":"/api/v1/charts/candlestick","status":200,"latency_ms":85,"bytes":48211}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		lg := logger.Component("http")
		ev := lg.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = lg.Error()
		case status >= http.StatusBadRequest:
			ev = lg.Warn()
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed-window in-memory counter keyed by client IP.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to limit requests per window for each IP.
//   - If limit exceeded, returns HTTP 429 with a dto.ErrorResponse.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
