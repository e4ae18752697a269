// internal/api/middleware.go
package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimitRPM   = 100
	defaultRateLimitBurst = 20
)

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newRateLimiter(rpm, burst int) *rateLimiter {
	if rpm <= 0 {
		rpm = defaultRateLimitRPM
	}
	if burst <= 0 {
		burst = defaultRateLimitBurst
	}
	return &rateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(rpm)),
		burst:    burst,
	}
}

func (rl *rateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = limiter
	}
	return limiter
}

func (rl *rateLimiter) Middleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.get(ip).Allow() {
			log.Warn("rate limit exceeded", map[string]interface{}{"ip": ip})
			abortWithError(c, errors.NewRateLimitedError(ip))
			return
		}
		c.Next()
	}
}

func recoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("unhandled panic", map[string]interface{}{
					"panic": fmt.Sprint(r),
					"path":  c.Request.URL.Path,
				})
				abortWithError(c, errors.NewInternalError(fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveHTTP(route, c.Request.Method, status, start)

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"durationMs": time.Since(start).Milliseconds(),
			"clientIp":   c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", fields)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", fields)
		default:
			log.Debug("request served", fields)
		}
	}
}

type errorResponse struct {
	Success bool                  `json:"success"`
	Error   *errors.StandardError `json:"error"`
}

// abortWithError writes err as a JSON error body with the status its code maps to.
func abortWithError(c *gin.Context, err error) {
	stdErr := errors.AsStandardError(err)
	c.AbortWithStatusJSON(errors.HTTPStatus(stdErr.Code), errorResponse{Success: false, Error: stdErr})
}
