package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// SkipPaths are request path prefixes exempt from limiting, so probes
	// and scrapes never get throttled behind console traffic.
	SkipPaths []string
}

func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Rate:      50,
		Burst:     100,
		SkipPaths: []string{"/api/v1/health"},
	}
}

type RateLimiter struct {
	limiter   *rate.Limiter
	skipPaths []string
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	defaults := DefaultRateLimiterConfig()
	if config.Rate <= 0 {
		config.Rate = defaults.Rate
	}
	if config.Burst <= 0 {
		config.Burst = defaults.Burst
	}
	if config.SkipPaths == nil {
		config.SkipPaths = defaults.SkipPaths
	}
	return &RateLimiter{
		limiter:   rate.NewLimiter(config.Rate, config.Burst),
		skipPaths: config.SkipPaths,
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range rl.skipPaths {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		if !rl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}
