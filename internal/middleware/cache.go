package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge         int
	Private        bool
	NoStore        bool
	MustRevalidate bool
	Vary           []string
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:         0,
		Private:        true,
		MustRevalidate: true,
		Vary:           []string{"Accept"},
	}
}

// Cache adds cache control headers to GET responses. Mutating
// requests always get no-store.
func Cache(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		directives := make([]string, 0, 4)

		if config.NoStore {
			directives = append(directives, "no-store")
		} else {
			if config.Private {
				directives = append(directives, "private")
			} else {
				directives = append(directives, "public")
			}
			if config.MaxAge > 0 {
				directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
			} else {
				directives = append(directives, "no-cache")
			}
			if config.MustRevalidate {
				directives = append(directives, "must-revalidate")
			}
		}

		c.Header("Cache-Control", strings.Join(directives, ", "))

		if len(config.Vary) > 0 {
			c.Header("Vary", strings.Join(config.Vary, ", "))
		}

		c.Next()
	}
}
