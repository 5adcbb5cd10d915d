package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig represents timeout middleware configuration
type TimeoutConfig struct {
	Duration time.Duration
}

// DefaultTimeoutConfig returns default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Duration: 30 * time.Second,
	}
}

// timeoutWriter guards the shared response writer: once the deadline fires
// and the 504 is sent, writes from the still-running handler goroutine are
// swallowed instead of racing onto the wire.
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	wrote    bool
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// markTimedOut closes the writer to the handler goroutine and reports
// whether anything had already been written.
func (w *timeoutWriter) markTimedOut() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timedOut = true
	return w.wrote
}

// Timeout bounds request handling. When the deadline passes the client gets
// a 504 immediately; the handler keeps running until it observes the
// cancelled context, but its writes no longer reach the response.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		tw := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = tw
		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			if wrote := tw.markTimedOut(); wrote {
				return
			}
			rw := tw.ResponseWriter
			rw.Header().Set("Content-Type", "application/json; charset=utf-8")
			rw.WriteHeader(http.StatusGatewayTimeout)
			body, _ := json.Marshal(ErrorResponse{
				Code:    http.StatusGatewayTimeout,
				Message: "request timed out",
				TraceID: c.GetString(ContextRequestID),
			})
			rw.Write(body)
		}
	}
}
