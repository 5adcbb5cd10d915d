package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doGet(engine *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimiterThrottlesAfterBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 1})
	engine := gin.New()
	engine.Use(rl.RateLimit())
	engine.GET("/api/v1/agenda/sessions", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doGet(engine, "/api/v1/agenda/sessions", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(engine, "/api/v1/agenda/sessions", nil).Code)
}

func TestRateLimiterSkipsHealthEndpoints(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 1})
	engine := gin.New()
	engine.Use(rl.RateLimit())
	engine.GET("/api/v1/agenda/sessions", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/api/v1/health/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	// exhaust the burst on console traffic
	doGet(engine, "/api/v1/agenda/sessions", nil)
	require.Equal(t, http.StatusTooManyRequests, doGet(engine, "/api/v1/agenda/sessions", nil).Code)

	// probes are never throttled
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(engine, "/api/v1/health/live", nil).Code)
	}
}

func TestRequestIDKeepsWellFormedID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	forwarded := uuid.New().String()
	w := doGet(engine, "/", map[string]string{HeaderXRequestID: forwarded})
	assert.Equal(t, forwarded, w.Header().Get(HeaderXRequestID))
}

func TestRequestIDReplacesMalformedID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(engine, "/", map[string]string{HeaderXRequestID: "<script>not-a-uuid</script>"})
	got := w.Header().Get(HeaderXRequestID)
	assert.NotEqual(t, "<script>not-a-uuid</script>", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestTimeoutSendsGatewayTimeout(t *testing.T) {
	engine := gin.New()
	engine.Use(Timeout(TimeoutConfig{Duration: 30 * time.Millisecond}))

	handlerDone := make(chan struct{})
	engine.GET("/slow", func(c *gin.Context) {
		time.Sleep(100 * time.Millisecond)
		c.String(http.StatusOK, "late response")
		close(handlerDone)
	})

	w := doGet(engine, "/slow", nil)
	// wait for the handler goroutine so its late write had every chance
	// to corrupt the response before we inspect it
	<-handlerDone

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "request timed out")
	assert.NotContains(t, w.Body.String(), "late response")
}

func TestTimeoutPassesFastRequests(t *testing.T) {
	engine := gin.New()
	engine.Use(Timeout(TimeoutConfig{Duration: time.Second}))
	engine.GET("/fast", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := doGet(engine, "/fast", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
