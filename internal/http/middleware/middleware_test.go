package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func get(r *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterPerIP(t *testing.T) {
	log := zap.NewNop()
	r := newEngine(NewRateLimiter(1, 2).Middleware(log))

	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ok", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.2").Code, "other clients keep their own bucket")
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock
	r := newEngine(rl.Middleware(zap.NewNop()))

	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.2").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.3").Code)
	assert.Len(t, rl.visitors, 3)

	clock = clock.Add(idleTTL / 2)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ok", "10.0.0.3").Code, "active bucket kept")

	clock = clock.Add(idleTTL/2 + time.Second)
	assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.4").Code)
	assert.Len(t, rl.visitors, 2, "idle clients swept, recently seen client kept")
	assert.Contains(t, rl.visitors, "10.0.0.3")
	assert.Contains(t, rl.visitors, "10.0.0.4")
}

func TestRateLimiterDisabled(t *testing.T) {
	log := zap.NewNop()
	r := newEngine(NewRateLimiter(0, 0).Middleware(log))
	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.1").Code)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newEngine(Recovery(zap.New(core)))

	w := get(r, "/boom", "10.0.0.1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestLoggingRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(Logging(zap.New(core)))

	w := get(r, "/ok", "10.0.0.1")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("request").All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[1].ContextMap()["request_id"])
}
