package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestAuthJWTSetsCaller(t *testing.T) {
	r := newEngine(AuthJWT("secret"))
	r.GET("/me", func(c *gin.Context) {
		caller := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.StaffID, "admin": caller.IsAdmin})
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("/me", "").Code)

	member, err := utils.GenerateToken("secret", 4, "org:member", time.Hour)
	assert.NoError(t, err)
	w := call("/me", member)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"admin":false}`, w.Body.String())
	assert.Equal(t, http.StatusForbidden, call("/admin", member).Code)

	admin, err := utils.GenerateToken("secret", 1, "org:admin", time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, call("/admin", admin).Code)

	forged, err := utils.GenerateToken("other", 1, "org:admin", time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call("/admin", forged).Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewIPRateLimiter(60, 1, time.Millisecond)
	r := newEngine(RateLimitByIP(rl, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	time.Sleep(5 * time.Millisecond)
	rl.cleanup()
	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()
}
