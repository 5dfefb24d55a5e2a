package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Run("Should reject once the bucket is empty", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimit(0, 1))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "too many requests", w.Body.String())

		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("Accept", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"code":429,"msg":"too many requests","data":{}}`, w.Body.String())
	})
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Run("Should answer 504 when the handler outlives the deadline", func(t *testing.T) {
		r := gin.New()
		r.Use(Timeout(10 * time.Millisecond))
		r.GET("/", func(c *gin.Context) { <-c.Request.Context().Done() })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}

func TestMaxBodyBytes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Run("Should fail reads past the limit", func(t *testing.T) {
		var readErr error
		r := gin.New()
		r.Use(MaxBodyBytes(4))
		r.POST("/", func(c *gin.Context) {
			_, readErr = io.ReadAll(c.Request.Body)
			c.Status(http.StatusOK)
		})
		r.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
		var mbe *http.MaxBytesError
		assert.ErrorAs(t, readErr, &mbe)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	t.Run("Should generate an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.NotEmpty(t, w.Header().Get(KeyRequestID))
		assert.Equal(t, w.Header().Get(KeyRequestID), w.Body.String())
	})
	t.Run("Should keep the caller's id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set(KeyRequestID, "abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc", w.Header().Get(KeyRequestID))
	})
	t.Run("Should replace an overlong id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set(KeyRequestID, strings.Repeat("x", 65))
		r.ServeHTTP(w, req)
		assert.Len(t, w.Header().Get(KeyRequestID), 36)
	})
}

func TestConcurrencyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Run("Should answer 503 when the caller gives up waiting", func(t *testing.T) {
		r := gin.New()
		r.Use(ConcurrencyLimit(1))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody).WithContext(ctx))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
