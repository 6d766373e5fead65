package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-service/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_AttachesRequestScopedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/orders", func(c *gin.Context) {
		v, ok := c.Get("logger")
		require.True(t, ok, "request logger must be set on the context")
		l, ok := v.(*slog.Logger)
		require.True(t, ok)

		assert.Same(t, l, logging.From(c))
		assert.NotSame(t, logging.Base(), logging.From(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
