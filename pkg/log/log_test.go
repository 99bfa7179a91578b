package log

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapGlobal points the package logger at buf for the test's duration.
func swapGlobal(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	prev := global
	global = zerolog.New(buf)
	t.Cleanup(func() { global = prev })
}

func TestChainedCallsOnAccessors(t *testing.T) {
	var buf bytes.Buffer
	swapGlobal(t, &buf)

	// level methods chain directly off both accessors
	L().Warn().Str("key", "value").Msg("global chained")
	Ctx(context.Background()).Error().Msg("fallback chained")

	out := buf.String()
	assert.Contains(t, out, "global chained")
	assert.Contains(t, out, "fallback chained")
}

func TestCtxReturnsStoredLogger(t *testing.T) {
	var fallback bytes.Buffer
	swapGlobal(t, &fallback)

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), zerolog.New(&buf))

	Ctx(ctx).Info().Str(FieldUsername, "alice").Msg("stored logger used")

	assert.Contains(t, buf.String(), `"username":"alice"`)
	assert.Empty(t, fallback.String())
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	engine := gin.New()
	engine.Use(GinMiddleware(&logger))
	engine.GET("/ping", func(c *gin.Context) {
		// handlers log through the request-scoped child
		Ctx(c.Request.Context()).Info().Msg("handled")
		c.Status(http.StatusOK)
	})

	t.Run("generates a request id and logs the request", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		out := buf.String()
		assert.Contains(t, out, "handled")
		assert.Contains(t, out, "request completed")
		assert.Contains(t, out, `"path":"/ping"`)
	})

	t.Run("propagates a caller-supplied request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-42")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})
}
