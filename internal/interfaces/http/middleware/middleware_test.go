package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/erp/lpcore/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(got *string) *gin.Engine {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/x", func(c *gin.Context) {
			*got = c.GetString(logger.GinRequestIDKey)
			c.Status(http.StatusNoContent)
		})
		return r
	}

	t.Run("keeps caller id", func(t *testing.T) {
		var got string
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		newRouter(&got).ServeHTTP(w, req)

		assert.Equal(t, "abc-123", got)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates when missing or oversized", func(t *testing.T) {
		for _, header := range []string{"", strings.Repeat("a", MaxRequestIDLength+1)} {
			var got string
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(RequestIDHeader, header)
			w := httptest.NewRecorder()
			newRouter(&got).ServeHTTP(w, req)

			_, err := uuid.Parse(got)
			assert.NoError(t, err)
			assert.Equal(t, got, w.Header().Get(RequestIDHeader))
		}
	})
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123")))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("disabled passes through", func(t *testing.T) {
		r := gin.New()
		r.Use(Tracing(TracingConfig{Enabled: false})...)
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("tags span with request and actor", func(t *testing.T) {
		sr := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
		t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

		r := gin.New()
		r.Use(RequestID())
		r.Use(Tracing(TracingConfig{ServiceName: "lpcore-test", Enabled: true, Provider: tp})...)
		r.GET("/license-plates/:id", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		actor := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/license-plates/1", nil)
		req.Header.Set(RequestIDHeader, "req-9")
		req.Header.Set(logger.ActorHeader, actor.String())
		r.ServeHTTP(httptest.NewRecorder(), req)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		span := spans[0]

		v, ok := spanAttr(span, "request_id")
		require.True(t, ok)
		assert.Equal(t, "req-9", v.AsString())
		v, ok = spanAttr(span, "actor_id")
		require.True(t, ok)
		assert.Equal(t, actor.String(), v.AsString())
		assert.Equal(t, codes.Error, span.Status().Code)
	})
}

func TestProfilingLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, enabled := range []bool{true, false} {
		var route, method string
		var found bool
		r := gin.New()
		r.Use(ProfilingLabels(enabled))
		r.GET("/license-plates/:id", func(c *gin.Context) {
			route, found = pprof.Label(c.Request.Context(), "route")
			method, _ = pprof.Label(c.Request.Context(), "method")
			c.Status(http.StatusNoContent)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/license-plates/123", nil))

		assert.Equal(t, enabled, found)
		if enabled {
			assert.Equal(t, "/license-plates/:id", route)
			assert.Equal(t, http.MethodGet, method)
		}
	}
}
