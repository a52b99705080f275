package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func requestLog(t *testing.T, logs *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("logs status and route", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		router := gin.New()
		router.Use(GinMiddleware(zap.New(core)))
		router.GET("/license-plates/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/license-plates/abc?x=1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		entry := requestLog(t, logs)
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, int64(200), fields["status"])
		assert.Equal(t, "/license-plates/:id", fields["route"])
		assert.Equal(t, "x=1", fields["query"])
	})

	t.Run("level follows status", func(t *testing.T) {
		for status, level := range map[int]zapcore.Level{
			http.StatusNotFound:            zapcore.WarnLevel,
			http.StatusInternalServerError: zapcore.ErrorLevel,
		} {
			core, logs := observer.New(zapcore.InfoLevel)
			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/x", func(c *gin.Context) { c.Status(status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, level, requestLog(t, logs).Level, "status %d", status)
		}
	})

	t.Run("propagates ids into the request context", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		actor := uuid.New()

		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(GinRequestIDKey, "req-123")
			c.Next()
		})
		router.Use(GinMiddleware(zap.New(core)))

		var gotRequest string
		var gotActor uuid.UUID
		router.GET("/x", func(c *gin.Context) {
			ctx := c.Request.Context()
			gotRequest = GetRequestID(ctx)
			gotActor = GetActorID(ctx)
			L(ctx).Info("inside handler")
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(ActorHeader, actor.String())
		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "req-123", gotRequest)
		assert.Equal(t, actor, gotActor)

		inner := logs.FilterMessage("inside handler").All()
		require.Len(t, inner, 1)
		assert.Equal(t, "req-123", inner[0].ContextMap()["request_id"])
		assert.Equal(t, actor.String(), inner[0].ContextMap()["actor_id"])
		assert.Equal(t, "req-123", requestLog(t, logs).ContextMap()["request_id"])
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))

	l := zap.NewExample()
	c.Set(GinLoggerKey, l)
	assert.Same(t, l, GetGinLogger(c))
}
