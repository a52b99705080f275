package logger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func validSpanContext(t *testing.T) trace.SpanContext {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		base := zap.NewExample()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("ignores a value of the wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), loggerKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})
}

func TestContextValues(t *testing.T) {
	actorID := uuid.New()
	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithActorID(ctx, actorID)
	ctx = WithOperation(ctx, "confirm_pick")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, actorID, GetActorID(ctx))
	assert.Equal(t, "confirm_pick", GetOperation(ctx))

	empty := context.Background()
	assert.Empty(t, GetRequestID(empty))
	assert.Equal(t, uuid.Nil, GetActorID(empty))
	assert.Empty(t, GetOperation(empty))
}

func TestTraceIDs(t *testing.T) {
	t.Run("empty without a span", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("read from a valid span context", func(t *testing.T) {
		ctx := trace.ContextWithSpanContext(context.Background(), validSpanContext(t))
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
		assert.Equal(t, "00f067aa0ba902b7", GetSpanID(ctx))
	})
}

func TestFields(t *testing.T) {
	t.Run("skips absent values", func(t *testing.T) {
		assert.Empty(t, Fields(context.Background()))
	})

	t.Run("collects every correlation value", func(t *testing.T) {
		actorID := uuid.New()
		ctx := trace.ContextWithSpanContext(context.Background(), validSpanContext(t))
		ctx = WithRequestID(ctx, "req-1")
		ctx = WithActorID(ctx, actorID)
		ctx = WithOperation(ctx, "receive")

		keys := make([]string, 0)
		for _, f := range Fields(ctx) {
			keys = append(keys, f.Key)
		}
		assert.ElementsMatch(t, []string{"trace_id", "span_id", "request_id", "actor_id", "operation"}, keys)
	})
}

func TestL(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	actorID := uuid.New()

	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithActorID(ctx, actorID)
	ctx = WithOperation(ctx, "reserve_lp")

	L(ctx).Info("License plate reserved", zap.String("lp_id", "lp-1"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, actorID.String(), fields["actor_id"])
	assert.Equal(t, "reserve_lp", fields["operation"])
	assert.Equal(t, "lp-1", fields["lp_id"])
	assert.NotContains(t, fields, "request_id")
}

func TestL_WithoutLoggerDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		L(context.Background()).Info("dropped")
	})
}
