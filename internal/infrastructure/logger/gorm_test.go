package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(cfg GormLogConfig) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), cfg), recorded
}

func sqlOf(stmt string, rows int64) func() (string, int64) {
	return func() (string, int64) { return stmt, rows }
}

func TestNewGormLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		gl := NewGormLogger(nil, GormLogConfig{})
		assert.Equal(t, gormlogger.Warn, gl.level)
		assert.Equal(t, DefaultSlowStatement, gl.slow)
		assert.False(t, gl.logNotFound)
	})

	t.Run("from config", func(t *testing.T) {
		gl := NewGormLogger(zap.NewNop(), GormLogConfig{Level: "debug", SlowThreshold: time.Second, LogNotFound: true})
		assert.Equal(t, gormlogger.Info, gl.level)
		assert.Equal(t, time.Second, gl.slow)
		assert.True(t, gl.logNotFound)
	})

	var _ gormlogger.Interface = NewGormLogger(zap.NewNop(), GormLogConfig{})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), GormLogConfig{Level: "info"})
	changed, ok := gl.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.level)
	assert.Equal(t, gormlogger.Error, changed.level)
}

func TestGormLogger_Messages(t *testing.T) {
	tests := []struct {
		name  string
		level string
		log   func(gl *GormLogger)
		want  zapcore.Level
		count int
	}{
		{"info logged at info", "info", func(gl *GormLogger) { gl.Info(context.Background(), "migrated %s", "license_plates") }, zapcore.InfoLevel, 1},
		{"info suppressed at warn", "warn", func(gl *GormLogger) { gl.Info(context.Background(), "quiet") }, zapcore.InfoLevel, 0},
		{"warn logged at warn", "warn", func(gl *GormLogger) { gl.Warn(context.Background(), "pool %d", 3) }, zapcore.WarnLevel, 1},
		{"error logged at error", "error", func(gl *GormLogger) { gl.Error(context.Background(), "boom") }, zapcore.ErrorLevel, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, recorded := newObservedGormLogger(GormLogConfig{Level: tt.level})
			tt.log(gl)

			logs := recorded.All()
			require.Len(t, logs, tt.count)
			if tt.count > 0 {
				assert.Equal(t, tt.want, logs[0].Level)
			}
		})
	}
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failures log at error", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "error"})
		gl.Trace(context.Background(), time.Now(), sqlOf(`UPDATE "license_plates" SET "status"=$1 WHERE id = $2`, 0), errors.New("deadlock detected"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "Statement failed", logs[0].Message)
		assert.Equal(t, "license_plates", logs[0].ContextMap()["table"])
	})

	t.Run("record not found is dropped by default", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "error"})
		gl.Trace(context.Background(), time.Now(), sqlOf(`SELECT * FROM "demands"`, 0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("record not found is logged when configured", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "error", LogNotFound: true})
		gl.Trace(context.Background(), time.Now(), sqlOf(`SELECT * FROM "demands"`, 0), gormlogger.ErrRecordNotFound)

		assert.Len(t, recorded.All(), 1)
	})

	t.Run("slow statements log at warn", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "warn", SlowThreshold: time.Millisecond})
		gl.Trace(context.Background(), time.Now().Add(-time.Second), sqlOf(`SELECT * FROM "reservations"`, 4), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
		assert.Equal(t, "Slow statement", logs[0].Message)
		assert.Equal(t, time.Millisecond, logs[0].ContextMap()["threshold"])
	})

	t.Run("normal statements log at debug", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "info"})
		gl.Trace(context.Background(), time.Now(), sqlOf(`SELECT * FROM "status_audit" WHERE entity_id = $1`, 2), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
		fields := logs[0].ContextMap()
		assert.Equal(t, int64(2), fields["rows_affected"])
		assert.Equal(t, "status_audit", fields["table"])
		assert.NotContains(t, fields, "row_lock")
	})

	t.Run("row locks are flagged", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "info"})
		gl.Trace(context.Background(), time.Now(), sqlOf(`SELECT * FROM "license_plates" WHERE id = $1 FOR UPDATE`, 1), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, true, logs[0].ContextMap()["row_lock"])
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "silent"})
		gl.Trace(context.Background(), time.Now(), sqlOf("SELECT 1", 1), errors.New("ignored"))

		assert.Empty(t, recorded.All())
	})

	t.Run("carries correlation fields", func(t *testing.T) {
		actorID := uuid.New()
		ctx := WithRequestID(context.Background(), "commit-42")
		ctx = WithActorID(ctx, actorID)

		gl, recorded := newObservedGormLogger(GormLogConfig{Level: "info"})
		gl.Trace(ctx, time.Now(), sqlOf(`INSERT INTO "reservations" ("id") VALUES ($1)`, 1), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "commit-42", fields["request_id"])
		assert.Equal(t, actorID.String(), fields["actor_id"])
		assert.Equal(t, "reservations", fields["table"])
	})
}

func TestStatementTable(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{`SELECT * FROM "license_plates" WHERE id = $1`, "license_plates"},
		{"INSERT INTO `reservations` (`id`) VALUES (?)", "reservations"},
		{`update demands set status = 'closed'`, "demands"},
		{"SELECT 1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			assert.Equal(t, tt.want, statementTable(tt.stmt))
		})
	}
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"ERROR", gormlogger.Error},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
