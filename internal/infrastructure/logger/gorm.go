package logger

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowStatement is the threshold above which a statement is logged at warn
const DefaultSlowStatement = 200 * time.Millisecond

// GormLogConfig configures the statement logger
type GormLogConfig struct {
	Level         string // silent, error, warn, info, debug
	SlowThreshold time.Duration
	// LogNotFound also reports lookups that matched no row. Plate and
	// reservation lookups miss routinely, so they are dropped by default.
	LogNotFound bool
}

// GormLogger writes GORM statements to zap, tagged with the table they touch
// and the request's correlation fields
type GormLogger struct {
	log         *zap.Logger
	level       gormlogger.LogLevel
	slow        time.Duration
	logNotFound bool
}

// NewGormLogger creates a statement logger from cfg
func NewGormLogger(base *zap.Logger, cfg GormLogConfig) *GormLogger {
	if base == nil {
		base = zap.NewNop()
	}
	slow := cfg.SlowThreshold
	if slow == 0 {
		slow = DefaultSlowStatement
	}
	return &GormLogger{
		log:         base.Named("db"),
		level:       MapGormLogLevel(cfg.Level),
		slow:        slow,
		logNotFound: cfg.LogNotFound,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.level < min {
		return
	}
	if ce := l.log.Check(lvl, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write(Fields(ctx)...)
	}
}

// Trace implements gormlogger.Interface. Failures log at error, statements
// over the slow threshold at warn, the rest at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	took := time.Since(begin)
	stmt, rows := fc()
	fields := append(statementFields(stmt, rows, took), Fields(ctx)...)

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && !l.logNotFound {
			return
		}
		l.log.Error("Statement failed", append(fields, zap.Error(err))...)
	case l.slow > 0 && took > l.slow && l.level >= gormlogger.Warn:
		l.log.Warn("Slow statement", append(fields, zap.Duration("threshold", l.slow))...)
	case l.level >= gormlogger.Info:
		l.log.Debug("Statement executed", fields...)
	}
}

var tablePattern = regexp.MustCompile(`(?i)\b(?:from|into|update)\s+["` + "`" + `]?([a-z_][a-z0-9_]*)`)

func statementFields(stmt string, rows int64, took time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.String("table", statementTable(stmt)),
		zap.Int64("rows_affected", rows),
		zap.Float64("duration_ms", float64(took.Microseconds())/1000),
		zap.String("statement", stmt),
	}
	if strings.Contains(strings.ToUpper(stmt), "FOR UPDATE") {
		fields = append(fields, zap.Bool("row_lock", true))
	}
	return fields
}

// statementTable returns the first table a statement reads or writes, or ""
func statementTable(stmt string) string {
	m := tablePattern.FindStringSubmatch(stmt)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// MapGormLogLevel maps a configured log level onto GORM's levels.
// debug and info both enable per-statement logging.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
