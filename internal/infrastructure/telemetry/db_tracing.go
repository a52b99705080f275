package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/erp/lpcore/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound query variables in spans; never in production
	SlowQueryThresh time.Duration
	DBSystem        string

	// TracerProvider overrides the global provider
	TracerProvider trace.TracerProvider
}

// DefaultDBTracingConfig returns tracing disabled with a 200ms slow query threshold
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingConfigFrom builds a DBTracingConfig from the telemetry section of the app config
func DBTracingConfigFrom(cfg config.TelemetryConfig) DBTracingConfig {
	c := DefaultDBTracingConfig()
	c.Enabled = cfg.DBTraceEnabled
	c.LogFullSQL = cfg.DBLogFullSQL
	if cfg.DBSlowQueryThresh > 0 {
		c.SlowQueryThresh = cfg.DBSlowQueryThresh
	}
	return c
}

// DBTracingPlugin registers otelgorm plus a callback that marks slow and failed queries
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type queryStartTimeKey struct{}

// Register installs tracing on db. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if p.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(p.config.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerTiming(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

// registerTiming runs annotate while the otelgorm span is still open
func (p *DBTracingPlugin) registerTiming(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("lpcore_timing:before_create", markStart),
		cb.Query().Before("gorm:query").Register("lpcore_timing:before_query", markStart),
		cb.Update().Before("gorm:update").Register("lpcore_timing:before_update", markStart),
		cb.Delete().Before("gorm:delete").Register("lpcore_timing:before_delete", markStart),
		cb.Row().Before("gorm:row").Register("lpcore_timing:before_row", markStart),
		cb.Raw().Before("gorm:raw").Register("lpcore_timing:before_raw", markStart),

		cb.Create().After("gorm:create").Before("otel:after_create").Register("lpcore_timing:after_create", p.annotate),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("lpcore_timing:after_query", p.annotate),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("lpcore_timing:after_update", p.annotate),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("lpcore_timing:after_delete", p.annotate),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("lpcore_timing:after_row", p.annotate),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("lpcore_timing:after_raw", p.annotate),
	)
}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey{}, time.Now())
	}
}

// annotate adds table, row count, error status and slow query marks to the current span
func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartTimeKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
