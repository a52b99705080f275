package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dbDurationBuckets are the query latency histogram boundaries in seconds
var dbDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DBMetrics records query counts, latency and connection pool usage.
// Pool gauges are observed on collection, so no background goroutine is needed.
type DBMetrics struct {
	queries       metric.Int64Counter
	queryDuration metric.Float64Histogram
	slowQueries   metric.Int64Counter

	slowThreshold time.Duration
	logger        *zap.Logger
	registration  metric.Registration
}

// NewDBMetrics registers the database instruments on meter.
// With sqlDB set the pool is observed as db.pool.connections{state} and db.pool.connections.max.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	m := &DBMetrics{slowThreshold: slowThreshold, logger: logger}

	var err error
	if m.queries, err = meter.Int64Counter("db.queries",
		metric.WithDescription("Database queries by operation"), metric.WithUnit("{query}")); err != nil {
		return nil, err
	}
	if m.queryDuration, err = meter.Float64Histogram("db.query.duration",
		metric.WithDescription("Database query latency"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(dbDurationBuckets...)); err != nil {
		return nil, err
	}
	if m.slowQueries, err = meter.Int64Counter("db.queries.slow",
		metric.WithDescription("Database queries slower than the configured threshold"), metric.WithUnit("{query}")); err != nil {
		return nil, err
	}

	if sqlDB == nil {
		return m, nil
	}
	connections, err := meter.Int64ObservableGauge("db.pool.connections",
		metric.WithDescription("Connections in the pool by state"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db.pool.connections.max",
		metric.WithDescription("Maximum open connections"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(attribute.String("state", "in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(attribute.String("state", "idle")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		return nil
	}, connections, maxOpen)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordQuery records one completed query
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("db.operation", operation),
		attribute.Bool("error", err != nil && !errors.Is(err, gorm.ErrRecordNotFound)),
	}
	if table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", table))
	}
	set := metric.WithAttributes(attrs...)

	m.queries.Add(ctx, 1, set)
	m.queryDuration.Record(ctx, duration.Seconds(), set)
	if duration > m.slowThreshold {
		m.slowQueries.Add(ctx, 1, set)
		m.logger.Warn("Slow query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("duration", duration),
		)
	}
}

// Stop unregisters the pool callback
func (m *DBMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	err := m.registration.Unregister()
	m.registration = nil
	return err
}

type queryMetricsStartKey struct{}

// Register installs timing callbacks around every GORM operation
func (m *DBMetrics) Register(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("lpcore_metrics:before_create", startQueryClock),
		cb.Query().Before("gorm:query").Register("lpcore_metrics:before_query", startQueryClock),
		cb.Update().Before("gorm:update").Register("lpcore_metrics:before_update", startQueryClock),
		cb.Delete().Before("gorm:delete").Register("lpcore_metrics:before_delete", startQueryClock),
		cb.Row().Before("gorm:row").Register("lpcore_metrics:before_row", startQueryClock),
		cb.Raw().Before("gorm:raw").Register("lpcore_metrics:before_raw", startQueryClock),

		cb.Create().After("gorm:create").Register("lpcore_metrics:after_create", m.after("INSERT")),
		cb.Query().After("gorm:query").Register("lpcore_metrics:after_query", m.after("SELECT")),
		cb.Update().After("gorm:update").Register("lpcore_metrics:after_update", m.after("UPDATE")),
		cb.Delete().After("gorm:delete").Register("lpcore_metrics:after_delete", m.after("DELETE")),
		cb.Row().After("gorm:row").Register("lpcore_metrics:after_row", m.after("")),
		cb.Raw().After("gorm:raw").Register("lpcore_metrics:after_raw", m.after("")),
	)
}

func startQueryClock(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryMetricsStartKey{}, time.Now())
	}
}

// after records the query; an empty operation is read from the SQL text
func (m *DBMetrics) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(queryMetricsStartKey{}).(time.Time)
		if !ok {
			return
		}
		op := operation
		if op == "" {
			op = sqlOperation(db.Statement.SQL.String())
		}
		m.RecordQuery(ctx, op, db.Statement.Table, time.Since(start), db.Error)
	}
}

func sqlOperation(query string) string {
	query = strings.ToUpper(strings.TrimSpace(query))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(query, op) {
			return op
		}
	}
	return "OTHER"
}
