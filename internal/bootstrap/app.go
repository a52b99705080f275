// Package bootstrap assembles the lifecycle services from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/cache"
	"github.com/erp/lpcore/internal/infrastructure/config"
	"github.com/erp/lpcore/internal/infrastructure/event"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"github.com/erp/lpcore/internal/infrastructure/persistence"
	"github.com/erp/lpcore/internal/infrastructure/strategy"
	"github.com/erp/lpcore/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Services groups the application services
type Services struct {
	LicensePlates *appinv.LicensePlateService
	QA            *appinv.QAService
	Reservations  *appinv.ReservationService
	Picks         *appinv.PickService
	Demands       *appinv.DemandService
	Receiving     *appinv.ReceivingService
}

// App owns the process-wide infrastructure and the services built on it
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Database    *persistence.Database
	Tracer      *telemetry.TracerProvider
	Meter       *telemetry.MeterProvider
	Logs        *telemetry.LoggerProvider
	Profiler    *telemetry.Profiler
	DBMetrics   *telemetry.DBMetrics
	Events      *event.InMemoryEventBus
	Idempotency shared.IdempotencyStore
	Strategies  *strategy.StrategyRegistry
	Services    Services
}

type options struct {
	logger   *zap.Logger
	database *persistence.Database
	clock    shared.Clock
}

// Option customises New
type Option func(*options)

// WithLogger uses log instead of building one from the log section
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithDatabase uses an already opened database instead of connecting to PostgreSQL
func WithDatabase(db *persistence.Database) Option {
	return func(o *options) { o.database = db }
}

// WithClock replaces the system clock in every service
func WithClock(clock shared.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// New builds the application. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (app *App, err error) {
	o := options{clock: shared.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	app = &App{Config: cfg, Logger: o.logger}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
			app = nil
		}
	}()

	if app.Logger == nil {
		app.Logger, err = logger.New(&logger.Config{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			Output:     cfg.Log.Output,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	app.Logs, err = telemetry.NewLoggerProvider(ctx, cfg.Telemetry, cfg.App.Name, app.Logger)
	if err != nil {
		return nil, err
	}
	app.Logger = app.Logs.Bridge(app.Logger, cfg.App.Name)
	log := app.Logger

	app.Tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Name, log)
	if err != nil {
		return nil, err
	}
	app.Meter, err = telemetry.NewMeterProvider(ctx, cfg.Telemetry, cfg.App.Name, log)
	if err != nil {
		return nil, err
	}
	app.Profiler, err = telemetry.NewProfiler(cfg.Telemetry, cfg.App.Name, log)
	if err != nil {
		return nil, err
	}
	if app.Profiler.Enabled() {
		app.Tracer.EnableSpanProfiles()
	}

	app.Database = o.database
	if app.Database == nil {
		gormLog := logger.NewGormLogger(log, logger.GormLogConfig{
			Level:         cfg.Log.Level,
			SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		})
		app.Database, err = persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
		if err != nil {
			return nil, err
		}
		log.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))
	}
	tracing := telemetry.DBTracingConfigFrom(cfg.Telemetry)
	if err = telemetry.NewDBTracingPlugin(tracing, log).Register(app.Database.DB); err != nil {
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}
	if app.Meter.Enabled() {
		if err = app.registerDBMetrics(); err != nil {
			return nil, fmt.Errorf("failed to register database metrics: %w", err)
		}
	}

	app.Idempotency, err = cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		return nil, err
	}
	idempotency := shared.IdempotencyConfig{Enabled: cfg.Idempotency.Enabled, TTL: cfg.Idempotency.TTL}

	app.Events = event.NewInMemoryEventBus(log)
	app.Events.Subscribe(event.NewIdempotentHandler(event.NewLifecycleLogHandler(log), app.Idempotency, idempotency, log))
	lifecycle, err := telemetry.NewLifecycleMetrics(app.Meter.Meter("lpcore/inventory"))
	if err != nil {
		return nil, err
	}
	app.Events.Subscribe(lifecycle)

	app.Strategies, err = strategy.NewRegistryWithDefaults(cfg.Reservation.DefaultStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy registry: %w", err)
	}

	if err = app.buildServices(o.clock, idempotency); err != nil {
		return nil, err
	}

	if err = app.Events.Start(ctx); err != nil {
		return nil, err
	}
	log.Info("lpcore ready",
		zap.String("env", cfg.App.Env),
		zap.String("default_strategy", cfg.Reservation.DefaultStrategy),
		zap.Bool("tracing", app.Tracer.Enabled()),
		zap.Bool("metrics", app.Meter.Enabled()),
		zap.Bool("profiling", app.Profiler.Enabled()),
	)
	return app, nil
}

func (a *App) registerDBMetrics() error {
	sqlDB, err := a.Database.DB.DB()
	if err != nil {
		return err
	}
	a.DBMetrics, err = telemetry.NewDBMetrics(a.Meter.Meter("db.client"), sqlDB,
		a.Config.Telemetry.DBSlowQueryThresh, a.Logger)
	if err != nil {
		return err
	}
	return a.DBMetrics.Register(a.Database.DB)
}

func (a *App) buildServices(clock shared.Clock, idempotency shared.IdempotencyConfig) error {
	cfg := a.Config
	scope := a.Database.TransactionScope()

	exempt, err := cfg.QA.ExemptProductIDs()
	if err != nil {
		return err
	}
	tolerance := inventory.TolerancePolicy{
		AllowOverReceipt:  cfg.Receiving.AllowOverReceipt,
		ToleranceFraction: decimal.NewFromFloat(cfg.Receiving.ToleranceFraction),
	}

	s := Services{
		LicensePlates: appinv.NewLicensePlateService(scope, a.Logger),
		QA:            appinv.NewQAService(scope, inventory.QAPolicy{MinReasonLength: cfg.QA.MinReasonLength}, a.Logger),
		Reservations: appinv.NewReservationService(scope, a.Strategies, a.Logger,
			inventory.WithDisplayProgressCap(cfg.Reservation.DisplayProgressCap)),
		Picks:     appinv.NewPickService(scope, a.Logger),
		Demands:   appinv.NewDemandService(scope, a.Logger),
		Receiving: appinv.NewReceivingService(scope, tolerance, a.Logger),
	}
	s.Reservations.SetIdempotencyStore(a.Idempotency, idempotency)
	s.Receiving.SetQAExemptProducts(exempt)

	retry := appinv.RetryPolicy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}
	for _, svc := range []interface {
		SetClock(shared.Clock)
		SetEventPublisher(shared.EventPublisher)
		SetRetryPolicy(appinv.RetryPolicy)
	}{s.LicensePlates, s.QA, s.Reservations, s.Picks, s.Demands, s.Receiving} {
		svc.SetClock(clock)
		svc.SetEventPublisher(a.Events)
		svc.SetRetryPolicy(retry)
	}

	a.Services = s
	return nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Events != nil {
		errs = append(errs, a.Events.Stop(ctx))
	}
	if a.Idempotency != nil {
		errs = append(errs, a.Idempotency.Close())
	}
	if a.DBMetrics != nil {
		errs = append(errs, a.DBMetrics.Stop())
	}
	if a.Database != nil {
		errs = append(errs, a.Database.Close())
	}
	if a.Profiler != nil {
		errs = append(errs, a.Profiler.Stop())
	}
	if a.Meter != nil {
		errs = append(errs, a.Meter.Shutdown(ctx))
	}
	if a.Tracer != nil {
		errs = append(errs, a.Tracer.Shutdown(ctx))
	}
	if a.Logs != nil {
		errs = append(errs, a.Logs.Shutdown(ctx))
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}
