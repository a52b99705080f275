package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/cache"
	"github.com/erp/lpcore/internal/infrastructure/config"
	"github.com/erp/lpcore/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
)

func loadTestConfig(t *testing.T, exemptProduct uuid.UUID) *config.Config {
	t.Helper()
	t.Setenv("LPCORE_REDIS_HOST", "")
	t.Setenv("LPCORE_TELEMETRY_ENABLED", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf(`
[app]
name = "lpcore-test"

[reservation]
default_strategy = "FIFO"

[qa]
exempt_products = ["%s"]

[retry]
max_attempts = 2
initial_interval = "1ms"
max_interval = "1ms"
`, exemptProduct)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	return cfg
}

func newSQLiteDatabase(t *testing.T) *persistence.Database {
	t.Helper()
	db, err := persistence.Open(sqlite.Open("file::memory:"), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate())
	return db
}

func TestNew_WiresLifecycle(t *testing.T) {
	ctx := context.Background()
	productID, warehouseID, actorID := uuid.New(), uuid.New(), uuid.New()

	core, logs := observer.New(zap.InfoLevel)
	cfg := loadTestConfig(t, productID)
	app, err := New(ctx, cfg,
		WithLogger(zap.New(core)),
		WithDatabase(newSQLiteDatabase(t)),
		WithClock(shared.NewFixedClock(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))),
	)
	require.NoError(t, err)
	defer func() { assert.NoError(t, app.Close(ctx)) }()

	assert.False(t, app.Tracer.Enabled())
	assert.False(t, app.Meter.Enabled())
	assert.False(t, app.Logs.Enabled())
	assert.False(t, app.Profiler.Enabled())
	assert.Nil(t, app.DBMetrics)
	assert.IsType(t, &cache.InMemoryIdempotencyStore{}, app.Idempotency)
	assert.Equal(t, []string{"fefo", "fifo"}, app.Strategies.ListBatchStrategies())

	svc := app.Services
	line, err := svc.Receiving.CreateLine(ctx, appinv.CreateReceivingLineCommand{
		ASNID:         uuid.New(),
		ProductID:     productID,
		WarehouseID:   warehouseID,
		ExpectedQty:   decimal.NewFromInt(10),
		UnitOfMeasure: "kg",
	})
	require.NoError(t, err)

	receipt, err := svc.Receiving.Receive(ctx, appinv.ReceiveCommand{
		ReceivingLineID: line.ID,
		Quantity:        decimal.NewFromInt(10),
		LPNumber:        "LP-BOOT-1",
		ActorID:         actorID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(inventory.QAStatusPassed), receipt.LicensePlate.QAStatus)

	demand, err := svc.Demands.CreateDemand(ctx, appinv.CreateDemandCommand{
		Reference:     "WO-1",
		Type:          "work_order",
		ProductID:     productID,
		WarehouseID:   warehouseID,
		RequiredQty:   decimal.NewFromInt(4),
		UnitOfMeasure: "kg",
		ActorID:       actorID,
	})
	require.NoError(t, err)

	commit := appinv.CommitCommand{
		ProposeCommand: appinv.ProposeCommand{DemandID: demand.ID},
		RequestKey:     "req-1",
		ActorID:        actorID,
	}
	result, err := svc.Reservations.Commit(ctx, commit)
	require.NoError(t, err)
	require.Len(t, result.Reservations, 1)

	_, err = svc.Reservations.Commit(ctx, commit)
	assert.ErrorIs(t, err, shared.ErrDuplicateRequest)

	var eventTypes []any
	for _, e := range logs.FilterMessage("inventory event").All() {
		eventTypes = append(eventTypes, e.ContextMap()["event_type"])
	}
	assert.Contains(t, eventTypes, inventory.EventTypeLicensePlateReceived)
	assert.Contains(t, eventTypes, inventory.EventTypeReservationCreated)
	assert.Positive(t, app.Events.Stats().Delivered)
}

func TestNew_RejectsUnknownStrategy(t *testing.T) {
	cfg := loadTestConfig(t, uuid.New())
	cfg.Reservation.DefaultStrategy = "lifo"

	app, err := New(context.Background(), cfg, WithLogger(zap.NewNop()), WithDatabase(newSQLiteDatabase(t)))
	require.Error(t, err)
	assert.Nil(t, app)
}

func TestNew_RejectsInvalidExemptProduct(t *testing.T) {
	cfg := loadTestConfig(t, uuid.New())
	cfg.QA.ExemptProducts = []string{"not-a-uuid"}

	_, err := New(context.Background(), cfg, WithLogger(zap.NewNop()), WithDatabase(newSQLiteDatabase(t)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qa.exempt_products")
}
