package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/persistence/memory"
	"github.com/erp/lpcore/internal/infrastructure/strategy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) ofType(eventType string) []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.DomainEvent, 0)
	for _, e := range p.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// conflictingScope fails the first n transactions with a concurrency conflict
type conflictingScope struct {
	inner    appinv.TransactionScope
	failures int
	calls    int
}

func (s *conflictingScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return shared.ErrConcurrencyConflict
	}
	return s.inner.Execute(ctx, fn)
}

type harness struct {
	t           *testing.T
	ctx         context.Context
	store       *memory.Store
	clock       *shared.FixedClock
	events      *recordingPublisher
	plates      *appinv.LicensePlateService
	qa          *appinv.QAService
	reserve     *appinv.ReservationService
	picks       *appinv.PickService
	demands     *appinv.DemandService
	receiving   *appinv.ReceivingService
	productID   uuid.UUID
	warehouseID uuid.UUID
	actorID     uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	registry := mustRegistry(t)
	h := &harness{
		t:           t,
		ctx:         context.Background(),
		store:       memory.NewStore(),
		clock:       shared.NewFixedClock(testStart),
		events:      &recordingPublisher{},
		productID:   uuid.New(),
		warehouseID: uuid.New(),
		actorID:     uuid.New(),
	}

	h.plates = appinv.NewLicensePlateService(h.store, nil)
	h.qa = appinv.NewQAService(h.store, inventory.DefaultQAPolicy(), nil)
	h.reserve = appinv.NewReservationService(h.store, registry, nil)
	h.picks = appinv.NewPickService(h.store, nil)
	h.demands = appinv.NewDemandService(h.store, nil)
	h.receiving = appinv.NewReceivingService(h.store, inventory.TolerancePolicy{
		AllowOverReceipt:  true,
		ToleranceFraction: decimal.RequireFromString("0.10"),
	}, nil)
	h.receiving.SetQAExemptProducts([]uuid.UUID{h.productID})

	for _, s := range []interface {
		SetClock(shared.Clock)
		SetEventPublisher(shared.EventPublisher)
	}{h.plates, h.qa, h.reserve, h.picks, h.demands, h.receiving} {
		s.SetClock(h.clock)
		s.SetEventPublisher(h.events)
	}
	return h
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// receivePlate receives qty of the harness product on a fresh ASN line. The
// clock advances an hour afterwards so plates received later sort later.
func (h *harness) receivePlate(lpNumber, qty string) appinv.LicensePlateResponse {
	h.t.Helper()
	return h.receivePlateOf(h.productID, lpNumber, qty)
}

func (h *harness) receivePlateOf(productID uuid.UUID, lpNumber, qty string) appinv.LicensePlateResponse {
	h.t.Helper()
	line, err := h.receiving.CreateLine(h.ctx, appinv.CreateReceivingLineCommand{
		ASNID:         uuid.New(),
		ProductID:     productID,
		WarehouseID:   h.warehouseID,
		ExpectedQty:   dec(qty),
		UnitOfMeasure: "kg",
	})
	require.NoError(h.t, err)

	receipt, err := h.receiving.Receive(h.ctx, appinv.ReceiveCommand{
		ReceivingLineID: line.ID,
		Quantity:        dec(qty),
		LPNumber:        lpNumber,
		ActorID:         h.actorID,
	})
	require.NoError(h.t, err)
	h.clock.Advance(time.Hour)
	return receipt.LicensePlate
}

func (h *harness) createDemand(reference, required string) appinv.DemandResponse {
	h.t.Helper()
	d, err := h.demands.CreateDemand(h.ctx, appinv.CreateDemandCommand{
		Reference:     reference,
		Type:          "work_order",
		ProductID:     h.productID,
		WarehouseID:   h.warehouseID,
		RequiredQty:   dec(required),
		UnitOfMeasure: "kg",
		ActorID:       h.actorID,
	})
	require.NoError(h.t, err)
	return *d
}

func (h *harness) plate(id uuid.UUID) appinv.LicensePlateResponse {
	h.t.Helper()
	lp, err := h.plates.GetByID(h.ctx, id)
	require.NoError(h.t, err)
	return *lp
}

func (h *harness) history(id uuid.UUID) []appinv.AuditEntryResponse {
	h.t.Helper()
	entries, _, err := h.plates.History(h.ctx, id, shared.DefaultFilter())
	require.NoError(h.t, err)
	return entries
}

func mustRegistry(t *testing.T) *strategy.StrategyRegistry {
	t.Helper()
	registry, err := strategy.NewRegistryWithDefaults("FIFO")
	require.NoError(t, err)
	return registry
}
