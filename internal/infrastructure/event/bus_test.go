package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var busTestTime = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type recordingHandler struct {
	mu      sync.Mutex
	types   []string
	handled []shared.DomainEvent
	err     error
	panics  bool
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func newReleasedEvent() *inventory.ReservationReleasedEvent {
	return &inventory.ReservationReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(inventory.EventTypeReservationReleased,
			inventory.AggregateTypeReservation, uuid.New(), busTestTime),
		LicensePlateID: uuid.New(),
		DemandID:       uuid.New(),
		Reason:         "demand cancelled",
	}
}

func newPickEvent() *inventory.PickConfirmedEvent {
	return &inventory.PickConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(inventory.EventTypePickConfirmed,
			inventory.AggregateTypeLicensePlate, uuid.New(), busTestTime),
		ReservationID: uuid.New(),
	}
}

func startedBus(t *testing.T, log *zap.Logger) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(log)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := startedBus(t, zap.NewNop())
	picks := &recordingHandler{}
	releases := &recordingHandler{}
	bus.Subscribe(picks, inventory.EventTypePickConfirmed)
	bus.Subscribe(releases, inventory.EventTypeReservationReleased)

	pick := newPickEvent()
	release := newReleasedEvent()
	require.NoError(t, bus.Publish(context.Background(), pick, release, newPickEvent()))

	got := picks.received()
	require.Len(t, got, 2)
	assert.Same(t, pick, got[0])
	assert.Equal(t, []shared.DomainEvent{release}, releases.received())

	stats := bus.Stats()
	assert.Equal(t, int64(3), stats.Published)
	assert.Equal(t, int64(3), stats.Delivered)
	assert.Zero(t, stats.Failed)
}

func TestInMemoryEventBus_SubscribeUsesHandlerTypes(t *testing.T) {
	bus := startedBus(t, zap.NewNop())
	h := &recordingHandler{types: []string{inventory.EventTypeReservationReleased}}
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newPickEvent(), newReleasedEvent()))
	require.Len(t, h.received(), 1)
	assert.Equal(t, inventory.EventTypeReservationReleased, h.received()[0].EventType())
}

func TestInMemoryEventBus_HandlerFailureIsIsolated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := startedBus(t, zap.New(core))

	failing := &recordingHandler{err: errors.New("sink unavailable")}
	panicking := &recordingHandler{panics: true}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, inventory.EventTypePickConfirmed)
	bus.Subscribe(panicking, inventory.EventTypePickConfirmed)
	bus.Subscribe(healthy, inventory.EventTypePickConfirmed)

	err := bus.Publish(context.Background(), newPickEvent())
	require.NoError(t, err)

	assert.Len(t, healthy.received(), 1)
	stats := bus.Stats()
	assert.Equal(t, int64(1), stats.Delivered)
	assert.Equal(t, int64(2), stats.Failed)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, inventory.EventTypePickConfirmed, entries[0].ContextMap()["event_type"])
	assert.Contains(t, entries[1].ContextMap()["error"], "handler panicked")
}

func TestInMemoryEventBus_DropsWhenStopped(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{}
	bus.Subscribe(h, inventory.EventTypePickConfirmed)

	require.NoError(t, bus.Publish(context.Background(), newPickEvent()))
	assert.Empty(t, h.received())
	assert.Equal(t, int64(1), bus.Stats().Dropped)

	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newPickEvent()))
	assert.Len(t, h.received(), 1)

	require.NoError(t, bus.Stop(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newPickEvent()))
	assert.Len(t, h.received(), 1)
	assert.Equal(t, int64(2), bus.Stats().Dropped)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := startedBus(t, nil)
	h := &recordingHandler{}
	bus.Subscribe(h, inventory.EventTypePickConfirmed)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newPickEvent()))
	assert.Empty(t, h.received())
}

func TestInMemoryEventBus_ConcurrentPublish(t *testing.T) {
	bus := startedBus(t, nil)
	h := &recordingHandler{}
	bus.Subscribe(h, inventory.EventTypePickConfirmed)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), newPickEvent())
		}()
	}
	wg.Wait()

	assert.Len(t, h.received(), 20)
	assert.Equal(t, int64(20), bus.Stats().Delivered)
}
