package telemetry

import (
	"context"
	"errors"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys on lifecycle metrics
const (
	AttrEventType = attribute.Key("event.type")
	AttrFrom      = attribute.Key("lp.from")
	AttrTo        = attribute.Key("lp.to")
	AttrQAStatus  = attribute.Key("lp.qa_status")
	AttrAction    = attribute.Key("reservation.action")
)

// LifecycleMetrics turns inventory events into OpenTelemetry instruments.
// It is an event handler and is subscribed to the bus like any other.
type LifecycleMetrics struct {
	events       metric.Int64Counter
	received     metric.Float64Counter
	transitions  metric.Int64Counter
	qaChanges    metric.Int64Counter
	reservations metric.Float64Counter
	picks        metric.Float64Histogram
}

// NewLifecycleMetrics registers the lifecycle instruments on meter
func NewLifecycleMetrics(meter metric.Meter) (*LifecycleMetrics, error) {
	if meter == nil {
		return nil, errors.New("telemetry: meter is required")
	}
	m := &LifecycleMetrics{}
	var err, e error

	m.events, e = meter.Int64Counter("lpcore.inventory.events",
		metric.WithDescription("Inventory events handled"), metric.WithUnit("{event}"))
	err = errors.Join(err, e)
	m.received, e = meter.Float64Counter("lpcore.license_plate.received_quantity",
		metric.WithDescription("Quantity received onto new license plates"), metric.WithUnit("{unit}"))
	err = errors.Join(err, e)
	m.transitions, e = meter.Int64Counter("lpcore.license_plate.transitions",
		metric.WithDescription("License plate status changes"), metric.WithUnit("{transition}"))
	err = errors.Join(err, e)
	m.qaChanges, e = meter.Int64Counter("lpcore.license_plate.qa_changes",
		metric.WithDescription("License plate QA status changes"), metric.WithUnit("{change}"))
	err = errors.Join(err, e)
	m.reservations, e = meter.Float64Counter("lpcore.reservation.quantity",
		metric.WithDescription("Quantity reserved and released"), metric.WithUnit("{unit}"))
	err = errors.Join(err, e)
	m.picks, e = meter.Float64Histogram("lpcore.pick.quantity",
		metric.WithDescription("Quantity per confirmed pick"), metric.WithUnit("{unit}"))
	err = errors.Join(err, e)

	if err != nil {
		return nil, err
	}
	return m, nil
}

// EventTypes lists the inventory events that are measured
func (m *LifecycleMetrics) EventTypes() []string {
	return []string{
		inventory.EventTypeLicensePlateReceived,
		inventory.EventTypeLicensePlateStatusChanged,
		inventory.EventTypeQAStatusChanged,
		inventory.EventTypeReservationCreated,
		inventory.EventTypeReservationReleased,
		inventory.EventTypePickConfirmed,
	}
}

// Handle records evt
func (m *LifecycleMetrics) Handle(ctx context.Context, evt shared.DomainEvent) error {
	m.events.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(evt.EventType())))

	switch e := evt.(type) {
	case *inventory.LicensePlateReceivedEvent:
		m.received.Add(ctx, e.Quantity.InexactFloat64(),
			metric.WithAttributes(AttrQAStatus.String(string(e.QAStatus))))
	case *inventory.LicensePlateStatusChangedEvent:
		m.transitions.Add(ctx, 1, metric.WithAttributes(
			AttrFrom.String(string(e.FromStatus)),
			AttrTo.String(string(e.ToStatus)),
		))
	case *inventory.QAStatusChangedEvent:
		m.qaChanges.Add(ctx, 1, metric.WithAttributes(
			AttrFrom.String(string(e.FromQA)),
			AttrTo.String(string(e.ToQA)),
		))
	case *inventory.ReservationCreatedEvent:
		m.reservations.Add(ctx, e.Quantity.InexactFloat64(),
			metric.WithAttributes(AttrAction.String("created")))
	case *inventory.ReservationReleasedEvent:
		m.reservations.Add(ctx, e.Quantity.InexactFloat64(),
			metric.WithAttributes(AttrAction.String("released")))
	case *inventory.PickConfirmedEvent:
		m.picks.Record(ctx, e.Quantity.InexactFloat64())
	}
	return nil
}
