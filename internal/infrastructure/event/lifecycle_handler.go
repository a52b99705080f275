package event

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LifecycleLogHandler writes one structured log line per license plate lifecycle event
type LifecycleLogHandler struct {
	logger *zap.Logger
}

// NewLifecycleLogHandler creates the handler
func NewLifecycleLogHandler(log *zap.Logger) *LifecycleLogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LifecycleLogHandler{logger: log.Named("lifecycle")}
}

// EventTypes lists the inventory events the handler records
func (h *LifecycleLogHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeLicensePlateReceived,
		inventory.EventTypeLicensePlateStatusChanged,
		inventory.EventTypeQAStatusChanged,
		inventory.EventTypeReservationCreated,
		inventory.EventTypeReservationReleased,
		inventory.EventTypePickConfirmed,
	}
}

// Handle logs evt
func (h *LifecycleLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	fields := append(logger.Fields(ctx),
		zap.String("event_type", evt.EventType()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	h.logger.Info("inventory event", append(fields, eventFields(evt)...)...)
	return nil
}

func eventFields(evt shared.DomainEvent) []zap.Field {
	switch e := evt.(type) {
	case *inventory.LicensePlateReceivedEvent:
		return []zap.Field{
			zap.String("lp_number", e.LPNumber),
			zap.String("quantity", e.Quantity.String()),
			zap.String("qa_status", string(e.QAStatus)),
		}
	case *inventory.LicensePlateStatusChangedEvent:
		return []zap.Field{
			zap.String("lp_number", e.LPNumber),
			zap.String("from", string(e.FromStatus)),
			zap.String("to", string(e.ToStatus)),
			zap.String("reason", e.Reason),
		}
	case *inventory.QAStatusChangedEvent:
		return []zap.Field{
			zap.String("lp_number", e.LPNumber),
			zap.String("from", string(e.FromQA)),
			zap.String("to", string(e.ToQA)),
			zap.String("reason", e.Reason),
		}
	case *inventory.ReservationCreatedEvent:
		return []zap.Field{
			zap.String("lp_id", e.LicensePlateID.String()),
			zap.String("demand_id", e.DemandID.String()),
			zap.String("quantity", e.Quantity.String()),
		}
	case *inventory.ReservationReleasedEvent:
		return []zap.Field{
			zap.String("lp_id", e.LicensePlateID.String()),
			zap.String("demand_id", e.DemandID.String()),
			zap.String("quantity", e.Quantity.String()),
			zap.String("reason", e.Reason),
		}
	case *inventory.PickConfirmedEvent:
		return []zap.Field{
			zap.String("reservation_id", e.ReservationID.String()),
			zap.String("quantity", e.Quantity.String()),
			zap.String("remaining", e.RemainingQty.String()),
		}
	}
	return nil
}
