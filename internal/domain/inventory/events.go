package inventory

import (
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeLicensePlateReceived      = "LicensePlateReceived"
	EventTypeLicensePlateStatusChanged = "LicensePlateStatusChanged"
	EventTypeQAStatusChanged           = "QAStatusChanged"
	EventTypeReservationCreated        = "ReservationCreated"
	EventTypeReservationReleased       = "ReservationReleased"
	EventTypePickConfirmed             = "PickConfirmed"
)

// LicensePlateReceivedEvent is raised when a plate is created at receipt
type LicensePlateReceivedEvent struct {
	shared.BaseDomainEvent
	LPNumber    string          `json:"lp_number"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	QAStatus    QAStatus        `json:"qa_status"`
}

// NewLicensePlateReceivedEvent creates a new LicensePlateReceivedEvent
func NewLicensePlateReceivedEvent(lp *LicensePlate, now time.Time) *LicensePlateReceivedEvent {
	return &LicensePlateReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLicensePlateReceived, AggregateTypeLicensePlate, lp.ID, now),
		LPNumber:        lp.LPNumber,
		ProductID:       lp.ProductID,
		WarehouseID:     lp.WarehouseID,
		Quantity:        lp.QuantityOnHand,
		QAStatus:        lp.QAStatus,
	}
}

// LicensePlateStatusChangedEvent is raised on every status transition, forced or requested
type LicensePlateStatusChangedEvent struct {
	shared.BaseDomainEvent
	LPNumber   string   `json:"lp_number"`
	FromStatus LPStatus `json:"from_status"`
	ToStatus   LPStatus `json:"to_status"`
	Reason     string   `json:"reason,omitempty"`
}

// NewLicensePlateStatusChangedEvent creates a new LicensePlateStatusChangedEvent
func NewLicensePlateStatusChangedEvent(lp *LicensePlate, from, to LPStatus, reason string, now time.Time) *LicensePlateStatusChangedEvent {
	return &LicensePlateStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLicensePlateStatusChanged, AggregateTypeLicensePlate, lp.ID, now),
		LPNumber:        lp.LPNumber,
		FromStatus:      from,
		ToStatus:        to,
		Reason:          reason,
	}
}

// QAStatusChangedEvent is raised when the QA disposition changes
type QAStatusChangedEvent struct {
	shared.BaseDomainEvent
	LPNumber string   `json:"lp_number"`
	FromQA   QAStatus `json:"from_qa_status"`
	ToQA     QAStatus `json:"to_qa_status"`
	Reason   string   `json:"reason,omitempty"`
}

// NewQAStatusChangedEvent creates a new QAStatusChangedEvent
func NewQAStatusChangedEvent(lp *LicensePlate, from, to QAStatus, reason string, now time.Time) *QAStatusChangedEvent {
	return &QAStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQAStatusChanged, AggregateTypeLicensePlate, lp.ID, now),
		LPNumber:        lp.LPNumber,
		FromQA:          from,
		ToQA:            to,
		Reason:          reason,
	}
}

// ReservationCreatedEvent is raised when a demand reserves quantity on a plate
type ReservationCreatedEvent struct {
	shared.BaseDomainEvent
	LicensePlateID uuid.UUID       `json:"license_plate_id"`
	DemandID       uuid.UUID       `json:"demand_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// NewReservationCreatedEvent creates a new ReservationCreatedEvent
func NewReservationCreatedEvent(r *Reservation, now time.Time) *ReservationCreatedEvent {
	return &ReservationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationCreated, AggregateTypeReservation, r.ID, now),
		LicensePlateID:  r.LicensePlateID,
		DemandID:        r.DemandID,
		Quantity:        r.Quantity,
	}
}

// ReservationReleasedEvent is raised when an active reservation is released
type ReservationReleasedEvent struct {
	shared.BaseDomainEvent
	LicensePlateID uuid.UUID       `json:"license_plate_id"`
	DemandID       uuid.UUID       `json:"demand_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
}

// NewReservationReleasedEvent creates a new ReservationReleasedEvent
func NewReservationReleasedEvent(r *Reservation, reason string, now time.Time) *ReservationReleasedEvent {
	return &ReservationReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationReleased, AggregateTypeReservation, r.ID, now),
		LicensePlateID:  r.LicensePlateID,
		DemandID:        r.DemandID,
		Quantity:        r.Quantity,
		Reason:          reason,
	}
}

// PickConfirmedEvent is raised when a reserved quantity is physically picked
type PickConfirmedEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID       `json:"reservation_id"`
	DemandID      uuid.UUID       `json:"demand_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	RemainingQty  decimal.Decimal `json:"remaining_qty"`
}

// NewPickConfirmedEvent creates a new PickConfirmedEvent
func NewPickConfirmedEvent(lp *LicensePlate, r *Reservation, qty decimal.Decimal, now time.Time) *PickConfirmedEvent {
	return &PickConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickConfirmed, AggregateTypeLicensePlate, lp.ID, now),
		ReservationID:   r.ID,
		DemandID:        r.DemandID,
		Quantity:        qty,
		RemainingQty:    lp.QuantityOnHand,
	}
}
