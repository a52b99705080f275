package inventory

import (
	"fmt"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeReservation is the aggregate type recorded on reservation events
const AggregateTypeReservation = "Reservation"

// CodeAlreadyReleased is returned when releasing a reservation that is not active
const CodeAlreadyReleased = "ALREADY_RELEASED"

// ReservationStatus is the lifecycle status of a reservation
type ReservationStatus string

const (
	ReservationStatusActive   ReservationStatus = "active"
	ReservationStatusReleased ReservationStatus = "released"
	ReservationStatusConsumed ReservationStatus = "consumed"
)

// String returns the string representation
func (s ReservationStatus) String() string {
	return string(s)
}

// Reservation is a claim on a quantity of one license plate by one demand
type Reservation struct {
	shared.BaseAggregateRoot
	LicensePlateID uuid.UUID
	DemandID       uuid.UUID
	Quantity       decimal.Decimal
	Status         ReservationStatus
	ReservedBy     uuid.UUID
	ReleasedAt     *time.Time
	ConsumedAt     *time.Time
	ReleaseReason  string
}

// NewReservation creates an active reservation
func NewReservation(lpID, demandID uuid.UUID, quantity decimal.Decimal, actorID uuid.UUID, now time.Time) (*Reservation, error) {
	if lpID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_LP", "License plate ID cannot be empty")
	}
	if demandID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_DEMAND", "Demand ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}

	r := &Reservation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		LicensePlateID:    lpID,
		DemandID:          demandID,
		Quantity:          quantity,
		Status:            ReservationStatusActive,
		ReservedBy:        actorID,
	}
	r.AddDomainEvent(NewReservationCreatedEvent(r, now))
	return r, nil
}

// IsActive returns true while the reservation holds quantity
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// Release ends an active reservation. Releasing anything but an active reservation fails.
func (r *Reservation) Release(reason string, now time.Time) error {
	if !r.IsActive() {
		return shared.NewInvalidTransitionError(CodeAlreadyReleased,
			fmt.Sprintf("Reservation is already %s", r.Status),
			r.Status.String(), ReservationStatusReleased.String()).
			WithDetail("reservation_id", r.ID.String())
	}
	r.Status = ReservationStatusReleased
	r.ReleasedAt = &now
	r.ReleaseReason = reason
	r.Touch(now)
	r.AddDomainEvent(NewReservationReleasedEvent(r, reason, now))
	return nil
}

// MarkConsumed closes an active reservation after its pick is confirmed
func (r *Reservation) MarkConsumed(now time.Time) error {
	if !r.IsActive() {
		return shared.NewInvalidTransitionError("RESERVATION_NOT_ACTIVE",
			fmt.Sprintf("Reservation is %s, not active", r.Status),
			r.Status.String(), ReservationStatusConsumed.String()).
			WithDetail("reservation_id", r.ID.String())
	}
	r.Status = ReservationStatusConsumed
	r.ConsumedAt = &now
	r.Touch(now)
	return nil
}

// SumActive totals the quantity of active reservations
func SumActive(reservations []*Reservation) decimal.Decimal {
	total := decimal.Zero
	for _, r := range reservations {
		if r.IsActive() {
			total = total.Add(r.Quantity)
		}
	}
	return total
}
