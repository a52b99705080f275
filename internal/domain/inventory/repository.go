package inventory

import (
	"context"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// LicensePlateRepository is the entity store for license plates.
// SaveWithLock writes only when the stored version equals lp.Version, then
// advances lp.Version; a mismatch returns a ConcurrencyConflict.
type LicensePlateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LicensePlate, error)
	// FindByIDForUpdate loads the plate and holds a row lock until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LicensePlate, error)
	// FindReservable returns plates of a product in a warehouse whose status is
	// available or reserved, ordered by receipt time
	FindReservable(ctx context.Context, productID, warehouseID uuid.UUID) ([]*LicensePlate, error)
	Create(ctx context.Context, lp *LicensePlate) error
	SaveWithLock(ctx context.Context, lp *LicensePlate) error
}

// ReservationRepository is the entity store for reservations
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Reservation, error)
	FindActiveByLicensePlate(ctx context.Context, lpID uuid.UUID) ([]*Reservation, error)
	FindByDemand(ctx context.Context, demandID uuid.UUID) ([]*Reservation, error)
	FindActiveByDemand(ctx context.Context, demandID uuid.UUID) ([]*Reservation, error)
	Create(ctx context.Context, r *Reservation) error
	SaveWithLock(ctx context.Context, r *Reservation) error
}

// StatusAuditRepository is insert-only
type StatusAuditRepository interface {
	Append(ctx context.Context, entries ...*StatusAuditEntry) error
	// ListByEntity returns entries for an entity, most recent first, with the total count
	ListByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]*StatusAuditEntry, int64, error)
}

// ReceivingLineRepository is the entity store for ASN lines
type ReceivingLineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReceivingLine, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ReceivingLine, error)
	FindByASN(ctx context.Context, asnID uuid.UUID) ([]*ReceivingLine, error)
	Create(ctx context.Context, line *ReceivingLine) error
	SaveWithLock(ctx context.Context, line *ReceivingLine) error
}

// DemandRepository is the entity store for demand lines
type DemandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Demand, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Demand, error)
	Create(ctx context.Context, d *Demand) error
	SaveWithLock(ctx context.Context, d *Demand) error
}
