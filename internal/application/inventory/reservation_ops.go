package inventory

import (
	"fmt"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Reasons written on reservation-driven status changes
const (
	reasonReserved      = "reserved for demand %s"
	reasonReleased      = "all reservations released"
	reasonPicked        = "pick confirmed"
	reasonFullyConsumed = "fully consumed by pick"
	reasonStillReserved = "active reservations remain"
)

// reserveOnPlate creates one active reservation and raises the plate's allocated
// quantity in the same unit of work. The first active reservation moves an
// available plate to reserved.
func reserveOnPlate(u *unitOfWork, demand *inventory.Demand, lp *inventory.LicensePlate, qty decimal.Decimal) (*inventory.Reservation, error) {
	if check := inventory.ValidateForConsumption(lp); !check.Valid {
		return nil, check.Err.WithDetail("lp_number", lp.LPNumber)
	}
	if lp.IsExpired(u.now) {
		return nil, notAvailable(lp, "expired")
	}

	r, err := inventory.NewReservation(lp.ID, demand.ID, qty, u.actorID, u.now)
	if err != nil {
		return nil, err
	}
	if err := lp.Allocate(qty, u.now); err != nil {
		return nil, err
	}

	if lp.Status == inventory.LPStatusAvailable {
		change, err := lp.TransitionTo(inventory.LPStatusReserved, fmt.Sprintf(reasonReserved, demand.Reference), u.now)
		if err != nil {
			return nil, err
		}
		if err := u.audit(inventory.AggregateTypeLicensePlate, lp.ID, change); err != nil {
			return nil, err
		}
	}

	if err := u.ReservationRepo().Create(u.ctx, r); err != nil {
		return nil, err
	}
	if err := u.LicensePlateRepo().SaveWithLock(u.ctx, lp); err != nil {
		return nil, err
	}
	u.collect(r, lp)
	return r, nil
}

// releaseReservation ends an active reservation and returns its quantity to
// the plate. A reserved plate with nothing left allocated goes back to available.
func releaseReservation(u *unitOfWork, r *inventory.Reservation, reason string) error {
	if err := r.Release(reason, u.now); err != nil {
		return err
	}
	lp, err := u.lockPlate(r.LicensePlateID)
	if err != nil {
		return err
	}
	if err := lp.Deallocate(r.Quantity, u.now); err != nil {
		return err
	}
	if err := restoreAvailability(u, lp, reasonReleased); err != nil {
		return err
	}

	if err := u.ReservationRepo().SaveWithLock(u.ctx, r); err != nil {
		return err
	}
	if err := u.LicensePlateRepo().SaveWithLock(u.ctx, lp); err != nil {
		return err
	}
	u.collect(r, lp)
	return nil
}

// releaseAllForDemand releases every active reservation of the demand.
// Releasing nothing is not an error.
func releaseAllForDemand(u *unitOfWork, demand *inventory.Demand, reason string) (ReleaseResult, error) {
	result := ReleaseResult{ReleasedQty: decimal.Zero}
	active, err := u.ReservationRepo().FindActiveByDemand(u.ctx, demand.ID)
	if err != nil {
		return result, err
	}
	for _, candidate := range active {
		r, err := u.lockReservation(candidate.ID)
		if err != nil {
			return result, err
		}
		if !r.IsActive() {
			continue
		}
		if err := releaseReservation(u, r, reason); err != nil {
			return result, err
		}
		result.ReleasedCount++
		result.ReleasedQty = result.ReleasedQty.Add(r.Quantity)
	}
	return result, nil
}

// restoreAvailability moves a reserved plate with no allocated quantity back to available
func restoreAvailability(u *unitOfWork, lp *inventory.LicensePlate, reason string) error {
	if lp.Status != inventory.LPStatusReserved || lp.AllocatedQuantity.IsPositive() {
		return nil
	}
	change, err := lp.TransitionTo(inventory.LPStatusAvailable, reason, u.now)
	if err != nil {
		return err
	}
	return u.audit(inventory.AggregateTypeLicensePlate, lp.ID, change)
}

func notAvailable(lp *inventory.LicensePlate, why string) *shared.DomainError {
	return shared.NewPolicyViolationError(inventory.CodeNotAvailable, fmt.Sprintf("not available: %s", why)).
		WithDetail("lp_id", lp.ID.String()).
		WithDetail("lp_number", lp.LPNumber)
}
