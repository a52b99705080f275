package inventory

import (
	"context"
	"fmt"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"go.uber.org/zap"
)

// CodePickExceedsReservation is returned when a pick is larger than its reservation
const CodePickExceedsReservation = "PICK_EXCEEDS_RESERVATION"

// PickService confirms physical picks against reservations
type PickService struct {
	serviceBase
}

// NewPickService creates a new PickService
func NewPickService(scope TransactionScope, logger *zap.Logger) *PickService {
	return &PickService{serviceBase: newServiceBase(scope, logger)}
}

// ConfirmPick consumes picked stock from a reserved plate. The plate's
// quantities and status, the reservation, the demand's progress and the audit
// entries are written in one unit of work; any failure rolls all of them back.
//
// The whole reservation is closed by the pick; a pick smaller than the
// reservation returns the difference to the plate's net available quantity.
func (s *PickService) ConfirmPick(ctx context.Context, cmd ConfirmPickCommand) (*PickResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if cmd.Quantity.IsNegative() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Picked quantity cannot be negative")
	}

	var result PickResult
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		existing, err := u.ReservationRepo().FindByID(ctx, cmd.ReservationID)
		if err != nil {
			return notFound(err, "RESERVATION_NOT_FOUND", "Reservation", cmd.ReservationID)
		}
		demand, err := u.lockDemand(existing.DemandID)
		if err != nil {
			return err
		}
		r, err := u.lockReservation(cmd.ReservationID)
		if err != nil {
			return err
		}
		if !r.IsActive() {
			return r.MarkConsumed(u.now)
		}

		qty := cmd.Quantity
		if qty.IsZero() {
			qty = r.Quantity
		}
		if qty.GreaterThan(r.Quantity) {
			return shared.NewPolicyViolationError(CodePickExceedsReservation,
				fmt.Sprintf("Picked quantity %s exceeds reserved quantity %s", qty, r.Quantity)).
				WithDetail("reservation_id", r.ID.String()).
				WithDetail("max_allowed", r.Quantity.String())
		}

		lp, err := u.lockPlate(r.LicensePlateID)
		if err != nil {
			return err
		}
		if check := inventory.ValidateForConsumption(lp); !check.Valid {
			return check.Err
		}

		demandChange, err := demand.RecordPick(qty, u.now)
		if err != nil {
			return err
		}

		if err := lp.Deallocate(r.Quantity, u.now); err != nil {
			return err
		}
		onHandBefore := lp.QuantityOnHand
		if err := lp.Consume(qty, u.now); err != nil {
			return err
		}
		if err := u.audit(inventory.AggregateTypeLicensePlate, lp.ID, inventory.FieldChange{
			Field:    inventory.FieldQuantityOnHand,
			OldValue: onHandBefore.String(),
			NewValue: lp.QuantityOnHand.String(),
			Reason:   reasonPicked,
		}); err != nil {
			return err
		}

		if lp.QuantityOnHand.IsZero() {
			change, err := lp.TransitionTo(inventory.LPStatusConsumed, reasonFullyConsumed, u.now)
			if err != nil {
				return err
			}
			if err := u.audit(inventory.AggregateTypeLicensePlate, lp.ID, change); err != nil {
				return err
			}
		} else if err := restoreAvailability(u, lp, reasonPicked); err != nil {
			return err
		}

		if err := r.MarkConsumed(u.now); err != nil {
			return err
		}
		lp.AddDomainEvent(inventory.NewPickConfirmedEvent(lp, r, qty, u.now))

		if err := u.ReservationRepo().SaveWithLock(ctx, r); err != nil {
			return err
		}
		if err := u.LicensePlateRepo().SaveWithLock(ctx, lp); err != nil {
			return err
		}
		if err := u.DemandRepo().SaveWithLock(ctx, demand); err != nil {
			return err
		}
		if err := u.audit(inventory.AggregateTypeDemand, demand.ID, demandChange); err != nil {
			return err
		}
		u.collect(r, lp, demand)

		result = PickResult{
			Reservation:  ToReservationResponse(r),
			LicensePlate: ToLicensePlateResponse(lp),
			PickedQty:    qty,
			DemandPicked: demand.PickedQty,
			DemandStatus: demand.Status.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Pick confirmed",
		zap.String("reservation_id", cmd.ReservationID.String()),
		zap.String("lp_id", result.LicensePlate.ID.String()),
		zap.String("demand_id", result.Reservation.DemandID.String()),
		zap.String("quantity", result.PickedQty.String()),
		zap.String("lp_status", result.LicensePlate.Status))
	return &result, nil
}
