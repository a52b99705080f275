package inventory

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LicensePlateService handles license plate status operations
type LicensePlateService struct {
	serviceBase
}

// NewLicensePlateService creates a new LicensePlateService
func NewLicensePlateService(scope TransactionScope, logger *zap.Logger) *LicensePlateService {
	return &LicensePlateService{serviceBase: newServiceBase(scope, logger)}
}

// GetByID retrieves a license plate by ID
func (s *LicensePlateService) GetByID(ctx context.Context, id uuid.UUID) (*LicensePlateResponse, error) {
	var resp LicensePlateResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		lp, err := u.LicensePlateRepo().FindByID(ctx, id)
		if err != nil {
			return notFound(err, inventory.CodeLPNotFound, "License plate", id)
		}
		resp = ToLicensePlateResponse(lp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns the audit trail of a license plate, most recent first
func (s *LicensePlateService) History(ctx context.Context, lpID uuid.UUID, filter shared.Filter) ([]AuditEntryResponse, int64, error) {
	filter = filter.Normalize()
	var (
		entries []*inventory.StatusAuditEntry
		total   int64
	)
	err := s.read(ctx, func(u *unitOfWork) error {
		if _, err := u.LicensePlateRepo().FindByID(ctx, lpID); err != nil {
			return notFound(err, inventory.CodeLPNotFound, "License plate", lpID)
		}
		var err error
		entries, total, err = u.AuditRepo().ListByEntity(ctx, lpID, filter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return ToAuditEntryResponses(entries), total, nil
}

// ApplyTransition validates and applies a status transition, writing exactly one
// status audit entry. Moving to consumed also requires the consumption guard to pass.
func (s *LicensePlateService) ApplyTransition(ctx context.Context, cmd TransitionCommand) (*LicensePlateResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	target := inventory.LPStatus(cmd.Target)

	var resp LicensePlateResponse
	var from inventory.LPStatus
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		lp, err := u.lockPlate(cmd.LicensePlateID)
		if err != nil {
			return err
		}
		from = lp.Status

		if target == inventory.LPStatusConsumed {
			if res := inventory.ValidateTransition(lp.Status, target); !res.Valid {
				return res.Err
			}
			if check := inventory.ValidateForConsumption(lp); !check.Valid {
				return check.Err
			}
		}

		change, err := lp.TransitionTo(target, cmd.Reason, u.now)
		if err != nil {
			return err
		}
		if err := u.LicensePlateRepo().SaveWithLock(ctx, lp); err != nil {
			return err
		}
		if err := u.audit(inventory.AggregateTypeLicensePlate, lp.ID, change); err != nil {
			return err
		}
		u.collect(lp)
		resp = ToLicensePlateResponse(lp)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("License plate status changed",
		zap.String("lp_id", cmd.LicensePlateID.String()),
		zap.String("from", from.String()),
		zap.String("to", target.String()),
		zap.String("actor_id", cmd.ActorID.String()))
	return &resp, nil
}

// Block moves a plate to blocked
func (s *LicensePlateService) Block(ctx context.Context, lpID uuid.UUID, reason string, actorID uuid.UUID) (*LicensePlateResponse, error) {
	return s.ApplyTransition(ctx, TransitionCommand{
		LicensePlateID: lpID,
		Target:         inventory.LPStatusBlocked.String(),
		Reason:         reason,
		ActorID:        actorID,
	})
}

// Unblock moves a blocked plate back to available
func (s *LicensePlateService) Unblock(ctx context.Context, lpID uuid.UUID, reason string, actorID uuid.UUID) (*LicensePlateResponse, error) {
	return s.ApplyTransition(ctx, TransitionCommand{
		LicensePlateID: lpID,
		Target:         inventory.LPStatusAvailable.String(),
		Reason:         reason,
		ActorID:        actorID,
	})
}

// CheckConsumption explains whether a plate may be consumed. A missing plate is NotFound.
func (s *LicensePlateService) CheckConsumption(ctx context.Context, lpID uuid.UUID) (*ConsumptionCheckResponse, error) {
	var check inventory.ConsumptionCheck
	err := s.read(ctx, func(u *unitOfWork) error {
		lp, err := u.LicensePlateRepo().FindByID(ctx, lpID)
		if err != nil {
			if shared.IsNotFound(err) {
				return shared.NewNotFoundError(inventory.CodeLPNotFound, "License plate", lpID)
			}
			return err
		}
		check = inventory.ValidateForConsumption(lp)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &ConsumptionCheckResponse{
		LicensePlateID:  lpID,
		Valid:           check.Valid,
		CurrentStatus:   check.CurrentStatus.String(),
		CurrentQAStatus: check.CurrentQAStatus.String(),
	}
	if check.Err != nil {
		resp.Reason = check.Err.Error()
	}
	return resp, nil
}
