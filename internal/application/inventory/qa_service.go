package inventory

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"go.uber.org/zap"
)

// CodeQAForbidden is returned when the caller lacks the QA capability
const CodeQAForbidden = "QA_CHANGE_FORBIDDEN"

// QAService applies QA dispositions and their coupled status side effects
type QAService struct {
	serviceBase
	policy inventory.QAPolicy
}

// NewQAService creates a new QAService
func NewQAService(scope TransactionScope, policy inventory.QAPolicy, logger *zap.Logger) *QAService {
	return &QAService{
		serviceBase: newServiceBase(scope, logger),
		policy:      policy,
	}
}

// UpdateQAStatus changes the QA status of a plate. The qa_status audit entry is
// written first, followed by the forced status entry when the side-effect table
// applies. Both commit or neither does.
func (s *QAService) UpdateQAStatus(ctx context.Context, cmd UpdateQAStatusCommand) (*QAStatusResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if !cmd.CanChangeQA {
		return nil, shared.NewPolicyViolationError(CodeQAForbidden, "Not permitted to change QA status").
			WithDetail("lp_id", cmd.LicensePlateID.String()).
			WithDetail("actor_id", cmd.ActorID.String())
	}
	target := inventory.QAStatus(cmd.Target)

	var resp QAStatusResponse
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		lp, err := u.lockPlate(cmd.LicensePlateID)
		if err != nil {
			return err
		}
		changes, err := lp.ChangeQAStatus(target, cmd.Reason, s.policy, u.now)
		if err != nil {
			return err
		}
		// A release from quarantine lands on available; reservations that
		// survived the block still hold stock, so the plate goes back to reserved.
		if lp.Status == inventory.LPStatusAvailable && lp.AllocatedQuantity.IsPositive() {
			change, err := lp.TransitionTo(inventory.LPStatusReserved, reasonStillReserved, u.now)
			if err != nil {
				return err
			}
			changes = append(changes, change)
		}
		if err := u.LicensePlateRepo().SaveWithLock(ctx, lp); err != nil {
			return err
		}

		entries := make([]*inventory.StatusAuditEntry, 0, len(changes))
		for _, c := range changes {
			entries = append(entries, inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, lp.ID, c, u.actorID, u.now))
		}
		if err := u.AuditRepo().Append(ctx, entries...); err != nil {
			return err
		}
		u.collect(lp)

		resp = QAStatusResponse{
			LicensePlate:  ToLicensePlateResponse(lp),
			StatusChanged: len(changes) > 1,
			Changes:       ToAuditEntryResponses(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("QA status changed",
		zap.String("lp_id", cmd.LicensePlateID.String()),
		zap.String("qa_status", target.String()),
		zap.String("status", resp.LicensePlate.Status),
		zap.Bool("status_forced", resp.StatusChanged))
	return &resp, nil
}
