package inventory

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DemandService manages the lifecycle of work order and sales order lines
type DemandService struct {
	serviceBase
}

// NewDemandService creates a new DemandService
func NewDemandService(scope TransactionScope, logger *zap.Logger) *DemandService {
	return &DemandService{serviceBase: newServiceBase(scope, logger)}
}

// CreateDemand registers a planned demand line
func (s *DemandService) CreateDemand(ctx context.Context, cmd CreateDemandCommand) (*DemandResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var resp DemandResponse
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		demand, err := inventory.NewDemand(cmd.Reference, inventory.DemandType(cmd.Type),
			cmd.ProductID, cmd.WarehouseID, cmd.RequiredQty, cmd.UnitOfMeasure, u.now)
		if err != nil {
			return err
		}
		if err := u.DemandRepo().Create(ctx, demand); err != nil {
			return err
		}
		resp = ToDemandResponse(demand)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Demand created",
		zap.String("demand_id", resp.ID.String()),
		zap.String("reference", resp.Reference),
		zap.String("required_qty", resp.RequiredQty.String()))
	return &resp, nil
}

// GetDemand retrieves a demand by ID
func (s *DemandService) GetDemand(ctx context.Context, id uuid.UUID) (*DemandResponse, error) {
	var resp DemandResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		demand, err := u.DemandRepo().FindByID(ctx, id)
		if err != nil {
			return notFound(err, "DEMAND_NOT_FOUND", "Demand", id)
		}
		resp = ToDemandResponse(demand)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReleaseDemand moves a planned demand to released
func (s *DemandService) ReleaseDemand(ctx context.Context, cmd DemandStatusCommand) (*DemandResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var resp DemandResponse
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		demand, err := u.lockDemand(cmd.DemandID)
		if err != nil {
			return err
		}
		change, err := demand.Release(u.now)
		if err != nil {
			return err
		}
		change.Reason = cmd.Reason
		if err := u.DemandRepo().SaveWithLock(ctx, demand); err != nil {
			return err
		}
		if err := u.audit(inventory.AggregateTypeDemand, demand.ID, change); err != nil {
			return err
		}
		resp = ToDemandResponse(demand)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteDemand completes a demand, releasing its remaining reservations
func (s *DemandService) CompleteDemand(ctx context.Context, cmd DemandStatusCommand) (*DemandStatusResult, error) {
	return s.finish(ctx, cmd, inventory.DemandStatusCompleted)
}

// CloseDemand closes a demand, releasing its remaining reservations
func (s *DemandService) CloseDemand(ctx context.Context, cmd DemandStatusCommand) (*DemandStatusResult, error) {
	return s.finish(ctx, cmd, inventory.DemandStatusClosed)
}

// CancelDemand cancels a demand, releasing its remaining reservations
func (s *DemandService) CancelDemand(ctx context.Context, cmd DemandStatusCommand) (*DemandStatusResult, error) {
	return s.finish(ctx, cmd, inventory.DemandStatusCancelled)
}

func (s *DemandService) finish(ctx context.Context, cmd DemandStatusCommand, target inventory.DemandStatus) (*DemandStatusResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var result DemandStatusResult
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		result = DemandStatusResult{}
		demand, err := u.lockDemand(cmd.DemandID)
		if err != nil {
			return err
		}

		reason := cmd.Reason
		if reason == "" {
			reason = "demand " + target.String()
		}
		if demand.Status.IsOpen() {
			if result.Released, err = releaseAllForDemand(u, demand, reason); err != nil {
				return err
			}
		}

		change, err := demand.Finish(target, u.now)
		if err != nil {
			return err
		}
		change.Reason = cmd.Reason
		if err := u.DemandRepo().SaveWithLock(ctx, demand); err != nil {
			return err
		}
		if err := u.audit(inventory.AggregateTypeDemand, demand.ID, change); err != nil {
			return err
		}
		result.Demand = ToDemandResponse(demand)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Demand finished",
		zap.String("demand_id", cmd.DemandID.String()),
		zap.String("to", target.String()),
		zap.Int("released_reservations", result.Released.ReleasedCount))
	return &result, nil
}
