package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/domain/shared/strategy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchStrategyProvider resolves a sort policy name to a selection strategy.
// An empty name resolves the configured default.
type BatchStrategyProvider interface {
	GetBatchStrategy(name string) (strategy.BatchManagementStrategy, error)
}

// ReservationService proposes, commits and releases license plate reservations for demands.
//
// Lock order inside a unit of work is demand, then reservation, then license plate.
type ReservationService struct {
	serviceBase
	strategies     BatchStrategyProvider
	engineOpts     []inventory.AllocationEngineOption
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	scope TransactionScope,
	strategies BatchStrategyProvider,
	logger *zap.Logger,
	engineOpts ...inventory.AllocationEngineOption,
) *ReservationService {
	return &ReservationService{
		serviceBase: newServiceBase(scope, logger),
		strategies:  strategies,
		engineOpts:  engineOpts,
	}
}

// SetIdempotencyStore enables request-key deduplication of commits
func (s *ReservationService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	if !cfg.Enabled {
		s.idempotency = nil
		return
	}
	s.idempotency = store
	s.idempotencyTTL = cfg.TTL
}

func (s *ReservationService) engine(policy string) (*inventory.AllocationEngine, error) {
	st, err := s.strategies.GetBatchStrategy(policy)
	if err != nil {
		return nil, err
	}
	return inventory.NewAllocationEngine(st, s.engineOpts...), nil
}

// propose builds a proposal for the demand from the plates stocked for its
// product and warehouse, crediting what the demand already holds on each plate.
func (s *ReservationService) propose(u *unitOfWork, demand *inventory.Demand, cmd ProposeCommand) (*inventory.AllocationProposal, error) {
	engine, err := s.engine(cmd.Policy)
	if err != nil {
		return nil, err
	}

	active, err := u.ReservationRepo().FindActiveByDemand(u.ctx, demand.ID)
	if err != nil {
		return nil, err
	}
	held := make(map[uuid.UUID]decimal.Decimal, len(active))
	for _, r := range active {
		held[r.LicensePlateID] = held[r.LicensePlateID].Add(r.Quantity)
	}

	plates, err := u.LicensePlateRepo().FindReservable(u.ctx, demand.ProductID, demand.WarehouseID)
	if err != nil {
		return nil, err
	}
	candidates := make([]inventory.AllocationCandidate, 0, len(plates))
	for _, lp := range plates {
		candidates = append(candidates, inventory.AllocationCandidate{
			LicensePlate: lp,
			HeldByDemand: held[lp.ID],
		})
	}

	return engine.Propose(u.ctx, inventory.AllocationRequest{
		DemandID:        demand.ID,
		ProductID:       demand.ProductID,
		WarehouseID:     demand.WarehouseID,
		RequiredQty:     demand.RequiredQty,
		UnitOfMeasure:   demand.UnitOfMeasure,
		AlreadyReserved: inventory.SumActive(active),
		AsOf:            u.now,
		PreferBatch:     cmd.PreferBatch,
		Overrides:       cmd.Overrides,
	}, candidates)
}

// ListAvailable returns the plates a demand could reserve, in policy order, with nothing selected
func (s *ReservationService) ListAvailable(ctx context.Context, demandID uuid.UUID, policy string) ([]ProposalLineResponse, error) {
	var lines []ProposalLineResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		demand, err := u.DemandRepo().FindByID(ctx, demandID)
		if err != nil {
			return notFound(err, "DEMAND_NOT_FOUND", "Demand", demandID)
		}
		proposal, err := s.propose(u, demand, ProposeCommand{
			DemandID:  demandID,
			Policy:    policy,
			Overrides: map[uuid.UUID]decimal.Decimal{},
		})
		if err != nil {
			return err
		}
		lines = ToProposalLineResponses(proposal.Lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Propose returns a reservation plan for a demand. Nothing is persisted.
func (s *ReservationService) Propose(ctx context.Context, cmd ProposeCommand) (*ProposalResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	var resp ProposalResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		demand, err := u.DemandRepo().FindByID(ctx, cmd.DemandID)
		if err != nil {
			return notFound(err, "DEMAND_NOT_FOUND", "Demand", cmd.DemandID)
		}
		proposal, err := s.propose(u, demand, cmd)
		if err != nil {
			return err
		}
		resp = ToProposalResponse(proposal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Commit recomputes the proposal under lock and reserves every selected plate.
// Over-reservation requires AcknowledgeOver. A repeated RequestKey is rejected
// as a duplicate while the idempotency store remembers it.
func (s *ReservationService) Commit(ctx context.Context, cmd CommitCommand) (*CommitResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if err := s.checkRequestKey(ctx, cmd.RequestKey); err != nil {
		return nil, err
	}

	var result CommitResult
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		demand, err := u.lockDemand(cmd.DemandID)
		if err != nil {
			return err
		}
		if err := demand.EnsureReservationsModifiable(); err != nil {
			return err
		}

		proposal, err := s.propose(u, demand, cmd.ProposeCommand)
		if err != nil {
			return err
		}
		lines, err := proposal.Finalize(cmd.AcknowledgeOver)
		if err != nil {
			return err
		}

		reservations, err := s.reserveLines(u, demand, lines)
		if err != nil {
			return err
		}
		coverage, err := currentCoverage(u, demand)
		if err != nil {
			return err
		}
		result = CommitResult{
			Reservations: reservations,
			Proposal:     ToProposalResponse(proposal),
			Coverage:     coverage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.markRequestKey(ctx, cmd.RequestKey)
	s.logger.Info("Reservations committed",
		zap.String("demand_id", cmd.DemandID.String()),
		zap.String("policy", result.Proposal.Policy),
		zap.Int("reservations", len(result.Reservations)),
		zap.String("total_reserved", result.Proposal.TotalReserved.String()),
		zap.Bool("over_reserved", result.Proposal.IsOverReserved))
	return &result, nil
}

// AutoReserve commits the policy's default selection for the demand's remaining
// quantity. It never over-reserves; a demand already covered reserves nothing.
func (s *ReservationService) AutoReserve(ctx context.Context, cmd AutoReserveCommand) (*CommitResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var result CommitResult
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		demand, err := u.lockDemand(cmd.DemandID)
		if err != nil {
			return err
		}
		if err := demand.EnsureReservationsModifiable(); err != nil {
			return err
		}

		proposal, err := s.propose(u, demand, ProposeCommand{DemandID: cmd.DemandID, Policy: cmd.Policy})
		if err != nil {
			return err
		}
		reservations, err := s.reserveLines(u, demand, proposal.SelectedLines())
		if err != nil {
			return err
		}
		coverage, err := currentCoverage(u, demand)
		if err != nil {
			return err
		}
		result = CommitResult{
			Reservations: reservations,
			Proposal:     ToProposalResponse(proposal),
			Coverage:     coverage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Auto-reservation completed",
		zap.String("demand_id", cmd.DemandID.String()),
		zap.Int("reservations", len(result.Reservations)),
		zap.String("coverage", result.Coverage.Status))
	return &result, nil
}

func (s *ReservationService) reserveLines(u *unitOfWork, demand *inventory.Demand, lines []inventory.ProposedLine) ([]ReservationResponse, error) {
	out := make([]ReservationResponse, 0, len(lines))
	for _, line := range lines {
		lp, err := u.lockPlate(line.LicensePlateID)
		if err != nil {
			return nil, err
		}
		r, err := reserveOnPlate(u, demand, lp, line.ProposedQty)
		if err != nil {
			return nil, err
		}
		out = append(out, ToReservationResponse(r))
	}
	return out, nil
}

// ReserveLP reserves a quantity of one chosen plate for a demand. The plate must
// carry the demand's product in the demand's warehouse and be available for reservation.
func (s *ReservationService) ReserveLP(ctx context.Context, cmd ReserveLPCommand) (*ReservationResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if !cmd.Quantity.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}

	var resp ReservationResponse
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		demand, err := u.lockDemand(cmd.DemandID)
		if err != nil {
			return err
		}
		if err := demand.EnsureReservationsModifiable(); err != nil {
			return err
		}
		lp, err := u.lockPlate(cmd.LicensePlateID)
		if err != nil {
			return err
		}
		if lp.ProductID != demand.ProductID {
			return shared.NewPolicyViolationError(inventory.CodeLPProductMismatch,
				fmt.Sprintf("License plate %s holds a different product than demand %s", lp.LPNumber, demand.Reference)).
				WithDetail("lp_id", lp.ID.String()).
				WithDetail("demand_id", demand.ID.String())
		}
		if lp.WarehouseID != demand.WarehouseID {
			return shared.NewPolicyViolationError(inventory.CodeLPWarehouseMismatch,
				fmt.Sprintf("License plate %s is stored in a different warehouse than demand %s", lp.LPNumber, demand.Reference)).
				WithDetail("lp_id", lp.ID.String()).
				WithDetail("demand_id", demand.ID.String())
		}

		active, err := u.ReservationRepo().FindActiveByDemand(ctx, demand.ID)
		if err != nil {
			return err
		}
		total := inventory.SumActive(active).Add(cmd.Quantity)
		if over := total.Sub(demand.RequiredQty); over.IsPositive() && !cmd.AcknowledgeOver {
			return shared.NewPolicyViolationError(inventory.CodeOverReservation,
				fmt.Sprintf("Over-reservation of %s %s requires acknowledgment", over, demand.UnitOfMeasure)).
				WithDetail("over_reservation", over.String()).
				WithDetail("required", demand.RequiredQty.String()).
				WithDetail("total_reserved", total.String())
		}

		r, err := reserveOnPlate(u, demand, lp, cmd.Quantity)
		if err != nil {
			return err
		}
		resp = ToReservationResponse(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("License plate reserved",
		zap.String("lp_id", cmd.LicensePlateID.String()),
		zap.String("demand_id", cmd.DemandID.String()),
		zap.String("quantity", cmd.Quantity.String()))
	return &resp, nil
}

// Release releases one active reservation. Releasing a reservation that is not
// active fails with ALREADY_RELEASED.
func (s *ReservationService) Release(ctx context.Context, cmd ReleaseReservationCommand) (*ReservationResponse, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var resp ReservationResponse
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
		if r.IsActive() {
			if err := demand.EnsureReservationsModifiable(); err != nil {
				return err
			}
		}
		if err := releaseReservation(u, r, cmd.Reason); err != nil {
			return err
		}
		resp = ToReservationResponse(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reservation released",
		zap.String("reservation_id", cmd.ReservationID.String()),
		zap.String("lp_id", resp.LicensePlateID.String()),
		zap.String("demand_id", resp.DemandID.String()))
	return &resp, nil
}

// ReleaseAllForDemand releases every active reservation of a demand. Only active
// rows are touched and releasing nothing is not an error.
func (s *ReservationService) ReleaseAllForDemand(ctx context.Context, cmd ReleaseAllCommand) (*ReleaseResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	var result ReleaseResult
	err := s.execute(ctx, cmd.ActorID, func(u *unitOfWork) error {
		demand, err := u.lockDemand(cmd.DemandID)
		if err != nil {
			return err
		}
		if err := demand.EnsureReservationsModifiable(); err != nil {
			return err
		}
		result, err = releaseAllForDemand(u, demand, cmd.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Demand reservations released",
		zap.String("demand_id", cmd.DemandID.String()),
		zap.Int("released", result.ReleasedCount),
		zap.String("quantity", result.ReleasedQty.String()))
	return &result, nil
}

// Coverage reports how much of a demand is reserved
func (s *ReservationService) Coverage(ctx context.Context, demandID uuid.UUID) (*CoverageResponse, error) {
	var resp CoverageResponse
	err := s.read(ctx, func(u *unitOfWork) error {
		demand, err := u.DemandRepo().FindByID(ctx, demandID)
		if err != nil {
			return notFound(err, "DEMAND_NOT_FOUND", "Demand", demandID)
		}
		resp, err = currentCoverage(u, demand)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func currentCoverage(u *unitOfWork, demand *inventory.Demand) (CoverageResponse, error) {
	active, err := u.ReservationRepo().FindActiveByDemand(u.ctx, demand.ID)
	if err != nil {
		return CoverageResponse{}, err
	}
	return toCoverage(demand, inventory.SumActive(active), len(active)), nil
}

func toCoverage(demand *inventory.Demand, reserved decimal.Decimal, activeCount int) CoverageResponse {
	c := inventory.CalculateCoverage(demand.RequiredQty, reserved)
	return CoverageResponse{
		DemandID:        demand.ID,
		Reference:       demand.Reference,
		DemandStatus:    demand.Status.String(),
		RequiredQty:     c.RequiredQty,
		ReservedQty:     c.ReservedQty,
		PickedQty:       demand.PickedQty,
		Shortage:        c.Shortage,
		Status:          string(c.Status),
		ProgressPercent: inventory.ProgressPercent(reserved, demand.RequiredQty),
		Reservations:    activeCount,
	}
}

func commitKey(requestKey string) string {
	return "reservation-commit:" + requestKey
}

func (s *ReservationService) checkRequestKey(ctx context.Context, requestKey string) error {
	if requestKey == "" || s.idempotency == nil {
		return nil
	}
	processed, err := s.idempotency.IsProcessed(ctx, commitKey(requestKey))
	if err != nil {
		return fmt.Errorf("check request key: %w", err)
	}
	if processed {
		return shared.ErrDuplicateRequest.WithDetail("request_key", requestKey)
	}
	return nil
}

func (s *ReservationService) markRequestKey(ctx context.Context, requestKey string) {
	if requestKey == "" || s.idempotency == nil {
		return
	}
	if _, err := s.idempotency.MarkProcessed(ctx, commitKey(requestKey), s.idempotencyTTL); err != nil {
		s.logger.Error("Failed to record request key", zap.String("request_key", requestKey), zap.Error(err))
	}
}
