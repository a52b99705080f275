package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/domain/shared/strategy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error codes raised by the allocation engine
const (
	CodeOverReservation     = "OVER_RESERVATION"
	CodeExceedsLPQuantity   = "EXCEEDS_LP_QUANTITY"
	CodeLPProductMismatch   = "LP_PRODUCT_MISMATCH"
	CodeLPWarehouseMismatch = "LP_WAREHOUSE_MISMATCH"
	CodeNothingToReserve    = "NOTHING_TO_RESERVE"
)

// DefaultDisplayProgressCap bounds the progress value shown to users
const DefaultDisplayProgressCap = 200

var hundred = decimal.NewFromInt(100)

// CoverageStatus summarises how much of a demand is reserved
type CoverageStatus string

const (
	CoverageNone    CoverageStatus = "none"
	CoveragePartial CoverageStatus = "partial"
	CoverageFull    CoverageStatus = "full"
	CoverageOver    CoverageStatus = "over"
)

// Coverage is the reserved-versus-required position of a demand
type Coverage struct {
	RequiredQty decimal.Decimal
	ReservedQty decimal.Decimal
	Shortage    decimal.Decimal
	Status      CoverageStatus
}

// CalculateCoverage classifies reserved against required
func CalculateCoverage(required, reserved decimal.Decimal) Coverage {
	c := Coverage{RequiredQty: required, ReservedQty: reserved, Shortage: decimal.Zero}
	switch {
	case !reserved.IsPositive():
		c.Status = CoverageNone
	case reserved.LessThan(required):
		c.Status = CoveragePartial
	case reserved.Equal(required):
		c.Status = CoverageFull
	default:
		c.Status = CoverageOver
	}
	if reserved.LessThan(required) {
		c.Shortage = required.Sub(reserved)
	}
	return c
}

// AllocationCandidate is a license plate offered to the engine together with
// the quantity the requesting demand already holds on it.
type AllocationCandidate struct {
	LicensePlate *LicensePlate
	HeldByDemand decimal.Decimal
}

// AllocationRequest asks the engine to cover RequiredQty for one demand
type AllocationRequest struct {
	DemandID        uuid.UUID
	ProductID       uuid.UUID
	WarehouseID     uuid.UUID
	RequiredQty     decimal.Decimal
	UnitOfMeasure   string
	AlreadyReserved decimal.Decimal
	AsOf            time.Time
	PreferBatch     string

	// Overrides replaces the default selection with explicit per-plate quantities.
	// A zero quantity deselects a plate.
	Overrides map[uuid.UUID]decimal.Decimal
}

// ProposedLine is one candidate plate in a proposal
type ProposedLine struct {
	LicensePlateID    uuid.UUID
	LPNumber          string
	BatchNumber       string
	ExpiryDate        *time.Time
	ReceivedAt        time.Time
	Status            LPStatus
	OnHand            decimal.Decimal
	AllocatedByOthers decimal.Decimal
	ReservedByOthers  bool

	// NetAvailable is on-hand less quantity reserved by other demands
	NetAvailable decimal.Decimal
	// Offerable is what this demand may still add on the plate
	Offerable decimal.Decimal

	ProposedQty decimal.Decimal
}

// Selected is true when the line carries a positive proposed quantity
func (l ProposedLine) Selected() bool {
	return l.ProposedQty.IsPositive()
}

// AllocationProposal is a side-effect free reservation plan
type AllocationProposal struct {
	DemandID        uuid.UUID
	Policy          string
	UnitOfMeasure   string
	RequiredQty     decimal.Decimal
	AlreadyReserved decimal.Decimal
	Lines           []ProposedLine
	TotalSelected   decimal.Decimal
	TotalReserved   decimal.Decimal // AlreadyReserved plus TotalSelected
	OverReservation decimal.Decimal
	IsOverReserved  bool
	ProgressPercent int64
	DisplayProgress int64
	Coverage        Coverage
}

// SelectedLines returns the lines with a positive proposed quantity, in policy order
func (p *AllocationProposal) SelectedLines() []ProposedLine {
	out := make([]ProposedLine, 0, len(p.Lines))
	for _, l := range p.Lines {
		if l.Selected() {
			out = append(out, l)
		}
	}
	return out
}

// Finalize returns the lines to commit. Over-reservation is refused unless acknowledged.
func (p *AllocationProposal) Finalize(acknowledgeOver bool) ([]ProposedLine, error) {
	selected := p.SelectedLines()
	if len(selected) == 0 {
		return nil, shared.NewValidationError(CodeNothingToReserve, "No license plates selected for reservation")
	}
	if p.IsOverReserved && !acknowledgeOver {
		return nil, shared.NewPolicyViolationError(CodeOverReservation,
			fmt.Sprintf("Over-reservation of %s %s requires acknowledgment", p.OverReservation, p.UnitOfMeasure)).
			WithDetail("over_reservation", p.OverReservation.String()).
			WithDetail("required", p.RequiredQty.String()).
			WithDetail("total_reserved", p.TotalReserved.String())
	}
	return selected, nil
}

// AllocationEngine proposes per-plate reservations under a batch selection strategy
type AllocationEngine struct {
	strategy           strategy.BatchManagementStrategy
	displayProgressCap int64
}

// AllocationEngineOption configures an AllocationEngine
type AllocationEngineOption func(*AllocationEngine)

// WithDisplayProgressCap caps DisplayProgress at the given percentage
func WithDisplayProgressCap(capPct int64) AllocationEngineOption {
	return func(e *AllocationEngine) {
		if capPct > 0 {
			e.displayProgressCap = capPct
		}
	}
}

// NewAllocationEngine creates an engine ordering candidates with s
func NewAllocationEngine(s strategy.BatchManagementStrategy, opts ...AllocationEngineOption) *AllocationEngine {
	e := &AllocationEngine{
		strategy:           s,
		displayProgressCap: DefaultDisplayProgressCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the name of the engine's sort policy
func (e *AllocationEngine) Policy() string {
	return e.strategy.Name()
}

// IsEligible reports whether a plate may be offered for reservation at all:
// available or reserved, QA passed.
func IsEligible(lp *LicensePlate) bool {
	return (lp.Status == LPStatusAvailable || lp.Status == LPStatusReserved) && lp.QAStatus == QAStatusPassed
}

// Propose orders the eligible candidates and proposes a quantity for each.
// Without overrides the running total is capped at the quantity still required.
// Proposals never persist anything.
func (e *AllocationEngine) Propose(ctx context.Context, req AllocationRequest, candidates []AllocationCandidate) (*AllocationProposal, error) {
	if !req.RequiredQty.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Required quantity must be positive")
	}
	if req.AlreadyReserved.IsNegative() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Already reserved quantity cannot be negative")
	}

	lines := make(map[uuid.UUID]ProposedLine, len(candidates))
	batches := make([]strategy.Batch, 0, len(candidates))
	for _, c := range candidates {
		lp := c.LicensePlate
		if lp == nil || !IsEligible(lp) {
			continue
		}
		held := c.HeldByDemand
		byOthers := lp.AllocatedQuantity.Sub(held)
		if byOthers.IsNegative() {
			byOthers = decimal.Zero
		}
		net := lp.AvailableFor(held)
		offerable := net.Sub(held)
		if offerable.IsNegative() {
			offerable = decimal.Zero
		}

		lines[lp.ID] = ProposedLine{
			LicensePlateID:    lp.ID,
			LPNumber:          lp.LPNumber,
			BatchNumber:       lp.BatchNumber,
			ExpiryDate:        lp.ExpiryDate,
			ReceivedAt:        lp.ReceivedAt,
			Status:            lp.Status,
			OnHand:            lp.QuantityOnHand,
			AllocatedByOthers: byOthers,
			NetAvailable:      net,
			Offerable:         offerable,
			ReservedByOthers:  byOthers.IsPositive(),
			ProposedQty:       decimal.Zero,
		}
		batches = append(batches, strategy.Batch{
			ID:           lp.ID,
			LPNumber:     lp.LPNumber,
			BatchNumber:  lp.BatchNumber,
			ProductID:    lp.ProductID,
			WarehouseID:  lp.WarehouseID,
			AvailableQty: offerable,
			ExpiryDate:   lp.ExpiryDate,
			ReceivedDate: lp.ReceivedAt,
		})
	}

	target := req.RequiredQty.Sub(req.AlreadyReserved)
	if target.IsNegative() {
		target = decimal.Zero
	}
	selCtx := strategy.BatchSelectionContext{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    target,
		Date:        req.AsOf,
		PreferBatch: req.PreferBatch,
	}

	ordered := e.strategy.Order(selCtx, batches)
	proposal := &AllocationProposal{
		DemandID:        req.DemandID,
		Policy:          e.strategy.Name(),
		UnitOfMeasure:   req.UnitOfMeasure,
		RequiredQty:     req.RequiredQty,
		AlreadyReserved: req.AlreadyReserved,
		Lines:           make([]ProposedLine, 0, len(ordered)),
	}
	for _, b := range ordered {
		proposal.Lines = append(proposal.Lines, lines[b.ID])
	}

	if req.Overrides != nil {
		if err := applyOverrides(proposal, req.Overrides); err != nil {
			return nil, err
		}
	} else {
		result, err := e.strategy.SelectBatches(ctx, selCtx, batches)
		if err != nil {
			return nil, fmt.Errorf("select batches: %w", err)
		}
		picked := make(map[uuid.UUID]decimal.Decimal, len(result.Selections))
		for _, s := range result.Selections {
			picked[s.BatchID] = s.Quantity
		}
		for i := range proposal.Lines {
			if q, ok := picked[proposal.Lines[i].LicensePlateID]; ok {
				proposal.Lines[i].ProposedQty = q
			}
		}
	}

	e.summarize(proposal)
	return proposal, nil
}

func applyOverrides(p *AllocationProposal, overrides map[uuid.UUID]decimal.Decimal) error {
	index := make(map[uuid.UUID]int, len(p.Lines))
	for i, l := range p.Lines {
		index[l.LicensePlateID] = i
	}
	for lpID, qty := range overrides {
		if qty.IsNegative() {
			return shared.NewValidationError("INVALID_QUANTITY", "Reservation quantity cannot be negative").
				WithDetail("lp_id", lpID.String())
		}
		i, ok := index[lpID]
		if !ok {
			if qty.IsZero() {
				continue
			}
			return shared.NewPolicyViolationError(CodeNotAvailable,
				fmt.Sprintf("License plate %s is not available for this demand", lpID)).
				WithDetail("lp_id", lpID.String())
		}
		line := p.Lines[i]
		if qty.GreaterThan(line.Offerable) {
			return shared.NewPolicyViolationError(CodeExceedsLPQuantity,
				fmt.Sprintf("Quantity %s exceeds available quantity %s on %s", qty, line.Offerable, line.LPNumber)).
				WithDetail("lp_id", lpID.String()).
				WithDetail("requested", qty.String()).
				WithDetail("max_allowed", line.Offerable.String())
		}
		p.Lines[i].ProposedQty = qty
	}
	return nil
}

func (e *AllocationEngine) summarize(p *AllocationProposal) {
	total := decimal.Zero
	for _, l := range p.Lines {
		total = total.Add(l.ProposedQty)
	}
	p.TotalSelected = total
	p.TotalReserved = p.AlreadyReserved.Add(total)

	over := p.TotalReserved.Sub(p.RequiredQty)
	if over.IsPositive() {
		p.OverReservation = over
		p.IsOverReserved = true
	} else {
		p.OverReservation = decimal.Zero
	}

	p.ProgressPercent = ProgressPercent(p.TotalReserved, p.RequiredQty)
	p.DisplayProgress = p.ProgressPercent
	if p.DisplayProgress > e.displayProgressCap {
		p.DisplayProgress = e.displayProgressCap
	}
	p.Coverage = CalculateCoverage(p.RequiredQty, p.TotalReserved)
}

// ProgressPercent returns round(100 * total / required). Values above 100 are kept
// so over-target selections stay distinguishable.
func ProgressPercent(total, required decimal.Decimal) int64 {
	if !required.IsPositive() {
		return 0
	}
	return total.Mul(hundred).Div(required).Round(0).IntPart()
}
