package inventory

import (
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Commands
// =============================================================================

// TransitionCommand requests a license plate status change
type TransitionCommand struct {
	LicensePlateID uuid.UUID `json:"license_plate_id" validate:"required"`
	Target         string    `json:"target" validate:"required,oneof=available reserved consumed blocked"`
	Reason         string    `json:"reason" validate:"max=500"`
	ActorID        uuid.UUID `json:"actor_id" validate:"required"`
}

// UpdateQAStatusCommand requests a QA disposition change.
// CanChangeQA is the caller's capability; the controller refuses when it is false.
type UpdateQAStatusCommand struct {
	LicensePlateID uuid.UUID `json:"license_plate_id" validate:"required"`
	Target         string    `json:"target" validate:"required,oneof=pending passed failed quarantine"`
	Reason         string    `json:"reason" validate:"max=500"`
	ActorID        uuid.UUID `json:"actor_id" validate:"required"`
	CanChangeQA    bool      `json:"-"`
}

// ProposeCommand asks for a reservation proposal for a demand.
// An empty Policy uses the configured default.
type ProposeCommand struct {
	DemandID    uuid.UUID                     `json:"demand_id" validate:"required"`
	Policy      string                        `json:"policy" validate:"max=32"`
	PreferBatch string                        `json:"prefer_batch" validate:"max=100"`
	Overrides   map[uuid.UUID]decimal.Decimal `json:"overrides"`
}

// CommitCommand finalizes a proposal into reservations
type CommitCommand struct {
	ProposeCommand
	AcknowledgeOver bool      `json:"acknowledge_over"`
	RequestKey      string    `json:"request_key" validate:"max=128"`
	ActorID         uuid.UUID `json:"actor_id" validate:"required"`
}

// ReserveLPCommand reserves a quantity of one specific license plate for a demand
type ReserveLPCommand struct {
	DemandID        uuid.UUID       `json:"demand_id" validate:"required"`
	LicensePlateID  uuid.UUID       `json:"license_plate_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	AcknowledgeOver bool            `json:"acknowledge_over"`
	ActorID         uuid.UUID       `json:"actor_id" validate:"required"`
}

// AutoReserveCommand reserves the default selection for a demand
type AutoReserveCommand struct {
	DemandID uuid.UUID `json:"demand_id" validate:"required"`
	Policy   string    `json:"policy" validate:"max=32"`
	ActorID  uuid.UUID `json:"actor_id" validate:"required"`
}

// ReleaseReservationCommand releases one reservation
type ReleaseReservationCommand struct {
	ReservationID uuid.UUID `json:"reservation_id" validate:"required"`
	Reason        string    `json:"reason" validate:"max=500"`
	ActorID       uuid.UUID `json:"actor_id" validate:"required"`
}

// ReleaseAllCommand releases every active reservation of a demand
type ReleaseAllCommand struct {
	DemandID uuid.UUID `json:"demand_id" validate:"required"`
	Reason   string    `json:"reason" validate:"max=500"`
	ActorID  uuid.UUID `json:"actor_id" validate:"required"`
}

// ConfirmPickCommand confirms the physical pick of a reservation.
// A zero Quantity picks the full reserved quantity.
type ConfirmPickCommand struct {
	ReservationID uuid.UUID       `json:"reservation_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	ActorID       uuid.UUID       `json:"actor_id" validate:"required"`
}

// CreateDemandCommand registers a work order or sales order line
type CreateDemandCommand struct {
	Reference     string          `json:"reference" validate:"required,max=100"`
	Type          string          `json:"type" validate:"required,oneof=work_order sales_order"`
	ProductID     uuid.UUID       `json:"product_id" validate:"required"`
	WarehouseID   uuid.UUID       `json:"warehouse_id" validate:"required"`
	RequiredQty   decimal.Decimal `json:"required_qty"`
	UnitOfMeasure string          `json:"unit_of_measure" validate:"max=20"`
	ActorID       uuid.UUID       `json:"actor_id" validate:"required"`
}

// DemandStatusCommand moves a demand through its lifecycle
type DemandStatusCommand struct {
	DemandID uuid.UUID `json:"demand_id" validate:"required"`
	Reason   string    `json:"reason" validate:"max=500"`
	ActorID  uuid.UUID `json:"actor_id" validate:"required"`
}

// CreateReceivingLineCommand registers an expected ASN line
type CreateReceivingLineCommand struct {
	ASNID          uuid.UUID       `json:"asn_id" validate:"required"`
	ProductID      uuid.UUID       `json:"product_id" validate:"required"`
	WarehouseID    uuid.UUID       `json:"warehouse_id" validate:"required"`
	ExpectedQty    decimal.Decimal `json:"expected_qty"`
	UnitOfMeasure  string          `json:"unit_of_measure" validate:"max=20"`
	ExpectedBatch  string          `json:"expected_batch" validate:"max=100"`
	ExpectedExpiry *time.Time      `json:"expected_expiry"`
}

// PreviewReceiptQuery evaluates a receiving session without recording it
type PreviewReceiptQuery struct {
	ReceivingLineID uuid.UUID       `json:"receiving_line_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// ReceiveCommand records one receiving session against an ASN line and
// creates the license plate for the received stock. An empty LPNumber is generated.
type ReceiveCommand struct {
	ReceivingLineID uuid.UUID       `json:"receiving_line_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	LPNumber        string          `json:"lp_number" validate:"max=64"`
	BatchNumber     string          `json:"batch_number" validate:"max=100"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	ActorID         uuid.UUID       `json:"actor_id" validate:"required"`
}

// =============================================================================
// Responses
// =============================================================================

// LicensePlateResponse represents a license plate in API responses
type LicensePlateResponse struct {
	ID                uuid.UUID       `json:"id"`
	LPNumber          string          `json:"lp_number"`
	ProductID         uuid.UUID       `json:"product_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	AllocatedQuantity decimal.Decimal `json:"allocated_quantity"`
	NetAvailable      decimal.Decimal `json:"net_available"`
	Status            string          `json:"status"`
	QAStatus          string          `json:"qa_status"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	ReceivedAt        time.Time       `json:"received_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ToLicensePlateResponse converts a domain license plate to a response
func ToLicensePlateResponse(lp *inventory.LicensePlate) LicensePlateResponse {
	return LicensePlateResponse{
		ID:                lp.ID,
		LPNumber:          lp.LPNumber,
		ProductID:         lp.ProductID,
		WarehouseID:       lp.WarehouseID,
		BatchNumber:       lp.BatchNumber,
		UnitOfMeasure:     lp.UnitOfMeasure,
		QuantityOnHand:    lp.QuantityOnHand,
		AllocatedQuantity: lp.AllocatedQuantity,
		NetAvailable:      lp.NetAvailable(),
		Status:            lp.Status.String(),
		QAStatus:          lp.QAStatus.String(),
		ExpiryDate:        lp.ExpiryDate,
		ReceivedAt:        lp.ReceivedAt,
		CreatedAt:         lp.CreatedAt,
		UpdatedAt:         lp.UpdatedAt,
		Version:           lp.Version,
	}
}

// AuditEntryResponse represents one status audit entry
type AuditEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	Reason     *string   `json:"reason"`
	ActorID    uuid.UUID `json:"actor_id"`
	ChangedAt  time.Time `json:"changed_at"`
}

// ToAuditEntryResponses converts audit entries to responses, keeping their order
func ToAuditEntryResponses(entries []*inventory.StatusAuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			ID:         e.ID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Field:      e.Field,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			Reason:     e.Reason,
			ActorID:    e.ActorID,
			ChangedAt:  e.ChangedAt,
		}
	}
	return out
}

// QAStatusResponse is the result of a QA disposition change
type QAStatusResponse struct {
	LicensePlate  LicensePlateResponse `json:"license_plate"`
	StatusChanged bool                 `json:"status_changed"`
	Changes       []AuditEntryResponse `json:"changes"`
}

// ConsumptionCheckResponse explains whether a plate may be consumed
type ConsumptionCheckResponse struct {
	LicensePlateID  uuid.UUID `json:"license_plate_id"`
	Valid           bool      `json:"valid"`
	Reason          string    `json:"reason,omitempty"`
	CurrentStatus   string    `json:"current_status"`
	CurrentQAStatus string    `json:"current_qa_status"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID             uuid.UUID       `json:"id"`
	LicensePlateID uuid.UUID       `json:"license_plate_id"`
	DemandID       uuid.UUID       `json:"demand_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Status         string          `json:"status"`
	ReservedBy     uuid.UUID       `json:"reserved_by"`
	CreatedAt      time.Time       `json:"created_at"`
	ReleasedAt     *time.Time      `json:"released_at,omitempty"`
	ConsumedAt     *time.Time      `json:"consumed_at,omitempty"`
	ReleaseReason  string          `json:"release_reason,omitempty"`
}

// ToReservationResponse converts a domain reservation to a response
func ToReservationResponse(r *inventory.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID,
		LicensePlateID: r.LicensePlateID,
		DemandID:       r.DemandID,
		Quantity:       r.Quantity,
		Status:         r.Status.String(),
		ReservedBy:     r.ReservedBy,
		CreatedAt:      r.CreatedAt,
		ReleasedAt:     r.ReleasedAt,
		ConsumedAt:     r.ConsumedAt,
		ReleaseReason:  r.ReleaseReason,
	}
}

// ProposalLineResponse is one candidate plate of a proposal
type ProposalLineResponse struct {
	LicensePlateID    uuid.UUID       `json:"license_plate_id"`
	LPNumber          string          `json:"lp_number"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	ReceivedAt        time.Time       `json:"received_at"`
	Status            string          `json:"status"`
	OnHand            decimal.Decimal `json:"on_hand"`
	AllocatedByOthers decimal.Decimal `json:"allocated_by_others"`
	ReservedByOthers  bool            `json:"reserved_by_others"`
	NetAvailable      decimal.Decimal `json:"net_available"`
	Offerable         decimal.Decimal `json:"offerable"`
	ProposedQty       decimal.Decimal `json:"proposed_qty"`
}

// ProposalResponse is a side-effect free reservation plan
type ProposalResponse struct {
	DemandID        uuid.UUID              `json:"demand_id"`
	Policy          string                 `json:"policy"`
	UnitOfMeasure   string                 `json:"unit_of_measure"`
	RequiredQty     decimal.Decimal        `json:"required_qty"`
	AlreadyReserved decimal.Decimal        `json:"already_reserved"`
	Lines           []ProposalLineResponse `json:"lines"`
	TotalSelected   decimal.Decimal        `json:"total_selected"`
	TotalReserved   decimal.Decimal        `json:"total_reserved"`
	OverReservation decimal.Decimal        `json:"over_reservation"`
	IsOverReserved  bool                   `json:"is_over_reserved"`
	ProgressPercent int64                  `json:"progress_percent"`
	DisplayProgress int64                  `json:"display_progress"`
	CoverageStatus  string                 `json:"coverage_status"`
	Shortage        decimal.Decimal        `json:"shortage"`
}

// ToProposalLineResponses converts proposal lines to responses
func ToProposalLineResponses(lines []inventory.ProposedLine) []ProposalLineResponse {
	out := make([]ProposalLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ProposalLineResponse{
			LicensePlateID:    l.LicensePlateID,
			LPNumber:          l.LPNumber,
			BatchNumber:       l.BatchNumber,
			ExpiryDate:        l.ExpiryDate,
			ReceivedAt:        l.ReceivedAt,
			Status:            l.Status.String(),
			OnHand:            l.OnHand,
			AllocatedByOthers: l.AllocatedByOthers,
			ReservedByOthers:  l.ReservedByOthers,
			NetAvailable:      l.NetAvailable,
			Offerable:         l.Offerable,
			ProposedQty:       l.ProposedQty,
		}
	}
	return out
}

// ToProposalResponse converts a domain proposal to a response
func ToProposalResponse(p *inventory.AllocationProposal) ProposalResponse {
	return ProposalResponse{
		DemandID:        p.DemandID,
		Policy:          p.Policy,
		UnitOfMeasure:   p.UnitOfMeasure,
		RequiredQty:     p.RequiredQty,
		AlreadyReserved: p.AlreadyReserved,
		Lines:           ToProposalLineResponses(p.Lines),
		TotalSelected:   p.TotalSelected,
		TotalReserved:   p.TotalReserved,
		OverReservation: p.OverReservation,
		IsOverReserved:  p.IsOverReserved,
		ProgressPercent: p.ProgressPercent,
		DisplayProgress: p.DisplayProgress,
		CoverageStatus:  string(p.Coverage.Status),
		Shortage:        p.Coverage.Shortage,
	}
}

// CoverageResponse is the reserved-versus-required position of a demand
type CoverageResponse struct {
	DemandID        uuid.UUID       `json:"demand_id"`
	Reference       string          `json:"reference"`
	DemandStatus    string          `json:"demand_status"`
	RequiredQty     decimal.Decimal `json:"required_qty"`
	ReservedQty     decimal.Decimal `json:"reserved_qty"`
	PickedQty       decimal.Decimal `json:"picked_qty"`
	Shortage        decimal.Decimal `json:"shortage"`
	Status          string          `json:"status"`
	ProgressPercent int64           `json:"progress_percent"`
	Reservations    int             `json:"active_reservations"`
}

// CommitResult is the outcome of a reservation commit
type CommitResult struct {
	Reservations []ReservationResponse `json:"reservations"`
	Proposal     ProposalResponse      `json:"proposal"`
	Coverage     CoverageResponse      `json:"coverage"`
}

// ReleaseResult summarises a release operation
type ReleaseResult struct {
	ReleasedCount int             `json:"released_count"`
	ReleasedQty   decimal.Decimal `json:"released_qty"`
}

// PickResult is the outcome of a confirmed pick
type PickResult struct {
	Reservation  ReservationResponse  `json:"reservation"`
	LicensePlate LicensePlateResponse `json:"license_plate"`
	PickedQty    decimal.Decimal      `json:"picked_qty"`
	DemandPicked decimal.Decimal      `json:"demand_picked_qty"`
	DemandStatus string               `json:"demand_status"`
}

// DemandResponse represents a demand line in API responses
type DemandResponse struct {
	ID            uuid.UUID       `json:"id"`
	Reference     string          `json:"reference"`
	Type          string          `json:"type"`
	ProductID     uuid.UUID       `json:"product_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	RequiredQty   decimal.Decimal `json:"required_qty"`
	PickedQty     decimal.Decimal `json:"picked_qty"`
	Status        string          `json:"status"`
	Version       int             `json:"version"`
}

// ToDemandResponse converts a domain demand to a response
func ToDemandResponse(d *inventory.Demand) DemandResponse {
	return DemandResponse{
		ID:            d.ID,
		Reference:     d.Reference,
		Type:          string(d.Type),
		ProductID:     d.ProductID,
		WarehouseID:   d.WarehouseID,
		UnitOfMeasure: d.UnitOfMeasure,
		RequiredQty:   d.RequiredQty,
		PickedQty:     d.PickedQty,
		Status:        d.Status.String(),
		Version:       d.Version,
	}
}

// DemandStatusResult is the outcome of finishing a demand
type DemandStatusResult struct {
	Demand   DemandResponse `json:"demand"`
	Released ReleaseResult  `json:"released"`
}

// ReceivingLineResponse represents an ASN line
type ReceivingLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	ASNID         uuid.UUID       `json:"asn_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	ExpectedQty   decimal.Decimal `json:"expected_qty"`
	ReceivedQty   decimal.Decimal `json:"received_qty"`
	RemainingQty  decimal.Decimal `json:"remaining_qty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Version       int             `json:"version"`
}

// ToReceivingLineResponse converts a domain receiving line to a response
func ToReceivingLineResponse(l *inventory.ReceivingLine) ReceivingLineResponse {
	return ReceivingLineResponse{
		ID:            l.ID,
		ASNID:         l.ASNID,
		ProductID:     l.ProductID,
		WarehouseID:   l.WarehouseID,
		ExpectedQty:   l.ExpectedQty,
		ReceivedQty:   l.ReceivedQty,
		RemainingQty:  l.RemainingQty(),
		UnitOfMeasure: l.UnitOfMeasure,
		Version:       l.Version,
	}
}

// ReceiptPreviewResponse is the evaluated outcome of a receiving session
type ReceiptPreviewResponse struct {
	ReceivingLineID    uuid.UUID       `json:"receiving_line_id"`
	ExpectedQty        decimal.Decimal `json:"expected_qty"`
	AlreadyReceived    decimal.Decimal `json:"already_received"`
	Quantity           decimal.Decimal `json:"quantity"`
	Cumulative         decimal.Decimal `json:"cumulative"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercent    decimal.Decimal `json:"variance_percent"`
	Indicator          string          `json:"indicator"`
	Allowed            bool            `json:"allowed"`
	MaxAllowed         decimal.Decimal `json:"max_allowed"`
	ExceedsTolerance   bool            `json:"exceeds_tolerance"`
	OverReceiptPercent decimal.Decimal `json:"over_receipt_percent"`
	Message            string          `json:"message,omitempty"`
}

func toReceiptPreview(line *inventory.ReceivingLine, check inventory.ReceiptCheck) ReceiptPreviewResponse {
	return ReceiptPreviewResponse{
		ReceivingLineID:    line.ID,
		ExpectedQty:        line.ExpectedQty,
		AlreadyReceived:    line.ReceivedQty,
		Quantity:           check.Quantity,
		Cumulative:         check.Cumulative,
		Variance:           check.Variance.Variance,
		VariancePercent:    check.Variance.VariancePercent,
		Indicator:          string(check.Variance.Indicator),
		Allowed:            check.OverReceipt.Allowed,
		MaxAllowed:         check.OverReceipt.MaxAllowed,
		ExceedsTolerance:   check.OverReceipt.ExceedsTolerance,
		OverReceiptPercent: check.OverReceipt.OverReceiptPercent,
	}
}

// ReceiptResponse is the outcome of a recorded receiving session
type ReceiptResponse struct {
	Line          ReceivingLineResponse `json:"line"`
	LicensePlate  LicensePlateResponse  `json:"license_plate"`
	Variance      decimal.Decimal       `json:"variance"`
	Indicator     string                `json:"indicator"`
	ASNStatus     string                `json:"asn_status"`
	ASNReceivedAt *time.Time            `json:"asn_received_at,omitempty"`
}

// ASNResponse is the derived receiving status of a shipment and its lines
type ASNResponse struct {
	ASNID  uuid.UUID               `json:"asn_id"`
	Status string                  `json:"status"`
	Lines  []ReceivingLineResponse `json:"lines"`
}
