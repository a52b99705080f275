package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeDemand is the aggregate type recorded on demand events and audit entries
const AggregateTypeDemand = "Demand"

// CodeInvalidDemandStatus is returned when reservations are modified on a demand that no longer accepts them
const CodeInvalidDemandStatus = "INVALID_DEMAND_STATUS"

// DemandType distinguishes production orders from outbound order lines
type DemandType string

const (
	DemandTypeWorkOrder  DemandType = "work_order"
	DemandTypeSalesOrder DemandType = "sales_order"
)

// DemandStatus is the lifecycle status of a demand line
type DemandStatus string

const (
	DemandStatusPlanned    DemandStatus = "planned"
	DemandStatusReleased   DemandStatus = "released"
	DemandStatusInProgress DemandStatus = "in_progress"
	DemandStatusCompleted  DemandStatus = "completed"
	DemandStatusClosed     DemandStatus = "closed"
	DemandStatusCancelled  DemandStatus = "cancelled"
)

// String returns the string representation
func (s DemandStatus) String() string {
	return string(s)
}

// IsOpen is true while the demand still accepts reservation changes
func (s DemandStatus) IsOpen() bool {
	return s == DemandStatusPlanned || s == DemandStatusReleased || s == DemandStatusInProgress
}

// Demand is one material line of a work order or sales order that reserves
// and picks license plates.
type Demand struct {
	shared.BaseAggregateRoot
	Reference     string
	Type          DemandType
	ProductID     uuid.UUID
	WarehouseID   uuid.UUID
	UnitOfMeasure string
	RequiredQty   decimal.Decimal
	PickedQty     decimal.Decimal
	Status        DemandStatus
}

// NewDemand creates a planned demand line
func NewDemand(reference string, demandType DemandType, productID, warehouseID uuid.UUID, required decimal.Decimal, uom string, now time.Time) (*Demand, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, shared.NewValidationError("INVALID_REFERENCE", "Demand reference cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !required.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Required quantity must be positive")
	}
	return &Demand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		Reference:         reference,
		Type:              demandType,
		ProductID:         productID,
		WarehouseID:       warehouseID,
		UnitOfMeasure:     uom,
		RequiredQty:       required,
		PickedQty:         decimal.Zero,
		Status:            DemandStatusPlanned,
	}, nil
}

// CanModifyReservations reports whether reservations may be added or released
func (d *Demand) CanModifyReservations() bool {
	return d.Status.IsOpen()
}

// EnsureReservationsModifiable returns an error when the demand is closed for reservation changes
func (d *Demand) EnsureReservationsModifiable() error {
	if d.CanModifyReservations() {
		return nil
	}
	return shared.NewInvalidTransitionError(CodeInvalidDemandStatus,
		fmt.Sprintf("Cannot modify reservations for demand %s in status %s", d.Reference, d.Status),
		d.Status.String(), "").
		WithDetail("demand_id", d.ID.String())
}

// RemainingToPick returns the required quantity not yet picked
func (d *Demand) RemainingToPick() decimal.Decimal {
	remaining := d.RequiredQty.Sub(d.PickedQty)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RecordPick adds a confirmed pick to the demand's progress and returns the audit change
func (d *Demand) RecordPick(qty decimal.Decimal, now time.Time) (FieldChange, error) {
	if err := d.EnsureReservationsModifiable(); err != nil {
		return FieldChange{}, err
	}
	if !qty.IsPositive() {
		return FieldChange{}, shared.NewValidationError("INVALID_QUANTITY", "Picked quantity must be positive")
	}
	old := d.PickedQty
	d.PickedQty = d.PickedQty.Add(qty)
	if d.Status != DemandStatusInProgress {
		d.Status = DemandStatusInProgress
	}
	d.Touch(now)
	return FieldChange{
		Field:    "picked_qty",
		OldValue: old.String(),
		NewValue: d.PickedQty.String(),
	}, nil
}

// Finish moves an open demand to completed, closed or cancelled
func (d *Demand) Finish(target DemandStatus, now time.Time) (FieldChange, error) {
	switch target {
	case DemandStatusCompleted, DemandStatusClosed, DemandStatusCancelled:
	default:
		return FieldChange{}, shared.NewValidationError("INVALID_DEMAND_STATUS_TARGET",
			fmt.Sprintf("invalid demand finish status: %q", target))
	}
	if !d.Status.IsOpen() {
		return FieldChange{}, shared.NewInvalidTransitionError(CodeInvalidDemandStatus,
			fmt.Sprintf("invalid transition from %s to %s", d.Status, target), d.Status.String(), target.String())
	}
	old := d.Status
	d.Status = target
	d.Touch(now)
	return FieldChange{Field: FieldStatus, OldValue: old.String(), NewValue: target.String()}, nil
}

// Release moves a planned demand to released
func (d *Demand) Release(now time.Time) (FieldChange, error) {
	if d.Status != DemandStatusPlanned {
		return FieldChange{}, shared.NewInvalidTransitionError(CodeInvalidDemandStatus,
			fmt.Sprintf("invalid transition from %s to %s", d.Status, DemandStatusReleased),
			d.Status.String(), DemandStatusReleased.String())
	}
	d.Status = DemandStatusReleased
	d.Touch(now)
	return FieldChange{Field: FieldStatus, OldValue: DemandStatusPlanned.String(), NewValue: DemandStatusReleased.String()}, nil
}
