package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeLicensePlate is the aggregate type recorded on events and audit entries
const AggregateTypeLicensePlate = "LicensePlate"

// LPStatus is the lifecycle status of a license plate
type LPStatus string

const (
	LPStatusAvailable LPStatus = "available"
	LPStatusReserved  LPStatus = "reserved"
	LPStatusConsumed  LPStatus = "consumed"
	LPStatusBlocked   LPStatus = "blocked"
)

// String returns the string representation
func (s LPStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the four known values
func (s LPStatus) IsValid() bool {
	switch s {
	case LPStatusAvailable, LPStatusReserved, LPStatusConsumed, LPStatusBlocked:
		return true
	}
	return false
}

// AllLPStatuses returns every license plate status
func AllLPStatuses() []LPStatus {
	return []LPStatus{LPStatusAvailable, LPStatusReserved, LPStatusConsumed, LPStatusBlocked}
}

// QAStatus is the quality disposition of a license plate
type QAStatus string

const (
	QAStatusPending    QAStatus = "pending"
	QAStatusPassed     QAStatus = "passed"
	QAStatusFailed     QAStatus = "failed"
	QAStatusQuarantine QAStatus = "quarantine"
)

// String returns the string representation
func (s QAStatus) String() string {
	return string(s)
}

// IsValid returns true if the QA status is one of the four known values
func (s QAStatus) IsValid() bool {
	switch s {
	case QAStatusPending, QAStatusPassed, QAStatusFailed, QAStatusQuarantine:
		return true
	}
	return false
}

// AllQAStatuses returns every QA status
func AllQAStatuses() []QAStatus {
	return []QAStatus{QAStatusPending, QAStatusPassed, QAStatusFailed, QAStatusQuarantine}
}

// LicensePlate is one traceable lot of physical stock.
// Invariant: 0 <= AllocatedQuantity <= QuantityOnHand.
type LicensePlate struct {
	shared.BaseAggregateRoot
	LPNumber          string
	ProductID         uuid.UUID
	WarehouseID       uuid.UUID
	BatchNumber       string
	UnitOfMeasure     string
	QuantityOnHand    decimal.Decimal
	AllocatedQuantity decimal.Decimal
	Status            LPStatus
	QAStatus          QAStatus
	ExpiryDate        *time.Time
	ReceivedAt        time.Time
	ReceivingLineID   *uuid.UUID
}

// NewLicensePlateParams holds the attributes captured at receipt
type NewLicensePlateParams struct {
	LPNumber        string
	ProductID       uuid.UUID
	WarehouseID     uuid.UUID
	BatchNumber     string
	UnitOfMeasure   string
	Quantity        decimal.Decimal
	ExpiryDate      *time.Time
	ReceivingLineID *uuid.UUID
	QAExempt        bool
}

// NewLicensePlate creates a license plate at receipt: status available, QA pending
// (or passed when the product is QA-exempt).
func NewLicensePlate(p NewLicensePlateParams, now time.Time) (*LicensePlate, error) {
	if strings.TrimSpace(p.LPNumber) == "" {
		return nil, shared.NewValidationError("INVALID_LP_NUMBER", "LP number cannot be empty")
	}
	if p.ProductID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if p.WarehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !p.Quantity.IsPositive() {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}

	qa := QAStatusPending
	if p.QAExempt {
		qa = QAStatusPassed
	}

	lp := &LicensePlate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		LPNumber:          p.LPNumber,
		ProductID:         p.ProductID,
		WarehouseID:       p.WarehouseID,
		BatchNumber:       p.BatchNumber,
		UnitOfMeasure:     p.UnitOfMeasure,
		QuantityOnHand:    p.Quantity,
		AllocatedQuantity: decimal.Zero,
		Status:            LPStatusAvailable,
		QAStatus:          qa,
		ExpiryDate:        p.ExpiryDate,
		ReceivedAt:        now,
		ReceivingLineID:   p.ReceivingLineID,
	}

	lp.AddDomainEvent(NewLicensePlateReceivedEvent(lp, now))
	return lp, nil
}

// NetAvailable returns on-hand quantity not yet allocated to any demand
func (lp *LicensePlate) NetAvailable() decimal.Decimal {
	net := lp.QuantityOnHand.Sub(lp.AllocatedQuantity)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// AvailableFor returns the quantity a demand may hold on this plate, given the
// quantity that demand already has reserved here. Only other demands' reservations reduce it.
func (lp *LicensePlate) AvailableFor(heldByDemand decimal.Decimal) decimal.Decimal {
	byOthers := lp.AllocatedQuantity.Sub(heldByDemand)
	if byOthers.IsNegative() {
		byOthers = decimal.Zero
	}
	net := lp.QuantityOnHand.Sub(byOthers)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// IsExpired reports whether the expiry date is a day before asOf's date
func (lp *LicensePlate) IsExpired(asOf time.Time) bool {
	return shared.ExpiredOn(lp.ExpiryDate, asOf)
}

// Allocate adds qty to the allocated quantity. The result may never exceed on-hand.
func (lp *LicensePlate) Allocate(qty decimal.Decimal, now time.Time) error {
	if !qty.IsPositive() {
		return shared.NewValidationError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}
	next := lp.AllocatedQuantity.Add(qty)
	if next.GreaterThan(lp.QuantityOnHand) {
		return shared.NewPolicyViolationError("EXCEEDS_LP_QUANTITY",
			fmt.Sprintf("Quantity %s exceeds available quantity %s on %s", qty, lp.NetAvailable(), lp.LPNumber)).
			WithDetail("lp_id", lp.ID.String()).
			WithDetail("requested", qty.String()).
			WithDetail("max_allowed", lp.NetAvailable().String())
	}
	lp.AllocatedQuantity = next
	lp.Touch(now)
	return nil
}

// Deallocate returns qty from the allocated quantity
func (lp *LicensePlate) Deallocate(qty decimal.Decimal, now time.Time) error {
	if qty.IsNegative() {
		return shared.NewValidationError("INVALID_QUANTITY", "Release quantity cannot be negative")
	}
	if qty.GreaterThan(lp.AllocatedQuantity) {
		return shared.NewValidationError("INVALID_QUANTITY",
			fmt.Sprintf("Release quantity %s exceeds allocated quantity %s", qty, lp.AllocatedQuantity))
	}
	lp.AllocatedQuantity = lp.AllocatedQuantity.Sub(qty)
	lp.Touch(now)
	return nil
}

// Consume removes qty from on-hand stock
func (lp *LicensePlate) Consume(qty decimal.Decimal, now time.Time) error {
	if !qty.IsPositive() {
		return shared.NewValidationError("INVALID_QUANTITY", "Consumed quantity must be positive")
	}
	if qty.GreaterThan(lp.QuantityOnHand) {
		return shared.NewPolicyViolationError("INSUFFICIENT_QUANTITY",
			fmt.Sprintf("Insufficient quantity (required: %s, available: %s)", qty, lp.QuantityOnHand)).
			WithDetail("required", qty.String()).
			WithDetail("max_allowed", lp.QuantityOnHand.String())
	}
	remaining := lp.QuantityOnHand.Sub(qty)
	if lp.AllocatedQuantity.GreaterThan(remaining) {
		return shared.NewPolicyViolationError("INSUFFICIENT_QUANTITY",
			fmt.Sprintf("Consuming %s would leave less than the %s allocated on %s", qty, lp.AllocatedQuantity, lp.LPNumber))
	}
	lp.QuantityOnHand = remaining
	lp.Touch(now)
	return nil
}
