package inventory

import (
	"fmt"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeReceivingLine is the aggregate type recorded on receiving audit entries
const AggregateTypeReceivingLine = "ReceivingLine"

// Error codes raised by the receiving validator
const (
	CodeZeroExpected       = "ZERO_EXPECTED_QUANTITY"
	CodeNegativeReceived   = "NEGATIVE_RECEIVED_QUANTITY"
	CodeOverReceipt        = "OVER_RECEIPT_NOT_ALLOWED"
	CodeOverReceiptExceeds = "OVER_RECEIPT_EXCEEDS_TOLERANCE"
)

// VarianceIndicator classifies received against expected
type VarianceIndicator string

const (
	VarianceUnder VarianceIndicator = "under"
	VarianceOver  VarianceIndicator = "over"
	VarianceExact VarianceIndicator = "exact"
)

// Variance is the difference between received and expected quantities
type Variance struct {
	Variance        decimal.Decimal
	VariancePercent decimal.Decimal
	Indicator       VarianceIndicator
}

// CalculateVariance computes received - expected and its percentage of expected
func CalculateVariance(expected, received decimal.Decimal) (Variance, error) {
	if expected.IsZero() {
		return Variance{}, shared.NewValidationError(CodeZeroExpected, "Expected quantity cannot be zero")
	}
	if received.IsNegative() {
		return Variance{}, shared.NewValidationError(CodeNegativeReceived, "Received quantity cannot be negative")
	}

	v := received.Sub(expected)
	indicator := VarianceExact
	switch v.Sign() {
	case -1:
		indicator = VarianceUnder
	case 1:
		indicator = VarianceOver
	}

	return Variance{
		Variance:        v,
		VariancePercent: v.Mul(hundred).Div(expected),
		Indicator:       indicator,
	}, nil
}

// TolerancePolicy controls how far cumulative receipts may exceed the expected quantity
type TolerancePolicy struct {
	AllowOverReceipt bool

	// ToleranceFraction is the allowed excess as a fraction of expected, e.g. 0.10 for 10%
	ToleranceFraction decimal.Decimal
}

// OverReceiptResult is the outcome of ValidateOverReceipt
type OverReceiptResult struct {
	Allowed          bool
	MaxAllowed       decimal.Decimal
	ExceedsTolerance bool

	// OverReceiptPercent is how far cumulative is above expected, zero when not over
	OverReceiptPercent decimal.Decimal
}

// Err converts a disallowed result into a PolicyViolation carrying the ceiling
func (r OverReceiptResult) Err(expected, cumulative decimal.Decimal, policy TolerancePolicy) error {
	if r.Allowed {
		return nil
	}
	code, msg := CodeOverReceiptExceeds, fmt.Sprintf(
		"Over-receipt exceeds tolerance. Max allowed: %s (%s%% tolerance), attempting: %s",
		r.MaxAllowed, policy.ToleranceFraction.Mul(hundred), cumulative)
	if !policy.AllowOverReceipt {
		code, msg = CodeOverReceipt, fmt.Sprintf(
			"Over-receipt not allowed. Expected: %s, attempting: %s", expected, cumulative)
	}
	return shared.NewPolicyViolationError(code, msg).
		WithDetail("expected", expected.String()).
		WithDetail("cumulative_received", cumulative.String()).
		WithDetail("max_allowed", r.MaxAllowed.String())
}

// ValidateOverReceipt checks a cumulative received quantity (including the new
// session) against the tolerance policy. It is stateless: callers compute the
// cumulative value and persist received quantity by addition.
func ValidateOverReceipt(expected, cumulative decimal.Decimal, policy TolerancePolicy) OverReceiptResult {
	maxAllowed := expected
	if policy.AllowOverReceipt {
		maxAllowed = expected.Mul(decimal.NewFromInt(1).Add(policy.ToleranceFraction))
	}

	if cumulative.LessThanOrEqual(expected) {
		return OverReceiptResult{
			Allowed:            true,
			MaxAllowed:         maxAllowed,
			OverReceiptPercent: decimal.Zero,
		}
	}

	overPct := decimal.Zero
	if expected.IsPositive() {
		overPct = cumulative.Sub(expected).Mul(hundred).Div(expected)
	}

	if !policy.AllowOverReceipt {
		return OverReceiptResult{
			Allowed:            false,
			MaxAllowed:         maxAllowed,
			ExceedsTolerance:   true,
			OverReceiptPercent: overPct,
		}
	}

	exceeds := cumulative.GreaterThan(maxAllowed)
	return OverReceiptResult{
		Allowed:            !exceeds,
		MaxAllowed:         maxAllowed,
		ExceedsTolerance:   exceeds,
		OverReceiptPercent: overPct,
	}
}

// ReceivingLine is one expected product line of an inbound shipment (ASN item)
type ReceivingLine struct {
	shared.BaseAggregateRoot
	ASNID          uuid.UUID
	ProductID      uuid.UUID
	WarehouseID    uuid.UUID
	ExpectedQty    decimal.Decimal
	ReceivedQty    decimal.Decimal
	UnitOfMeasure  string
	ExpectedBatch  string
	ExpectedExpiry *time.Time
}

// NewReceivingLine creates an ASN line with nothing received yet
func NewReceivingLine(asnID, productID, warehouseID uuid.UUID, expected decimal.Decimal, uom string, now time.Time) (*ReceivingLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !expected.IsPositive() {
		return nil, shared.NewValidationError(CodeZeroExpected, "Expected quantity must be positive")
	}
	return &ReceivingLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		ASNID:             asnID,
		ProductID:         productID,
		WarehouseID:       warehouseID,
		ExpectedQty:       expected,
		ReceivedQty:       decimal.Zero,
		UnitOfMeasure:     uom,
	}, nil
}

// RemainingQty returns expected - received, floored at zero
func (l *ReceivingLine) RemainingQty() decimal.Decimal {
	remaining := l.ExpectedQty.Sub(l.ReceivedQty)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived is true once received reaches expected
func (l *ReceivingLine) IsFullyReceived() bool {
	return l.ReceivedQty.GreaterThanOrEqual(l.ExpectedQty)
}

// ReceiptCheck is the evaluated outcome of a proposed receiving session
type ReceiptCheck struct {
	Quantity    decimal.Decimal
	Cumulative  decimal.Decimal
	Variance    Variance
	OverReceipt OverReceiptResult
}

// CheckReceipt validates a new session quantity against the line without mutating it
func (l *ReceivingLine) CheckReceipt(qty decimal.Decimal, policy TolerancePolicy) (ReceiptCheck, error) {
	if !qty.IsPositive() {
		if qty.IsNegative() {
			return ReceiptCheck{}, shared.NewValidationError(CodeNegativeReceived, "Received quantity cannot be negative")
		}
		return ReceiptCheck{}, shared.NewValidationError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	cumulative := l.ReceivedQty.Add(qty)
	variance, err := CalculateVariance(l.ExpectedQty, cumulative)
	if err != nil {
		return ReceiptCheck{}, err
	}
	result := ValidateOverReceipt(l.ExpectedQty, cumulative, policy)

	check := ReceiptCheck{Quantity: qty, Cumulative: cumulative, Variance: variance, OverReceipt: result}
	if err := result.Err(l.ExpectedQty, cumulative, policy); err != nil {
		return check, err
	}
	return check, nil
}

// Receive validates and adds qty to the received quantity. Received quantity only ever grows.
func (l *ReceivingLine) Receive(qty decimal.Decimal, policy TolerancePolicy, now time.Time) (ReceiptCheck, FieldChange, error) {
	check, err := l.CheckReceipt(qty, policy)
	if err != nil {
		return check, FieldChange{}, err
	}
	old := l.ReceivedQty
	l.ReceivedQty = l.ReceivedQty.Add(qty)
	l.Touch(now)
	return check, FieldChange{
		Field:    FieldReceivedQty,
		OldValue: old.String(),
		NewValue: l.ReceivedQty.String(),
	}, nil
}

// ASNStatus is the derived receiving status of a shipment
type ASNStatus string

const (
	ASNStatusPending  ASNStatus = "pending"
	ASNStatusPartial  ASNStatus = "partial"
	ASNStatusReceived ASNStatus = "received"
)

// DeriveASNStatus computes the shipment status from its lines: received once every
// line is fully received, pending while nothing has arrived, partial otherwise.
func DeriveASNStatus(lines []*ReceivingLine) ASNStatus {
	if len(lines) == 0 {
		return ASNStatusPending
	}
	anyReceived, allReceived := false, true
	for _, l := range lines {
		if l.ReceivedQty.IsPositive() {
			anyReceived = true
		}
		if !l.IsFullyReceived() {
			allReceived = false
		}
	}
	switch {
	case allReceived:
		return ASNStatusReceived
	case anyReceived:
		return ASNStatusPartial
	default:
		return ASNStatusPending
	}
}
