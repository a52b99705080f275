package strategy

import (
	"context"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is a snapshot of one license plate offered to a selection strategy.
// AvailableQty is already net of quantity reserved by other demands.
type Batch struct {
	ID           uuid.UUID
	LPNumber     string
	BatchNumber  string
	ProductID    uuid.UUID
	WarehouseID  uuid.UUID
	AvailableQty decimal.Decimal
	ExpiryDate   *time.Time
	ReceivedDate time.Time
}

// IsExpired reports whether the batch expired on a day before asOf's date
func (b Batch) IsExpired(asOf time.Time) bool {
	return shared.ExpiredOn(b.ExpiryDate, asOf)
}

// BatchSelection represents a selection of batch for reservation
type BatchSelection struct {
	BatchID     uuid.UUID
	BatchNumber string
	Quantity    decimal.Decimal
	ExpiryDate  *time.Time
}

// BatchSelectionContext provides context for batch selection
type BatchSelectionContext struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    decimal.Decimal
	Date        time.Time
	PreferBatch string // Optional: preferred batch number
}

// BatchSelectionResult contains the result of batch selection
type BatchSelectionResult struct {
	Selections   []BatchSelection
	TotalQty     decimal.Decimal
	ShortfallQty decimal.Decimal
}

// BatchManagementStrategy orders candidate batches and selects quantity from them
type BatchManagementStrategy interface {
	Strategy
	// Order returns the eligible batches sorted by the strategy's rules
	Order(selCtx BatchSelectionContext, batches []Batch) []Batch
	// SelectBatches selects batches based on strategy rules, never exceeding selCtx.Quantity in total
	SelectBatches(ctx context.Context, selCtx BatchSelectionContext, batches []Batch) (BatchSelectionResult, error)
	// ConsidersExpiry returns true if the strategy considers expiry dates
	ConsidersExpiry() bool
}
