package batch

import (
	"context"
	"sort"

	"github.com/erp/lpcore/internal/domain/shared/strategy"
)

// FEFOBatchStrategy implements First Expired First Out batch selection
// Batches are selected based on expiry date (earliest expiry first)
// Ideal for perishable goods, pharmaceuticals, and food products
type FEFOBatchStrategy struct {
	strategy.BaseStrategy
}

// NewFEFOBatchStrategy creates a new FEFO batch strategy
func NewFEFOBatchStrategy() *FEFOBatchStrategy {
	return &FEFOBatchStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"fefo",
			strategy.StrategyTypeBatch,
			"First Expired First Out - selects license plates by expiry date (earliest expiry first)",
		),
	}
}

// Order filters eligible batches and sorts them by expiry date.
// Batches without an expiry go last; ties fall back to receipt date.
func (s *FEFOBatchStrategy) Order(selCtx strategy.BatchSelectionContext, batches []strategy.Batch) []strategy.Batch {
	filtered := filterAvailableBatches(batches, selCtx)

	sort.SliceStable(filtered, func(i, j int) bool {
		iExpiry, jExpiry := filtered[i].ExpiryDate, filtered[j].ExpiryDate
		switch {
		case iExpiry == nil && jExpiry == nil:
		case iExpiry == nil:
			return false
		case jExpiry == nil:
			return true
		case !iExpiry.Equal(*jExpiry):
			return iExpiry.Before(*jExpiry)
		}
		return filtered[i].ReceivedDate.Before(filtered[j].ReceivedDate)
	})

	if selCtx.PreferBatch != "" {
		filtered = prioritizePreferredBatch(filtered, selCtx.PreferBatch)
	}
	return filtered
}

// SelectBatches selects batches in FEFO order by expiry date
func (s *FEFOBatchStrategy) SelectBatches(
	ctx context.Context,
	selCtx strategy.BatchSelectionContext,
	batches []strategy.Batch,
) (strategy.BatchSelectionResult, error) {
	return selectFromBatches(s.Order(selCtx, batches), selCtx.Quantity)
}

// ConsidersExpiry returns true as FEFO considers expiry dates
func (s *FEFOBatchStrategy) ConsidersExpiry() bool {
	return true
}
