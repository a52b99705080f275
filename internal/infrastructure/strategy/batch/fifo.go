package batch

import (
	"context"
	"sort"

	"github.com/erp/lpcore/internal/domain/shared/strategy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FIFOBatchStrategy implements First In First Out batch selection
// Batches are selected based on receipt date (oldest first)
type FIFOBatchStrategy struct {
	strategy.BaseStrategy
}

// NewFIFOBatchStrategy creates a new FIFO batch strategy
func NewFIFOBatchStrategy() *FIFOBatchStrategy {
	return &FIFOBatchStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"fifo",
			strategy.StrategyTypeBatch,
			"First In First Out - selects license plates by receipt date (oldest first)",
		),
	}
}

// Order filters eligible batches and sorts them by receipt date
func (s *FIFOBatchStrategy) Order(selCtx strategy.BatchSelectionContext, batches []strategy.Batch) []strategy.Batch {
	filtered := filterAvailableBatches(batches, selCtx)

	sort.SliceStable(filtered, func(i, j int) bool {
		iDate, jDate := filtered[i].ReceivedDate, filtered[j].ReceivedDate
		if !iDate.Equal(jDate) {
			return iDate.Before(jDate)
		}
		return filtered[i].LPNumber < filtered[j].LPNumber
	})

	if selCtx.PreferBatch != "" {
		filtered = prioritizePreferredBatch(filtered, selCtx.PreferBatch)
	}
	return filtered
}

// SelectBatches selects batches in FIFO order by receipt date
func (s *FIFOBatchStrategy) SelectBatches(
	ctx context.Context,
	selCtx strategy.BatchSelectionContext,
	batches []strategy.Batch,
) (strategy.BatchSelectionResult, error) {
	return selectFromBatches(s.Order(selCtx, batches), selCtx.Quantity)
}

// ConsidersExpiry returns false as FIFO doesn't order by expiry dates
func (s *FIFOBatchStrategy) ConsidersExpiry() bool {
	return false
}

// filterAvailableBatches keeps batches matching product and warehouse that are
// unexpired and still have net available quantity
func filterAvailableBatches(batches []strategy.Batch, selCtx strategy.BatchSelectionContext) []strategy.Batch {
	filtered := make([]strategy.Batch, 0, len(batches))
	for _, b := range batches {
		if selCtx.ProductID != uuid.Nil && b.ProductID != selCtx.ProductID {
			continue
		}
		if selCtx.WarehouseID != uuid.Nil && b.WarehouseID != selCtx.WarehouseID {
			continue
		}
		if !b.AvailableQty.IsPositive() {
			continue
		}
		if !selCtx.Date.IsZero() && b.IsExpired(selCtx.Date) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

// prioritizePreferredBatch moves the preferred batch to the front of the list
func prioritizePreferredBatch(batches []strategy.Batch, preferredBatch string) []strategy.Batch {
	result := make([]strategy.Batch, 0, len(batches))
	var preferred *strategy.Batch

	for i := range batches {
		if preferred == nil && batches[i].BatchNumber == preferredBatch {
			preferred = &batches[i]
		} else {
			result = append(result, batches[i])
		}
	}

	if preferred != nil {
		result = append([]strategy.Batch{*preferred}, result...)
	}

	return result
}

// selectFromBatches selects quantity from sorted batches
func selectFromBatches(batches []strategy.Batch, quantity decimal.Decimal) (strategy.BatchSelectionResult, error) {
	remainingQty := quantity
	selections := make([]strategy.BatchSelection, 0)
	totalQty := decimal.Zero

	for _, batch := range batches {
		if !remainingQty.IsPositive() {
			break
		}

		selectedQty := decimal.Min(remainingQty, batch.AvailableQty)
		selections = append(selections, strategy.BatchSelection{
			BatchID:     batch.ID,
			BatchNumber: batch.BatchNumber,
			Quantity:    selectedQty,
			ExpiryDate:  batch.ExpiryDate,
		})

		remainingQty = remainingQty.Sub(selectedQty)
		totalQty = totalQty.Add(selectedQty)
	}

	if remainingQty.IsNegative() {
		remainingQty = decimal.Zero
	}

	return strategy.BatchSelectionResult{
		Selections:   selections,
		TotalQty:     totalQty,
		ShortfallQty: remainingQty,
	}, nil
}
