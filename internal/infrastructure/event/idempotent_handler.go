package event

import (
	"context"
	"sync/atomic"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// deliveryKeyPrefix namespaces event ids in the shared idempotency store,
// which also holds reservation commit keys
const deliveryKeyPrefix = "event-delivery:"

// IdempotencyStats is a snapshot of duplicate-suppression counters
type IdempotencyStats struct {
	Processed int64 `json:"processed"`
	Duplicate int64 `json:"duplicate"`
	Failed    int64 `json:"failed"`
}

// IdempotentHandler delivers each event id to the wrapped handler at most once
// within the configured TTL
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	logger  *zap.Logger

	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

// NewIdempotentHandler wraps handler with store-backed duplicate suppression
func NewIdempotentHandler(handler shared.EventHandler, store shared.IdempotencyStore, cfg shared.IdempotencyConfig, log *zap.Logger) *IdempotentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  cfg,
		logger:  log,
	}
}

// EventTypes returns the wrapped handler's subscriptions
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle forwards evt unless its id was already marked.
// A failing store never blocks delivery: duplicates are preferred over loss.
func (h *IdempotentHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if !h.config.Enabled || h.store == nil {
		return h.handler.Handle(ctx, evt)
	}

	log := h.logger.With(logger.Fields(ctx)...).With(
		zap.String("event_id", evt.EventID().String()),
		zap.String("event_type", evt.EventType()),
	)

	isNew, err := h.store.MarkProcessed(ctx, deliveryKeyPrefix+evt.EventID().String(), h.config.TTL)
	switch {
	case err != nil:
		log.Warn("idempotency check failed, delivering anyway", zap.Error(err))
	case !isNew:
		h.duplicate.Add(1)
		log.Debug("duplicate event skipped")
		return nil
	}

	// The mark is kept on failure; redelivery waits for the TTL to lapse
	if err := h.handler.Handle(ctx, evt); err != nil {
		h.failed.Add(1)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns the handler's counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		Processed: h.processed.Load(),
		Duplicate: h.duplicate.Load(),
		Failed:    h.failed.Load(),
	}
}

// Unwrap returns the wrapped handler
func (h *IdempotentHandler) Unwrap() shared.EventHandler {
	return h.handler
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
