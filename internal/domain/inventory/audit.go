package inventory

import (
	"time"

	"github.com/google/uuid"
)

// StatusAuditEntry is an append-only record of one field change. Entries are never
// mutated or deleted and are read most-recent-first.
type StatusAuditEntry struct {
	ID         uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Field      string
	OldValue   string
	NewValue   string
	Reason     *string
	ActorID    uuid.UUID
	ChangedAt  time.Time
}

// NewStatusAuditEntry builds an audit entry for a change on entityID. IDs are
// UUIDv7, so entries sharing changed_at still sort in write order.
func NewStatusAuditEntry(entityType string, entityID uuid.UUID, change FieldChange, actorID uuid.UUID, at time.Time) *StatusAuditEntry {
	var reason *string
	if change.Reason != "" {
		r := change.Reason
		reason = &r
	}
	return &StatusAuditEntry{
		ID:         uuid.Must(uuid.NewV7()),
		EntityType: entityType,
		EntityID:   entityID,
		Field:      change.Field,
		OldValue:   change.OldValue,
		NewValue:   change.NewValue,
		Reason:     reason,
		ActorID:    actorID,
		ChangedAt:  at,
	}
}

// ReasonText returns the reason or an empty string
func (e *StatusAuditEntry) ReasonText() string {
	if e.Reason == nil {
		return ""
	}
	return *e.Reason
}
