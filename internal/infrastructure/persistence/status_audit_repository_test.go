package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStatusAuditRepository_Append(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormStatusAuditRepository(db.DB)
	ctx := context.Background()

	lpID, actorID := uuid.New(), uuid.New()
	status := inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, lpID, inventory.FieldChange{
		Field:    inventory.FieldStatus,
		OldValue: "available",
		NewValue: "blocked",
		Reason:   "damaged pallet",
	}, actorID, repoTestTime)
	qa := inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, lpID, inventory.FieldChange{
		Field:    inventory.FieldQAStatus,
		OldValue: "pending",
		NewValue: "passed",
	}, actorID, repoTestTime.Add(time.Second))

	require.NoError(t, repo.Append(ctx, status, qa))
	require.NoError(t, repo.Append(ctx))

	entries, total, err := repo.ListByEntity(ctx, lpID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)

	assert.Equal(t, qa.ID, entries[0].ID)
	assert.Nil(t, entries[0].Reason)
	assert.Equal(t, "passed", entries[0].NewValue)

	assert.Equal(t, status.ID, entries[1].ID)
	assert.Equal(t, inventory.AggregateTypeLicensePlate, entries[1].EntityType)
	assert.Equal(t, inventory.FieldStatus, entries[1].Field)
	assert.Equal(t, "available", entries[1].OldValue)
	assert.Equal(t, "damaged pallet", entries[1].ReasonText())
	assert.Equal(t, actorID, entries[1].ActorID)
	assert.True(t, repoTestTime.Equal(entries[1].ChangedAt))
}

func TestGormStatusAuditRepository_ListByEntity(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormStatusAuditRepository(db.DB)
	ctx := context.Background()

	lpID := uuid.New()
	for i := 0; i < 7; i++ {
		entry := inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, lpID, inventory.FieldChange{
			Field:    inventory.FieldQuantityOnHand,
			OldValue: fmt.Sprint(100 - i),
			NewValue: fmt.Sprint(99 - i),
		}, uuid.New(), repoTestTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Append(ctx, entry))
	}
	require.NoError(t, repo.Append(ctx, inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, uuid.New(),
		inventory.FieldChange{Field: inventory.FieldStatus, OldValue: "available", NewValue: "consumed"}, uuid.New(), repoTestTime)))

	t.Run("pages newest first", func(t *testing.T) {
		page1, total, err := repo.ListByEntity(ctx, lpID, shared.Filter{Page: 1, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		require.Len(t, page1, 3)
		assert.Equal(t, "93", page1[0].NewValue)
		assert.Equal(t, "95", page1[2].NewValue)

		page3, total, err := repo.ListByEntity(ctx, lpID, shared.Filter{Page: 3, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		require.Len(t, page3, 1)
		assert.Equal(t, "99", page3[0].NewValue)
	})

	t.Run("zero filter uses defaults", func(t *testing.T) {
		entries, total, err := repo.ListByEntity(ctx, lpID, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		assert.Len(t, entries, 7)
	})

	t.Run("unknown entity is empty", func(t *testing.T) {
		entries, total, err := repo.ListByEntity(ctx, uuid.New(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, entries)
	})
}

func TestGormStatusAuditRepository_SameTimestamp(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormStatusAuditRepository(db.DB)
	ctx := context.Background()

	// a QA failure writes qa_status, then the forced status change, at one instant
	lpID, actorID := uuid.New(), uuid.New()
	qa := inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, lpID, inventory.FieldChange{
		Field: inventory.FieldQAStatus, OldValue: "pending", NewValue: "failed", Reason: "moisture above limit",
	}, actorID, repoTestTime)
	forced := inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, lpID, inventory.FieldChange{
		Field: inventory.FieldStatus, OldValue: "available", NewValue: "blocked",
	}, actorID, repoTestTime)

	// inserted out of write order so row position cannot decide the result
	require.NoError(t, repo.Append(ctx, forced))
	require.NoError(t, repo.Append(ctx, qa))

	t.Run("newest first follows write order", func(t *testing.T) {
		entries, _, err := repo.ListByEntity(ctx, lpID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, forced.ID, entries[0].ID)
		assert.Equal(t, qa.ID, entries[1].ID)
	})

	t.Run("oldest first", func(t *testing.T) {
		entries, _, err := repo.ListByEntity(ctx, lpID, shared.Filter{OrderBy: "changed_at", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, qa.ID, entries[0].ID)
		assert.Equal(t, forced.ID, entries[1].ID)
	})

	t.Run("by field", func(t *testing.T) {
		entries, _, err := repo.ListByEntity(ctx, lpID, shared.Filter{OrderBy: "field", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, inventory.FieldQAStatus, entries[0].Field)
		assert.Equal(t, inventory.FieldStatus, entries[1].Field)
	})

	t.Run("unknown sort column falls back", func(t *testing.T) {
		entries, _, err := repo.ListByEntity(ctx, lpID, shared.Filter{OrderBy: "reason; DROP TABLE status_audit"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, forced.ID, entries[0].ID)
	})
}
