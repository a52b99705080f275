package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func newPlate(t *testing.T, number string, productID, warehouseID uuid.UUID, receivedAt time.Time) *inventory.LicensePlate {
	t.Helper()
	lp, err := inventory.NewLicensePlate(inventory.NewLicensePlateParams{
		LPNumber:    number,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.NewFromInt(10),
		QAExempt:    true,
	}, receivedAt)
	require.NoError(t, err)
	return lp
}

func TestStore_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	lp := newPlate(t, "LP-1", uuid.New(), uuid.New(), now)

	err := s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		return repos.LicensePlateRepo().Create(ctx, lp)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		stored, err := repos.LicensePlateRepo().FindByIDForUpdate(ctx, lp.ID)
		require.NoError(t, err)
		stored.QuantityOnHand = decimal.NewFromInt(3)
		require.NoError(t, repos.LicensePlateRepo().SaveWithLock(ctx, stored))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		stored, err := repos.LicensePlateRepo().FindByID(ctx, lp.ID)
		require.NoError(t, err)
		assert.True(t, stored.QuantityOnHand.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, 1, stored.Version)
		assert.Empty(t, stored.GetDomainEvents())
		return nil
	})
	require.NoError(t, err)
}

func TestStore_OptimisticLock(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	lp := newPlate(t, "LP-1", uuid.New(), uuid.New(), now)

	err := s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		repo := repos.LicensePlateRepo()
		require.NoError(t, repo.Create(ctx, lp))

		first, _ := repo.FindByID(ctx, lp.ID)
		second, _ := repo.FindByID(ctx, lp.ID)

		require.NoError(t, repo.SaveWithLock(ctx, first))
		assert.Equal(t, 2, first.Version)

		err := repo.SaveWithLock(ctx, second)
		assert.True(t, shared.IsConcurrencyConflict(err))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_UniqueLPNumber(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	productID, warehouseID := uuid.New(), uuid.New()

	err := s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		require.NoError(t, repos.LicensePlateRepo().Create(ctx, newPlate(t, "LP-1", productID, warehouseID, now)))
		return repos.LicensePlateRepo().Create(ctx, newPlate(t, "LP-1", productID, warehouseID, now))
	})
	require.Error(t, err)
	assert.Equal(t, "LP_NUMBER_EXISTS", shared.CodeOf(err))
}

func TestStore_FindReservable(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	productID, warehouseID := uuid.New(), uuid.New()

	older := newPlate(t, "LP-OLD", productID, warehouseID, now.Add(-48*time.Hour))
	newer := newPlate(t, "LP-NEW", productID, warehouseID, now)
	blocked := newPlate(t, "LP-BLK", productID, warehouseID, now.Add(-72*time.Hour))
	_, err := blocked.TransitionTo(inventory.LPStatusBlocked, "damaged", now)
	require.NoError(t, err)
	elsewhere := newPlate(t, "LP-ELSE", productID, uuid.New(), now)

	err = s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		for _, lp := range []*inventory.LicensePlate{newer, blocked, older, elsewhere} {
			require.NoError(t, repos.LicensePlateRepo().Create(ctx, lp))
		}
		found, err := repos.LicensePlateRepo().FindReservable(ctx, productID, warehouseID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "LP-OLD", found[0].LPNumber)
		assert.Equal(t, "LP-NEW", found[1].LPNumber)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_AuditMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	entityID, actorID := uuid.New(), uuid.New()

	entry := func(newValue string, at time.Time) *inventory.StatusAuditEntry {
		return inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, entityID,
			inventory.FieldChange{Field: inventory.FieldStatus, NewValue: newValue}, actorID, at)
	}

	err := s.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		audit := repos.AuditRepo()
		require.NoError(t, audit.Append(ctx, entry("available", now)))
		require.NoError(t, audit.Append(ctx, entry("reserved", now.Add(time.Minute)), entry("available", now.Add(time.Minute))))
		require.NoError(t, audit.Append(ctx, inventory.NewStatusAuditEntry(inventory.AggregateTypeLicensePlate, uuid.New(),
			inventory.FieldChange{Field: inventory.FieldStatus, NewValue: "blocked"}, actorID, now)))

		entries, total, err := audit.ListByEntity(ctx, entityID, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, entries, 2)
		assert.Equal(t, "available", entries[0].NewValue)
		assert.Equal(t, "reserved", entries[1].NewValue)

		rest, _, err := audit.ListByEntity(ctx, entityID, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.True(t, rest[0].ChangedAt.Equal(now))

		empty, _, err := audit.ListByEntity(ctx, entityID, shared.Filter{Page: 5, PageSize: 2})
		require.NoError(t, err)
		assert.Empty(t, empty)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, s.AuditCount())
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().Execute(ctx, func(appinv.TransactionalRepositories) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
