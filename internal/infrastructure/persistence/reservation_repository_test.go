package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T, lpID, demandID uuid.UUID, qty int64, at time.Time) *inventory.Reservation {
	t.Helper()
	r, err := inventory.NewReservation(lpID, demandID, decimal.NewFromInt(qty), uuid.New(), at)
	require.NoError(t, err)
	return r
}

func TestGormReservationRepository_CreateAndFind(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormReservationRepository(db.DB)
	ctx := context.Background()

	res := newTestReservation(t, uuid.New(), uuid.New(), 12, repoTestTime)
	require.NoError(t, repo.Create(ctx, res))

	found, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.LicensePlateID, found.LicensePlateID)
	assert.Equal(t, res.DemandID, found.DemandID)
	assert.Equal(t, res.ReservedBy, found.ReservedBy)
	assert.True(t, decimal.NewFromInt(12).Equal(found.Quantity))
	assert.Equal(t, inventory.ReservationStatusActive, found.Status)
	assert.Nil(t, found.ReleasedAt)
	assert.Nil(t, found.ConsumedAt)

	_, err = repo.FindByIDForUpdate(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormReservationRepository_Queries(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormReservationRepository(db.DB)
	ctx := context.Background()

	lpID, demandID := uuid.New(), uuid.New()

	first := newTestReservation(t, lpID, demandID, 4, repoTestTime)
	second := newTestReservation(t, uuid.New(), demandID, 6, repoTestTime.Add(time.Minute))
	released := newTestReservation(t, lpID, demandID, 2, repoTestTime.Add(2*time.Minute))
	require.NoError(t, released.Release("cancelled", repoTestTime.Add(3*time.Minute)))
	otherDemand := newTestReservation(t, lpID, uuid.New(), 3, repoTestTime)

	for _, r := range []*inventory.Reservation{second, released, first, otherDemand} {
		require.NoError(t, repo.Create(ctx, r))
	}

	t.Run("active by license plate", func(t *testing.T) {
		got, err := repo.FindActiveByLicensePlate(ctx, lpID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, r := range got {
			assert.True(t, r.IsActive())
			assert.Equal(t, lpID, r.LicensePlateID)
		}
	})

	t.Run("all by demand in creation order", func(t *testing.T) {
		got, err := repo.FindByDemand(ctx, demandID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
		assert.Equal(t, released.ID, got[2].ID)
		assert.Equal(t, inventory.ReservationStatusReleased, got[2].Status)
		assert.Equal(t, "cancelled", got[2].ReleaseReason)
	})

	t.Run("active by demand", func(t *testing.T) {
		got, err := repo.FindActiveByDemand(ctx, demandID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
	})

	t.Run("unknown demand returns empty", func(t *testing.T) {
		got, err := repo.FindByDemand(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestGormReservationRepository_SaveWithLock(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormReservationRepository(db.DB)
	ctx := context.Background()

	res := newTestReservation(t, uuid.New(), uuid.New(), 7, repoTestTime)
	require.NoError(t, repo.Create(ctx, res))

	stale, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)

	consumedAt := repoTestTime.Add(time.Hour)
	require.NoError(t, res.MarkConsumed(consumedAt))
	require.NoError(t, repo.SaveWithLock(ctx, res))
	assert.Equal(t, 2, res.Version)

	found, err := repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.ReservationStatusConsumed, found.Status)
	require.NotNil(t, found.ConsumedAt)
	assert.True(t, consumedAt.Equal(*found.ConsumedAt))

	require.NoError(t, stale.Release("late release", repoTestTime.Add(2*time.Hour)))
	err = repo.SaveWithLock(ctx, stale)
	assert.True(t, shared.IsConcurrencyConflict(err))
}
