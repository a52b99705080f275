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

func TestGormReceivingLineRepository(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormReceivingLineRepository(db.DB)
	ctx := context.Background()

	asnID, warehouseID := uuid.New(), uuid.New()

	first, err := inventory.NewReceivingLine(asnID, uuid.New(), warehouseID, decimal.NewFromInt(100), "EA", repoTestTime)
	require.NoError(t, err)
	second, err := inventory.NewReceivingLine(asnID, uuid.New(), warehouseID, decimal.NewFromInt(50), "KG", repoTestTime.Add(time.Minute))
	require.NoError(t, err)
	other, err := inventory.NewReceivingLine(uuid.New(), uuid.New(), warehouseID, decimal.NewFromInt(10), "EA", repoTestTime)
	require.NoError(t, err)

	for _, l := range []*inventory.ReceivingLine{second, first, other} {
		require.NoError(t, repo.Create(ctx, l))
	}

	t.Run("find by ASN in creation order", func(t *testing.T) {
		lines, err := repo.FindByASN(ctx, asnID)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, first.ID, lines[0].ID)
		assert.Equal(t, second.ID, lines[1].ID)
		assert.Equal(t, "KG", lines[1].UnitOfMeasure)
		assert.Equal(t, inventory.ASNStatusPending, inventory.DeriveASNStatus(lines))
	})

	t.Run("receive persists cumulative quantity", func(t *testing.T) {
		line, err := repo.FindByIDForUpdate(ctx, first.ID)
		require.NoError(t, err)

		_, _, err = line.Receive(decimal.NewFromInt(60), inventory.TolerancePolicy{}, repoTestTime.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, line))

		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(60).Equal(found.ReceivedQty))
		assert.Equal(t, 2, found.Version)

		lines, err := repo.FindByASN(ctx, asnID)
		require.NoError(t, err)
		assert.Equal(t, inventory.ASNStatusPartial, inventory.DeriveASNStatus(lines))
	})

	t.Run("stale save conflicts", func(t *testing.T) {
		stale := *first
		_, _, err := stale.Receive(decimal.NewFromInt(1), inventory.TolerancePolicy{}, repoTestTime)
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, &stale)
		assert.True(t, shared.IsConcurrencyConflict(err))
	})

	t.Run("missing line", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))
	})
}
