package inventory

import (
	"testing"
	"time"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func newTestLP(t *testing.T, qty int64) *LicensePlate {
	t.Helper()
	lp, err := NewLicensePlate(NewLicensePlateParams{
		LPNumber:      "LP-0001",
		ProductID:     uuid.New(),
		WarehouseID:   uuid.New(),
		BatchNumber:   "B-01",
		UnitOfMeasure: "kg",
		Quantity:      decimal.NewFromInt(qty),
	}, testNow)
	require.NoError(t, err)
	lp.ClearDomainEvents()
	return lp
}

func TestValidateTransition_Graph(t *testing.T) {
	valid := map[[2]LPStatus]bool{
		{LPStatusAvailable, LPStatusReserved}: true,
		{LPStatusAvailable, LPStatusConsumed}: true,
		{LPStatusAvailable, LPStatusBlocked}:  true,
		{LPStatusReserved, LPStatusAvailable}: true,
		{LPStatusReserved, LPStatusConsumed}:  true,
		{LPStatusBlocked, LPStatusAvailable}:  true,
	}

	for _, from := range AllLPStatuses() {
		for _, to := range AllLPStatuses() {
			from, to := from, to
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				res := ValidateTransition(from, to)
				if valid[[2]LPStatus{from, to}] {
					assert.True(t, res.Valid)
					assert.Nil(t, res.Err)
					assert.NoError(t, res.Error())
					return
				}
				assert.False(t, res.Valid)
				require.NotNil(t, res.Err)
				assert.NotEmpty(t, res.Err.Error())
				assert.True(t, shared.IsInvalidTransition(res.Err))
			})
		}
	}
}

func TestValidateTransition_Messages(t *testing.T) {
	t.Run("self transition names current state", func(t *testing.T) {
		res := ValidateTransition(LPStatusBlocked, LPStatusBlocked)
		require.False(t, res.Valid)
		assert.Equal(t, "already blocked", res.Err.Error())
		assert.Equal(t, CodeAlreadyInState, res.Err.Code)
		assert.True(t, IsAlreadyInState(res.Err))
	})

	t.Run("consumed is terminal", func(t *testing.T) {
		for _, to := range []LPStatus{LPStatusAvailable, LPStatusReserved, LPStatusBlocked} {
			res := ValidateTransition(LPStatusConsumed, to)
			require.False(t, res.Valid)
			assert.Equal(t, CodeTerminalState, res.Err.Code)
			assert.Contains(t, res.Err.Error(), "terminal")
		}
	})

	t.Run("consumed self transition reports already", func(t *testing.T) {
		res := ValidateTransition(LPStatusConsumed, LPStatusConsumed)
		assert.Equal(t, CodeAlreadyInState, res.Err.Code)
	})

	t.Run("generic invalid transition names both states", func(t *testing.T) {
		res := ValidateTransition(LPStatusBlocked, LPStatusReserved)
		require.False(t, res.Valid)
		assert.Equal(t, CodeInvalidTransition, res.Err.Code)
		assert.Equal(t, "invalid transition from blocked to reserved", res.Err.Error())
		assert.Equal(t, "blocked", res.Err.Details["current"])
		assert.Equal(t, "reserved", res.Err.Details["target"])
	})

	t.Run("unknown target is a validation error", func(t *testing.T) {
		res := ValidateTransition(LPStatusAvailable, LPStatus("lost"))
		require.False(t, res.Valid)
		assert.True(t, shared.IsValidation(res.Err))
	})
}

func TestLicensePlate_TransitionTo(t *testing.T) {
	t.Run("applies valid transition and returns one status change", func(t *testing.T) {
		lp := newTestLP(t, 100)
		later := testNow.Add(time.Hour)

		change, err := lp.TransitionTo(LPStatusBlocked, "damaged pallet", later)
		require.NoError(t, err)

		assert.Equal(t, LPStatusBlocked, lp.Status)
		assert.Equal(t, later, lp.UpdatedAt)
		assert.Equal(t, FieldChange{Field: FieldStatus, OldValue: "available", NewValue: "blocked", Reason: "damaged pallet"}, change)

		events := lp.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeLicensePlateStatusChanged, events[0].EventType())
	})

	t.Run("repeating the same request is rejected as already in state", func(t *testing.T) {
		lp := newTestLP(t, 100)
		_, err := lp.TransitionTo(LPStatusBlocked, "", testNow)
		require.NoError(t, err)

		_, err = lp.TransitionTo(LPStatusBlocked, "", testNow)
		require.Error(t, err)
		assert.True(t, IsAlreadyInState(err))
		assert.Equal(t, LPStatusBlocked, lp.Status)
	})

	t.Run("rejected transition leaves plate untouched", func(t *testing.T) {
		lp := newTestLP(t, 100)
		lp.Status = LPStatusConsumed

		_, err := lp.TransitionTo(LPStatusAvailable, "", testNow)
		require.Error(t, err)
		assert.Equal(t, LPStatusConsumed, lp.Status)
		assert.Empty(t, lp.GetDomainEvents())
	})
}

func TestNewLicensePlate(t *testing.T) {
	t.Run("starts available and QA pending", func(t *testing.T) {
		lp, err := NewLicensePlate(NewLicensePlateParams{
			LPNumber:    "LP-1",
			ProductID:   uuid.New(),
			WarehouseID: uuid.New(),
			Quantity:    decimal.NewFromInt(10),
		}, testNow)
		require.NoError(t, err)

		assert.Equal(t, LPStatusAvailable, lp.Status)
		assert.Equal(t, QAStatusPending, lp.QAStatus)
		assert.True(t, lp.AllocatedQuantity.IsZero())
		assert.Equal(t, testNow, lp.ReceivedAt)
		assert.Equal(t, 1, lp.Version)
	})

	t.Run("QA-exempt product starts passed", func(t *testing.T) {
		lp, err := NewLicensePlate(NewLicensePlateParams{
			LPNumber:    "LP-2",
			ProductID:   uuid.New(),
			WarehouseID: uuid.New(),
			Quantity:    decimal.NewFromInt(10),
			QAExempt:    true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, QAStatusPassed, lp.QAStatus)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewLicensePlate(NewLicensePlateParams{
			LPNumber:    "LP-3",
			ProductID:   uuid.New(),
			WarehouseID: uuid.New(),
			Quantity:    decimal.Zero,
		}, testNow)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects empty LP number", func(t *testing.T) {
		_, err := NewLicensePlate(NewLicensePlateParams{
			ProductID:   uuid.New(),
			WarehouseID: uuid.New(),
			Quantity:    decimal.NewFromInt(1),
		}, testNow)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestLicensePlate_Quantities(t *testing.T) {
	t.Run("allocate never exceeds on hand", func(t *testing.T) {
		lp := newTestLP(t, 100)
		require.NoError(t, lp.Allocate(decimal.NewFromInt(60), testNow))
		assert.True(t, lp.NetAvailable().Equal(decimal.NewFromInt(40)))

		err := lp.Allocate(decimal.NewFromInt(41), testNow)
		require.Error(t, err)
		assert.Equal(t, CodeExceedsLPQuantity, shared.CodeOf(err))
		assert.True(t, lp.AllocatedQuantity.Equal(decimal.NewFromInt(60)))
	})

	t.Run("available for demand excludes only other demands", func(t *testing.T) {
		lp := newTestLP(t, 100)
		require.NoError(t, lp.Allocate(decimal.NewFromInt(60), testNow))

		assert.True(t, lp.AvailableFor(decimal.Zero).Equal(decimal.NewFromInt(40)))
		assert.True(t, lp.AvailableFor(decimal.NewFromInt(60)).Equal(decimal.NewFromInt(100)))
	})

	t.Run("deallocate cannot go below zero", func(t *testing.T) {
		lp := newTestLP(t, 100)
		require.NoError(t, lp.Allocate(decimal.NewFromInt(10), testNow))
		assert.Error(t, lp.Deallocate(decimal.NewFromInt(11), testNow))
		require.NoError(t, lp.Deallocate(decimal.NewFromInt(10), testNow))
		assert.True(t, lp.AllocatedQuantity.IsZero())
	})

	t.Run("consume keeps allocated within on hand", func(t *testing.T) {
		lp := newTestLP(t, 100)
		require.NoError(t, lp.Allocate(decimal.NewFromInt(50), testNow))

		err := lp.Consume(decimal.NewFromInt(60), testNow)
		require.Error(t, err)
		assert.True(t, shared.IsPolicyViolation(err))

		require.NoError(t, lp.Consume(decimal.NewFromInt(50), testNow))
		assert.True(t, lp.QuantityOnHand.Equal(decimal.NewFromInt(50)))
	})

	t.Run("plate expiring today stays usable", func(t *testing.T) {
		lp := newTestLP(t, 1)
		expiry := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
		lp.ExpiryDate = &expiry
		assert.False(t, lp.IsExpired(testNow))
		assert.False(t, lp.IsExpired(expiry.Add(23*time.Hour+59*time.Minute)))
		assert.True(t, lp.IsExpired(expiry.Add(24*time.Hour)))
	})
}
