package inventory_test

import (
	"context"
	"errors"
	"testing"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAuditUnavailable = errors.New("audit store unavailable")

// failingAuditScope fails any audit append that carries the given field
type failingAuditScope struct {
	inner *memory.Store
	field string
}

func (s *failingAuditScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.inner.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		return fn(&failingAuditRepos{TransactionalRepositories: repos, field: s.field})
	})
}

type failingAuditRepos struct {
	appinv.TransactionalRepositories
	field string
}

func (r *failingAuditRepos) AuditRepo() inventory.StatusAuditRepository {
	return &failingAuditRepo{StatusAuditRepository: r.TransactionalRepositories.AuditRepo(), field: r.field}
}

type failingAuditRepo struct {
	inventory.StatusAuditRepository
	field string
}

func (r *failingAuditRepo) Append(ctx context.Context, entries ...*inventory.StatusAuditEntry) error {
	for _, e := range entries {
		if e.Field == r.field {
			return errAuditUnavailable
		}
	}
	return r.StatusAuditRepository.Append(ctx, entries...)
}

func reserveAll(t *testing.T, h *harness, demandID, lpID uuid.UUID, qty string) appinv.ReservationResponse {
	t.Helper()
	r, err := h.reserve.ReserveLP(h.ctx, appinv.ReserveLPCommand{
		DemandID:       demandID,
		LicensePlateID: lpID,
		Quantity:       dec(qty),
		ActorID:        h.actorID,
	})
	require.NoError(t, err)
	return *r
}

func TestPickService_PartialPick(t *testing.T) {
	h := newHarness(t)
	lp := h.receivePlate("LP-A", "60")
	demand := h.createDemand("WO-1", "50")
	r := reserveAll(t, h, demand.ID, lp.ID, "50")
	h.events.reset()

	result, err := h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{
		ReservationID: r.ID,
		Quantity:      dec("30"),
		ActorID:       h.actorID,
	})
	require.NoError(t, err)

	assertDecimal(t, "30", result.PickedQty)
	assert.Equal(t, "consumed", result.Reservation.Status)
	require.NotNil(t, result.Reservation.ConsumedAt)
	assertDecimal(t, "30", result.DemandPicked)
	assert.Equal(t, "in_progress", result.DemandStatus)

	plate := h.plate(lp.ID)
	assertDecimal(t, "30", plate.QuantityOnHand)
	assertDecimal(t, "0", plate.AllocatedQuantity)
	assert.Equal(t, "available", plate.Status)

	entries := h.history(lp.ID)
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, inventory.FieldStatus, entries[0].Field)
	assert.Equal(t, "reserved", entries[0].OldValue)
	assert.Equal(t, "available", entries[0].NewValue)
	assert.Equal(t, inventory.FieldQuantityOnHand, entries[1].Field)
	assert.Equal(t, "60", entries[1].OldValue)
	assert.Equal(t, "30", entries[1].NewValue)

	assert.Len(t, h.events.ofType(inventory.EventTypePickConfirmed), 1)
}

func TestPickService_FullPickConsumesPlate(t *testing.T) {
	h := newHarness(t)
	lp := h.receivePlate("LP-A", "50")
	demand := h.createDemand("WO-1", "50")
	r := reserveAll(t, h, demand.ID, lp.ID, "50")

	// zero picks the full reserved quantity
	result, err := h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{ReservationID: r.ID, ActorID: h.actorID})
	require.NoError(t, err)
	assertDecimal(t, "50", result.PickedQty)

	plate := h.plate(lp.ID)
	assertDecimal(t, "0", plate.QuantityOnHand)
	assert.Equal(t, "consumed", plate.Status)

	entries := h.history(lp.ID)
	require.NotNil(t, entries[0].Reason)
	assert.Equal(t, "consumed", entries[0].NewValue)
	assert.Equal(t, "fully consumed by pick", *entries[0].Reason)

	check, err := h.plates.CheckConsumption(h.ctx, lp.ID)
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, "not available: consumed", check.Reason)
}

func TestPickService_OtherReservationsStayAllocated(t *testing.T) {
	h := newHarness(t)
	lp := h.receivePlate("LP-A", "100")
	first := h.createDemand("WO-1", "40")
	second := h.createDemand("WO-2", "30")
	r1 := reserveAll(t, h, first.ID, lp.ID, "40")
	reserveAll(t, h, second.ID, lp.ID, "30")

	_, err := h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{ReservationID: r1.ID, ActorID: h.actorID})
	require.NoError(t, err)

	plate := h.plate(lp.ID)
	assertDecimal(t, "60", plate.QuantityOnHand)
	assertDecimal(t, "30", plate.AllocatedQuantity)
	assert.Equal(t, "reserved", plate.Status)
}

func TestPickService_Rejections(t *testing.T) {
	h := newHarness(t)
	lp := h.receivePlate("LP-A", "60")
	demand := h.createDemand("WO-1", "50")
	r := reserveAll(t, h, demand.ID, lp.ID, "50")

	t.Run("more than reserved", func(t *testing.T) {
		_, err := h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{
			ReservationID: r.ID, Quantity: dec("51"), ActorID: h.actorID,
		})
		require.Error(t, err)
		assert.Equal(t, appinv.CodePickExceedsReservation, shared.CodeOf(err))
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{
			ReservationID: r.ID, Quantity: dec("-1"), ActorID: h.actorID,
		})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{ReservationID: uuid.New(), ActorID: h.actorID})
		require.Error(t, err)
		assert.Equal(t, "RESERVATION_NOT_FOUND", shared.CodeOf(err))
	})

	t.Run("plate failed QA", func(t *testing.T) {
		_, err := h.qa.UpdateQAStatus(h.ctx, appinv.UpdateQAStatusCommand{
			LicensePlateID: lp.ID,
			Target:         "failed",
			Reason:         "contamination found",
			ActorID:        h.actorID,
			CanChangeQA:    true,
		})
		require.NoError(t, err)

		_, err = h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{ReservationID: r.ID, ActorID: h.actorID})
		require.Error(t, err)
		assert.Equal(t, inventory.CodeNotAvailable, shared.CodeOf(err))
	})

	plate := h.plate(lp.ID)
	assertDecimal(t, "60", plate.QuantityOnHand)
	assertDecimal(t, "50", plate.AllocatedQuantity)

	d, err := h.demands.GetDemand(h.ctx, demand.ID)
	require.NoError(t, err)
	assertDecimal(t, "0", d.PickedQty)
}

func TestPickService_ReleasedReservation(t *testing.T) {
	h := newHarness(t)
	lp := h.receivePlate("LP-A", "60")
	demand := h.createDemand("WO-1", "50")
	r := reserveAll(t, h, demand.ID, lp.ID, "50")
	_, err := h.reserve.Release(h.ctx, appinv.ReleaseReservationCommand{ReservationID: r.ID, ActorID: h.actorID})
	require.NoError(t, err)

	_, err = h.picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{ReservationID: r.ID, ActorID: h.actorID})
	require.Error(t, err)
	assert.True(t, shared.IsInvalidTransition(err))
	assert.Equal(t, "RESERVATION_NOT_ACTIVE", shared.CodeOf(err))
}

func TestPickService_RollsBackOnFailure(t *testing.T) {
	h := newHarness(t)
	lp := h.receivePlate("LP-A", "60")
	demand := h.createDemand("WO-1", "50")
	r := reserveAll(t, h, demand.ID, lp.ID, "50")
	auditBefore := h.store.AuditCount()
	h.events.reset()

	// the demand's picked_qty entry is the last write of the unit of work
	picks := appinv.NewPickService(&failingAuditScope{inner: h.store, field: "picked_qty"}, nil)
	picks.SetEventPublisher(h.events)

	_, err := picks.ConfirmPick(h.ctx, appinv.ConfirmPickCommand{ReservationID: r.ID, ActorID: h.actorID})
	require.ErrorIs(t, err, errAuditUnavailable)

	plate := h.plate(lp.ID)
	assertDecimal(t, "60", plate.QuantityOnHand)
	assertDecimal(t, "50", plate.AllocatedQuantity)
	assert.Equal(t, "reserved", plate.Status)

	coverage, err := h.reserve.Coverage(h.ctx, demand.ID)
	require.NoError(t, err)
	assertDecimal(t, "50", coverage.ReservedQty)
	assertDecimal(t, "0", coverage.PickedQty)
	assert.Equal(t, "planned", coverage.DemandStatus)

	assert.Equal(t, auditBefore, h.store.AuditCount())
	assert.Empty(t, h.events.ofType(inventory.EventTypePickConfirmed))
}
