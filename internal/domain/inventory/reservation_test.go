package inventory

import (
	"testing"

	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_Lifecycle(t *testing.T) {
	r, err := NewReservation(uuid.New(), uuid.New(), dec(25), uuid.New(), testNow)
	require.NoError(t, err)
	assert.True(t, r.IsActive())
	require.Len(t, r.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeReservationCreated, r.GetDomainEvents()[0].EventType())

	require.NoError(t, r.Release("order changed", testNow))
	assert.Equal(t, ReservationStatusReleased, r.Status)
	require.NotNil(t, r.ReleasedAt)
	assert.Equal(t, "order changed", r.ReleaseReason)

	err = r.Release("again", testNow)
	require.Error(t, err)
	assert.Equal(t, CodeAlreadyReleased, shared.CodeOf(err))
	assert.True(t, shared.IsInvalidTransition(err))

	assert.Error(t, r.MarkConsumed(testNow))
}

func TestReservation_Consumed(t *testing.T) {
	r, err := NewReservation(uuid.New(), uuid.New(), dec(5), uuid.Nil, testNow)
	require.NoError(t, err)

	require.NoError(t, r.MarkConsumed(testNow))
	assert.Equal(t, ReservationStatusConsumed, r.Status)
	assert.Equal(t, CodeAlreadyReleased, shared.CodeOf(r.Release("", testNow)))
}

func TestNewReservation_Validation(t *testing.T) {
	_, err := NewReservation(uuid.Nil, uuid.New(), dec(1), uuid.New(), testNow)
	assert.True(t, shared.IsValidation(err))

	_, err = NewReservation(uuid.New(), uuid.New(), dec(0), uuid.New(), testNow)
	assert.True(t, shared.IsValidation(err))
}

func TestSumActive(t *testing.T) {
	a, _ := NewReservation(uuid.New(), uuid.New(), dec(10), uuid.New(), testNow)
	b, _ := NewReservation(uuid.New(), uuid.New(), dec(15), uuid.New(), testNow)
	c, _ := NewReservation(uuid.New(), uuid.New(), dec(7), uuid.New(), testNow)
	require.NoError(t, c.Release("", testNow))

	assertDecimal(t, 25, SumActive([]*Reservation{a, b, c}))
}

func TestDemand_Lifecycle(t *testing.T) {
	d, err := NewDemand("WO-1001/10", DemandTypeWorkOrder, uuid.New(), uuid.New(), dec(50), "kg", testNow)
	require.NoError(t, err)
	assert.Equal(t, DemandStatusPlanned, d.Status)
	assert.True(t, d.CanModifyReservations())

	_, err = d.Release(testNow)
	require.NoError(t, err)
	assert.Equal(t, DemandStatusReleased, d.Status)

	change, err := d.RecordPick(dec(20), testNow)
	require.NoError(t, err)
	assert.Equal(t, DemandStatusInProgress, d.Status)
	assert.Equal(t, "20", change.NewValue)
	assertDecimal(t, 30, d.RemainingToPick())

	_, err = d.Finish(DemandStatusCompleted, testNow)
	require.NoError(t, err)
	assert.False(t, d.CanModifyReservations())

	err = d.EnsureReservationsModifiable()
	require.Error(t, err)
	assert.Equal(t, CodeInvalidDemandStatus, shared.CodeOf(err))

	_, err = d.RecordPick(dec(1), testNow)
	assert.Error(t, err)
	_, err = d.Finish(DemandStatusCancelled, testNow)
	assert.True(t, shared.IsInvalidTransition(err))
}

func TestDemand_FinishRejectsOpenTarget(t *testing.T) {
	d, err := NewDemand("SO-7/1", DemandTypeSalesOrder, uuid.New(), uuid.New(), dec(5), "ea", testNow)
	require.NoError(t, err)

	_, err = d.Finish(DemandStatusReleased, testNow)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, DemandStatusPlanned, d.Status)
}

func TestNewStatusAuditEntry(t *testing.T) {
	id := uuid.New()
	entry := NewStatusAuditEntry(AggregateTypeLicensePlate, id, FieldChange{Field: FieldStatus, OldValue: "available", NewValue: "blocked"}, uuid.New(), testNow)
	assert.Nil(t, entry.Reason)
	assert.Equal(t, "", entry.ReasonText())
	assert.Equal(t, id, entry.EntityID)

	entry = NewStatusAuditEntry(AggregateTypeLicensePlate, id, FieldChange{Field: FieldStatus, Reason: "damaged"}, uuid.New(), testNow)
	require.NotNil(t, entry.Reason)
	assert.Equal(t, "damaged", entry.ReasonText())
}
