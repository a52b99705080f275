package inventory

import (
	"context"
	"time"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// serviceBase carries what every inventory service needs to run a unit of work
type serviceBase struct {
	scope          TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	retry          RetryPolicy
	logger         *zap.Logger
}

func newServiceBase(scope TransactionScope, logger *zap.Logger) serviceBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return serviceBase{
		scope:  scope,
		clock:  shared.SystemClock{},
		retry:  DefaultRetryPolicy(),
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (b *serviceBase) SetEventPublisher(publisher shared.EventPublisher) {
	b.eventPublisher = publisher
}

// SetClock replaces the timestamp source
func (b *serviceBase) SetClock(clock shared.Clock) {
	b.clock = clock
}

// SetRetryPolicy sets how ConcurrencyConflict failures are retried
func (b *serviceBase) SetRetryPolicy(policy RetryPolicy) {
	b.retry = policy
}

// unitOfWork is the state of one attempt of a transactional operation
type unitOfWork struct {
	TransactionalRepositories
	ctx     context.Context
	now     time.Time
	actorID uuid.UUID
	events  []shared.DomainEvent
}

// audit appends one entry per change on the given entity
func (u *unitOfWork) audit(entityType string, entityID uuid.UUID, changes ...inventory.FieldChange) error {
	if len(changes) == 0 {
		return nil
	}
	entries := make([]*inventory.StatusAuditEntry, 0, len(changes))
	for _, c := range changes {
		entries = append(entries, inventory.NewStatusAuditEntry(entityType, entityID, c, u.actorID, u.now))
	}
	return u.AuditRepo().Append(u.ctx, entries...)
}

// collect takes the pending events of the given aggregates for publishing after commit
func (u *unitOfWork) collect(aggregates ...shared.AggregateRoot) {
	for _, a := range aggregates {
		u.events = append(u.events, a.GetDomainEvents()...)
		a.ClearDomainEvents()
	}
}

// execute runs fn in a transaction, retrying on ConcurrencyConflict, and
// publishes the collected events once the transaction has committed.
func (b *serviceBase) execute(ctx context.Context, actorID uuid.UUID, fn func(u *unitOfWork) error) error {
	ctx, span := telemetry.StartSpan(ctx, "inventory.unit_of_work",
		telemetry.WithAttribute(telemetry.SpanAttrActorID, actorID))
	defer span.End()

	var (
		committed []shared.DomainEvent
		attempts  int
	)
	err := b.retry.Do(ctx, func() error {
		attempts++
		u := &unitOfWork{ctx: ctx, now: b.clock.Now(), actorID: actorID}
		err := b.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			u.TransactionalRepositories = repos
			return fn(u)
		})
		if err != nil {
			if shared.IsConcurrencyConflict(err) {
				telemetry.AddEvent(span, "concurrency_conflict", "attempt", attempts)
				b.logger.Warn("Concurrency conflict, retrying unit of work",
					zap.Int("attempt", attempts), zap.Error(err))
			}
			return err
		}
		committed = u.events
		return nil
	})
	telemetry.SetAttributes(span, telemetry.SpanAttrAttempts, attempts)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrEvents, len(committed))
	b.publish(ctx, committed)
	return nil
}

// read runs fn in a transaction without retry or event publishing
func (b *serviceBase) read(ctx context.Context, fn func(u *unitOfWork) error) error {
	u := &unitOfWork{ctx: ctx, now: b.clock.Now()}
	return b.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		u.TransactionalRepositories = repos
		return fn(u)
	})
}

func (b *serviceBase) publish(ctx context.Context, events []shared.DomainEvent) {
	if b.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus, not propagated
	if err := b.eventPublisher.Publish(ctx, events...); err != nil {
		b.logger.Error("Failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}

// =============================================================================
// Row-locked loads
// =============================================================================

func (u *unitOfWork) lockPlate(id uuid.UUID) (*inventory.LicensePlate, error) {
	lp, err := u.LicensePlateRepo().FindByIDForUpdate(u.ctx, id)
	if err != nil {
		return nil, notFound(err, inventory.CodeLPNotFound, "License plate", id)
	}
	return lp, nil
}

func (u *unitOfWork) lockReservation(id uuid.UUID) (*inventory.Reservation, error) {
	r, err := u.ReservationRepo().FindByIDForUpdate(u.ctx, id)
	if err != nil {
		return nil, notFound(err, "RESERVATION_NOT_FOUND", "Reservation", id)
	}
	return r, nil
}

func (u *unitOfWork) lockDemand(id uuid.UUID) (*inventory.Demand, error) {
	d, err := u.DemandRepo().FindByIDForUpdate(u.ctx, id)
	if err != nil {
		return nil, notFound(err, "DEMAND_NOT_FOUND", "Demand", id)
	}
	return d, nil
}

func (u *unitOfWork) lockReceivingLine(id uuid.UUID) (*inventory.ReceivingLine, error) {
	l, err := u.ReceivingLineRepo().FindByIDForUpdate(u.ctx, id)
	if err != nil {
		return nil, notFound(err, "RECEIVING_LINE_NOT_FOUND", "Receiving line", id)
	}
	return l, nil
}

// notFound replaces a repository NotFound with an entity-specific one and passes other errors through
func notFound(err error, code, entity string, id uuid.UUID) error {
	if shared.IsNotFound(err) {
		return shared.NewNotFoundError(code, entity, id)
	}
	return err
}
