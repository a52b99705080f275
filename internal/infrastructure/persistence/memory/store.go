// Package memory provides an in-process implementation of the inventory
// repositories and transaction scope. Transactions are serialized and work on
// a copy of the state that replaces the committed state only on success.
package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// Store holds license plates, reservations, demands, receiving lines and the audit trail
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	plates       map[uuid.UUID]inventory.LicensePlate
	lpNumbers    map[string]uuid.UUID
	reservations map[uuid.UUID]inventory.Reservation
	demands      map[uuid.UUID]inventory.Demand
	lines        map[uuid.UUID]inventory.ReceivingLine
	audit        []inventory.StatusAuditEntry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: &state{
		plates:       make(map[uuid.UUID]inventory.LicensePlate),
		lpNumbers:    make(map[string]uuid.UUID),
		reservations: make(map[uuid.UUID]inventory.Reservation),
		demands:      make(map[uuid.UUID]inventory.Demand),
		lines:        make(map[uuid.UUID]inventory.ReceivingLine),
	}}
}

// Verify interface compliance
var (
	_ appinv.TransactionScope          = (*Store)(nil)
	_ appinv.TransactionalRepositories = (*repositories)(nil)
)

// Execute runs fn against a working copy of the state. The copy is committed
// when fn returns nil and discarded otherwise.
func (s *Store) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&repositories{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// AuditCount returns the number of committed audit entries
func (s *Store) AuditCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.audit)
}

func (st *state) clone() *state {
	c := &state{
		plates:       make(map[uuid.UUID]inventory.LicensePlate, len(st.plates)),
		lpNumbers:    make(map[string]uuid.UUID, len(st.lpNumbers)),
		reservations: make(map[uuid.UUID]inventory.Reservation, len(st.reservations)),
		demands:      make(map[uuid.UUID]inventory.Demand, len(st.demands)),
		lines:        make(map[uuid.UUID]inventory.ReceivingLine, len(st.lines)),
		audit:        make([]inventory.StatusAuditEntry, len(st.audit)),
	}
	for k, v := range st.plates {
		c.plates[k] = v
	}
	for k, v := range st.lpNumbers {
		c.lpNumbers[k] = v
	}
	for k, v := range st.reservations {
		c.reservations[k] = v
	}
	for k, v := range st.demands {
		c.demands[k] = v
	}
	for k, v := range st.lines {
		c.lines[k] = v
	}
	copy(c.audit, st.audit)
	return c
}

type repositories struct {
	st *state
}

func (r *repositories) LicensePlateRepo() inventory.LicensePlateRepository {
	return &licensePlateRepo{st: r.st}
}

func (r *repositories) ReservationRepo() inventory.ReservationRepository {
	return &reservationRepo{st: r.st}
}

func (r *repositories) AuditRepo() inventory.StatusAuditRepository {
	return &auditRepo{st: r.st}
}

func (r *repositories) ReceivingLineRepo() inventory.ReceivingLineRepository {
	return &receivingLineRepo{st: r.st}
}

func (r *repositories) DemandRepo() inventory.DemandRepository {
	return &demandRepo{st: r.st}
}

func conflict(entity string) error {
	return shared.NewConcurrencyConflictError(entity + " was modified by another transaction")
}

// licensePlateRepo stores plates by value; reads hand out copies without pending events
type licensePlateRepo struct {
	st *state
}

func (r *licensePlateRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.LicensePlate, error) {
	lp, ok := r.st.plates[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &lp, nil
}

func (r *licensePlateRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.LicensePlate, error) {
	return r.FindByID(ctx, id)
}

func (r *licensePlateRepo) FindReservable(_ context.Context, productID, warehouseID uuid.UUID) ([]*inventory.LicensePlate, error) {
	out := make([]*inventory.LicensePlate, 0)
	for _, lp := range r.st.plates {
		if lp.ProductID != productID || lp.WarehouseID != warehouseID {
			continue
		}
		if lp.Status != inventory.LPStatusAvailable && lp.Status != inventory.LPStatusReserved {
			continue
		}
		cp := lp
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].LPNumber < out[j].LPNumber
	})
	return out, nil
}

func (r *licensePlateRepo) Create(_ context.Context, lp *inventory.LicensePlate) error {
	if _, ok := r.st.lpNumbers[lp.LPNumber]; ok {
		return shared.NewValidationError("LP_NUMBER_EXISTS", "License plate number already exists: "+lp.LPNumber).
			WithDetail("lp_number", lp.LPNumber)
	}
	if _, ok := r.st.plates[lp.ID]; ok {
		return shared.NewValidationError("DUPLICATE_ID", "License plate already exists")
	}
	cp := *lp
	cp.ClearDomainEvents()
	r.st.plates[lp.ID] = cp
	r.st.lpNumbers[lp.LPNumber] = lp.ID
	return nil
}

func (r *licensePlateRepo) SaveWithLock(_ context.Context, lp *inventory.LicensePlate) error {
	stored, ok := r.st.plates[lp.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != lp.Version {
		return conflict("License plate")
	}
	lp.IncrementVersion()
	cp := *lp
	cp.ClearDomainEvents()
	r.st.plates[lp.ID] = cp
	return nil
}

type reservationRepo struct {
	st *state
}

func (r *reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Reservation, error) {
	res, ok := r.st.reservations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &res, nil
}

func (r *reservationRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r *reservationRepo) find(match func(res *inventory.Reservation) bool) []*inventory.Reservation {
	out := make([]*inventory.Reservation, 0)
	for _, res := range r.st.reservations {
		cp := res
		if match(&cp) {
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r *reservationRepo) FindActiveByLicensePlate(_ context.Context, lpID uuid.UUID) ([]*inventory.Reservation, error) {
	return r.find(func(res *inventory.Reservation) bool {
		return res.LicensePlateID == lpID && res.IsActive()
	}), nil
}

func (r *reservationRepo) FindByDemand(_ context.Context, demandID uuid.UUID) ([]*inventory.Reservation, error) {
	return r.find(func(res *inventory.Reservation) bool {
		return res.DemandID == demandID
	}), nil
}

func (r *reservationRepo) FindActiveByDemand(_ context.Context, demandID uuid.UUID) ([]*inventory.Reservation, error) {
	return r.find(func(res *inventory.Reservation) bool {
		return res.DemandID == demandID && res.IsActive()
	}), nil
}

func (r *reservationRepo) Create(_ context.Context, res *inventory.Reservation) error {
	if _, ok := r.st.reservations[res.ID]; ok {
		return shared.NewValidationError("DUPLICATE_ID", "Reservation already exists")
	}
	cp := *res
	cp.ClearDomainEvents()
	r.st.reservations[res.ID] = cp
	return nil
}

func (r *reservationRepo) SaveWithLock(_ context.Context, res *inventory.Reservation) error {
	stored, ok := r.st.reservations[res.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != res.Version {
		return conflict("Reservation")
	}
	res.IncrementVersion()
	cp := *res
	cp.ClearDomainEvents()
	r.st.reservations[res.ID] = cp
	return nil
}

// auditLess orders like the SQL listing: changed_at then id, or field first
// when the filter asks for it. Newest first unless OrderDir is asc.
func auditLess(entries []*inventory.StatusAuditEntry, filter shared.Filter) func(i, j int) bool {
	desc := !strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc")
	byField := strings.EqualFold(strings.TrimSpace(filter.OrderBy), "field")
	newerFirst := desc || byField
	return func(i, j int) bool {
		a, b := entries[i], entries[j]
		if byField && a.Field != b.Field {
			if desc {
				return a.Field > b.Field
			}
			return a.Field < b.Field
		}
		if !a.ChangedAt.Equal(b.ChangedAt) {
			return a.ChangedAt.After(b.ChangedAt) == newerFirst
		}
		c := bytes.Compare(a.ID[:], b.ID[:])
		if newerFirst {
			return c > 0
		}
		return c < 0
	}
}

// auditRepo is append-only
type auditRepo struct {
	st *state
}

func (r *auditRepo) Append(_ context.Context, entries ...*inventory.StatusAuditEntry) error {
	for _, e := range entries {
		r.st.audit = append(r.st.audit, *e)
	}
	return nil
}

func (r *auditRepo) ListByEntity(_ context.Context, entityID uuid.UUID, filter shared.Filter) ([]*inventory.StatusAuditEntry, int64, error) {
	matched := make([]*inventory.StatusAuditEntry, 0)
	for i := range r.st.audit {
		if r.st.audit[i].EntityID == entityID {
			cp := r.st.audit[i]
			matched = append(matched, &cp)
		}
	}
	sort.SliceStable(matched, auditLess(matched, filter))

	total := int64(len(matched))
	filter = filter.Normalize()
	start := filter.Offset()
	if start >= len(matched) {
		return []*inventory.StatusAuditEntry{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type receivingLineRepo struct {
	st *state
}

func (r *receivingLineRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.ReceivingLine, error) {
	line, ok := r.st.lines[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &line, nil
}

func (r *receivingLineRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.ReceivingLine, error) {
	return r.FindByID(ctx, id)
}

func (r *receivingLineRepo) FindByASN(_ context.Context, asnID uuid.UUID) ([]*inventory.ReceivingLine, error) {
	out := make([]*inventory.ReceivingLine, 0)
	for _, line := range r.st.lines {
		if line.ASNID == asnID {
			cp := line
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *receivingLineRepo) Create(_ context.Context, line *inventory.ReceivingLine) error {
	if _, ok := r.st.lines[line.ID]; ok {
		return shared.NewValidationError("DUPLICATE_ID", "Receiving line already exists")
	}
	cp := *line
	cp.ClearDomainEvents()
	r.st.lines[line.ID] = cp
	return nil
}

func (r *receivingLineRepo) SaveWithLock(_ context.Context, line *inventory.ReceivingLine) error {
	stored, ok := r.st.lines[line.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != line.Version {
		return conflict("Receiving line")
	}
	line.IncrementVersion()
	cp := *line
	cp.ClearDomainEvents()
	r.st.lines[line.ID] = cp
	return nil
}

type demandRepo struct {
	st *state
}

func (r *demandRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Demand, error) {
	d, ok := r.st.demands[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &d, nil
}

func (r *demandRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Demand, error) {
	return r.FindByID(ctx, id)
}

func (r *demandRepo) Create(_ context.Context, d *inventory.Demand) error {
	if _, ok := r.st.demands[d.ID]; ok {
		return shared.NewValidationError("DUPLICATE_ID", "Demand already exists")
	}
	cp := *d
	cp.ClearDomainEvents()
	r.st.demands[d.ID] = cp
	return nil
}

func (r *demandRepo) SaveWithLock(_ context.Context, d *inventory.Demand) error {
	stored, ok := r.st.demands[d.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != d.Version {
		return conflict("Demand")
	}
	d.IncrementVersion()
	cp := *d
	cp.ClearDomainEvents()
	r.st.demands[d.ID] = cp
	return nil
}
