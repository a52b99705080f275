package inventory

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same unit of work and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all inventory repositories within a transaction.
// All repositories returned share the same underlying transaction.
//
// Aggregate boundary notes:
//   - LicensePlateRepo: the license plate aggregate. Quantity and status changes are
//     saved with a version precondition after a FindByIDForUpdate load.
//   - ReservationRepo: reservations are separate aggregates so a plate can be shared
//     by several demands; the plate's allocated quantity mirrors the sum of its
//     active reservations and both are written in the same transaction.
//   - AuditRepo: append-only status audit trail.
//   - ReceivingLineRepo: ASN lines; received quantity only ever grows.
//   - DemandRepo: work order / sales order lines that reserve and pick.
type TransactionalRepositories interface {
	// LicensePlateRepo returns the license plate repository scoped to the current transaction
	LicensePlateRepo() inventory.LicensePlateRepository
	// ReservationRepo returns the reservation repository scoped to the current transaction
	ReservationRepo() inventory.ReservationRepository
	// AuditRepo returns the status audit repository scoped to the current transaction
	AuditRepo() inventory.StatusAuditRepository
	// ReceivingLineRepo returns the receiving line repository scoped to the current transaction
	ReceivingLineRepo() inventory.ReceivingLineRepository
	// DemandRepo returns the demand repository scoped to the current transaction
	DemandRepo() inventory.DemandRepository
}
