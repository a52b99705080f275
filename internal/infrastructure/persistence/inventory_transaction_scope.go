package persistence

import (
	"context"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// LicensePlateRepo returns the license plate repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LicensePlateRepo() inventory.LicensePlateRepository {
	return NewGormLicensePlateRepository(r.tx)
}

// ReservationRepo returns the reservation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ReservationRepo() inventory.ReservationRepository {
	return NewGormReservationRepository(r.tx)
}

// AuditRepo returns the status audit repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AuditRepo() inventory.StatusAuditRepository {
	return NewGormStatusAuditRepository(r.tx)
}

// ReceivingLineRepo returns the receiving line repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ReceivingLineRepo() inventory.ReceivingLineRepository {
	return NewGormReceivingLineRepository(r.tx)
}

// DemandRepo returns the demand repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DemandRepo() inventory.DemandRepository {
	return NewGormDemandRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
