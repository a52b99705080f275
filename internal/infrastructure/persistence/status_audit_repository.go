package persistence

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatusAuditRepository implements StatusAuditRepository using GORM.
// The table is insert-only; no update or delete path exists.
type GormStatusAuditRepository struct {
	db *gorm.DB
}

// NewGormStatusAuditRepository creates a new GormStatusAuditRepository
func NewGormStatusAuditRepository(db *gorm.DB) *GormStatusAuditRepository {
	return &GormStatusAuditRepository{db: db}
}

// Append inserts audit entries in one statement
func (r *GormStatusAuditRepository) Append(ctx context.Context, entries ...*inventory.StatusAuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.StatusAuditModel, len(entries))
	for i, e := range entries {
		rows[i] = models.StatusAuditModelFromDomain(e)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListByEntity returns one page of an entity's audit trail, newest first unless
// the filter orders otherwise
func (r *GormStatusAuditRepository) ListByEntity(ctx context.Context, entityID uuid.UUID, filter shared.Filter) ([]*inventory.StatusAuditEntry, int64, error) {
	filter = filter.Normalize()
	byEntity := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.StatusAuditModel{}).Where("entity_id = ?", entityID)
	}

	var total int64
	if err := byEntity().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := byEntity()
	for _, clause := range statusAuditOrder(filter) {
		query = query.Order(clause)
	}
	var rows []models.StatusAuditModel
	err := query.
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*inventory.StatusAuditEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, total, nil
}

var _ inventory.StatusAuditRepository = (*GormStatusAuditRepository)(nil)
