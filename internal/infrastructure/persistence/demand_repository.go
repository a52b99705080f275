package persistence

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDemandRepository implements DemandRepository using GORM
type GormDemandRepository struct {
	db *gorm.DB
}

// NewGormDemandRepository creates a new GormDemandRepository
func NewGormDemandRepository(db *gorm.DB) *GormDemandRepository {
	return &GormDemandRepository{db: db}
}

// FindByID finds a demand by ID
func (r *GormDemandRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Demand, error) {
	var model models.DemandModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a demand by ID and locks the row
func (r *GormDemandRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Demand, error) {
	var model models.DemandModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// Create inserts a new demand
func (r *GormDemandRepository) Create(ctx context.Context, d *inventory.Demand) error {
	return r.db.WithContext(ctx).Create(models.DemandModelFromDomain(d)).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDemandRepository) SaveWithLock(ctx context.Context, d *inventory.Demand) error {
	err := updateWithVersion(r.db.WithContext(ctx), &models.DemandModel{}, d.ID, d.Version, map[string]any{
		"picked_qty": d.PickedQty,
		"status":     d.Status.String(),
		"updated_at": d.UpdatedAt,
	}, "Demand")
	if err != nil {
		return err
	}
	d.IncrementVersion()
	return nil
}

var _ inventory.DemandRepository = (*GormDemandRepository)(nil)
