package persistence

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivingLineRepository implements ReceivingLineRepository using GORM
type GormReceivingLineRepository struct {
	db *gorm.DB
}

// NewGormReceivingLineRepository creates a new GormReceivingLineRepository
func NewGormReceivingLineRepository(db *gorm.DB) *GormReceivingLineRepository {
	return &GormReceivingLineRepository{db: db}
}

// FindByID finds a receiving line by ID
func (r *GormReceivingLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ReceivingLine, error) {
	var model models.ReceivingLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a receiving line by ID and locks the row
func (r *GormReceivingLineRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.ReceivingLine, error) {
	var model models.ReceivingLineModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindByASN returns the lines of one shipment in creation order
func (r *GormReceivingLineRepository) FindByASN(ctx context.Context, asnID uuid.UUID) ([]*inventory.ReceivingLine, error) {
	var rows []models.ReceivingLineModel
	err := r.db.WithContext(ctx).
		Where("asn_id = ?", asnID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*inventory.ReceivingLine, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// Create inserts a new receiving line
func (r *GormReceivingLineRepository) Create(ctx context.Context, line *inventory.ReceivingLine) error {
	return r.db.WithContext(ctx).Create(models.ReceivingLineModelFromDomain(line)).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormReceivingLineRepository) SaveWithLock(ctx context.Context, line *inventory.ReceivingLine) error {
	err := updateWithVersion(r.db.WithContext(ctx), &models.ReceivingLineModel{}, line.ID, line.Version, map[string]any{
		"received_qty": line.ReceivedQty,
		"updated_at":   line.UpdatedAt,
	}, "Receiving line")
	if err != nil {
		return err
	}
	line.IncrementVersion()
	return nil
}

var _ inventory.ReceivingLineRepository = (*GormReceivingLineRepository)(nil)
