package persistence

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLicensePlateRepository implements LicensePlateRepository using GORM
type GormLicensePlateRepository struct {
	db *gorm.DB
}

// NewGormLicensePlateRepository creates a new GormLicensePlateRepository
func NewGormLicensePlateRepository(db *gorm.DB) *GormLicensePlateRepository {
	return &GormLicensePlateRepository{db: db}
}

// FindByID finds a license plate by ID
func (r *GormLicensePlateRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.LicensePlate, error) {
	var model models.LicensePlateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a license plate by ID with SELECT ... FOR UPDATE
func (r *GormLicensePlateRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.LicensePlate, error) {
	var model models.LicensePlateModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindReservable returns available or reserved plates of a product in a warehouse,
// oldest receipt first
func (r *GormLicensePlateRepository) FindReservable(ctx context.Context, productID, warehouseID uuid.UUID) ([]*inventory.LicensePlate, error) {
	var rows []models.LicensePlateModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Where("status IN ?", []string{inventory.LPStatusAvailable.String(), inventory.LPStatusReserved.String()}).
		Order("received_at ASC").
		Order("lp_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	plates := make([]*inventory.LicensePlate, len(rows))
	for i := range rows {
		plates[i] = rows[i].ToDomain()
	}
	return plates, nil
}

// Create inserts a new license plate
func (r *GormLicensePlateRepository) Create(ctx context.Context, lp *inventory.LicensePlate) error {
	err := r.db.WithContext(ctx).Create(models.LicensePlateModelFromDomain(lp)).Error
	return translateCreateError(err, "LP_NUMBER_EXISTS", "License plate number already exists: "+lp.LPNumber)
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormLicensePlateRepository) SaveWithLock(ctx context.Context, lp *inventory.LicensePlate) error {
	err := updateWithVersion(r.db.WithContext(ctx), &models.LicensePlateModel{}, lp.ID, lp.Version, map[string]any{
		"quantity_on_hand":   lp.QuantityOnHand,
		"allocated_quantity": lp.AllocatedQuantity,
		"status":             lp.Status.String(),
		"qa_status":          lp.QAStatus.String(),
		"batch_number":       lp.BatchNumber,
		"expiry_date":        lp.ExpiryDate,
		"updated_at":         lp.UpdatedAt,
	}, "License plate")
	if err != nil {
		return err
	}
	lp.IncrementVersion()
	return nil
}

var _ inventory.LicensePlateRepository = (*GormLicensePlateRepository)(nil)
