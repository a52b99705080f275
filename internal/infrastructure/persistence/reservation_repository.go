package persistence

import (
	"context"

	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID finds a reservation by ID
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a reservation by ID and locks the row
func (r *GormReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Reservation, error) {
	var model models.ReservationModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateFindError(err)
	}
	return model.ToDomain(), nil
}

// FindActiveByLicensePlate returns active reservations held against a license plate
func (r *GormReservationRepository) FindActiveByLicensePlate(ctx context.Context, lpID uuid.UUID) ([]*inventory.Reservation, error) {
	return r.find(r.db.WithContext(ctx).
		Where("license_plate_id = ? AND status = ?", lpID, inventory.ReservationStatusActive.String()))
}

// FindByDemand returns every reservation of a demand regardless of status
func (r *GormReservationRepository) FindByDemand(ctx context.Context, demandID uuid.UUID) ([]*inventory.Reservation, error) {
	return r.find(r.db.WithContext(ctx).Where("demand_id = ?", demandID))
}

// FindActiveByDemand returns active reservations of a demand
func (r *GormReservationRepository) FindActiveByDemand(ctx context.Context, demandID uuid.UUID) ([]*inventory.Reservation, error) {
	return r.find(r.db.WithContext(ctx).
		Where("demand_id = ? AND status = ?", demandID, inventory.ReservationStatusActive.String()))
}

func (r *GormReservationRepository) find(query *gorm.DB) ([]*inventory.Reservation, error) {
	var rows []models.ReservationModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	reservations := make([]*inventory.Reservation, len(rows))
	for i := range rows {
		reservations[i] = rows[i].ToDomain()
	}
	return reservations, nil
}

// Create inserts a new reservation
func (r *GormReservationRepository) Create(ctx context.Context, res *inventory.Reservation) error {
	return r.db.WithContext(ctx).Create(models.ReservationModelFromDomain(res)).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormReservationRepository) SaveWithLock(ctx context.Context, res *inventory.Reservation) error {
	err := updateWithVersion(r.db.WithContext(ctx), &models.ReservationModel{}, res.ID, res.Version, map[string]any{
		"quantity":       res.Quantity,
		"status":         res.Status.String(),
		"released_at":    res.ReleasedAt,
		"consumed_at":    res.ConsumedAt,
		"release_reason": res.ReleaseReason,
		"updated_at":     res.UpdatedAt,
	}, "Reservation")
	if err != nil {
		return err
	}
	res.IncrementVersion()
	return nil
}

var _ inventory.ReservationRepository = (*GormReservationRepository)(nil)
