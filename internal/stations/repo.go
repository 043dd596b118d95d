package stations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omc-erp/omc-backend/pkg/db/models"
)

// Repository reads station, pump, and shift master data. The engine only
// consumes these rows; their CRUD surface lives elsewhere.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindStation(ctx context.Context, id, tenantID uuid.UUID) (*models.Station, error)
	FindPump(ctx context.Context, id, stationID uuid.UUID) (*models.Pump, error)
	FindShift(ctx context.Context, id, stationID uuid.UUID) (*models.Shift, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a directory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindStation(ctx context.Context, id, tenantID uuid.UUID) (*models.Station, error) {
	var station models.Station
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&station).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}

func (r *repository) FindPump(ctx context.Context, id, stationID uuid.UUID) (*models.Pump, error) {
	var pump models.Pump
	err := r.db.WithContext(ctx).
		Preload("Tank").
		Where("id = ? AND station_id = ?", id, stationID).
		First(&pump).Error
	if err != nil {
		return nil, err
	}
	return &pump, nil
}

func (r *repository) FindShift(ctx context.Context, id, stationID uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Where("id = ? AND station_id = ?", id, stationID).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}
