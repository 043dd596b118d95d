package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omc-erp/omc-backend/pkg/db/models"
)

// Repository persists tank state and the append-only movement ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindTank(ctx context.Context, id, tenantID uuid.UUID) (*models.Tank, error)
	FindTankForUpdate(ctx context.Context, id, tenantID uuid.UUID) (*models.Tank, error)
	UpdateTankLevels(ctx context.Context, tank *models.Tank) error
	AppendMovement(ctx context.Context, movement *models.InventoryMovement) error
	ListMovements(ctx context.Context, tankID uuid.UUID, limit int) ([]models.InventoryMovement, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindTank(ctx context.Context, id, tenantID uuid.UUID) (*models.Tank, error) {
	var tank models.Tank
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&tank).Error
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

// FindTankForUpdate serializes concurrent reservations on the same tank with
// a row lock. SQLite (tests) has no FOR UPDATE; its writer lock already
// serializes the transaction.
func (r *repository) FindTankForUpdate(ctx context.Context, id, tenantID uuid.UUID) (*models.Tank, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var tank models.Tank
	err := query.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&tank).Error
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

func (r *repository) UpdateTankLevels(ctx context.Context, tank *models.Tank) error {
	return r.db.WithContext(ctx).
		Model(&models.Tank{}).
		Where("id = ?", tank.ID).
		UpdateColumns(map[string]any{
			"current_level":   tank.CurrentLevel,
			"reserved_volume": tank.ReservedVolume,
		}).Error
}

func (r *repository) AppendMovement(ctx context.Context, movement *models.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *repository) ListMovements(ctx context.Context, tankID uuid.UUID, limit int) ([]models.InventoryMovement, error) {
	var movements []models.InventoryMovement
	query := r.db.WithContext(ctx).
		Where("tank_id = ?", tankID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
