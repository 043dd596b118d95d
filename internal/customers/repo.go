package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omc-erp/omc-backend/pkg/db/models"
)

// Repository exposes the narrow customer surface the engine needs: lookups
// plus loyalty balance mutation inside the caller's unit of work.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCustomer(ctx context.Context, id, tenantID uuid.UUID) (*models.Customer, error)
	AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error
	RedeemLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customer repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindCustomer(ctx context.Context, id, tenantID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}

func (r *repository) RedeemLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}
	// Floors at zero so a refund never drives the balance negative.
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		UpdateColumn("loyalty_points", gorm.Expr("CASE WHEN loyalty_points >= ? THEN loyalty_points - ? ELSE 0 END", points, points)).Error
}
