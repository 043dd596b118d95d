package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
	"github.com/omc-erp/omc-backend/pkg/pagination"
)

// Repository persists the transaction aggregate and serves its read side.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error)
	FindByIDForUpdate(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) error
	List(ctx context.Context, tenantID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Transaction, int64, error)
	DailySummary(ctx context.Context, tenantID uuid.UUID, dayStart, dayEnd time.Time) (*DailySummary, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a transaction repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) FindByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindByIDForUpdate serializes concurrent state transitions on the same sale
// with a row lock. SQLite (tests) has no FOR UPDATE; its writer lock already
// serializes the transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var txn models.Transaction
	err := query.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *repository) Update(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Transaction, int64, error) {
	params = params.Normalize()
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Transaction{}).Where("tenant_id = ?", tenantID), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Transaction
	err := query.
		Order("transaction_time DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.StationID != nil {
		query = query.Where("station_id = ?", *filters.StationID)
	}
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filters.PaymentMethod)
	}
	if filters.FuelType != nil {
		query = query.Where("fuel_type = ?", *filters.FuelType)
	}
	if filters.DateFrom != nil {
		query = query.Where("transaction_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("transaction_time < ?", *filters.DateTo)
	}
	return query
}

type summaryRow struct {
	Bucket        string
	Count         int64
	TotalSales    decimal.Decimal
	TotalQuantity decimal.Decimal
}

func (r *repository) DailySummary(ctx context.Context, tenantID uuid.UUID, dayStart, dayEnd time.Time) (*DailySummary, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Transaction{}).
			Where("tenant_id = ? AND status = ? AND transaction_time >= ? AND transaction_time < ?",
				tenantID, enums.TransactionStatusCompleted, dayStart, dayEnd)
	}

	var totals summaryRow
	err := base().
		Select("count(*) as count, coalesce(sum(total_amount), 0) as total_sales, coalesce(sum(quantity_liters), 0) as total_quantity").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	byFuelType, err := r.summaryBuckets(base(), "fuel_type")
	if err != nil {
		return nil, err
	}
	byPaymentMethod, err := r.summaryBuckets(base(), "payment_method")
	if err != nil {
		return nil, err
	}
	byStation, err := r.summaryBuckets(base(), "station_id")
	if err != nil {
		return nil, err
	}

	return &DailySummary{
		Date:              dayStart.Format("2006-01-02"),
		TotalTransactions: totals.Count,
		TotalSales:        totals.TotalSales,
		TotalQuantity:     totals.TotalQuantity,
		ByFuelType:        byFuelType,
		ByPaymentMethod:   byPaymentMethod,
		ByStation:         byStation,
	}, nil
}

func (r *repository) summaryBuckets(query *gorm.DB, column string) (map[string]SummaryBucket, error) {
	var rows []summaryRow
	err := query.
		Select(column + " as bucket, count(*) as count, coalesce(sum(total_amount), 0) as total_sales, coalesce(sum(quantity_liters), 0) as total_quantity").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	buckets := make(map[string]SummaryBucket, len(rows))
	for _, row := range rows {
		buckets[row.Bucket] = SummaryBucket{
			Count:         row.Count,
			TotalSales:    row.TotalSales,
			TotalQuantity: row.TotalQuantity,
		}
	}
	return buckets, nil
}
