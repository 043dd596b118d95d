package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// Transaction is the fuel-sale aggregate root. Monetary fields are derived by
// the pricing calculator before the row is persisted and are never mutated
// independently afterwards.
type Transaction struct {
	ID                   uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID             uuid.UUID               `gorm:"column:tenant_id;type:uuid;not null;index"`
	StationID            uuid.UUID               `gorm:"column:station_id;type:uuid;not null;index"`
	PumpID               uuid.UUID               `gorm:"column:pump_id;type:uuid;not null"`
	TankID               uuid.UUID               `gorm:"column:tank_id;type:uuid;not null"`
	AttendantID          *uuid.UUID              `gorm:"column:attendant_id;type:uuid"`
	CustomerID           *uuid.UUID              `gorm:"column:customer_id;type:uuid;index"`
	ShiftID              *uuid.UUID              `gorm:"column:shift_id;type:uuid"`
	FuelType             enums.FuelType          `gorm:"column:fuel_type;type:text;not null"`
	QuantityLiters       decimal.Decimal         `gorm:"column:quantity_liters;type:numeric(12,3);not null"`
	UnitPrice            decimal.Decimal         `gorm:"column:unit_price;type:numeric(12,4);not null"`
	GrossAmount          decimal.Decimal         `gorm:"column:gross_amount;type:numeric(14,4);not null"`
	TaxRate              decimal.Decimal         `gorm:"column:tax_rate;type:numeric(6,4);not null"`
	TaxAmount            decimal.Decimal         `gorm:"column:tax_amount;type:numeric(14,4);not null"`
	ServiceCharge        decimal.Decimal         `gorm:"column:service_charge;type:numeric(14,4);not null"`
	DiscountAmount       decimal.Decimal         `gorm:"column:discount_amount;type:numeric(14,4);not null"`
	TotalAmount          decimal.Decimal         `gorm:"column:total_amount;type:numeric(14,4);not null"`
	PaymentMethod        enums.PaymentMethod     `gorm:"column:payment_method;type:text;not null"`
	PaymentReference     *string                 `gorm:"column:payment_reference"`
	PaymentStatus        enums.PaymentStatus     `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PaymentProcessedAt   *time.Time              `gorm:"column:payment_processed_at"`
	ReceiptNumber        string                  `gorm:"column:receipt_number;not null;uniqueIndex"`
	TransactionTime      time.Time               `gorm:"column:transaction_time;not null;index"`
	Status               enums.TransactionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CancellationReason   *string                 `gorm:"column:cancellation_reason"`
	LoyaltyPointsAwarded int                     `gorm:"column:loyalty_points_awarded;not null;default:0"`
	TemperatureCelsius   *decimal.Decimal        `gorm:"column:temperature_celsius;type:numeric(6,2)"`
	DensityKgPerM3       *decimal.Decimal        `gorm:"column:density_kg_per_m3;type:numeric(8,2)"`
	CreatedAt            time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// IsPending reports whether the sale is still awaiting completion.
func (t *Transaction) IsPending() bool {
	return t.Status == enums.TransactionStatusPending
}

// CanBeRefunded reports whether a refund may be attempted: the sale must have
// completed and its payment settled.
func (t *Transaction) CanBeRefunded() bool {
	return t.Status == enums.TransactionStatusCompleted &&
		t.PaymentStatus == enums.PaymentStatusCompleted
}
