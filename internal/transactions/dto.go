package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/internal/payments"
	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
)

// CreateInput carries everything needed to open a fuel sale.
type CreateInput struct {
	TenantID           uuid.UUID
	StationID          uuid.UUID
	PumpID             uuid.UUID
	AttendantID        *uuid.UUID
	CustomerID         *uuid.UUID
	ShiftID            *uuid.UUID
	QuantityLiters     decimal.Decimal
	UnitPrice          decimal.Decimal
	TaxRate            *decimal.Decimal
	ServiceCharge      decimal.Decimal
	DiscountAmount     decimal.Decimal
	PaymentMethod      enums.PaymentMethod
	PaymentDetails     payments.MethodDetails
	AutoProcessPayment bool
	TemperatureCelsius *decimal.Decimal
	DensityKgPerM3     *decimal.Decimal
}

// RefundInput carries the parameters of a refund attempt. A nil Amount means
// the full sale total.
type RefundInput struct {
	TenantID      uuid.UUID
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	Reason        string
}

// ListFilters describe the inputs supported by the transaction list.
type ListFilters struct {
	StationID     *uuid.UUID
	CustomerID    *uuid.UUID
	Status        *enums.TransactionStatus
	PaymentMethod *enums.PaymentMethod
	FuelType      *enums.FuelType
	DateFrom      *time.Time
	DateTo        *time.Time
}

// View is the API projection of one sale.
type View struct {
	ID                   uuid.UUID               `json:"id"`
	TenantID             uuid.UUID               `json:"tenantId"`
	StationID            uuid.UUID               `json:"stationId"`
	PumpID               uuid.UUID               `json:"pumpId"`
	TankID               uuid.UUID               `json:"tankId"`
	AttendantID          *uuid.UUID              `json:"attendantId,omitempty"`
	CustomerID           *uuid.UUID              `json:"customerId,omitempty"`
	ShiftID              *uuid.UUID              `json:"shiftId,omitempty"`
	FuelType             enums.FuelType          `json:"fuelType"`
	QuantityLiters       decimal.Decimal         `json:"quantityLiters"`
	UnitPrice            decimal.Decimal         `json:"unitPrice"`
	GrossAmount          decimal.Decimal         `json:"grossAmount"`
	TaxRate              decimal.Decimal         `json:"taxRate"`
	TaxAmount            decimal.Decimal         `json:"taxAmount"`
	ServiceCharge        decimal.Decimal         `json:"serviceCharge"`
	DiscountAmount       decimal.Decimal         `json:"discountAmount"`
	TotalAmount          decimal.Decimal         `json:"totalAmount"`
	PaymentMethod        enums.PaymentMethod     `json:"paymentMethod"`
	PaymentReference     *string                 `json:"paymentReference,omitempty"`
	PaymentStatus        enums.PaymentStatus     `json:"paymentStatus"`
	ReceiptNumber        string                  `json:"receiptNumber"`
	TransactionTime      time.Time               `json:"transactionTime"`
	Status               enums.TransactionStatus `json:"status"`
	CancellationReason   *string                 `json:"cancellationReason,omitempty"`
	LoyaltyPointsAwarded int                     `json:"loyaltyPointsAwarded"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

// NewView projects a persisted transaction for API responses.
func NewView(txn *models.Transaction) View {
	return View{
		ID:                   txn.ID,
		TenantID:             txn.TenantID,
		StationID:            txn.StationID,
		PumpID:               txn.PumpID,
		TankID:               txn.TankID,
		AttendantID:          txn.AttendantID,
		CustomerID:           txn.CustomerID,
		ShiftID:              txn.ShiftID,
		FuelType:             txn.FuelType,
		QuantityLiters:       txn.QuantityLiters,
		UnitPrice:            txn.UnitPrice,
		GrossAmount:          txn.GrossAmount,
		TaxRate:              txn.TaxRate,
		TaxAmount:            txn.TaxAmount,
		ServiceCharge:        txn.ServiceCharge,
		DiscountAmount:       txn.DiscountAmount,
		TotalAmount:          txn.TotalAmount,
		PaymentMethod:        txn.PaymentMethod,
		PaymentReference:     txn.PaymentReference,
		PaymentStatus:        txn.PaymentStatus,
		ReceiptNumber:        txn.ReceiptNumber,
		TransactionTime:      txn.TransactionTime,
		Status:               txn.Status,
		CancellationReason:   txn.CancellationReason,
		LoyaltyPointsAwarded: txn.LoyaltyPointsAwarded,
		CreatedAt:            txn.CreatedAt,
		UpdatedAt:            txn.UpdatedAt,
	}
}

// SummaryBucket aggregates completed sales along one dimension.
type SummaryBucket struct {
	Count         int64           `json:"count"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// DailySummary is the per-day aggregate over completed sales for one tenant.
type DailySummary struct {
	Date              string                   `json:"date"`
	TotalTransactions int64                    `json:"totalTransactions"`
	TotalSales        decimal.Decimal          `json:"totalSales"`
	TotalQuantity     decimal.Decimal          `json:"totalQuantity"`
	ByFuelType        map[string]SummaryBucket `json:"byFuelType"`
	ByPaymentMethod   map[string]SummaryBucket `json:"byPaymentMethod"`
	ByStation         map[string]SummaryBucket `json:"byStation"`
}
