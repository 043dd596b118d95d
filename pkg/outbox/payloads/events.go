package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// TransactionCreatedEvent signals a new fuel sale awaiting payment capture.
type TransactionCreatedEvent struct {
	TransactionID  uuid.UUID           `json:"transactionId"`
	TenantID       uuid.UUID           `json:"tenantId"`
	StationID      uuid.UUID           `json:"stationId"`
	TankID         uuid.UUID           `json:"tankId"`
	FuelType       enums.FuelType      `json:"fuelType"`
	QuantityLiters decimal.Decimal     `json:"quantityLiters"`
	TotalAmount    decimal.Decimal     `json:"totalAmount"`
	PaymentMethod  enums.PaymentMethod `json:"paymentMethod"`
	PaymentStatus  enums.PaymentStatus `json:"paymentStatus"`
	ReceiptNumber  string              `json:"receiptNumber"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// TransactionCompletedEvent is emitted once fuel has been dispensed and the
// sale finalized.
type TransactionCompletedEvent struct {
	TransactionID        uuid.UUID       `json:"transactionId"`
	TenantID             uuid.UUID       `json:"tenantId"`
	StationID            uuid.UUID       `json:"stationId"`
	TankID               uuid.UUID       `json:"tankId"`
	CustomerID           *uuid.UUID      `json:"customerId,omitempty"`
	QuantityLiters       decimal.Decimal `json:"quantityLiters"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	LoyaltyPointsAwarded int             `json:"loyaltyPointsAwarded"`
	CompletedAt          time.Time       `json:"completedAt"`
}

// TransactionCancelledEvent is emitted when a pending sale is voided.
type TransactionCancelledEvent struct {
	TransactionID uuid.UUID `json:"transactionId"`
	TenantID      uuid.UUID `json:"tenantId"`
	StationID     uuid.UUID `json:"stationId"`
	Reason        string    `json:"reason,omitempty"`
	CancelledAt   time.Time `json:"cancelledAt"`
}

// TransactionRefundedEvent carries the reversal details for a completed sale.
type TransactionRefundedEvent struct {
	TransactionID   uuid.UUID       `json:"transactionId"`
	TenantID        uuid.UUID       `json:"tenantId"`
	StationID       uuid.UUID       `json:"stationId"`
	TankID          uuid.UUID       `json:"tankId"`
	CustomerID      *uuid.UUID      `json:"customerId,omitempty"`
	QuantityLiters  decimal.Decimal `json:"quantityLiters"`
	RefundAmount    decimal.Decimal `json:"refundAmount"`
	RefundReference string          `json:"refundReference"`
	Reason          string          `json:"reason,omitempty"`
	RefundedAt      time.Time       `json:"refundedAt"`
}

// InventoryMovementEvent is the shared shape for reserve, deduct, release,
// and return movements against a tank.
type InventoryMovementEvent struct {
	TankID         uuid.UUID          `json:"tankId"`
	TenantID       uuid.UUID          `json:"tenantId"`
	TransactionID  *uuid.UUID         `json:"transactionId,omitempty"`
	FuelType       enums.FuelType     `json:"fuelType"`
	MovementType   enums.MovementType `json:"movementType"`
	QuantityLiters decimal.Decimal    `json:"quantityLiters"`
	PreviousLevel  decimal.Decimal    `json:"previousLevel"`
	NewLevel       decimal.Decimal    `json:"newLevel"`
	OccurredAt     time.Time          `json:"occurredAt"`
}

// LowInventoryEvent warns downstream alerting that a tank has dropped to or
// below its reorder threshold.
type LowInventoryEvent struct {
	TankID       uuid.UUID       `json:"tankId"`
	TenantID     uuid.UUID       `json:"tenantId"`
	StationID    uuid.UUID       `json:"stationId"`
	FuelType     enums.FuelType  `json:"fuelType"`
	CurrentLevel decimal.Decimal `json:"currentLevel"`
	MinimumLevel decimal.Decimal `json:"minimumLevel"`
	DetectedAt   time.Time       `json:"detectedAt"`
}
