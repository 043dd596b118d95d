package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// LevelSnapshot is the read-only view of a tank's stock position.
type LevelSnapshot struct {
	TankID       uuid.UUID       `json:"tankId"`
	FuelType     enums.FuelType  `json:"fuelType"`
	Capacity     decimal.Decimal `json:"capacity"`
	CurrentLevel decimal.Decimal `json:"currentLevel"`
	Reserved     decimal.Decimal `json:"reserved"`
	Available    decimal.Decimal `json:"available"`
	MinimumLevel decimal.Decimal `json:"minimumLevel"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// MovementRecord is the audit view of one ledger entry.
type MovementRecord struct {
	ID            uuid.UUID          `json:"id"`
	TankID        uuid.UUID          `json:"tankId"`
	TransactionID uuid.UUID          `json:"transactionId"`
	Type          enums.MovementType `json:"type"`
	Quantity      decimal.Decimal    `json:"quantity"`
	PreviousLevel decimal.Decimal    `json:"previousLevel"`
	NewLevel      decimal.Decimal    `json:"newLevel"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}
