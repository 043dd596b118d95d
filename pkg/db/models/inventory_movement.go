package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// InventoryMovement is an append-only ledger entry recording a change to a
// tank's stock or reservation. Quantity is signed: negative for outflow.
// Rows are immutable once written.
type InventoryMovement struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TankID        uuid.UUID          `gorm:"column:tank_id;type:uuid;not null;index"`
	TransactionID uuid.UUID          `gorm:"column:transaction_id;type:uuid;not null;index"`
	Type          enums.MovementType `gorm:"column:type;type:text;not null"`
	Quantity      decimal.Decimal    `gorm:"column:quantity;type:numeric(12,3);not null"`
	PreviousLevel decimal.Decimal    `gorm:"column:previous_level;type:numeric(12,3);not null"`
	NewLevel      decimal.Decimal    `gorm:"column:new_level;type:numeric(12,3);not null"`
	Notes         *string            `gorm:"column:notes"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}
