package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// Tank tracks the physical stock of one fuel grade at a station.
// CurrentLevel and ReservedVolume are mutated only by the inventory ledger,
// inside the transaction engine's unit of work.
type Tank struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID       uuid.UUID             `gorm:"column:tenant_id;type:uuid;not null;index"`
	StationID      uuid.UUID             `gorm:"column:station_id;type:uuid;not null;index"`
	FuelType       enums.FuelType        `gorm:"column:fuel_type;type:text;not null"`
	Capacity       decimal.Decimal       `gorm:"column:capacity;type:numeric(12,3);not null"`
	CurrentLevel   decimal.Decimal       `gorm:"column:current_level;type:numeric(12,3);not null"`
	ReservedVolume decimal.Decimal       `gorm:"column:reserved_volume;type:numeric(12,3);not null;default:0"`
	MinimumLevel   decimal.Decimal       `gorm:"column:minimum_level;type:numeric(12,3);not null;default:0"`
	MaximumLevel   decimal.Decimal       `gorm:"column:maximum_level;type:numeric(12,3);not null;default:0"`
	Status         enums.EquipmentStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// Available returns the unreserved stock on hand.
func (t *Tank) Available() decimal.Decimal {
	available := t.CurrentLevel.Sub(t.ReservedVolume)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// Dispensable returns the volume sellable right now: unreserved stock above
// the minimum operating level.
func (t *Tank) Dispensable() decimal.Decimal {
	dispensable := t.CurrentLevel.Sub(t.ReservedVolume).Sub(t.MinimumLevel)
	if dispensable.IsNegative() {
		return decimal.Zero
	}
	return dispensable
}

// IsOperational reports whether the tank can take reservations.
func (t *Tank) IsOperational() bool {
	return t.Status == enums.EquipmentStatusActive
}
