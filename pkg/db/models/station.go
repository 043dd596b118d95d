package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// Station is the master-data record for a retail outlet. Full station CRUD
// lives in the station service; the engine only reads these rows.
type Station struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID             `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name      string                `gorm:"column:name;not null"`
	Code      string                `gorm:"column:code;not null"`
	Region    *string               `gorm:"column:region"`
	Status    enums.EquipmentStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// Pump maps a dispenser to the tank it draws from.
type Pump struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StationID  uuid.UUID             `gorm:"column:station_id;type:uuid;not null;index"`
	TankID     uuid.UUID             `gorm:"column:tank_id;type:uuid;not null"`
	PumpNumber int                   `gorm:"column:pump_number;not null"`
	Status     enums.EquipmentStatus `gorm:"column:status;type:text;not null;default:'active'"`
	Tank       *Tank                 `gorm:"foreignKey:TankID"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// IsOperational reports whether the pump may dispense fuel.
func (p *Pump) IsOperational() bool {
	return p.Status == enums.EquipmentStatusActive
}

// Shift correlates a sale with an attendant work period. Optional metadata
// only; the engine never mutates shifts.
type Shift struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StationID   uuid.UUID  `gorm:"column:station_id;type:uuid;not null;index"`
	AttendantID *uuid.UUID `gorm:"column:attendant_id;type:uuid"`
	StartedAt   time.Time  `gorm:"column:started_at;not null"`
	EndedAt     *time.Time `gorm:"column:ended_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
