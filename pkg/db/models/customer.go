package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Customer holds the loyalty balance mutated by the transaction engine.
// Profile management is owned by the customer service.
type Customer struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name          string         `gorm:"column:name;not null"`
	Phone         *string        `gorm:"column:phone"`
	Email         *string        `gorm:"column:email"`
	LoyaltyPoints int            `gorm:"column:loyalty_points;not null;default:0"`
	VehiclePlates pq.StringArray `gorm:"column:vehicle_plates;type:text[]"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// AddLoyaltyPoints credits points earned on a completed sale.
func (c *Customer) AddLoyaltyPoints(points int) {
	if points <= 0 {
		return
	}
	c.LoyaltyPoints += points
}

// RedeemLoyaltyPoints debits points, flooring the balance at zero.
func (c *Customer) RedeemLoyaltyPoints(points int) {
	if points <= 0 {
		return
	}
	c.LoyaltyPoints -= points
	if c.LoyaltyPoints < 0 {
		c.LoyaltyPoints = 0
	}
}
