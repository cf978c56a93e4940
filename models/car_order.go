package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarOrder is the single-item analogue of Order: one order per car, no
// line items. It shares the Order status state machine.
type CarOrder struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CarID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"car_id"`
	Car        Car         `gorm:"foreignKey:CarID" json:"car"`
	FullName   string      `json:"full_name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	TotalPrice float64     `gorm:"not null" json:"total_price"`
	Status     OrderStatus `gorm:"default:pending" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (co *CarOrder) BeforeCreate(tx *gorm.DB) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return nil
}
