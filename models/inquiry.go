package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarInquiry is a buyer question about a listing. UserID is nullable so
// anonymous visitors can inquire with just their contact details.
type CarInquiry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CarID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"car_id"`
	Car       Car        `gorm:"foreignKey:CarID" json:"-"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"not null" json:"email"`
	Phone     string     `json:"phone"`
	Message   string     `gorm:"not null" json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

func (ci *CarInquiry) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
