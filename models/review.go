package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarReview struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CarID     uuid.UUID `gorm:"type:uuid;not null;index" json:"car_id"`
	Car       Car       `gorm:"foreignKey:CarID" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int       `gorm:"default:5" json:"rating"` // 1-5
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *CarReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
