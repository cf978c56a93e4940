package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wishlist holds both cars and accessories a user saved for later. One
// wishlist per user, created lazily like the cart.
type Wishlist struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Cars        []Car       `gorm:"many2many:wishlist_cars" json:"cars"`
	Accessories []Accessory `gorm:"many2many:wishlist_accessories" json:"accessories"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
