package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Accessory struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	// SellerID is nullable: accessories without a seller never generate
	// seller notifications.
	SellerID    *uuid.UUID     `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	Seller      *User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Title       string         `gorm:"not null;index" json:"title"`
	ImageURL    string         `json:"image_url"`
	Price       float64        `gorm:"not null" json:"price"`
	OldPrice    *float64       `json:"old_price,omitempty"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Accessory) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
