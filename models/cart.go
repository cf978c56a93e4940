package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is created lazily on first access and persists across sessions.
// One cart per user, enforced by the unique index on user_id.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TotalPrice is recomputed from the current accessory prices on every
// call. It is deliberately not stored: a price change after an item was
// added shows up in the cart total until checkout freezes it.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// CartItem is unique per (cart, accessory). Repeat adds increment the
// quantity instead of creating a second row.
type CartItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_accessory" json:"cart_id"`
	AccessoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_accessory" json:"accessory_id"`
	Accessory   Accessory `gorm:"foreignKey:AccessoryID" json:"accessory"`
	Quantity    int       `gorm:"default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// LineTotal uses the accessory's current price, not a snapshot. The
// frozen counterpart lives on OrderItem; keep the two separate.
func (ci *CartItem) LineTotal() float64 {
	return float64(ci.Quantity) * ci.Accessory.Price
}
