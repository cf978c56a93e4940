package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarCondition string

const (
	CarConditionNew  CarCondition = "new"
	CarConditionUsed CarCondition = "used"
)

type Car struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SellerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller     User       `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Title      string     `gorm:"not null;index" json:"title"`
	ImageURL   string     `json:"image_url"`
	// Price is nullable: a listing without a price checks out at 0.
	Price        *float64     `json:"price,omitempty"`
	OldPrice     *float64     `json:"old_price,omitempty"`
	Description  string       `json:"description"`
	ModelYear    int          `gorm:"not null" json:"model_year"`
	Mileage      *int         `json:"mileage,omitempty"`
	FuelType     string       `json:"fuel_type"`     // petrol, diesel, electric, hybrid
	Transmission string       `json:"transmission"`  // manual, automatic, semi-automatic
	Engine       string       `json:"engine"`
	Condition    CarCondition `gorm:"default:used" json:"condition"`

	AirConditioner bool `gorm:"default:false" json:"air_conditioner"`
	PowerWindows   bool `gorm:"default:false" json:"power_windows"`
	PowerSteering  bool `gorm:"default:false" json:"power_steering"`
	CentralLocking bool `gorm:"default:false" json:"central_locking"`
	ABS            bool `gorm:"default:false" json:"abs"`
	Airbags        bool `gorm:"default:false" json:"airbags"`
	LeatherSeats   bool `gorm:"default:false" json:"leather_seats"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CheckoutPrice is the amount a CarOrder is created with: the listed
// price, or 0 when the listing has none.
func (c *Car) CheckoutPrice() float64 {
	if c.Price == nil {
		return 0
	}
	return *c.Price
}
