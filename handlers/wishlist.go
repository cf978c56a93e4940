package handlers

import (
	"fmt"
	"net/http"

	"carstor-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func getOrCreateWishlist(db *gorm.DB, userID uuid.UUID) (models.Wishlist, error) {
	var wishlist models.Wishlist
	err := db.Where(models.Wishlist{UserID: userID}).FirstOrCreate(&wishlist).Error
	return wishlist, err
}

func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	wishlist, err := getOrCreateWishlist(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	if err := h.DB.Preload("Cars").Preload("Accessories").
		Where("id = ?", wishlist.ID).First(&wishlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist})
}

// AddAllToCart moves every wishlist accessory into the caller's cart.
// Accessories already in the cart get their quantity bumped by one,
// the rest are added with quantity one. The wishlist itself is left
// untouched.
func (h *WishlistHandler) AddAllToCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	wishlist, err := getOrCreateWishlist(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	var accessories []models.Accessory
	if err := h.DB.Model(&wishlist).Association("Accessories").Find(&accessories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	cart, err := getOrCreateCart(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	added := 0
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, accessory := range accessories {
			if _, err := addAccessoryToCart(tx, cart.ID, accessory.ID, 1); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add wishlist items to cart"})
		return
	}

	if added == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":     "No accessories in wishlist to add",
			"added_count": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Added %d items from wishlist to cart", added),
		"added_count": added,
	})
}

// ToggleCar adds the car to the wishlist, or removes it if already
// present.
func (h *WishlistHandler) ToggleCar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var car models.Car
	if err := h.DB.Where("id = ?", c.Param("id")).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	wishlist, err := getOrCreateWishlist(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	var existing []models.Car
	if err := h.DB.Model(&wishlist).Where("id = ?", car.ID).
		Association("Cars").Find(&existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	if len(existing) > 0 {
		if err := h.DB.Model(&wishlist).Association("Cars").Delete(&car); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist", "in_wishlist": false})
		return
	}

	if err := h.DB.Model(&wishlist).Association("Cars").Append(&car); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to wishlist", "in_wishlist": true})
}

// ToggleAccessory mirrors ToggleCar for accessories.
func (h *WishlistHandler) ToggleAccessory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var accessory models.Accessory
	if err := h.DB.Where("id = ?", c.Param("id")).First(&accessory).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accessory not found"})
		return
	}

	wishlist, err := getOrCreateWishlist(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	var existing []models.Accessory
	if err := h.DB.Model(&wishlist).Where("id = ?", accessory.ID).
		Association("Accessories").Find(&existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	if len(existing) > 0 {
		if err := h.DB.Model(&wishlist).Association("Accessories").Delete(&accessory); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist", "in_wishlist": false})
		return
	}

	if err := h.DB.Model(&wishlist).Association("Accessories").Append(&accessory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to wishlist", "in_wishlist": true})
}
