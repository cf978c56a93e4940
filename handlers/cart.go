package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"carstor-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartHandler struct {
	DB *gorm.DB
}

// getOrCreateCart returns the user's cart, creating it lazily on first
// access. Idempotent; the unique index on user_id keeps it one per user.
func getOrCreateCart(db *gorm.DB, userID uuid.UUID) (models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	return cart, err
}

// addAccessoryToCart increments the (cart, accessory) row by qty,
// creating it when absent. Runs inside the caller's transaction; the
// row lock serializes concurrent adds for the same pair.
func addAccessoryToCart(tx *gorm.DB, cartID, accessoryID uuid.UUID, qty int) (models.CartItem, error) {
	var cartItem models.CartItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND accessory_id = ?", cartID, accessoryID).
		First(&cartItem).Error

	if err == nil {
		cartItem.Quantity += qty
		return cartItem, tx.Save(&cartItem).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return cartItem, err
	}

	cartItem = models.CartItem{
		CartID:      cartID,
		AccessoryID: accessoryID,
		Quantity:    qty,
	}
	return cartItem, tx.Create(&cartItem).Error
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	if err := h.DB.Preload("Accessory").Preload("Accessory.Category").
		Where("cart_id = ?", cart.ID).Find(&cart.Items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":        cart,
		"total_price": cart.TotalPrice(),
	})
}

// AddToCart adds qty of an accessory to the caller's cart. The quantity
// is parsed defensively: missing or non-numeric input falls back to 1
// rather than failing. A repeat add for the same accessory increments
// the existing row; the row lock serializes concurrent adds for the
// same (cart, accessory) pair.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accessoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid accessory id"})
		return
	}

	qtyStr := c.Query("qty")
	if qtyStr == "" {
		qtyStr = c.PostForm("qty")
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		qty = 1
	}

	var accessory models.Accessory
	if err := h.DB.Where("id = ?", accessoryID).First(&accessory).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accessory not found"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	var cartItem models.CartItem
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		cartItem, err = addAccessoryToCart(tx, cart.ID, accessoryID, qty)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	h.DB.Preload("Accessory").First(&cartItem, "id = ?", cartItem.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d x %s added to cart", qty, accessory.Title),
		"item":    cartItem,
	})
}

// UpdateCart applies a bulk quantity update. A quantity above zero sets
// the item, zero or below deletes it. Item IDs that don't parse or that
// belong to another user's cart are silently skipped; the remaining
// entries are still processed.
func (h *CartHandler) UpdateCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Items map[string]int `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	for rawID, qty := range req.Items {
		itemID, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}

		if qty > 0 {
			if err := h.DB.Model(&models.CartItem{}).
				Where("id = ? AND cart_id = ?", itemID, cart.ID).
				Update("quantity", qty).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
				return
			}
		} else {
			if err := h.DB.Where("id = ? AND cart_id = ?", itemID, cart.ID).
				Delete(&models.CartItem{}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping cart updated"})
}

// RemoveFromCart deletes a single item, scoped to the caller's cart.
// Guessing another user's item ID resolves as not found.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	id := c.Param("id")
	result := h.DB.Where("id = ? AND cart_id = ?", id, cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart deletes every item. The cart row itself persists.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := getOrCreateCart(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping cart emptied"})
}
