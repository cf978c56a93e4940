package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"carstor-backend/models"
	"carstor-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	DB *gorm.DB
}

// shippingRequest carries the checkout form. Every field is optional:
// missing values fall back to the buyer's profile, then to placeholders.
// Contact completion is a later concern, never a validation failure.
type shippingRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

func resolveField(formValue, profileValue, placeholder string) string {
	if strings.TrimSpace(formValue) != "" {
		return formValue
	}
	if strings.TrimSpace(profileValue) != "" {
		return profileValue
	}
	return placeholder
}

// ProcessCheckout converts the caller's cart into an immutable order.
// The whole algorithm runs in one transaction: freeze the total, create
// the order and its items with prices copied from the catalog at this
// instant, clear the cart, and notify each distinct seller once. Any
// failure rolls everything back and leaves the cart untouched.
func (h *CheckoutHandler) ProcessCheckout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	cart, err := getOrCreateCart(h.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	var cartItems []models.CartItem
	if err := h.DB.Preload("Accessory").Where("cart_id = ?", cart.ID).
		Order("created_at").Find(&cartItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
		return
	}

	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	order := models.Order{
		UserID:   uid,
		FullName: resolveField(req.FullName, user.Name, ""),
		Email:    resolveField(req.Email, user.Email, ""),
		Phone:    resolveField(req.Phone, user.Phone, ""),
		Address:  resolveField(req.Address, user.Address, "Not provided"),
		City:     resolveField(req.City, user.City, "Not provided"),
		Status:   models.OrderStatusPending,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// Freeze the total once. From here on the order's financial
		// fields are never recomputed from catalog state.
		var total float64
		for _, item := range cartItems {
			total += item.LineTotal()
		}
		order.TotalPrice = total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		sellerTitles := make(map[uuid.UUID][]string)
		var sellerOrder []uuid.UUID

		for _, item := range cartItems {
			orderItem := models.OrderItem{
				OrderID:     order.ID,
				AccessoryID: item.AccessoryID,
				Quantity:    item.Quantity,
				Price:       item.Accessory.Price,
			}
			if err := tx.Omit("Accessory", "Order").Create(&orderItem).Error; err != nil {
				return err
			}

			// Accessories without a seller are skipped, not an error.
			if item.Accessory.SellerID != nil {
				sellerID := *item.Accessory.SellerID
				if _, seen := sellerTitles[sellerID]; !seen {
					sellerOrder = append(sellerOrder, sellerID)
				}
				sellerTitles[sellerID] = append(sellerTitles[sellerID], item.Accessory.Title)
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		// One notification per distinct seller, not one per item.
		for _, sellerID := range sellerOrder {
			titles := strings.Join(sellerTitles[sellerID], ", ")
			msg := fmt.Sprintf("You have received a new order for accessories %s!", titles)
			if err := notify(tx, sellerID, msg); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	h.DB.Preload("Items").Preload("Items.Accessory").First(&order, "id = ?", order.ID)

	utils.SendOrderConfirmation(order.Email, order.FullName, order.ID.String(), order.TotalPrice)

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Order #%s placed successfully", order.ID),
		"order":    order,
		"redirect": fmt.Sprintf("/order/success/?order_id=%s", order.ID),
	})
}

// CarCheckout is the single-item variant: no cart, one CarOrder created
// directly from the request, priced at the car's listed price or 0.
func (h *CheckoutHandler) CarCheckout(c *gin.Context) {
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

	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	order := models.CarOrder{
		UserID:     uid,
		CarID:      car.ID,
		FullName:   resolveField(req.FullName, user.Name, ""),
		Email:      resolveField(req.Email, user.Email, ""),
		Phone:      resolveField(req.Phone, user.Phone, ""),
		Address:    resolveField(req.Address, user.Address, "Not provided"),
		City:       resolveField(req.City, user.City, "Not provided"),
		TotalPrice: car.CheckoutPrice(),
		Status:     models.OrderStatusPending,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Car", "User").Create(&order).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("You have received a new purchase order for your car: %s", car.Title)
		return notify(tx, car.SellerID, msg)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	h.DB.Preload("Car").First(&order, "id = ?", order.ID)

	utils.SendOrderConfirmation(order.Email, order.FullName, order.ID.String(), order.TotalPrice)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Your order has been placed successfully",
		"order":   order,
	})
}

// OrderSuccess resolves the confirmation view after checkout. Accessory
// orders are tried first, then car orders, both scoped to the buyer.
func (h *CheckoutHandler) OrderSuccess(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").Preload("Items.Accessory").
		Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"order": order})
		return
	}

	var carOrder models.CarOrder
	if err := h.DB.Preload("Car").
		Where("id = ? AND user_id = ?", orderID, userID).First(&carOrder).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"order": carOrder})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
}
