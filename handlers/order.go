package handlers

import (
	"fmt"
	"net/http"

	"carstor-backend/models"
	"carstor-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

// GetOrders lists the caller's order history, accessory orders and car
// orders side by side. Admins see everything.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, _ := c.Get("user_role")

	ordersQuery := h.DB.Preload("Items").Preload("Items.Accessory").Order("created_at DESC")
	carOrdersQuery := h.DB.Preload("Car").Order("created_at DESC")
	if role != "admin" {
		ordersQuery = ordersQuery.Where("user_id = ?", userID)
		carOrdersQuery = carOrdersQuery.Where("user_id = ?", userID)
	}

	var orders []models.Order
	if err := ordersQuery.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	var carOrders []models.CarOrder
	if err := carOrdersQuery.Find(&carOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch car orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "car_orders": carOrders})
}

// GetOrder returns a single accessory order. Orders belonging to other
// users read as not found rather than forbidden.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, _ := c.Get("user_role")

	query := h.DB.Preload("Items").Preload("Items.Accessory").Where("id = ?", c.Param("id"))
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// sellerHasItems reports whether any item in the order belongs to the
// given seller's accessories.
func sellerHasItems(db *gorm.DB, orderID, sellerID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN accessories ON accessories.id = order_items.accessory_id").
		Where("order_items.order_id = ? AND accessories.seller_id = ?", orderID, sellerID).
		Count(&count).Error
	return count > 0, err
}

// setOrderStatus runs the seller-side approve/decline flow for an
// accessory order. Callers without items in the order are bounced back
// to the dashboard with the order untouched.
func (h *OrderHandler) setOrderStatus(c *gin.Context, newStatus models.OrderStatus) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var order models.Order
	if err := h.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	hasItems, err := sellerHasItems(h.DB, order.ID, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify order access"})
		return
	}
	if !hasItems {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	if !models.IsValidTransition(order.Status, newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	var message string
	if newStatus == models.OrderStatusApproved {
		message = fmt.Sprintf("Your accessory order #%s has been approved by the seller!", order.ID)
	} else {
		message = fmt.Sprintf("Your accessory order #%s has been declined.", order.ID)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return err
		}
		return notify(tx, order.UserID, message)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	utils.SendOrderStatusUpdate(order.Email, order.FullName, order.ID.String(), string(newStatus))

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order %s", newStatus),
		"order":   order,
	})
}

func (h *OrderHandler) ApproveOrder(c *gin.Context) {
	h.setOrderStatus(c, models.OrderStatusApproved)
}

func (h *OrderHandler) DeclineOrder(c *gin.Context) {
	h.setOrderStatus(c, models.OrderStatusDeclined)
}

// setCarOrderStatus is the car-order counterpart: only the seller of
// the ordered car may approve or decline.
func (h *OrderHandler) setCarOrderStatus(c *gin.Context, newStatus models.OrderStatus) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var order models.CarOrder
	if err := h.DB.Preload("Car").Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Car.SellerID != uid {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	if !models.IsValidTransition(order.Status, newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	var message string
	if newStatus == models.OrderStatusApproved {
		message = fmt.Sprintf("Your order for '%s' has been approved! Please contact the seller to proceed.", order.Car.Title)
	} else {
		message = fmt.Sprintf("We're sorry, your order for '%s' has been declined.", order.Car.Title)
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return err
		}
		return notify(tx, order.UserID, message)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	utils.SendOrderStatusUpdate(order.Email, order.FullName, order.ID.String(), string(newStatus))

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order %s", newStatus),
		"order":   order,
	})
}

func (h *OrderHandler) ApproveCarOrder(c *gin.Context) {
	h.setCarOrderStatus(c, models.OrderStatusApproved)
}

func (h *OrderHandler) DeclineCarOrder(c *gin.Context) {
	h.setCarOrderStatus(c, models.OrderStatusDeclined)
}

// GetDashboard lists incoming orders for the caller as a seller: car
// orders for their cars, and accessory orders containing at least one
// of their accessories.
func (h *OrderHandler) GetDashboard(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var carOrders []models.CarOrder
	if err := h.DB.Preload("Car").
		Joins("JOIN cars ON cars.id = car_orders.car_id").
		Where("cars.seller_id = ?", userID).
		Order("car_orders.created_at DESC").
		Find(&carOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch car orders"})
		return
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").Preload("Items.Accessory").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN accessories ON accessories.id = order_items.accessory_id").
		Where("accessories.seller_id = ?", userID).
		Group("orders.id").
		Order("MAX(orders.created_at) DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"car_orders":       carOrders,
		"accessory_orders": orders,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus is the admin override. Unlike the seller flow it
// may set any known status, including completed and cancelled.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	status := models.OrderStatus(req.Status)
	if !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if c.Query("type") == "car" {
		var order models.CarOrder
		if err := h.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err := h.DB.Model(&order).Update("status", status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err := h.DB.Model(&order).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
