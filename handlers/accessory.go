package handlers

import (
	"net/http"

	"carstor-backend/models"
	"carstor-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessoryHandler struct {
	DB *gorm.DB
}

type accessoryRequest struct {
	Title       string   `json:"title" binding:"required"`
	CategoryID  string   `json:"category_id"`
	ImageURL    string   `json:"image_url"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	OldPrice    *float64 `json:"old_price"`
	Description string   `json:"description"`
}

func (h *AccessoryHandler) GetAccessories(c *gin.Context) {
	query := h.DB.Preload("Category").Order("created_at DESC")

	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var accessories []models.Accessory
	if err := query.Find(&accessories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accessories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessories": accessories, "count": len(accessories)})
}

func (h *AccessoryHandler) GetAccessory(c *gin.Context) {
	var accessory models.Accessory
	if err := h.DB.Preload("Category").Preload("Seller").
		Where("id = ?", c.Param("id")).First(&accessory).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accessory not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessory": accessory})
}

func (h *AccessoryHandler) CreateAccessory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var req accessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	accessory := models.Accessory{
		SellerID:    &uid,
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Description: req.Description,
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		accessory.CategoryID = &categoryID
	}

	if err := h.DB.Create(&accessory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create accessory"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Accessory listed successfully", "accessory": accessory})
}

// UpdateAccessory edits a listing. Price changes here affect open carts
// at read time but never already-placed orders.
func (h *AccessoryHandler) UpdateAccessory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var accessory models.Accessory
	if err := h.DB.Where("id = ? AND seller_id = ?", c.Param("id"), userID).
		First(&accessory).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accessory not found"})
		return
	}

	var req accessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	accessory.Title = req.Title
	accessory.ImageURL = req.ImageURL
	accessory.Price = req.Price
	accessory.OldPrice = req.OldPrice
	accessory.Description = req.Description

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		accessory.CategoryID = &categoryID
	}

	if err := h.DB.Save(&accessory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update accessory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Accessory updated successfully", "accessory": accessory})
}

func (h *AccessoryHandler) DeleteAccessory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result := h.DB.Where("id = ? AND seller_id = ?", c.Param("id"), userID).
		Delete(&models.Accessory{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete accessory"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accessory not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Accessory deleted successfully"})
}
