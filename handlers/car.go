package handlers

import (
	"net/http"
	"strconv"

	"carstor-backend/models"
	"carstor-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarHandler struct {
	DB *gorm.DB
}

type carRequest struct {
	Title        string   `json:"title" binding:"required"`
	CategoryID   string   `json:"category_id"`
	ImageURL     string   `json:"image_url"`
	Price        *float64 `json:"price"`
	OldPrice     *float64 `json:"old_price"`
	Description  string   `json:"description"`
	ModelYear    int      `json:"model_year" binding:"required,gte=1900"`
	Mileage      *int     `json:"mileage"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission"`
	Engine       string   `json:"engine"`
	Condition    string   `json:"condition"`

	AirConditioner bool `json:"air_conditioner"`
	PowerWindows   bool `json:"power_windows"`
	PowerSteering  bool `json:"power_steering"`
	CentralLocking bool `json:"central_locking"`
	ABS            bool `json:"abs"`
	Airbags        bool `json:"airbags"`
	LeatherSeats   bool `json:"leather_seats"`
}

// GetCars lists the catalog with optional category, model year and
// condition filters. Unknown filter values simply match nothing.
func (h *CarHandler) GetCars(c *gin.Context) {
	query := h.DB.Preload("Category").Preload("Seller").Order("created_at DESC")

	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if year := c.Query("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			query = query.Where("model_year = ?", y)
		}
	}
	if condition := c.Query("condition"); condition != "" {
		query = query.Where("condition = ?", condition)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var cars []models.Car
	if err := query.Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cars": cars, "count": len(cars)})
}

func (h *CarHandler) GetCar(c *gin.Context) {
	var car models.Car
	if err := h.DB.Preload("Category").Preload("Seller").
		Where("id = ?", c.Param("id")).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var reviews []models.CarReview
	h.DB.Preload("User").Where("car_id = ?", car.ID).
		Order("created_at DESC").Find(&reviews)

	c.JSON(http.StatusOK, gin.H{"car": car, "reviews": reviews})
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	uid := userID.(uuid.UUID)

	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	condition := models.CarConditionUsed
	if req.Condition == string(models.CarConditionNew) {
		condition = models.CarConditionNew
	}

	car := models.Car{
		SellerID:       uid,
		Title:          req.Title,
		ImageURL:       req.ImageURL,
		Price:          req.Price,
		OldPrice:       req.OldPrice,
		Description:    req.Description,
		ModelYear:      req.ModelYear,
		Mileage:        req.Mileage,
		FuelType:       req.FuelType,
		Transmission:   req.Transmission,
		Engine:         req.Engine,
		Condition:      condition,
		AirConditioner: req.AirConditioner,
		PowerWindows:   req.PowerWindows,
		PowerSteering:  req.PowerSteering,
		CentralLocking: req.CentralLocking,
		ABS:            req.ABS,
		Airbags:        req.Airbags,
		LeatherSeats:   req.LeatherSeats,
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		car.CategoryID = &categoryID
	}

	if err := h.DB.Create(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create car"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Car listed successfully", "car": car})
}

// UpdateCar edits a listing. Sellers may only touch their own cars;
// someone else's listing reads as not found.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var car models.Car
	if err := h.DB.Where("id = ? AND seller_id = ?", c.Param("id"), userID).
		First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	car.Title = req.Title
	car.ImageURL = req.ImageURL
	car.Price = req.Price
	car.OldPrice = req.OldPrice
	car.Description = req.Description
	car.ModelYear = req.ModelYear
	car.Mileage = req.Mileage
	car.FuelType = req.FuelType
	car.Transmission = req.Transmission
	car.Engine = req.Engine
	car.AirConditioner = req.AirConditioner
	car.PowerWindows = req.PowerWindows
	car.PowerSteering = req.PowerSteering
	car.CentralLocking = req.CentralLocking
	car.ABS = req.ABS
	car.Airbags = req.Airbags
	car.LeatherSeats = req.LeatherSeats

	if req.Condition == string(models.CarConditionNew) || req.Condition == string(models.CarConditionUsed) {
		car.Condition = models.CarCondition(req.Condition)
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		car.CategoryID = &categoryID
	}

	if err := h.DB.Save(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car updated successfully", "car": car})
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result := h.DB.Where("id = ? AND seller_id = ?", c.Param("id"), userID).
		Delete(&models.Car{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}

// CreateInquiry records a question about a listing and notifies the
// seller. Works for anonymous visitors too; logged-in callers get the
// inquiry attached to their account.
func (h *CarHandler) CreateInquiry(c *gin.Context) {
	var car models.Car
	if err := h.DB.Where("id = ?", c.Param("id")).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	inquiry := models.CarInquiry{
		CarID:   car.ID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if userID, exists := c.Get("user_id"); exists {
		uid := userID.(uuid.UUID)
		inquiry.UserID = &uid
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inquiry).Error; err != nil {
			return err
		}
		return notify(tx, car.SellerID, "You have a new inquiry about your car: "+car.Title)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Inquiry submitted successfully", "inquiry": inquiry})
}

func (h *CarHandler) GetInquiries(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var car models.Car
	if err := h.DB.Where("id = ? AND seller_id = ?", c.Param("id"), userID).
		First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var inquiries []models.CarInquiry
	if err := h.DB.Where("car_id = ?", car.ID).Order("created_at DESC").
		Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "count": len(inquiries)})
}

func (h *CarHandler) CreateReview(c *gin.Context) {
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

	var req struct {
		Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	review := models.CarReview{
		CarID:   car.ID,
		UserID:  uid,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
}

func (h *CarHandler) GetReviews(c *gin.Context) {
	var reviews []models.CarReview
	if err := h.DB.Preload("User").Where("car_id = ?", c.Param("id")).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}
