package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"carstor-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestProcessCheckoutEmptyCart(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	_, token := seedTestUser(db, "empty@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", nil, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["error"] != "Your cart is empty" {
		t.Errorf("unexpected error message: %v", resp["error"])
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no orders, got %d", count)
	}
}

func TestProcessCheckoutMultiSellerFanOut(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "fanout@test.com", "customer")
	sellerA, _ := seedTestUser(db, "sellera@test.com", "seller")
	sellerB, _ := seedTestUser(db, "sellerb@test.com", "seller")

	accA := seedAccessory(db, "Alloy Wheels", &sellerA.ID, 10.00)
	accB := seedAccessory(db, "Mud Flaps", &sellerB.ID, 5.00)

	cart := seedCartWithItem(db, buyer.ID, accA.ID, 2)
	db.Create(&models.CartItem{ID: uuid.New(), CartID: cart.ID, AccessoryID: accB.ID, Quantity: 1})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", map[string]string{
		"phone": "0123456", "address": "2 Buyer Road", "city": "Buyerton",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.Preload("Items").Where("user_id = ?", buyer.ID).First(&order).Error; err != nil {
		t.Fatalf("expected order to exist: %v", err)
	}

	if order.TotalPrice != 25.00 {
		t.Errorf("expected total 25.00, got %v", order.TotalPrice)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 order items, got %d", len(order.Items))
	}

	// Cart is emptied by the same transaction.
	var remaining int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected cart emptied, %d items remain", remaining)
	}

	// One notification per distinct seller.
	for _, seller := range []models.User{sellerA, sellerB} {
		var count int64
		db.Model(&models.Notification{}).Where("user_id = ?", seller.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 notification for %s, got %d", seller.Email, count)
		}
	}

	var note models.Notification
	db.Where("user_id = ?", sellerA.ID).First(&note)
	if note.Message != "You have received a new order for accessories Alloy Wheels!" {
		t.Errorf("unexpected notification message: %q", note.Message)
	}
}

func TestProcessCheckoutSameSellerSingleNotification(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "samesell@test.com", "customer")
	seller, _ := seedTestUser(db, "samesellseller@test.com", "seller")

	accA := seedAccessory(db, "Spoiler", &seller.ID, 40.00)
	accB := seedAccessory(db, "Exhaust Tip", &seller.ID, 15.00)

	cart := seedCartWithItem(db, buyer.ID, accA.ID, 1)
	db.Create(&models.CartItem{ID: uuid.New(), CartID: cart.ID, AccessoryID: accB.ID, Quantity: 1})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", nil, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var notes []models.Notification
	db.Where("user_id = ?", seller.ID).Find(&notes)
	if len(notes) != 1 {
		t.Fatalf("expected a single grouped notification, got %d", len(notes))
	}
	if notes[0].Message != "You have received a new order for accessories Spoiler, Exhaust Tip!" {
		t.Errorf("unexpected grouped message: %q", notes[0].Message)
	}
}

func TestProcessCheckoutSkipsSellerlessAccessories(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "noseller@test.com", "customer")
	acc := seedAccessory(db, "Generic Air Freshener", nil, 3.00)
	seedCartWithItem(db, buyer.ID, acc.ID, 2)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", nil, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no notifications for sellerless accessories, got %d", count)
	}
}

func TestProcessCheckoutFreezesPrices(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "freeze@test.com", "customer")
	acc := seedAccessory(db, "Tow Bar", nil, 80.00)
	seedCartWithItem(db, buyer.ID, acc.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", nil, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	// A later price change must not touch the placed order.
	db.Model(&models.Accessory{}).Where("id = ?", acc.ID).Update("price", 120.00)

	var order models.Order
	db.Preload("Items").Where("user_id = ?", buyer.ID).First(&order)

	if order.TotalPrice != 80.00 {
		t.Errorf("expected frozen total 80.00, got %v", order.TotalPrice)
	}
	if len(order.Items) != 1 || order.Items[0].Price != 80.00 {
		t.Errorf("expected frozen item price 80.00, got %+v", order.Items)
	}
	if got := order.Items[0].LineTotal(); got != 80.00 {
		t.Errorf("expected line total from frozen price, got %v", got)
	}
}

func TestProcessCheckoutShippingFallbacks(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "fallback@test.com", "customer")
	db.Model(&buyer).Updates(map[string]interface{}{"name": "Dana Fallback", "city": "Profileville"})

	acc := seedAccessory(db, "Phone Mount", nil, 12.00)
	seedCartWithItem(db, buyer.ID, acc.ID, 1)

	// Form supplies only the address; name and city come from the
	// profile, phone gets the empty default, email falls back too.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", map[string]string{
		"address": "9 Form Street",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	db.Where("user_id = ?", buyer.ID).First(&order)

	if order.FullName != "Dana Fallback" {
		t.Errorf("expected profile name fallback, got %q", order.FullName)
	}
	if order.Email != "fallback@test.com" {
		t.Errorf("expected profile email fallback, got %q", order.Email)
	}
	if order.Address != "9 Form Street" {
		t.Errorf("expected form address to win, got %q", order.Address)
	}
	if order.City != "Profileville" {
		t.Errorf("expected profile city fallback, got %q", order.City)
	}
	if order.Phone != "" {
		t.Errorf("expected empty phone default, got %q", order.Phone)
	}
}

func TestProcessCheckoutPlaceholders(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "placeholder@test.com", "customer")
	acc := seedAccessory(db, "Cup Holder", nil, 6.00)
	seedCartWithItem(db, buyer.ID, acc.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", nil, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	db.Where("user_id = ?", buyer.ID).First(&order)

	if order.Address != "Not provided" || order.City != "Not provided" {
		t.Errorf("expected placeholder address/city, got %q / %q", order.Address, order.City)
	}
}

func TestProcessCheckoutRollsBackOnFailure(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "rollback@test.com", "customer")
	seller, _ := seedTestUser(db, "rollbackseller@test.com", "seller")
	acc := seedAccessory(db, "Brake Kit", &seller.ID, 200.00)
	cart := seedCartWithItem(db, buyer.ID, acc.ID, 1)

	// Force the order-item insert to fail mid-transaction.
	err := db.Callback().Create().Before("gorm:create").Register("force_order_item_failure", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			tx.AddError(errors.New("simulated insert failure"))
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}
	defer db.Callback().Create().Remove("force_order_item_failure")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/checkout/process", nil, token))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", w.Code, w.Body.String())
	}

	// Everything rolled back: no order, no notifications, cart intact.
	var orders, notes, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.Notification{}).Count(&notes)
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&items)

	if orders != 0 {
		t.Errorf("expected no orders after rollback, got %d", orders)
	}
	if notes != 0 {
		t.Errorf("expected no notifications after rollback, got %d", notes)
	}
	if items != 1 {
		t.Errorf("expected cart intact after rollback, got %d items", items)
	}
}

func TestCarCheckout(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "carbuy@test.com", "customer")
	seller, _ := seedTestUser(db, "carsell@test.com", "seller")
	price := 15000.00
	car := seedCar(db, "2018 Hatchback", seller.ID, &price)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", fmt.Sprintf("/api/cars/%s/checkout", car.ID), map[string]string{
		"full_name": "Car Buyer", "phone": "0777", "address": "3 Car Street", "city": "Cartown",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.CarOrder
	if err := db.Where("user_id = ?", buyer.ID).First(&order).Error; err != nil {
		t.Fatalf("expected car order to exist: %v", err)
	}
	if order.TotalPrice != 15000.00 {
		t.Errorf("expected total 15000.00, got %v", order.TotalPrice)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}

	var note models.Notification
	if err := db.Where("user_id = ?", seller.ID).First(&note).Error; err != nil {
		t.Fatalf("expected seller notification: %v", err)
	}
	if note.Message != "You have received a new purchase order for your car: 2018 Hatchback" {
		t.Errorf("unexpected notification message: %q", note.Message)
	}
}

func TestCarCheckoutUnpricedCar(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, token := seedTestUser(db, "freecar@test.com", "customer")
	seller, _ := seedTestUser(db, "freecarsell@test.com", "seller")
	car := seedCar(db, "Project Car", seller.ID, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", fmt.Sprintf("/api/cars/%s/checkout", car.ID), nil, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var order models.CarOrder
	db.Where("user_id = ?", buyer.ID).First(&order)
	if order.TotalPrice != 0 {
		t.Errorf("expected total 0 for unpriced car, got %v", order.TotalPrice)
	}
}

func TestOrderSuccessScopedToBuyer(t *testing.T) {
	db := freshDB()
	router := setupCheckoutRouter(db)

	buyer, _ := seedTestUser(db, "successbuyer@test.com", "customer")
	_, otherToken := seedTestUser(db, "successother@test.com", "customer")
	acc := seedAccessory(db, "Success Acc", nil, 10.00)
	order := seedOrder(db, buyer.ID, acc.ID, 10.00, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/orders/success?order_id="+order.ID.String(), nil, otherToken))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for another buyer's order, got %d: %s", w.Code, w.Body.String())
	}
}
