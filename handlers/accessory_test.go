package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"carstor-backend/models"
)

func TestGetAccessoriesCategoryFilter(t *testing.T) {
	db := freshDB()
	router := setupAccessoryRouter(db)

	cat := seedCategory(db, "Interior")
	other := seedCategory(db, "Exterior")

	accA := seedAccessory(db, "Steering Cover", nil, 9.99)
	db.Model(&accA).Update("category_id", cat.ID)
	accB := seedAccessory(db, "Mud Guard", nil, 14.99)
	db.Model(&accB).Update("category_id", other.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/accessories?category="+cat.ID.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	accessories, _ := resp["accessories"].([]interface{})
	if len(accessories) != 1 {
		t.Fatalf("expected 1 accessory in category, got %d", len(accessories))
	}
	first, _ := accessories[0].(map[string]interface{})
	if first["title"] != "Steering Cover" {
		t.Errorf("unexpected accessory: %v", first["title"])
	}
}

func TestCreateAccessorySetsSeller(t *testing.T) {
	db := freshDB()
	router := setupAccessoryRouter(db)

	seller, token := seedTestUser(db, "accseller@test.com", "seller")

	body := map[string]interface{}{
		"title": "Boot Liner",
		"price": 35.50,
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/accessories", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var acc models.Accessory
	if err := db.Where("title = ?", "Boot Liner").First(&acc).Error; err != nil {
		t.Fatalf("expected accessory to exist: %v", err)
	}
	if acc.SellerID == nil || *acc.SellerID != seller.ID {
		t.Errorf("expected seller id set to the creator")
	}
}

func TestUpdateAccessoryForeignListingNotFound(t *testing.T) {
	db := freshDB()
	router := setupAccessoryRouter(db)

	seller, _ := seedTestUser(db, "accown@test.com", "seller")
	_, otherToken := seedTestUser(db, "accother@test.com", "seller")
	acc := seedAccessory(db, "Owned Acc", &seller.ID, 20.00)

	body := map[string]interface{}{"title": "Stolen", "price": 1.00}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", fmt.Sprintf("/api/accessories/%s", acc.ID), body, otherToken))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteAccessory(t *testing.T) {
	db := freshDB()
	router := setupAccessoryRouter(db)

	seller, token := seedTestUser(db, "accdel@test.com", "seller")
	acc := seedAccessory(db, "Delete Me", &seller.ID, 5.00)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/accessories/%s", acc.ID), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Accessory{}).Where("id = ?", acc.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected accessory soft-deleted out of default scope")
	}
}
