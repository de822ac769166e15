package checkout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tiffin/internal/auth"
	"tiffin/internal/delivery"
	"tiffin/internal/menu"
	"tiffin/internal/middleware"
	"tiffin/internal/order"
	"tiffin/internal/schedule"

	"github.com/gin-gonic/gin"
)

func testCatalog() *menu.Catalog {
	return &menu.Catalog{
		Categories: []menu.Category{{ID: "mains", Name: "Mains"}},
		Items: []menu.Item{
			{
				ID:         "dal-1",
				CategoryID: "mains",
				Name:       "Dal Tadka",
				BasePrice:  700,
				Options: []menu.Option{
					{
						ID:       "spice",
						Name:     "Spice Level",
						Type:     menu.SingleChoice,
						Required: true,
						Choices: []menu.Choice{
							{ID: "mild", Name: "Mild"},
							{ID: "hot", Name: "Hot", PriceDelta: 0},
						},
					},
				},
			},
		},
	}
}

func allDayHours() map[schedule.Mode]schedule.TodayHours {
	hours := schedule.TodayHours{
		IsOpen:  true,
		Periods: []schedule.OpeningPeriod{{OpenMinute: 0, CloseMinute: 1440}},
	}
	return map[schedule.Mode]schedule.TodayHours{
		schedule.ModeCollection: hours,
		schedule.ModeDelivery:   hours,
	}
}

func setupCheckoutTest(t *testing.T) (*gin.Engine, *order.InMemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	menuService := menu.NewService(menu.NewInMemoryRepository(testCatalog()))

	scheduleProvider := schedule.NewInMemoryProvider(allDayHours(), schedule.LeadTimes{
		CollectionLeadMinutes: 15,
		DeliveryLeadMinutes:   45,
	})
	scheduleService := schedule.NewService(scheduleProvider, scheduleProvider, time.UTC)

	quotes := delivery.NewInMemoryProvider(delivery.Zone{Prefix: "LS1", Fee: 250})

	orderRepo := order.NewInMemoryRepository()
	orderService := order.NewService(orderRepo, nil)

	authService := auth.NewService(auth.NewInMemoryCustomerRepository())

	handler := NewHandler(
		NewStore(), menuService, scheduleService, quotes, orderService, authService,
	)

	r := gin.New()
	sessions := r.Group("/checkout/sessions")
	sessions.Use(middleware.OptionalAuth())
	{
		sessions.POST("", handler.CreateSession)
		sessions.GET("/:id", handler.GetSession)
		sessions.POST("/:id/items", handler.AddItem)
		sessions.PATCH("/:id/items/:index", handler.SetItemQuantity)
		sessions.DELETE("/:id/items/:index", handler.RemoveItem)
		sessions.PUT("/:id/mode", handler.SetMode)
		sessions.PUT("/:id/slot", handler.SetSlot)
		sessions.PUT("/:id/account", handler.SetAccountType)
		sessions.PUT("/:id/contact", handler.UpdateContact)
		sessions.POST("/:id/quote", handler.RequestQuote)
		sessions.POST("/:id/submit", handler.Submit)
	}
	return r, orderRepo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/checkout/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d", w.Code)
	}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.SessionID
}

func TestGuestDeliveryFlow(t *testing.T) {
	r, orders := setupCheckoutTest(t)
	id := createSession(t, r)
	base := "/checkout/sessions/" + id

	w := doJSON(t, r, http.MethodPost, base+"/items", gin.H{
		"item_id":  "dal-1",
		"quantity": 2,
		"selections": gin.H{
			"spice": gin.H{"choice": "hot"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, base+"/mode", gin.H{"mode": "delivery"})
	if w.Code != http.StatusOK {
		t.Fatalf("set mode: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, base+"/contact", gin.H{
		"first_name": "Sam",
		"email":      "sam@example.com",
		"phone":      "07700900123",
		"postcode":   "LS1 4DY",
		"address":    "2 Mill Lane",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("contact: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, base+"/quote", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, base+"/submit", gin.H{
		"payment_method": "card",
		"terms_accepted": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(orders.Orders) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(orders.Orders))
	}
	for _, payload := range orders.Orders {
		if payload.Total != 1650 || payload.DeliveryFee != 250 {
			t.Fatalf("wrong totals: %+v", payload)
		}
		if payload.Mode != "delivery" || payload.AccountType != "guest" {
			t.Fatalf("wrong order attributes: %+v", payload)
		}
	}
}

func TestSubmitWithoutQuoteIsBlocked(t *testing.T) {
	r, _ := setupCheckoutTest(t)
	id := createSession(t, r)
	base := "/checkout/sessions/" + id

	doJSON(t, r, http.MethodPost, base+"/items", gin.H{
		"item_id":    "dal-1",
		"quantity":   1,
		"selections": gin.H{"spice": gin.H{"choice": "mild"}},
	})
	doJSON(t, r, http.MethodPut, base+"/mode", gin.H{"mode": "delivery"})
	doJSON(t, r, http.MethodPut, base+"/contact", gin.H{
		"first_name": "Sam",
		"email":      "sam@example.com",
		"phone":      "07700900123",
		"postcode":   "LS1 4DY",
		"address":    "2 Mill Lane",
	})

	w := doJSON(t, r, http.MethodPost, base+"/submit", gin.H{
		"payment_method": "card",
		"terms_accepted": true,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddItemMissingRequiredOption(t *testing.T) {
	r, _ := setupCheckoutTest(t)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/checkout/sessions/%s/items", id), gin.H{
		"item_id":  "dal-1",
		"quantity": 1,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestModeChangeSnapsSlot(t *testing.T) {
	r, _ := setupCheckoutTest(t)
	id := createSession(t, r)
	base := "/checkout/sessions/" + id

	w := doJSON(t, r, http.MethodPut, base+"/mode", gin.H{"mode": "delivery"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Slot  string   `json:"slot"`
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Slots) == 0 || resp.Slots[0] != schedule.AsapLabel {
		t.Fatalf("slot list should start with ASAP, got %v", resp.Slots)
	}
	if resp.Slot != schedule.AsapLabel {
		t.Fatalf("default slot should snap to ASAP, got %q", resp.Slot)
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	r, _ := setupCheckoutTest(t)

	w := doJSON(t, r, http.MethodGet, "/checkout/sessions/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
