package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resto-live/auth"
	"resto-live/models"
	"resto-live/realtime"
	"resto-live/router"
	"resto-live/utils"
)

const (
	testCashierToken = "cashier-secret"
	testKitchenToken = "kitchen-secret"
)

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	gate := auth.NewGate(testCashierToken, testKitchenToken)
	return router.SetupRouter(db, realtime.NewHub(), gate), db
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := setupApp(t)
	w := request(t, r, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestOrderLifecycleThroughRoles(t *testing.T) {
	r, _ := setupApp(t)

	// Customer places an order with no credential.
	w := request(t, r, "POST", "/api/orders", "", map[string]interface{}{
		"table_id": 5,
		"items":    []map[string]interface{}{{"name": "Soup", "price": 4.5, "qty": 2}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Anonymous cannot advance it.
	w = request(t, r, "PATCH", "/api/orders/1", "", map[string]interface{}{"status": "cooking"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Kitchen staff can.
	w = request(t, r, "PATCH", "/api/orders/1", testKitchenToken, map[string]interface{}{"status": "cooking"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Cashier can too.
	w = request(t, r, "PATCH", "/api/orders/1", testCashierToken, map[string]interface{}{"status": "ready"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the cashier can settle the bill.
	w = request(t, r, "POST", "/api/orders/1/pay", testKitchenToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = request(t, r, "POST", "/api/orders/1/pay", testCashierToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuEndpointsRequireCashier(t *testing.T) {
	r, db := setupApp(t)

	payload := map[string]interface{}{"name": "Pizza", "price": 12.5}

	for _, token := range []string{"", testKitchenToken, "bogus"} {
		w := request(t, r, "POST", "/api/menu", token, payload)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "token %q", token)
		w = request(t, r, "GET", "/api/menu/all", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "token %q", token)
	}

	// Rejected requests never created anything.
	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w := request(t, r, "POST", "/api/menu", testCashierToken, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestWebsocketReceivesOrderBroadcast(t *testing.T) {
	r, _ := setupApp(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	w := request(t, r, "POST", "/api/orders", "", map[string]interface{}{
		"table_id": 7,
		"items":    []map[string]interface{}{{"name": "Stew", "price": 6.0, "qty": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	assert.NoError(t, err)

	var msg realtime.Message
	assert.NoError(t, json.Unmarshal(frame, &msg))
	assert.Equal(t, realtime.EventOrderCreated, msg.Event)
	order := msg.Data.(map[string]interface{})
	assert.Equal(t, 7.0, order["table_id"])
	assert.Equal(t, 6.0, order["total"])
}
