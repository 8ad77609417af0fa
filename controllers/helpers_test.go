package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resto-live/models"
	"resto-live/realtime"
	"resto-live/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// memSubscriber collects broadcast frames so handler tests can assert
// on fan-out without a websocket.
type memSubscriber struct {
	frames []realtime.Message
}

func (m *memSubscriber) ID() string { return "test" }

func (m *memSubscriber) Deliver(frame []byte) bool {
	var msg realtime.Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return false
	}
	m.frames = append(m.frames, msg)
	return true
}

func newTestHub() (*realtime.Hub, *memSubscriber) {
	hub := realtime.NewHub()
	sub := &memSubscriber{}
	hub.Register(sub)
	return hub, sub
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
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
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}
