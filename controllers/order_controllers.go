package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resto-live/models"
	"resto-live/realtime"
	"resto-live/utils"
)

type OrderController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewOrderController(db *gorm.DB, hub *realtime.Hub) *OrderController {
	return &OrderController{DB: db, Hub: hub}
}

type orderItemReq struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"qty"`
	Note     string   `json:"note"`
}

type createOrderReq struct {
	TableID *int           `json:"table_id"`
	Items   []orderItemReq `json:"items"`
}

// validate checks every creation constraint before anything touches
// the store. A client-supplied total is ignored; the server recomputes.
func (r *createOrderReq) validate() error {
	if r.TableID == nil {
		return errors.New("table_id is required and must be an integer")
	}
	if len(r.Items) == 0 {
		return errors.New("order must contain at least one item")
	}
	for i, item := range r.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if item.Price == nil || *item.Price < 0 {
			return fmt.Errorf("item %d: price is required and must be >= 0", i)
		}
		if item.Quantity == nil || *item.Quantity < 1 {
			return fmt.Errorf("item %d: qty is required and must be >= 1", i)
		}
		if utf8.RuneCountInString(item.Note) > 100 {
			return fmt.Errorf("item %d: note exceeds 100 characters", i)
		}
	}
	return nil
}

// CreateOrder -> customer submits a new order for a table.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body createOrderReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	order := models.Order{
		TableID:   *body.TableID,
		Status:    models.StatusPending,
		Paid:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var total float64
	for _, item := range body.Items {
		total += *item.Price * float64(*item.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			Name:      item.Name,
			Quantity:  *item.Quantity,
			Price:     *item.Price,
			Note:      item.Note,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	order.Total = total

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}

	// Commit first, then best-effort notify.
	oc.Hub.Publish(realtime.EventOrderCreated, order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> list orders oldest first, optionally filtered by status.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Order("created_at asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of a single order.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
			return
		}
		utils.RespondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff advances an order one step through
// pending -> cooking -> ready -> completed.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown status %q", body.Status))
		return
	}

	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
			return
		}
		utils.RespondStoreError(c, err)
		return
	}

	if !models.CanTransition(order.Status, body.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot move order from %q to %q", order.Status, body.Status))
		return
	}

	order.Status = body.Status
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}

	oc.Hub.Publish(realtime.EventOrderUpdated, order)

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// MarkOrderPaid -> cashier flags the order as settled.
func (oc *OrderController) MarkOrderPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
			return
		}
		utils.RespondStoreError(c, err)
		return
	}

	order.Paid = true
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}

	oc.Hub.Publish(realtime.EventPaymentUpdated, gin.H{
		"order_id": order.ID,
		"status":   "paid",
	})

	utils.RespondJSON(c, http.StatusOK, "Order paid", order)
}
