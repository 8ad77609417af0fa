package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resto-live/models"
	"resto-live/realtime"
	"resto-live/utils"
)

type MenuController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewMenuController(db *gorm.DB, hub *realtime.Hub) *MenuController {
	return &MenuController{DB: db, Hub: hub}
}

// GetMenu -> customer-facing catalog, available items only.
func (mc *MenuController) GetMenu(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Where("available = ?", true).Order("created_at asc").Find(&items).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

// GetAllMenu -> staff view, includes unavailable items.
func (mc *MenuController) GetAllMenu(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Order("created_at asc").Find(&items).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

type menuItemReq struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

func (r *menuItemReq) validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Price == nil || *r.Price < 0 {
		return errors.New("price is required and must be >= 0")
	}
	return nil
}

// CreateMenuItem -> add a dish to the catalog, available by default.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var body menuItemReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	item := models.MenuItem{
		Name:        body.Name,
		Price:       *body.Price,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}

	// Consumers re-fetch the catalog on this signal, so no payload.
	mc.Hub.Publish(realtime.EventMenuUpdated, nil)

	utils.RespondJSON(c, http.StatusCreated, "Menu created", item)
}

// SetAvailability -> toggle a single item in or out of the public menu.
func (mc *MenuController) SetAvailability(c *gin.Context) {
	var body struct {
		Available *bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Available == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("available is required"))
		return
	}

	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrMenuNotFound)
			return
		}
		utils.RespondStoreError(c, err)
		return
	}

	item.Available = *body.Available
	item.UpdatedAt = time.Now()
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}

	mc.Hub.Publish(realtime.EventMenuUpdated, nil)

	utils.RespondJSON(c, http.StatusOK, "Menu updated", item)
}

// UpdateMenuItem -> full edit of name/price/description/image.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var body menuItemReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrMenuNotFound)
			return
		}
		utils.RespondStoreError(c, err)
		return
	}

	item.Name = body.Name
	item.Price = *body.Price
	item.Description = body.Description
	item.ImageURL = body.ImageURL
	item.UpdatedAt = time.Now()
	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondStoreError(c, err)
		return
	}

	mc.Hub.Publish(realtime.EventMenuUpdated, nil)

	utils.RespondJSON(c, http.StatusOK, "Menu updated", item)
}
