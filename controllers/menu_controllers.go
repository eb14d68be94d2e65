package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus-canteen/models"
	"campus-canteen/services"
	"campus-canteen/utils"
)

type MenuController struct {
	State *services.State
	Log   *logrus.Logger
}

func NewMenuController(state *services.State, log *logrus.Logger) *MenuController {
	return &MenuController{State: state, Log: log}
}

// GetCategories returns every category in display order.
func (mc *MenuController) GetCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of categories", mc.State.Categories())
}

// GetMenu returns the customer-facing menu: available items only.
func (mc *MenuController) GetMenu(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of menu items", mc.State.AvailableItems())
}

// GetFullMenu is the admin view: every item, available or not.
func (mc *MenuController) GetFullMenu(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Full menu", mc.State.MenuItems())
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	item, ok := mc.State.MenuItem(c.Param("id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.State.AddMenuItem(c.Request.Context(), item); err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateID):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}

	created, _ := mc.State.MenuItem(item.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", created)
}

type menuItemUpdateRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       *int            `json:"price"`
	CategoryID  *string         `json:"categoryId"`
	Tags        *[]string       `json:"tags"`
	IsAvailable *bool           `json:"isAvailable"`
	Image       *string         `json:"image"`
	AddOns      *[]models.AddOn `json:"addOns"`
	Extras      *[]models.Extra `json:"extras"`
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var req menuItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	err := mc.State.UpdateMenuItem(c.Request.Context(), id, services.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		IsAvailable: req.IsAvailable,
		Image:       req.Image,
		AddOns:      req.AddOns,
		Extras:      req.Extras,
	})
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}

	item, _ := mc.State.MenuItem(id)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	if err := mc.State.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}

// ToggleAvailability flips the sold-out flag on one item.
func (mc *MenuController) ToggleAvailability(c *gin.Context) {
	id := c.Param("id")
	if err := mc.State.ToggleItemAvailability(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	item, _ := mc.State.MenuItem(id)
	utils.RespondJSON(c, http.StatusOK, "Availability updated", item)
}

type priceUpdateRequest struct {
	Price int `json:"price" binding:"required"`
}

func (mc *MenuController) UpdatePrice(c *gin.Context) {
	var req priceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	if err := mc.State.UpdateItemPrice(c.Request.Context(), id, req.Price); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}
	item, _ := mc.State.MenuItem(id)
	utils.RespondJSON(c, http.StatusOK, "Price updated", item)
}

// GetRushHour returns the current rush-hour flag and suppression list.
func (mc *MenuController) GetRushHour(c *gin.Context) {
	mode, items := mc.State.RushHour()
	utils.RespondJSON(c, http.StatusOK, "Rush hour settings", gin.H{
		"rushHourMode":  mode,
		"rushHourItems": items,
	})
}

type rushHourModeRequest struct {
	Mode *bool `json:"mode" binding:"required"`
}

func (mc *MenuController) SetRushHourMode(c *gin.Context) {
	var req rushHourModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	mc.State.SetRushHourMode(c.Request.Context(), *req.Mode)
	mode, items := mc.State.RushHour()
	utils.RespondJSON(c, http.StatusOK, "Rush hour mode updated", gin.H{
		"rushHourMode":  mode,
		"rushHourItems": items,
	})
}

func (mc *MenuController) ToggleRushHourItem(c *gin.Context) {
	mc.State.ToggleRushHourItem(c.Request.Context(), c.Param("id"))
	mode, items := mc.State.RushHour()
	utils.RespondJSON(c, http.StatusOK, "Rush hour list updated", gin.H{
		"rushHourMode":  mode,
		"rushHourItems": items,
	})
}

type rushHourItemsRequest struct {
	Items []string `json:"items"`
}

func (mc *MenuController) SetRushHourItems(c *gin.Context) {
	var req rushHourItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	mc.State.SetRushHourItems(c.Request.Context(), req.Items)
	mode, items := mc.State.RushHour()
	utils.RespondJSON(c, http.StatusOK, "Rush hour list updated", gin.H{
		"rushHourMode":  mode,
		"rushHourItems": items,
	})
}
