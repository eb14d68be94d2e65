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

type CartController struct {
	Cart  *services.CartService
	State *services.State
	Log   *logrus.Logger
}

func NewCartController(cart *services.CartService, state *services.State, log *logrus.Logger) *CartController {
	return &CartController{Cart: cart, State: state, Log: log}
}

// GetCart returns the visitor's full cart session plus derived totals.
func (cc *CartController) GetCart(c *gin.Context) {
	visitorID := c.GetString("visitorID")
	sess := cc.Cart.Snapshot(c.Request.Context(), visitorID)
	utils.RespondJSON(c, http.StatusOK, "Cart", gin.H{
		"cart":        sess,
		"totalItems":  sess.TotalItems(),
		"totalAmount": sess.TotalAmount(),
	})
}

type addItemRequest struct {
	MenuItemID string   `json:"menuItemId" binding:"required"`
	Quantity   int      `json:"quantity"`
	AddOnIDs   []string `json:"addOnIds"`
}

// AddItem snapshots the menu item into the cart. Unavailable items cannot
// be added; unknown add-on ids are rejected rather than ignored.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, ok := cc.State.MenuItem(req.MenuItemID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrItemNotFound)
		return
	}
	if !item.IsAvailable {
		utils.RespondError(c, http.StatusConflict, errors.New("menu item is currently unavailable"))
		return
	}

	addOns := make([]models.AddOn, 0, len(req.AddOnIDs))
	for _, id := range req.AddOnIDs {
		addOn, found := item.FindAddOn(id)
		if !found {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown add-on "+id))
			return
		}
		addOns = append(addOns, addOn)
	}

	visitorID := c.GetString("visitorID")
	line, err := cc.Cart.AddItem(c.Request.Context(), visitorID, item, req.Quantity, addOns)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", line)
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (cc *CartController) UpdateItemQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	visitorID := c.GetString("visitorID")
	err := cc.Cart.UpdateItemQuantity(c.Request.Context(), visitorID, c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}
	cc.respondCart(c, visitorID)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	visitorID := c.GetString("visitorID")
	if err := cc.Cart.RemoveItem(c.Request.Context(), visitorID, c.Param("id")); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	cc.respondCart(c, visitorID)
}

type addExtraRequest struct {
	ExtraID string `json:"extraId" binding:"required"`
}

func (cc *CartController) AddExtra(c *gin.Context) {
	var req addExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	extra, ok := cc.State.FindExtra(req.ExtraID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrExtraNotFound)
		return
	}

	visitorID := c.GetString("visitorID")
	cc.Cart.AddExtra(c.Request.Context(), visitorID, extra)
	cc.respondCart(c, visitorID)
}

func (cc *CartController) UpdateExtraQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	visitorID := c.GetString("visitorID")
	err := cc.Cart.UpdateExtraQuantity(c.Request.Context(), visitorID, c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrExtraNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}
	cc.respondCart(c, visitorID)
}

func (cc *CartController) RemoveExtra(c *gin.Context) {
	visitorID := c.GetString("visitorID")
	if err := cc.Cart.RemoveExtra(c.Request.Context(), visitorID, c.Param("id")); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	cc.respondCart(c, visitorID)
}

type tableRequest struct {
	TableNumber string `json:"tableNumber" binding:"required"`
}

func (cc *CartController) SetTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	visitorID := c.GetString("visitorID")
	cc.Cart.SetTableNumber(c.Request.Context(), visitorID, req.TableNumber)
	cc.respondCart(c, visitorID)
}

type orderTypeRequest struct {
	OrderType string `json:"orderType" binding:"required"`
}

func (cc *CartController) SetOrderType(c *gin.Context) {
	var req orderTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	visitorID := c.GetString("visitorID")
	if err := cc.Cart.SetOrderType(c.Request.Context(), visitorID, req.OrderType); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	cc.respondCart(c, visitorID)
}

func (cc *CartController) SetPreorderDetails(c *gin.Context) {
	var details models.PreorderDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	visitorID := c.GetString("visitorID")
	cc.Cart.SetPreorderDetails(c.Request.Context(), visitorID, details)
	cc.respondCart(c, visitorID)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	visitorID := c.GetString("visitorID")
	cc.Cart.Clear(c.Request.Context(), visitorID)
	cc.respondCart(c, visitorID)
}

func (cc *CartController) respondCart(c *gin.Context, visitorID string) {
	sess := cc.Cart.Snapshot(c.Request.Context(), visitorID)
	utils.RespondJSON(c, http.StatusOK, "Cart updated", gin.H{
		"cart":        sess,
		"totalItems":  sess.TotalItems(),
		"totalAmount": sess.TotalAmount(),
	})
}
