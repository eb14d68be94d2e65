package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"campus-canteen/models"
	"campus-canteen/services"
	"campus-canteen/utils"
)

type OrderController struct {
	State  *services.State
	Cart   *services.CartService
	Tokens *services.TokenService
	Log    *logrus.Logger
}

func NewOrderController(state *services.State, cart *services.CartService, tokens *services.TokenService, log *logrus.Logger) *OrderController {
	return &OrderController{State: state, Cart: cart, Tokens: tokens, Log: log}
}

type checkoutRequest struct {
	// Payment is simulated: the UPI screen on the client always "succeeds".
	// The method is recorded in logs only.
	PaymentMethod string `json:"paymentMethod"`
}

// Checkout turns the visitor's cart into a pending order. The cart is
// emptied afterwards but keeps its order type and preorder details, and the
// new order id is appended to the visitor's active-order list for
// tracking.
func (oc *OrderController) Checkout(c *gin.Context) {
	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	ctx := c.Request.Context()
	visitorID := c.GetString("visitorID")
	sess := oc.Cart.Snapshot(ctx, visitorID)

	if len(sess.Items) == 0 && len(sess.Extras) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}
	if sess.OrderType == models.OrderTypeDineIn && sess.TableNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table number is required for dine-in"))
		return
	}
	if sess.OrderType == models.OrderTypePreorder && sess.PreorderDetails == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pickup details are required for preorder"))
		return
	}

	// Dine-in orders are called by table; preorders get a counter token.
	var token int
	if sess.OrderType == models.OrderTypeDineIn {
		if n, err := strconv.Atoi(sess.TableNumber); err == nil {
			token = n
		} else {
			token = oc.Tokens.UniqueToken(ctx)
		}
	} else {
		token = oc.Tokens.UniqueToken(ctx)
	}

	items := make([]models.OrderItem, 0, len(sess.Items))
	for i, line := range sess.Items {
		items = append(items, models.OrderItem{
			ItemID: uuid.NewString(),
			MenuItem: models.MenuItemRef{
				ID:    line.MenuItem.ID,
				Name:  line.MenuItem.Name,
				Price: line.MenuItem.Price,
			},
			Quantity:       line.Quantity,
			SelectedAddOns: line.SelectedAddOns,
			TotalPrice:     line.TotalPrice,
			Position:       i,
		})
	}
	extras := make([]models.OrderExtra, 0, len(sess.Extras))
	for _, e := range sess.Extras {
		extras = append(extras, models.OrderExtra{Extra: e.Extra, Quantity: e.Quantity})
	}

	order := models.Order{
		OrderID:         utils.NewOrderID(token),
		OrderType:       sess.OrderType,
		TableNumber:     sess.TableNumber,
		PreorderDetails: sess.PreorderDetails,
		TokenNumber:     token,
		Items:           items,
		Extras:          extras,
		TotalAmount:     sess.TotalAmount(),
		VisitorID:       visitorID,
		SessionID:       uuid.NewString(),
	}

	if err := oc.State.AddOrder(ctx, &order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.Cart.RecordOrder(ctx, visitorID, order.OrderID)
	oc.Cart.Clear(ctx, visitorID)

	if req.PaymentMethod != "" {
		oc.Log.Infof("order %s paid via %s (simulated)", order.OrderID, req.PaymentMethod)
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders lists the visitor's active orders, newest first. Delivered
// orders are purged from tracking and never show up here.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	visitorID := c.GetString("visitorID")
	orders := oc.State.OrdersForVisitor(visitorID)
	utils.RespondJSON(c, http.StatusOK, "Your orders", orders)
}

// GetOrder returns one order by id. A visitor may only read their own
// orders; admins use the kitchen and analytics surfaces instead.
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, ok := oc.State.Order(c.Param("id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}
	if order.VisitorID != c.GetString("visitorID") {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders is the admin order list.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of orders", oc.State.Orders())
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus advances an order's lifecycle status. Backward moves are
// rejected with 409.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID := c.Param("id")
	err := oc.State.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, models.ErrBackwardTransition):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}

	order, _ := oc.State.Order(orderID)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
