package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus-canteen/controllers"
	"campus-canteen/middlewares"
	"campus-canteen/realtime"
	"campus-canteen/services"
	"campus-canteen/store"
)

// Deps carries everything the HTTP surface needs. All of it is built once
// in main and injected here.
type Deps struct {
	Store  store.Store
	State  *services.State
	Cart   *services.CartService
	Tokens *services.TokenService
	Hub    *realtime.Hub
	Log    *logrus.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())

	menuCtrl := controllers.NewMenuController(d.State, d.Log)
	cartCtrl := controllers.NewCartController(d.Cart, d.State, d.Log)
	orderCtrl := controllers.NewOrderController(d.State, d.Cart, d.Tokens, d.Log)
	kitchenCtrl := controllers.NewKitchenController(d.State, d.Store, d.Log)
	adminCtrl := controllers.NewAdminController(d.State, d.Store, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"clients": d.Hub.ClientCount(),
		})
	})

	r.GET("/ws", d.Hub.ServeWS)

	// Customer surface. Identity is an anonymous cookie, no login.
	public := r.Group("/api/v1")
	public.Use(middlewares.VisitorID())
	{
		public.GET("/categories", menuCtrl.GetCategories)
		public.GET("/menu", menuCtrl.GetMenu)
		public.GET("/menu/:id", menuCtrl.GetMenuItem)
		public.GET("/settings/rush-hour", menuCtrl.GetRushHour)

		public.GET("/cart", cartCtrl.GetCart)
		public.POST("/cart/items", cartCtrl.AddItem)
		public.PATCH("/cart/items/:id", cartCtrl.UpdateItemQuantity)
		public.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		public.POST("/cart/extras", cartCtrl.AddExtra)
		public.PATCH("/cart/extras/:id", cartCtrl.UpdateExtraQuantity)
		public.DELETE("/cart/extras/:id", cartCtrl.RemoveExtra)
		public.PUT("/cart/table", cartCtrl.SetTable)
		public.PUT("/cart/order-type", cartCtrl.SetOrderType)
		public.PUT("/cart/preorder-details", cartCtrl.SetPreorderDetails)
		public.DELETE("/cart", cartCtrl.ClearCart)

		public.POST("/checkout", orderCtrl.Checkout)
		public.GET("/orders", orderCtrl.GetMyOrders)
		public.GET("/orders/:id", orderCtrl.GetOrder)
	}

	r.POST("/api/v1/admin/login", middlewares.NewStrictRateLimiter(), adminCtrl.Login)

	admin := r.Group("/api/v1/admin")
	admin.Use(middlewares.AdminAuth(d.Store))
	{
		admin.GET("/menu", menuCtrl.GetFullMenu)
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:id", menuCtrl.DeleteMenuItem)
		admin.POST("/menu/:id/toggle", menuCtrl.ToggleAvailability)
		admin.PUT("/menu/:id/price", menuCtrl.UpdatePrice)

		admin.PUT("/settings/rush-hour/mode", menuCtrl.SetRushHourMode)
		admin.PUT("/settings/rush-hour/items", menuCtrl.SetRushHourItems)
		admin.POST("/settings/rush-hour/items/:id/toggle", menuCtrl.ToggleRushHourItem)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)

		admin.GET("/chefs", kitchenCtrl.GetChefs)
		admin.POST("/chefs", kitchenCtrl.CreateChef)
		admin.PATCH("/chefs/:id", kitchenCtrl.UpdateChef)
		admin.DELETE("/chefs/:id", kitchenCtrl.DeleteChef)
		admin.PUT("/chefs/:id/categories", kitchenCtrl.AssignCategories)

		admin.GET("/kitchen/dashboard", kitchenCtrl.GetDashboard)
		admin.POST("/kitchen/orders/:id/items/:itemId/ready", kitchenCtrl.TickItem)

		admin.GET("/analytics", adminCtrl.GetAnalytics)
	}

	return r
}
