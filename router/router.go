package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resto-live/auth"
	"resto-live/controllers"
	"resto-live/middlewares"
	"resto-live/realtime"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub, gate *auth.Gate) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 50 requests per second per IP across the whole surface.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Authenticate(gate))

	orderCtrl := controllers.NewOrderController(db, hub)
	menuCtrl := controllers.NewMenuController(db, hub)
	wsCtrl := controllers.NewWSController(hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Live updates: one-way push, open to any connected client.
	r.GET("/ws", wsCtrl.Subscribe)

	api := r.Group("/api")

	// -- CUSTOMER (no credential required) --
	api.POST("/orders", middlewares.NewStrictRateLimiter(5, 10), orderCtrl.CreateOrder)
	api.GET("/orders", orderCtrl.GetAllOrders)
	api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	api.GET("/menu", menuCtrl.GetMenu)

	// -- CASHIER or KITCHEN --
	staff := api.Group("/")
	staff.Use(middlewares.RequireRole(auth.RoleCashier, auth.RoleKitchen))
	{
		staff.PATCH("/orders/:order_id", orderCtrl.UpdateOrderStatus)
	}

	// -- CASHIER only --
	cashier := api.Group("/")
	cashier.Use(middlewares.RequireRole(auth.RoleCashier))
	{
		cashier.POST("/orders/:order_id/pay", orderCtrl.MarkOrderPaid)
		cashier.GET("/menu/all", menuCtrl.GetAllMenu)
		cashier.POST("/menu", menuCtrl.CreateMenuItem)
		cashier.PATCH("/menu/:menu_id", menuCtrl.SetAvailability)
		cashier.PUT("/menu/:menu_id", menuCtrl.UpdateMenuItem)
	}

	return r
}
