package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	orderControllers "github.com/MasterGroupNew/Luxeparfum-Backend/controllers/order"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, hub *orderControllers.Hub, cfg config.Config) {
	orders := api.Group("/orders", middleware.RequireAuth(cfg.JWTSecret))
	{
		orders.POST("/add_order", orderControllers.CreateOrderHandler(db, hub))
		orders.GET("/get_orders", orderControllers.GetOrdersHandler(db))
		orders.GET("/get_order/:id", orderControllers.GetOrderByIDHandler(db))
		orders.GET("/user/:userId", orderControllers.GetOrdersByUserHandler(db))
		orders.GET("/search", orderControllers.SearchOrdersHandler(db))
	}

	// Live feed of created orders for the admin dashboard. Browsers cannot
	// set the Authorization header on a websocket handshake, so the feed
	// sits outside the auth group.
	api.GET("/orders/ws", hub.Handler())

	admin := api.Group("/orders", middleware.RequireAuth(cfg.JWTSecret, "admin"))
	{
		admin.PUT("/update_order_status/:id", orderControllers.UpdateOrderStatusHandler(db))
		admin.PUT("/update_order_details/:id", orderControllers.UpdateOrderDetailsHandler(db))
		admin.PUT("/update_order_address/:id", orderControllers.UpdateOrderAddressHandler(db))
		admin.PUT("/update_order_payment/:id", orderControllers.UpdateOrderPaymentHandler(db))
		admin.PUT("/update_order_total/:id", orderControllers.UpdateOrderTotalHandler(db))
		admin.DELETE("/delete_order/:id", orderControllers.DeleteOrderHandler(db))
		admin.GET("/stats", orderControllers.GetOrderStatsHandler(db))
	}
}
