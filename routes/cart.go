package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	cartControllers "github.com/MasterGroupNew/Luxeparfum-Backend/controllers/cart"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
)

func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	cart := api.Group("/cart", middleware.RequireAuth(cfg.JWTSecret))
	{
		cart.POST("/add", cartControllers.AddToCartHandler(db))
		cart.GET("/get", cartControllers.GetCartHandler(db))
		cart.POST("/sync", cartControllers.SyncCartHandler(db))
		cart.PUT("/update", cartControllers.UpdateCartItemHandler(db))
		cart.DELETE("/remove/:productId", cartControllers.RemoveFromCartHandler(db))
		cart.DELETE("/clear", cartControllers.ClearCartHandler(db))
	}
}
