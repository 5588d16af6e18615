package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	productControllers "github.com/MasterGroupNew/Luxeparfum-Backend/controllers/product"
	"github.com/MasterGroupNew/Luxeparfum-Backend/media"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, m *media.Client, cfg config.Config) {
	products := api.Group("/products")
	{
		// Public catalog reads
		products.GET("", productControllers.GetProductsHandler(db))
		products.GET("/genre/:genre", productControllers.GetProductsByGenreHandler(db))
		products.POST("/filter", productControllers.FilterProductsHandler(db))

		// Admin writes. Registered before the :id wildcard so /export does
		// not get swallowed by it.
		admin := products.Group("", middleware.RequireAuth(cfg.JWTSecret, "admin"))
		{
			admin.POST("", productControllers.CreateProductHandler(db, m))
			admin.GET("/export", productControllers.ExportProductsHandler(db))
			admin.PUT("/:id", productControllers.UpdateProductHandler(db, m))
			admin.DELETE("/:id", productControllers.DeleteProductHandler(db, m))
		}

		products.GET("/:id", productControllers.GetProductByIDHandler(db))
	}
}
