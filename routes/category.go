package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	categoryControllers "github.com/MasterGroupNew/Luxeparfum-Backend/controllers/category"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
)

func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	categories := api.Group("/categories")
	{
		categories.GET("/get_categories", categoryControllers.GetCategoriesHandler(db))
		categories.GET("/get_category/:id", categoryControllers.GetCategoryByIDHandler(db))

		admin := categories.Group("", middleware.RequireAuth(cfg.JWTSecret, "admin"))
		{
			admin.POST("/add_category", categoryControllers.CreateCategoryHandler(db))
			admin.PUT("/update_category/:id", categoryControllers.UpdateCategoryHandler(db))
			admin.DELETE("/delete_category/:id", categoryControllers.DeleteCategoryHandler(db))
		}
	}
}
