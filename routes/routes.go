package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	orderControllers "github.com/MasterGroupNew/Luxeparfum-Backend/controllers/order"
	"github.com/MasterGroupNew/Luxeparfum-Backend/media"
)

// Setup wires every route group under /api.
func Setup(r *gin.Engine, db *gorm.DB, m *media.Client, cfg config.Config) {
	api := r.Group("/api")

	hub := orderControllers.NewHub()

	SetupAuthRoutes(api, db, m, cfg)
	SetupOrderRoutes(api, db, hub, cfg)
	SetupCartRoutes(api, db, cfg)
	SetupProductRoutes(api, db, m, cfg)
	SetupCategoryRoutes(api, db, cfg)
}
