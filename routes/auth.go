package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	authControllers "github.com/MasterGroupNew/Luxeparfum-Backend/controllers/auth"
	"github.com/MasterGroupNew/Luxeparfum-Backend/media"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
)

func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, m *media.Client, cfg config.Config) {
	auth := api.Group("/auth")
	{
		// Public
		auth.POST("/register", authControllers.RegisterHandler(db, m))
		auth.POST("/login", authControllers.LoginHandler(db, cfg.JWTSecret))
		auth.POST("/resetPassword", authControllers.ResetPasswordHandler(db))

		// Any authenticated user
		user := auth.Group("", middleware.RequireAuth(cfg.JWTSecret))
		{
			user.GET("/profile", authControllers.GetProfileHandler(db))
			user.PUT("/updateProfile", authControllers.UpdateProfileHandler(db, m))
			user.PUT("/changePassword", authControllers.ChangePasswordHandler(db))
		}

		// Admin only
		admin := auth.Group("", middleware.RequireAuth(cfg.JWTSecret, "admin"))
		{
			admin.POST("/add_user", authControllers.AddUserHandler(db, m))
			admin.GET("/getAllUsers", authControllers.GetAllUsersHandler(db))
			admin.GET("/getUserById/:id", authControllers.GetUserByIDHandler(db))
			admin.PUT("/updateUser/:id", authControllers.UpdateUserHandler(db, m))
			admin.DELETE("/deleteUser/:id", authControllers.DeleteUserHandler(db, m))
			admin.GET("/getUsersByRole/:role", authControllers.GetUsersByRoleHandler(db))
		}
	}
}
