package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
	"github.com/MasterGroupNew/Luxeparfum-Backend/database"
	"github.com/MasterGroupNew/Luxeparfum-Backend/media"
	"github.com/MasterGroupNew/Luxeparfum-Backend/routes"
)

func main() {
	log.Println("Starting Luxe Parfum API...")

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database init failed: %v", err)
	}
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}

	m, err := media.NewClient(cfg)
	if err != nil {
		log.Fatalf("Media client init failed: %v", err)
	}
	if m == nil {
		log.Println("Media storage not configured, image uploads disabled")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := m.EnsureBucket(ctx); err != nil {
			log.Fatalf("Media bucket init failed: %v", err)
		}
	}

	r := gin.Default()
	r.MaxMultipartMemory = 10 << 20 // 10 MB uploads

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Luxe Parfum API",
			"status":  "active",
			"endpoints": gin.H{
				"auth":       "/api/auth",
				"products":   "/api/products",
				"orders":     "/api/orders",
				"cart":       "/api/cart",
				"categories": "/api/categories",
			},
		})
	})

	routes.Setup(r, db, m, cfg)

	log.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
