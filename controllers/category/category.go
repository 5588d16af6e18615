package categoryControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

type CategoryRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Genre         string         `json:"genre"`
	Subcategories datatypes.JSON `json:"subcategories"`
}

func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}
		if req.Name == "" {
			httperr.Respond(c, httperr.Validation("category name is required"))
			return
		}

		// An unknown genre quietly falls back to Mixte on create.
		genre := models.GenreMixte
		if models.ValidGenre(req.Genre) {
			genre = models.Genre(req.Genre)
		}

		subcategories := req.Subcategories
		if subcategories == nil {
			subcategories = datatypes.JSON([]byte("[]"))
		}

		category := models.Category{
			Name:          req.Name,
			Description:   req.Description,
			Genre:         genre,
			Subcategories: subcategories,
		}
		if err := db.Create(&category).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
	}
}

func GetCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Preload("Products").Find(&categories).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func GetCategoryByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Preload("Products").First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("category not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("category not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}

		updates := map[string]interface{}{}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if req.Subcategories != nil {
			updates["subcategories"] = req.Subcategories
		}
		// Unlike create, an invalid genre is ignored here.
		if models.ValidGenre(req.Genre) {
			updates["genre"] = req.Genre
		}

		if len(updates) > 0 {
			if err := db.Model(&category).Updates(updates).Error; err != nil {
				httperr.Respond(c, httperr.Storage(err))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
	}
}

// DeleteCategoryHandler removes the category; its products survive with
// their category reference cleared, never cascade-deleted.
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("category not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		if err := db.Model(&models.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if err := db.Delete(&category).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
