package productControllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
	"github.com/MasterGroupNew/Luxeparfum-Backend/media"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

type FilterRequest struct {
	Category uint   `json:"category"`
	Genre    string `json:"genre"`
	Page     int    `json:"page"`
	Sort     string `json:"sort"`
	Limit    int    `json:"limit"`
}

// CreateProductHandler handles the admin multipart form: required fields plus
// an optional image stored in the media service. The record keeps the public
// URL and the object key used for later deletion.
func CreateProductHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		quantityStr := c.PostForm("quantity")
		categoryIDStr := c.PostForm("category_id")

		if name == "" || description == "" || priceStr == "" || quantityStr == "" || categoryIDStr == "" {
			httperr.Respond(c, httperr.Validation("name, description, price, quantity and category_id are required"))
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			httperr.Respond(c, httperr.Validation("invalid price"))
			return
		}
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity < 0 {
			httperr.Respond(c, httperr.Validation("invalid quantity"))
			return
		}
		categoryID64, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			httperr.Respond(c, httperr.Validation("invalid category_id"))
			return
		}
		categoryID := uint(categoryID64)

		var category models.Category
		if err := db.First(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("category not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		genre := c.PostForm("genre")
		if !models.ValidGenre(genre) {
			genre = string(models.GenreMixte)
		}

		product := models.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Quantity:    quantity,
			Genre:       models.Genre(genre),
			CategoryID:  &categoryID,
		}

		if file, err := c.FormFile("image"); err == nil && m != nil {
			url, key, err := m.Upload(c.Request.Context(), file, "products")
			if err != nil {
				httperr.Respond(c, httperr.Storage(err))
				return
			}
			product.ImageURL = url
			product.ImageID = key
		}

		if err := db.Create(&product).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added", "product": product})
	}
}

func GetProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Order("created_at DESC").Find(&products).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func GetProductByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("product not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func UpdateProductHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("product not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		updates := map[string]interface{}{}
		if v := c.PostForm("name"); v != "" {
			updates["name"] = v
		}
		if v := c.PostForm("description"); v != "" {
			updates["description"] = v
		}
		if v := c.PostForm("price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil || price < 0 {
				httperr.Respond(c, httperr.Validation("invalid price"))
				return
			}
			updates["price"] = price
		}
		if v := c.PostForm("quantity"); v != "" {
			quantity, err := strconv.Atoi(v)
			if err != nil || quantity < 0 {
				httperr.Respond(c, httperr.Validation("invalid quantity"))
				return
			}
			updates["quantity"] = quantity
		}
		if v := c.PostForm("genre"); models.ValidGenre(v) {
			updates["genre"] = v
		}
		if v := c.PostForm("category_id"); v != "" {
			id64, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				httperr.Respond(c, httperr.Validation("invalid category_id"))
				return
			}
			var category models.Category
			if err := db.First(&category, "id = ?", uint(id64)).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					httperr.Respond(c, httperr.NotFound("category not found"))
					return
				}
				httperr.Respond(c, httperr.Storage(err))
				return
			}
			updates["category_id"] = uint(id64)
		}

		oldImageID := ""
		if file, err := c.FormFile("image"); err == nil && m != nil {
			url, key, err := m.Upload(c.Request.Context(), file, "products")
			if err != nil {
				httperr.Respond(c, httperr.Storage(err))
				return
			}
			oldImageID = product.ImageID
			updates["image_url"] = url
			updates["image_id"] = key
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				httperr.Respond(c, httperr.Storage(err))
				return
			}
		}
		// The replaced image goes away in the background; a failure there
		// never fails the update.
		if oldImageID != "" {
			m.DeleteAsync(oldImageID)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
	}
}

func DeleteProductHandler(db *gorm.DB, m *media.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("product not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if m != nil {
			m.DeleteAsync(product.ImageID)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// FilterProductsHandler pages through the catalog ordered by price.
func FilterProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FilterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}
		if req.Page < 1 {
			req.Page = 1
		}
		if req.Limit < 1 {
			req.Limit = 10
		}
		sort := "ASC"
		if strings.EqualFold(req.Sort, "DESC") {
			sort = "DESC"
		}

		q := db.Model(&models.Product{})
		if req.Category != 0 {
			q = q.Where("category_id = ?", req.Category)
		}
		if req.Genre != "" {
			q = q.Where("genre = ?", req.Genre)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		var products []models.Product
		if err := q.Preload("Category").
			Order("price " + sort).
			Limit(req.Limit).
			Offset((req.Page - 1) * req.Limit).
			Find(&products).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":     products,
			"total":        total,
			"current_page": req.Page,
			"total_pages":  int(math.Ceil(float64(total) / float64(req.Limit))),
		})
	}
}

func GetProductsByGenreHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		genre := c.Param("genre")
		if !models.ValidGenre(genre) {
			httperr.Respond(c, httperr.Validation("invalid genre, use Homme, Femme or Mixte"))
			return
		}

		var products []models.Product
		if err := db.Preload("Category").
			Where("genre = ?", genre).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
