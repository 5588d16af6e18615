package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type SyncCartInput struct {
	Items []SyncCartLine `json:"items"`
}

// SyncCartLine mirrors what the storefront keeps in local storage. Entries
// without a product id are skipped during sync, not rejected.
type SyncCartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartItemView is a cart line joined with the live product.
type CartItemView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// getOrCreateCart lazily creates the user's cart on first write.
func getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.Storage(err)
	}
	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	return &cart, nil
}

// AddItem merges quantity into the (cart, product) line: adding the same
// product twice sums the quantities.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) error {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("product not found")
		}
		return httperr.Storage(err)
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := db.Save(&item).Error; err != nil {
			return httperr.Storage(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return httperr.Storage(err)
		}
	default:
		return httperr.Storage(err)
	}
	return nil
}

// GetItems materializes the cart with the live product projection. A user
// without a cart simply has no items.
func GetItems(db *gorm.DB, userID uint) ([]CartItemView, error) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []CartItemView{}, nil
		}
		return nil, httperr.Storage(err)
	}

	items := []CartItemView{}
	err := db.Table("cart_items").
		Select("products.id AS id, products.name AS name, products.price AS price, products.image_url AS image, cart_items.quantity AS quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cart.ID).
		Scan(&items).Error
	if err != nil {
		return nil, httperr.Storage(err)
	}
	return items, nil
}

// SyncItems merges an externally kept item list into the persisted cart,
// summing quantities on conflict. Idempotent apart from that summing.
func SyncItems(db *gorm.DB, userID uint, lines []SyncCartLine) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if line.ProductID == 0 {
			continue
		}
		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", cart.ID, line.ProductID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += line.Quantity
			if err := db.Save(&item).Error; err != nil {
				return httperr.Storage(err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: line.ProductID, Quantity: line.Quantity}
			if err := db.Create(&item).Error; err != nil {
				return httperr.Storage(err)
			}
		default:
			return httperr.Storage(err)
		}
	}
	return nil
}

// SetItemQuantity overwrites a line's quantity; zero or less deletes it.
func SetItemQuantity(db *gorm.DB, userID, productID uint, quantity int) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("cart not found")
		}
		return httperr.Storage(err)
	}

	if quantity <= 0 {
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error; err != nil {
			return httperr.Storage(err)
		}
		return nil
	}

	res := db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return httperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("product not found in cart")
	}
	return nil
}

// RemoveItem deletes a single line.
func RemoveItem(db *gorm.DB, userID, productID uint) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("cart not found")
		}
		return httperr.Storage(err)
	}

	res := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return httperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("product not found in cart")
	}
	return nil
}

// -------- Handlers --------

func authedUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Respond(c, httperr.Auth("not authenticated"))
	}
	return userID, ok
}

func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}
		if err := AddItem(db, userID, input.ProductID, input.Quantity); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
	}
}

func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		items, err := GetItems(db, userID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func SyncCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		var input SyncCartInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Items == nil {
			httperr.Respond(c, httperr.Validation("invalid request"))
			return
		}
		if err := SyncItems(db, userID, input.Items); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart synchronized"})
	}
}

func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}
		if err := SetItemQuantity(db, userID, input.ProductID, input.Quantity); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			httperr.Respond(c, httperr.Validation("invalid product id"))
			return
		}
		if err := RemoveItem(db, userID, uint(productID)); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
	}
}

func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
