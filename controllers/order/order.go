package orderControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MasterGroupNew/Luxeparfum-Backend/httperr"
	"github.com/MasterGroupNew/Luxeparfum-Backend/middleware"
	"github.com/MasterGroupNew/Luxeparfum-Backend/models"
)

// -------- Request structs --------

type OrderLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type ShippingAddressRequest struct {
	City     string `json:"city"`
	District string `json:"district"`
	Landmark string `json:"landmark"`
}

type ShippingInfoRequest struct {
	Name          string                 `json:"name"`
	Surname       string                 `json:"surname"`
	Phone         string                 `json:"phone"`
	Email         string                 `json:"email"`
	Address       ShippingAddressRequest `json:"address"`
	PaymentMethod string                 `json:"payment_method"`
}

type CreateOrderRequest struct {
	Items        []OrderLineRequest   `json:"items" binding:"omitempty,dive"`
	ShippingInfo *ShippingInfoRequest `json:"shipping_info"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateOrderAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

type UpdateOrderPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type UpdateOrderTotalRequest struct {
	Total *float64 `json:"total" binding:"required"`
}

type UpdateOrderDetailsRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required,dive"`
}

// -------- Views --------

type OrderItemView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type OrderView struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"user_id"`
	User            *models.UserSummary `json:"user,omitempty"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	CustomerInfo    map[string]any      `json:"customer_info"`
	PaymentMethod   string              `json:"payment_method"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemView     `json:"items"`
}

// -------- Core workflow --------

// CreateOrder writes the order header first, then one line per requested
// product, then patches the total. There is no wrapping transaction: when a
// product id does not resolve, the lines written so far and the header are
// deleted by hand before the NotFound surfaces (compensating rollback).
// Prices are read live from the catalog per line; a price change mid-loop
// lands in the total unpredictably, which matches the storefront's historical
// behavior. Stock is intentionally not decremented here.
func CreateOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, httperr.Validation("no items in order")
	}
	if req.ShippingInfo == nil {
		return nil, httperr.Validation("shipping information is required")
	}

	// Empty segments are kept as-is (leading comma and all) because the
	// storefront parses this exact format.
	addr := req.ShippingInfo.Address
	shippingAddress := addr.District + ", " + addr.City
	if addr.Landmark != "" {
		shippingAddress += ", " + addr.Landmark
	}
	shippingAddress = strings.TrimSpace(shippingAddress)

	// Contact details travel with the order as an opaque blob, for display
	// only. They are not normalized into columns.
	info, err := json.Marshal(map[string]string{
		"name":    req.ShippingInfo.Name,
		"surname": req.ShippingInfo.Surname,
		"phone":   req.ShippingInfo.Phone,
		"email":   req.ShippingInfo.Email,
	})
	if err != nil {
		return nil, httperr.Storage(err)
	}

	order := models.Order{
		UserID:          userID,
		Total:           0,
		Status:          models.StatusPending,
		ShippingAddress: shippingAddress,
		CustomerInfo:    string(info),
		PaymentMethod:   req.ShippingInfo.PaymentMethod,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, httperr.Storage(err)
	}

	var total float64
	for _, line := range req.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if derr := db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; derr != nil {
					return nil, httperr.Storage(derr)
				}
				if derr := db.Delete(&models.Order{}, order.ID).Error; derr != nil {
					return nil, httperr.Storage(derr)
				}
				return nil, httperr.NotFound("product with id %d not found", line.ProductID)
			}
			return nil, httperr.Storage(err)
		}

		total += product.Price * float64(line.Quantity)

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, httperr.Storage(err)
		}
	}

	if err := db.Model(&order).Update("total", total).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	order.Total = total
	return &order, nil
}

// ReplaceOrderItems swaps the full line set of an order: delete everything,
// re-insert from the request, recompute the total from live prices. Unlike
// CreateOrder, lines whose product no longer exists are skipped silently;
// admins use this to prune dead products out of old orders.
func ReplaceOrderItems(db *gorm.DB, orderID uint, lines []OrderLineRequest) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("order not found")
		}
		return nil, httperr.Storage(err)
	}

	if err := db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		return nil, httperr.Storage(err)
	}

	var total float64
	for _, line := range lines {
		var product models.Product
		if err := db.First(&product, "id = ?", line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, httperr.Storage(err)
		}

		total += product.Price * float64(line.Quantity)
		item := models.OrderItem{OrderID: order.ID, ProductID: line.ProductID, Quantity: line.Quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, httperr.Storage(err)
		}
	}

	if err := db.Model(&order).Update("total", total).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	order.Total = total
	return &order, nil
}

// -------- Read path --------

func loadOrderItems(db *gorm.DB, orderID uint) ([]OrderItemView, error) {
	items := []OrderItemView{}
	err := db.Table("order_items").
		Select("products.id AS id, products.name AS name, products.price AS price, products.image_url AS image, order_items.quantity AS quantity").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&items).Error
	if err != nil {
		return nil, httperr.Storage(err)
	}
	return items, nil
}

// parseCustomerInfo never fails: a malformed or absent blob reads as an
// empty object.
func parseCustomerInfo(raw string) map[string]any {
	info := map[string]any{}
	if raw == "" {
		return info
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return map[string]any{}
	}
	return info
}

// FormatOrder flattens one order into the API view. withUser additionally
// joins the owning user's id/name/email.
func FormatOrder(db *gorm.DB, order models.Order, withUser bool) (*OrderView, error) {
	items, err := loadOrderItems(db, order.ID)
	if err != nil {
		return nil, err
	}

	view := &OrderView{
		ID:              order.ID,
		UserID:          order.UserID,
		Total:           order.Total,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		CustomerInfo:    parseCustomerInfo(order.CustomerInfo),
		PaymentMethod:   order.PaymentMethod,
		CreatedAt:       order.CreatedAt,
		Items:           items,
	}

	if withUser {
		var u models.UserSummary
		if err := db.Table("users").Select("id, name, email").
			Where("id = ?", order.UserID).Scan(&u).Error; err != nil {
			return nil, httperr.Storage(err)
		}
		if u.ID != 0 {
			view.User = &u
		}
	}
	return view, nil
}

func formatOrders(db *gorm.DB, orders []models.Order, withUser bool) ([]*OrderView, error) {
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := FormatOrder(db, o, withUser)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// -------- Search --------

type SearchFilters struct {
	Status    string
	UserID    uint
	StartDate time.Time
	EndDate   time.Time
}

// SearchOrders combines the optional filters with AND semantics. The date
// range is inclusive on both ends and applies only when both bounds are set.
func SearchOrders(db *gorm.DB, f SearchFilters) ([]models.Order, error) {
	q := db.Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() {
		q = q.Where("created_at BETWEEN ? AND ?", f.StartDate, f.EndDate)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	return orders, nil
}

// -------- Handlers --------

func CreateOrderHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			httperr.Respond(c, httperr.Auth("not authenticated"))
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}

		order, err := CreateOrder(db, userID, req)
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		hub.Broadcast(order)
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Order created successfully",
			"order_id": order.ID,
			"order":    order,
		})
	}
}

func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		views, err := formatOrders(db, orders, true)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetOrdersByUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			httperr.Respond(c, httperr.Validation("invalid user id"))
			return
		}

		var orders []models.Order
		if err := db.Where("user_id = ?", uint(userID)).
			Order("created_at DESC").Find(&orders).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		views, err := formatOrders(db, orders, false)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Respond(c, httperr.NotFound("order not found"))
				return
			}
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		view, err := FormatOrder(db, order, true)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}
		res := db.Where("id = ?", id).Delete(&models.Order{})
		if res.Error != nil {
			httperr.Respond(c, httperr.Storage(res.Error))
			return
		}
		if res.RowsAffected == 0 {
			httperr.Respond(c, httperr.NotFound("order not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

// patchOrder updates a single column after checking the order exists. No
// business validation happens here: the total override in particular may set
// any value an admin asks for.
func patchOrder(db *gorm.DB, id string, column string, value any) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("order not found")
		}
		return nil, httperr.Storage(err)
	}
	if err := db.Model(&order).Update(column, value).Error; err != nil {
		return nil, httperr.Storage(err)
	}
	return &order, nil
}

func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("status is required"))
			return
		}
		order, err := patchOrder(db, c.Param("id"), "status", req.Status)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
	}
}

func UpdateOrderAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("address is required"))
			return
		}
		order, err := patchOrder(db, c.Param("id"), "shipping_address", req.Address)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipping address updated", "order": order})
	}
}

func UpdateOrderPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("payment_method is required"))
			return
		}
		order, err := patchOrder(db, c.Param("id"), "payment_method", req.PaymentMethod)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment method updated", "order": order})
	}
}

func UpdateOrderTotalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderTotalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("total is required"))
			return
		}
		order, err := patchOrder(db, c.Param("id"), "total", *req.Total)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order total updated", "order": order})
	}
}

func UpdateOrderDetailsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Respond(c, httperr.Validation("invalid request body: %v", err))
			return
		}
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httperr.Respond(c, httperr.Validation("invalid order id"))
			return
		}
		order, err := ReplaceOrderItems(db, uint(orderID), req.Items)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order details updated", "order": order})
	}
}

func GetOrderStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders int64
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		var totalSales float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total), 0)").Scan(&totalSales).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		type statusCount struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		}
		byStatus := []statusCount{}
		if err := db.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").Scan(&byStatus).Error; err != nil {
			httperr.Respond(c, httperr.Storage(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_orders":     totalOrders,
			"total_sales":      totalSales,
			"orders_by_status": byStatus,
		})
	}
}

func SearchOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f SearchFilters
		f.Status = c.Query("status")
		if v := c.Query("user_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				httperr.Respond(c, httperr.Validation("invalid user_id"))
				return
			}
			f.UserID = uint(id)
		}
		if start, end := c.Query("start_date"), c.Query("end_date"); start != "" && end != "" {
			var err error
			if f.StartDate, err = parseDate(start); err != nil {
				httperr.Respond(c, httperr.Validation("invalid start_date"))
				return
			}
			if f.EndDate, err = parseDate(end); err != nil {
				httperr.Respond(c, httperr.Validation("invalid end_date"))
				return
			}
		}

		orders, err := SearchOrders(db, f)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		views, err := formatOrders(db, orders, true)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
