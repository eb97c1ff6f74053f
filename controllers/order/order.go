package orderControllers

import (
	"crypto/rand"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minishop-dev/minishop-api/models"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound        = errors.New("Cart not found")
	ErrCartEmpty           = errors.New("Cart is empty")
	ErrPickupCodeExhausted = errors.New("could not allocate a unique pickup code")
)

const (
	pickupCodeLength   = 6
	pickupCodeAttempts = 5
)

const pickupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type CheckoutInput struct {
	UserID *uint `json:"userId"`
}

type PickupInput struct {
	PickupCode string `json:"pickupCode"`
}

type CheckoutResult struct {
	OrderID    uint
	Total      float64
	PickupCode string
}

func generatePickupCode() (string, error) {
	buf := make([]byte, pickupCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = pickupCodeAlphabet[int(b)%len(pickupCodeAlphabet)]
	}
	return string(buf), nil
}

// Checkout converts the session's cart into an order. The cart lookup, the
// order and item inserts and the cart clearing all happen inside one
// transaction: any failure rolls the whole thing back and the cart is left
// untouched.
func Checkout(db *gorm.DB, sessionID string, userID *uint) (*CheckoutResult, error) {
	var result CheckoutResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		type checkoutLine struct {
			ProductID uint
			Name      string
			Qty       int
			Price     float64
		}
		var lines []checkoutLine
		if err := tx.Table("cart_items").
			Select("cart_items.product_id, products.name, cart_items.qty, products.price").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.cart_id = ?", cart.ID).
			Scan(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		// Totals and item snapshots use the catalog price at this moment,
		// not the price when the item went into the cart.
		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			total += line.Price * float64(line.Qty)
			items = append(items, models.OrderItem{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Qty:         line.Qty,
				Price:       line.Price,
			})
		}

		pickupCode, err := allocatePickupCode(tx)
		if err != nil {
			return err
		}

		order := models.Order{
			UserID:     userID,
			Total:      total,
			PickupCode: pickupCode,
			Status:     models.OrderStatusPlaced,
			Items:      items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		result = CheckoutResult{OrderID: order.ID, Total: total, PickupCode: pickupCode}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// allocatePickupCode draws short random codes until one is free. The unique
// index on pickup_code still backstops the residual race between the check
// and the insert; that failure rolls the checkout back like any other.
func allocatePickupCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < pickupCodeAttempts; attempt++ {
		code, err := generatePickupCode()
		if err != nil {
			return "", err
		}
		var clashes int64
		if err := tx.Model(&models.Order{}).Where("pickup_code = ?", code).Count(&clashes).Error; err != nil {
			return "", err
		}
		if clashes == 0 {
			return code, nil
		}
	}
	return "", ErrPickupCodeExhausted
}

// POST /api/order/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		// An absent body means an anonymous checkout
		var input CheckoutInput
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}

		// A verified token outranks whatever the body claims.
		userID := input.UserID
		if id, exists := c.Get("user_id"); exists {
			uid := id.(uint)
			userID = &uid
		}

		result, err := Checkout(db, sessionID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"orderId":    result.OrderID,
			"total":      result.Total,
			"pickupCode": result.PickupCode,
		})
	}
}

// GET /api/order/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /api/order/pickup
//
// Fulfilment is idempotent: presenting the code for an already-fulfilled
// order re-sets the same status and returns the same order id.
func PickupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PickupInput
		if err := c.ShouldBindJSON(&input); err != nil || input.PickupCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pickupCode required"})
			return
		}
		code := strings.ToUpper(strings.TrimSpace(input.PickupCode))

		var order models.Order
		if err := db.Where("pickup_code = ?", code).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid pickupCode"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusFulfilled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		order.Status = models.OrderStatusFulfilled
		broadcastFulfilment(order)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order fulfilled",
			"orderId": order.ID,
		})
	}
}
