package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minishop-dev/minishop-api/models"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID uint `json:"productId"`
	Qty       int  `json:"qty"`
}

type RemoveItemInput struct {
	CartItemID uint `json:"cartItemId"`
}

// CartLine is one joined row of the cart view: current product name and
// price alongside the stored quantity.
type CartLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
}

// EnsureCart resolves the session's cart, creating it on first access.
// The unique index on session_id turns a lost find-or-create race into an
// insert conflict, in which case the winner's row is re-fetched.
func EnsureCart(db *gorm.DB, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("session_id = ?", sessionID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{SessionID: sessionID}
	if createErr := db.Create(&cart).Error; createErr != nil {
		var again models.Cart
		if err := db.Where("session_id = ?", sessionID).First(&again).Error; err == nil {
			return &again, nil
		}
		return nil, createErr
	}
	return &cart, nil
}

// CartLines loads the cart's items joined with live product data.
func CartLines(db *gorm.DB, cartID uint) ([]CartLine, float64, error) {
	lines := []CartLine{}
	err := db.Table("cart_items").
		Select("cart_items.id, cart_items.product_id, products.name, products.price, cart_items.qty, products.price * cart_items.qty AS subtotal").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, line := range lines {
		total += line.Subtotal
	}
	return lines, total, nil
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		cart, err := EnsureCart(db, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		lines, total, err := CartLines(db, cart.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": lines, "total": total})
	}
}

// POST /api/cart/add
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.ProductID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		qty := input.Qty
		if qty < 1 {
			qty = 1
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := EnsureCart(db, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Same product twice means one row with a bumped quantity.
		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
				return
			}
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Qty:       qty,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		item.Qty += qty
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// POST /api/cart/remove
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input RemoveItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.CartItemID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cartItemId required"})
			return
		}

		cart, err := EnsureCart(db, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Scoping the delete to the session's own cart keeps one session
		// from removing another session's items. A miss is a silent no-op.
		if err := db.Where("id = ? AND cart_id = ?", input.CartItemID, cart.ID).
			Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// POST /api/cart/clear
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		cart, err := EnsureCart(db, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
