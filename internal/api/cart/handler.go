package cart

import (
	"errors"
	"net/http"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/cart"
	"arfcoder-backend/internal/domain/products"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetCart(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rows []cart.CartItem
	if err := database.DB.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart_items": rows})
}

func AddToCart(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	var product products.Product
	if err := database.DB.Where("id = ? AND aktif = ?", body.ProductID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}

	var existing cart.CartItem
	err := database.DB.Where("user_id = ? AND product_id = ?", userID, body.ProductID).First(&existing).Error
	if err == nil {
		if err := database.DB.Model(&existing).Update("quantity", existing.Quantity+body.Quantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	item := cart.CartItem{UserID: userID, ProductID: body.ProductID, Quantity: body.Quantity}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart"})
}

func RemoveFromCart(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&cart.CartItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

func ClearCart(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := database.DB.Where("user_id = ?", userID).Delete(&cart.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
