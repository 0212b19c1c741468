package orders

import (
	"errors"
	"net/http"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetMyOrders(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rows []orders.Order
	if err := database.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": rows})
}

// GetOrderStatus backs the order-status page: one order by merchant ref,
// scoped to the requesting user.
func GetOrderStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var order orders.Order
	err := database.DB.Preload("Items").
		Where("merchant_ref = ? AND user_id = ?", c.Param("merchant_ref"), userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"merchant_ref":   order.MerchantRef,
		"payment_status": order.PaymentStatus,
		"payment_url":    order.PaymentURL,
		"metode_bayar":   order.MetodeBayar,
		"total":          order.Total,
		"items":          order.Items,
		"created_at":     order.CreatedAt,
	})
}
