package supplier

import (
	"errors"
	"net/http"

	"arfcoder-backend/database"

	"github.com/gin-gonic/gin"
)

// ProcessSupplierOrder is the admin re-trigger for a dispatch that failed
// after payment was confirmed.
func ProcessSupplierOrder(c *gin.Context) {
	var body struct {
		OrderID uint `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OrderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	if err := ProcessOrder(database.DB, body.OrderID); err != nil {
		if errors.Is(err, ErrNoActiveSupplier) {
			c.JSON(http.StatusConflict, gin.H{"error": "No active supplier configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
