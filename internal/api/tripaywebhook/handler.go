package tripaywebhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"arfcoder-backend/database"
	ordersapi "arfcoder-backend/internal/api/orders"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/infra/tripay"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type paymentStatusPayload struct {
	Reference   string `json:"reference"`
	MerchantRef string `json:"merchant_ref"`
	Status      string `json:"status"`
}

// TripayWebhook receives asynchronous payment-status callbacks. The
// transport is unauthenticated; trust comes solely from the HMAC signature
// over the raw body. Unknown event types are acknowledged with 200 so
// Tripay stops redelivering them.
func TripayWebhook(c *gin.Context) {
	payload, err := readWebhookBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Error reading request body"})
		return
	}

	receivedSignature := c.GetHeader("X-Callback-Signature")
	callbackEvent := c.GetHeader("X-Callback-Event")
	if receivedSignature == "" || callbackEvent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required webhook headers"})
		return
	}

	client := tripay.NewClient()
	if !client.VerifyCallback(payload, receivedSignature) {
		fmt.Println("❌ Invalid signature on Tripay webhook")
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid webhook signature"})
		return
	}

	if callbackEvent != "payment_status" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event ignored"})
		return
	}

	var data paymentStatusPayload
	if err := json.Unmarshal(payload, &data); err != nil || data.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Malformed webhook payload"})
		return
	}

	// The provider reference is the stable identity from Tripay's side;
	// merchant_ref is informational here.
	var order orders.Order
	err = database.DB.Preload("Items").
		Where("tripay_reference = ?", data.Reference).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 200 on purpose: a non-2xx would make Tripay redeliver a
			// webhook we will never be able to match. This still needs a
			// human to look at.
			fmt.Println("❌ Order not found for Tripay reference:", data.Reference)
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load order"})
		return
	}

	if _, err := ordersapi.ApplyPaymentStatus(database.DB, &order, data.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook processed successfully"})
}

func readWebhookBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
