package checkout

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arfcoder-backend/config"
	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/users"
	"arfcoder-backend/internal/infra/tripay"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// newMerchantRef keeps the outward ORDER-<timestamp>-<fragment> shape but
// takes the fragment from a random UUID so concurrent checkouts cannot
// collide.
func newMerchantRef() string {
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// CreateTripayPayment initiates a payment session: snapshot, signature,
// provider call, then exactly one pending order row. Any failure before or
// during the provider call leaves no order behind.
func CreateTripayPayment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not found"})
		return
	}

	var body struct {
		Items         []RequestItem `json:"items"`
		PaymentMethod string        `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if body.PaymentMethod == "" {
		body.PaymentMethod = "BRIVA"
	}
	if !tripay.ValidMethod(body.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown payment method"})
		return
	}

	snapshot, err := BuildSnapshot(database.DB, userID, body.Items)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to build order"})
		return
	}

	amount := SnapshotTotal(snapshot)
	if amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ErrInvalidAmount.Error()})
		return
	}

	merchantRef := newMerchantRef()

	customerName := user.Nama
	if customerName == "" {
		customerName = strings.SplitN(user.Email, "@", 2)[0]
	}
	customerPhone := user.Phone
	if customerPhone == "" {
		customerPhone = "08123456789"
	}

	orderItems := make([]tripay.OrderItem, 0, len(snapshot))
	for _, item := range snapshot {
		orderItems = append(orderItems, tripay.OrderItem{
			SKU:      fmt.Sprintf("ITEM-%d", item.ProductID),
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		})
	}

	client := tripay.NewClient()
	tx, err := client.CreateTransaction(&tripay.CreateTransactionRequest{
		Method:        body.PaymentMethod,
		MerchantRef:   merchantRef,
		Amount:        amount,
		CustomerName:  customerName,
		CustomerEmail: user.Email,
		CustomerPhone: customerPhone,
		OrderItems:    orderItems,
		ReturnURL:     config.APP_URL + "/payment-success",
		ExpiredTime:   time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		fmt.Println("❌ Tripay API error:", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	expired := time.Unix(tx.ExpiredTime, 0)
	reference := tx.Reference
	order := orders.Order{
		UserID:          userID,
		MerchantRef:     merchantRef,
		TripayReference: &reference,
		PaymentURL:      tx.CheckoutURL,
		MetodeBayar:     body.PaymentMethod,
		Total:           amount,
		Jumlah:          snapshotQuantity(snapshot),
		PaymentStatus:   orders.StatusPending,
		ExpiredTime:     &expired,
	}
	for _, item := range snapshot {
		order.Items = append(order.Items, orders.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Deskripsi: item.Deskripsi,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	if err := database.DB.Create(&order).Error; err != nil {
		fmt.Println("❌ Failed to save order:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save order to database"})
		return
	}

	fmt.Println("✅ Tripay transaction created:", tx.Reference)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"payment_url":    tx.CheckoutURL,
		"reference":      tx.Reference,
		"merchant_ref":   merchantRef,
		"amount":         amount,
		"payment_method": body.PaymentMethod,
		"expired_time":   tx.ExpiredTime,
	})
}
