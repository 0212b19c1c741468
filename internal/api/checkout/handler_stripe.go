package checkout

import (
	"errors"
	"fmt"
	"net/http"

	"arfcoder-backend/config"
	"arfcoder-backend/database"
	ordersapi "arfcoder-backend/internal/api/orders"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// CreateStripeCheckout is the card-payment alternative to the Tripay flow.
// Same create-or-nothing discipline: the pending order row is written only
// after Stripe accepted the session.
func CreateStripeCheckout(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var body struct {
		Items []RequestItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	snapshot, err := BuildSnapshot(database.DB, userID, body.Items)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build order"})
		return
	}

	amount := SnapshotTotal(snapshot)
	if amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidAmount.Error()})
		return
	}

	var lineItems []*stripe.CheckoutSessionLineItemParams
	for _, item := range snapshot {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("idr"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Deskripsi),
				},
				UnitAmount: stripe.Int64(item.UnitPrice),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	merchantRef := newMerchantRef()

	params := &stripe.CheckoutSessionParams{
		CustomerEmail: stripe.String(user.Email),
		LineItems:     lineItems,
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(config.APP_URL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(config.APP_URL + "/payment-cancel"),
		Metadata: map[string]string{
			"user_id":      fmt.Sprint(user.ID),
			"merchant_ref": merchantRef,
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	sessionID := s.ID
	order := orders.Order{
		UserID:          userID,
		MerchantRef:     merchantRef,
		StripeSessionID: &sessionID,
		PaymentURL:      s.URL,
		MetodeBayar:     "STRIPE",
		Total:           amount,
		Jumlah:          snapshotQuantity(snapshot),
		PaymentStatus:   orders.StatusPending,
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order to database"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "session_id": s.ID})
}

// VerifyStripePayment is the return-URL poll: it asks Stripe for the
// session state and, when paid, pushes the order through the same
// completion transition as a PAID webhook. The CAS inside the reconciler
// makes repeated verification calls harmless.
func VerifyStripePayment(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	session, err := checkoutsession.Get(body.SessionID, nil)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve checkout session"})
		return
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusOK, gin.H{
			"success":        false,
			"payment_status": session.PaymentStatus,
			"message":        "Payment not completed yet",
		})
		return
	}

	var order orders.Order
	err = database.DB.Preload("Items").
		Where("stripe_session_id = ? AND user_id = ?", body.SessionID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Println("❌ Order not found for Stripe session:", body.SessionID)
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	if _, err := ordersapi.ApplyPaymentStatus(database.DB, &order, ordersapi.ProviderStatusPaid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"payment_status": session.PaymentStatus,
		"amount_total":   session.AmountTotal,
		"currency":       session.Currency,
	})
}
