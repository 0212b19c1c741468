package tripaywebhooks

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"arfcoder-backend/config"
	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/licenses"
	"arfcoder-backend/internal/domain/notifications"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/products"
	"arfcoder-backend/internal/domain/users"
	"arfcoder-backend/internal/infra/tripay"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	database.DB = db

	config.TRIPAY_API_KEY = "api-key"
	config.TRIPAY_PRIVATE_KEY = "private-key"
	config.TRIPAY_MERCHANT_CODE = "T12345"
	config.TRIPAY_BASE_URL = "http://unused"
	t.Cleanup(func() { config.TRIPAY_BASE_URL = "" })

	return db
}

func seedPendingOrder(t *testing.T, db *gorm.DB, reference string) orders.Order {
	t.Helper()

	user := users.User{Nama: "Budi", Email: "budi@example.com", IsVerified: true, Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	product := products.Product{NamaProduk: "Bot Premium", Kategori: "bot", Harga: 75000, Stok: 10, Aktif: true}
	require.NoError(t, db.Create(&product).Error)

	order := orders.Order{
		UserID:          user.ID,
		MerchantRef:     "ORDER-1700000000000-abcd1234",
		TripayReference: &reference,
		MetodeBayar:     "QRIS",
		Total:           75000,
		Jumlah:          1,
		PaymentStatus:   orders.StatusPending,
		Items: []orders.OrderItem{
			{ProductID: product.ID, Name: product.NamaProduk, UnitPrice: product.Harga, Quantity: 1},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

// deliver posts a callback with the given body bytes and headers and
// returns the recorder.
func deliver(t *testing.T, body []byte, signature, event string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/tripay-webhook", bytes.NewReader(body))
	if signature != "" {
		c.Request.Header.Set("X-Callback-Signature", signature)
	}
	if event != "" {
		c.Request.Header.Set("X-Callback-Event", event)
	}

	TripayWebhook(c)
	return w
}

func signedBody(t *testing.T, payload interface{}) ([]byte, string) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body, tripay.NewClient().CallbackSignature(body)
}

func orderStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var order orders.Order
	require.NoError(t, db.Where("id = ?", id).First(&order).Error)
	return order.PaymentStatus
}

func countLicenses(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&licenses.License{}).Count(&n).Error)
	return n
}

func countNotifications(t *testing.T, db *gorm.DB, tipe string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&notifications.Notification{}).Where("tipe = ?", tipe).Count(&n).Error)
	return n
}

func TestWebhookPaidCompletesOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{
		"reference":    "T0001",
		"merchant_ref": order.MerchantRef,
		"status":       "PAID",
	})
	w := deliver(t, body, sig, "payment_status")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, orders.StatusCompleted, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(1), countLicenses(t, db))
	assert.Equal(t, int64(1), countNotifications(t, db, notifications.TipeSuccess))

	var license licenses.License
	require.NoError(t, db.First(&license).Error)
	assert.Equal(t, order.UserID, license.UserID)
	assert.True(t, license.Aktif)
	assert.NotEmpty(t, license.KodeLisensi)
}

func TestWebhookRedeliveryIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{
		"reference":    "T0001",
		"merchant_ref": order.MerchantRef,
		"status":       "PAID",
	})

	w1 := deliver(t, body, sig, "payment_status")
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := deliver(t, body, sig, "payment_status")
	require.Equal(t, http.StatusOK, w2.Code)

	assert.Equal(t, orders.StatusCompleted, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(1), countLicenses(t, db))
	assert.Equal(t, int64(1), countNotifications(t, db, notifications.TipeSuccess))
}

func TestWebhookTerminalOrderIgnoresConflictingStatus(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	paidBody, paidSig := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "PAID"})
	require.Equal(t, http.StatusOK, deliver(t, paidBody, paidSig, "payment_status").Code)

	// A later FAILED for the same order must not move it off completed.
	failedBody, failedSig := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "FAILED"})
	require.Equal(t, http.StatusOK, deliver(t, failedBody, failedSig, "payment_status").Code)

	assert.Equal(t, orders.StatusCompleted, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(1), countLicenses(t, db))
}

func TestWebhookExpired(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "EXPIRED"})
	require.Equal(t, http.StatusOK, deliver(t, body, sig, "payment_status").Code)

	assert.Equal(t, orders.StatusExpired, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(0), countLicenses(t, db))
	assert.Equal(t, int64(1), countNotifications(t, db, notifications.TipeError))
}

func TestWebhookFailed(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "FAILED"})
	require.Equal(t, http.StatusOK, deliver(t, body, sig, "payment_status").Code)

	assert.Equal(t, orders.StatusFailed, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(0), countLicenses(t, db))
}

func TestWebhookUnpaidLeavesOrderPending(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "UNPAID"})
	require.Equal(t, http.StatusOK, deliver(t, body, sig, "payment_status").Code)

	assert.Equal(t, orders.StatusPending, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(0), countLicenses(t, db))
	assert.Equal(t, int64(0), countNotifications(t, db, notifications.TipeSuccess))
}

func TestWebhookTamperedSignature(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, _ := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "PAID"})
	w := deliver(t, body, "0000000000000000000000000000000000000000000000000000000000000000", "payment_status")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, orders.StatusPending, orderStatus(t, db, order.ID))
	assert.Equal(t, int64(0), countLicenses(t, db))
}

func TestWebhookModifiedBodyFailsSignature(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{"reference": "T0001", "merchant_ref": order.MerchantRef, "status": "UNPAID"})
	tampered := bytes.Replace(body, []byte("UNPAID"), []byte("PAID"), 1)

	w := deliver(t, tampered, sig, "payment_status")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, orders.StatusPending, orderStatus(t, db, order.ID))
}

func TestWebhookMissingHeaders(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{"reference": "T0001", "status": "PAID"})

	assert.Equal(t, http.StatusBadRequest, deliver(t, body, "", "payment_status").Code)
	assert.Equal(t, http.StatusBadRequest, deliver(t, body, sig, "").Code)
	assert.Equal(t, orders.StatusPending, orderStatus(t, db, order.ID))
}

func TestWebhookUnknownEventIgnored(t *testing.T) {
	db := setupTestDB(t)
	order := seedPendingOrder(t, db, "T0001")

	body, sig := signedBody(t, gin.H{"reference": "T0001", "status": "PAID"})
	w := deliver(t, body, sig, "open_transaction")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orders.StatusPending, orderStatus(t, db, order.ID))
}

func TestWebhookUnknownOrderAcceptedButFlagged(t *testing.T) {
	setupTestDB(t)

	body, sig := signedBody(t, gin.H{"reference": "T9999", "merchant_ref": "ORDER-x", "status": "PAID"})
	w := deliver(t, body, sig, "payment_status")

	// 200 so the provider stops redelivering, but success=false for operators.
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestWebhookMalformedPayload(t *testing.T) {
	setupTestDB(t)

	body := []byte("{not json")
	sig := tripay.NewClient().CallbackSignature(body)
	w := deliver(t, body, sig, "payment_status")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
