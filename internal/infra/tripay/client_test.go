package tripay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		APIKey:       "api-key",
		PrivateKey:   "private-key",
		MerchantCode: "T12345",
		BaseURL:      baseURL,
		HTTPClient:   http.DefaultClient,
	}
}

func TestSignature(t *testing.T) {
	c := testClient("")

	mac := hmac.New(sha256.New, []byte("private-key"))
	mac.Write([]byte("T12345ORDER-1-abc75000"))
	expected := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, c.Signature("ORDER-1-abc", 75000))
	assert.Len(t, c.Signature("ORDER-1-abc", 75000), 64)
}

func TestVerifyCallback(t *testing.T) {
	c := testClient("")
	body := []byte(`{"reference":"T0001","status":"PAID"}`)

	valid := c.CallbackSignature(body)
	assert.True(t, c.VerifyCallback(body, valid))
	assert.False(t, c.VerifyCallback(body, "deadbeef"))
	assert.False(t, c.VerifyCallback([]byte(`{"reference":"T0001","status":"PAID" }`), valid))
}

func TestCreateTransaction(t *testing.T) {
	var received CreateTransactionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/create", r.URL.Path)
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "",
			"data": map[string]interface{}{
				"reference":    "T0001",
				"checkout_url": "https://tripay.co.id/checkout/T0001",
				"status":       "UNPAID",
				"expired_time": 1700000000,
			},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	tx, err := c.CreateTransaction(&CreateTransactionRequest{
		Method:      "QRIS",
		MerchantRef: "ORDER-1-abc",
		Amount:      75000,
	})
	require.NoError(t, err)

	assert.Equal(t, "T0001", tx.Reference)
	assert.Equal(t, "https://tripay.co.id/checkout/T0001", tx.CheckoutURL)
	assert.Equal(t, int64(1700000000), tx.ExpiredTime)

	// The signature is attached server-side before sending.
	assert.Equal(t, c.Signature("ORDER-1-abc", 75000), received.Signature)
}

func TestCreateTransactionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Payment channel not available",
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	tx, err := c.CreateTransaction(&CreateTransactionRequest{
		Method:      "QRIS",
		MerchantRef: "ORDER-1-abc",
		Amount:      75000,
	})
	require.Error(t, err)
	assert.Nil(t, tx)
	assert.Contains(t, err.Error(), "Payment channel not available")
}

func TestCreateTransactionNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := testClient(srv.URL)
	_, err := c.CreateTransaction(&CreateTransactionRequest{
		Method:      "QRIS",
		MerchantRef: "ORDER-1-abc",
		Amount:      75000,
	})
	assert.Error(t, err)
}

func TestValidMethod(t *testing.T) {
	assert.True(t, ValidMethod("QRIS"))
	assert.True(t, ValidMethod("BRIVA"))
	assert.False(t, ValidMethod("qris"))
	assert.False(t, ValidMethod("BITCOIN"))
}
