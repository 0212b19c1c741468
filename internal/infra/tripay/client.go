package tripay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arfcoder-backend/config"
)

const (
	sandboxBaseURL    = "https://tripay.co.id/api-sandbox"
	productionBaseURL = "https://tripay.co.id/api"
)

// Client talks to the Tripay merchant API. One bounded round-trip per
// call, no retries; a failed call surfaces to the caller immediately.
type Client struct {
	APIKey       string
	PrivateKey   string
	MerchantCode string
	BaseURL      string
	HTTPClient   *http.Client
}

func NewClient() *Client {
	baseURL := config.TRIPAY_BASE_URL
	if baseURL == "" {
		if config.TRIPAY_MODE == "production" {
			baseURL = productionBaseURL
		} else {
			baseURL = sandboxBaseURL
		}
	}

	return &Client{
		APIKey:       config.TRIPAY_API_KEY,
		PrivateKey:   config.TRIPAY_PRIVATE_KEY,
		MerchantCode: config.TRIPAY_MERCHANT_CODE,
		BaseURL:      baseURL,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Signature signs the canonical string merchant_code + merchant_ref + amount
// required by the transaction-create endpoint.
func (c *Client) Signature(merchantRef string, amount int64) string {
	mac := hmac.New(sha256.New, []byte(c.PrivateKey))
	fmt.Fprintf(mac, "%s%s%d", c.MerchantCode, merchantRef, amount)
	return hex.EncodeToString(mac.Sum(nil))
}

// CallbackSignature signs the exact raw callback body bytes.
func (c *Client) CallbackSignature(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.PrivateKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCallback compares the received hex signature against the expected
// one in constant time.
func (c *Client) VerifyCallback(body []byte, received string) bool {
	expected := c.CallbackSignature(body)
	return hmac.Equal([]byte(expected), []byte(received))
}

type OrderItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type CreateTransactionRequest struct {
	Method        string      `json:"method"`
	MerchantRef   string      `json:"merchant_ref"`
	Amount        int64       `json:"amount"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	OrderItems    []OrderItem `json:"order_items"`
	ReturnURL     string      `json:"return_url"`
	ExpiredTime   int64       `json:"expired_time"`
	Signature     string      `json:"signature"`
}

type Transaction struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
	ExpiredTime int64  `json:"expired_time"`
}

type createTransactionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

// CreateTransaction opens a payment session with Tripay and returns the
// provider reference plus checkout URL.
func (c *Client) CreateTransaction(req *CreateTransactionRequest) (*Transaction, error) {
	req.Signature = c.Signature(req.MerchantRef, req.Amount)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal tripay request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.BaseURL+"/transaction/create", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build tripay request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call tripay: %w", err)
	}
	defer resp.Body.Close()

	var result createTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode tripay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		if result.Message != "" {
			return nil, fmt.Errorf("tripay: %s", result.Message)
		}
		return nil, fmt.Errorf("tripay: transaction create failed with status %d", resp.StatusCode)
	}

	return &result.Data, nil
}
