package supplier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/suppliers"

	"gorm.io/gorm"
)

var ErrNoActiveSupplier = errors.New("no active supplier configured")

var httpClient = &http.Client{Timeout: 30 * time.Second}

type dispatchRequest struct {
	ProductID   uint   `json:"product_id"`
	MerchantRef string `json:"merchant_ref"`
	Amount      int64  `json:"amount"`
}

type dispatchResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// ProcessOrder pushes a paid top-up order to the active supplier. Exactly
// one call attempt; the attempt and its outcome are appended to
// transaction_logs either way. A failed dispatch leaves the order completed
// (payment is the source of record) with supplier_status=failed so the
// admin can re-trigger it.
func ProcessOrder(db *gorm.DB, orderID uint) error {
	var order orders.Order
	if err := db.Preload("Items").Where("id = ?", orderID).First(&order).Error; err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order %d has no items", order.ID)
	}

	var sup suppliers.SupplierConfig
	if err := db.Where("is_active = ?", true).First(&sup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSupplier
		}
		return fmt.Errorf("load supplier: %w", err)
	}

	payload, _ := json.Marshal(dispatchRequest{
		ProductID:   order.Items[0].ProductID,
		MerchantRef: order.MerchantRef,
		Amount:      order.Total,
	})

	status := "failed"
	var result dispatchResponse
	rawResponse := ""

	req, err := http.NewRequest(http.MethodPost, sup.APIURL, bytes.NewReader(payload))
	if err == nil {
		req.Header.Set("Authorization", "Bearer "+sup.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, callErr := httpClient.Do(req)
		if callErr != nil {
			rawResponse = callErr.Error()
		} else {
			defer resp.Body.Close()
			raw, _ := io.ReadAll(resp.Body)
			rawResponse = string(raw)
			if json.Unmarshal(raw, &result) == nil && result.Success {
				status = "success"
			}
		}
	}

	balanceAfter := sup.Balance
	if status == "success" {
		balanceAfter -= order.Total
	}

	logRow := suppliers.TransactionLog{
		OrderID:          order.ID,
		SupplierID:       sup.ID,
		Status:           status,
		CostAmount:       order.Total,
		BalanceBefore:    sup.Balance,
		BalanceAfter:     balanceAfter,
		SupplierResponse: rawResponse,
	}
	if err := db.Create(&logRow).Error; err != nil {
		fmt.Println("❌ Failed to write transaction log:", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"supplier_status": status,
		"processed_at":    now,
	}
	if result.OrderID != "" {
		updates["supplier_order_id"] = result.OrderID
	}
	if err := db.Model(&orders.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update order supplier status: %w", err)
	}

	if status == "success" {
		if err := db.Model(&suppliers.SupplierConfig{}).
			Where("id = ?", sup.ID).
			Update("balance", sup.Balance-order.Total).Error; err != nil {
			fmt.Println("❌ Failed to update supplier balance:", err)
		}
		return nil
	}

	return fmt.Errorf("supplier dispatch failed for order %d: %s", order.ID, rawResponse)
}
