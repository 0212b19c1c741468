package orders

import (
	"fmt"

	licenseissuer "arfcoder-backend/internal/api/licenses"
	notifier "arfcoder-backend/internal/api/notifications"
	"arfcoder-backend/internal/api/supplier"
	"arfcoder-backend/internal/domain/notifications"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/products"
	"arfcoder-backend/internal/domain/users"

	"gorm.io/gorm"
)

// Provider payment statuses as Tripay reports them.
const (
	ProviderStatusPaid    = "PAID"
	ProviderStatusUnpaid  = "UNPAID"
	ProviderStatusExpired = "EXPIRED"
	ProviderStatusFailed  = "FAILED"
)

func mapProviderStatus(providerStatus string) (newStatus, pesan, tipe string) {
	switch providerStatus {
	case ProviderStatusPaid:
		return orders.StatusCompleted, "Pembayaran berhasil untuk order %s. Lisensi akan segera dikirim.", notifications.TipeSuccess
	case ProviderStatusExpired:
		return orders.StatusExpired, "Pembayaran untuk order %s telah kedaluwarsa.", notifications.TipeError
	case ProviderStatusFailed:
		return orders.StatusFailed, "Pembayaran untuk order %s gagal.", notifications.TipeError
	default:
		// UNPAID and anything unrecognized leave the order pending.
		return orders.StatusPending, "", ""
	}
}

// ApplyPaymentStatus runs the one-shot transition pending -> terminal and,
// only when this call wins the transition, triggers fulfillment. The status
// write is a compare-and-swap on payment_status = pending, so a redelivered
// webhook (or a concurrent duplicate) affects zero rows and short-circuits
// before any side effect. Side-effect failures are logged and swallowed;
// the committed transition is never rolled back.
func ApplyPaymentStatus(db *gorm.DB, order *orders.Order, providerStatus string) (transitioned bool, err error) {
	newStatus, pesanFormat, tipe := mapProviderStatus(providerStatus)
	if newStatus == orders.StatusPending {
		return false, nil
	}

	res := db.Model(&orders.Order{}).
		Where("id = ? AND payment_status = ?", order.ID, orders.StatusPending).
		Update("payment_status", newStatus)
	if res.Error != nil {
		return false, fmt.Errorf("update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Already terminal: idempotent no-op.
		return false, nil
	}
	order.PaymentStatus = newStatus

	fmt.Printf("Order %d updated to status: %s\n", order.ID, newStatus)

	pesan := fmt.Sprintf(pesanFormat, order.MerchantRef)
	if nErr := notifier.Notify(db, order.UserID, pesan, tipe); nErr != nil {
		fmt.Println("⚠️ Failed to create notification:", nErr)
	}

	if newStatus == orders.StatusCompleted {
		fulfill(db, order)
	}

	return true, nil
}

// fulfill runs the post-payment side effects for a completed order:
// license issuance, supplier dispatch for top-up products, confirmation
// mail. All of it best-effort relative to the committed status.
func fulfill(db *gorm.DB, order *orders.Order) {
	if _, err := licenseissuer.IssueForOrder(db, order); err != nil {
		fmt.Println("❌ Failed to create license:", err)
	}

	if needsDispatch(db, order) {
		if err := supplier.ProcessOrder(db, order.ID); err != nil {
			fmt.Println("❌ Supplier dispatch failed:", err)
		}
	}

	var user users.User
	if err := db.Where("id = ?", order.UserID).First(&user).Error; err == nil {
		subject := fmt.Sprintf("Pembayaran Berhasil - %s", order.MerchantRef)
		html := fmt.Sprintf("<h2>Pembayaran Berhasil</h2><p>Terima kasih! Pembayaran untuk order <strong>%s</strong> sebesar Rp %d telah kami terima. Lisensi Anda tersedia di halaman akun.</p>", order.MerchantRef, order.Total)
		if err := notifier.SendEmail(user.Email, subject, html); err != nil {
			fmt.Println("⚠️ Failed to send payment confirmation email:", err)
		}
	}
}

func needsDispatch(db *gorm.DB, order *orders.Order) bool {
	if len(order.Items) == 0 {
		return false
	}
	var product products.Product
	if err := db.Where("id = ?", order.Items[0].ProductID).First(&product).Error; err != nil {
		return false
	}
	return product.NeedsSupplierDispatch()
}
