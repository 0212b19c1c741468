package orders

import (
	"arfcoder-backend/internal/domain/users"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusExpired   = "expired"
)

// IsTerminal reports whether no further payment transition is permitted.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed || status == StatusExpired
}

// Order is one checkout attempt. The initiator creates it in pending state
// and never touches it again; only the reconciler moves it to a terminal
// status. Rows are never deleted.
type Order struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index"`
	User   users.User

	MerchantRef     string  `gorm:"uniqueIndex:idx_orders_merchant_ref"`
	TripayReference *string `gorm:"uniqueIndex:idx_orders_tripay_reference"`
	StripeSessionID *string `gorm:"uniqueIndex:idx_orders_stripe_session_id"`
	PaymentURL      string

	MetodeBayar   string
	Total         int64 // captured at creation, immutable afterwards
	Jumlah        int
	PaymentStatus string `gorm:"default:'pending';index"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"`

	SupplierStatus  *string
	SupplierOrderID *string
	ProcessedAt     *time.Time

	ExpiredTime *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is the line snapshot taken at checkout time. Name and unit
// price come from the catalog row as it was then; later catalog edits
// must not change what the customer paid.
type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index"`
	ProductID uint
	Name      string
	Deskripsi string
	UnitPrice int64
	Quantity  int
}
