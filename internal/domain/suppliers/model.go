package suppliers

import "time"

type SupplierConfig struct {
	ID       uint `gorm:"primaryKey"`
	Nama     string
	APIURL   string `gorm:"column:api_url"`
	APIKey   string `gorm:"column:api_key"`
	Balance  int64
	IsActive bool `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransactionLog records one supplier call attempt. Written once, never
// updated; a retried dispatch appends a new row.
type TransactionLog struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"index"`
	SupplierID uint

	Status        string
	CostAmount    int64
	BalanceBefore int64
	BalanceAfter  int64

	SupplierResponse string `gorm:"type:text"` // raw response body

	CreatedAt time.Time
}
