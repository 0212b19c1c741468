package licenses

import "time"

// License is an append-only grant. OrderID carries a unique index so the
// database itself refuses a second license for the same order.
type License struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    uint  `gorm:"index"`
	ProductID uint
	OrderID   *uint `gorm:"uniqueIndex:idx_licenses_order_id"`

	KodeLisensi  string `gorm:"uniqueIndex:idx_licenses_kode"`
	Aktif        bool   `gorm:"default:true"`
	Tutorial     string
	LinkDownload string

	CreatedAt time.Time
	UpdatedAt time.Time
}
