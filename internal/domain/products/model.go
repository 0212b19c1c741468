package products

import "time"

const (
	KategoriSoftware = "software"
	KategoriBot      = "bot"
	KategoriGame     = "game"
	KategoriPulsa    = "pulsa"
)

type Product struct {
	ID         uint   `gorm:"primaryKey"`
	NamaProduk string `gorm:"not null"`
	Deskripsi  string
	Kategori   string `gorm:"index"`
	Harga      int64  `gorm:"not null"` // IDR, smallest unit
	Stok       int
	Aktif      bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NeedsSupplierDispatch reports whether fulfillment goes through the
// top-up supplier rather than license issuance.
func (p *Product) NeedsSupplierDispatch() bool {
	return p.Kategori == KategoriGame || p.Kategori == KategoriPulsa
}
