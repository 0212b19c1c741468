package checkout

import (
	"errors"
	"fmt"

	"arfcoder-backend/internal/domain/cart"
	"arfcoder-backend/internal/domain/products"

	"gorm.io/gorm"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidAmount   = errors.New("order amount must be greater than zero")
)

// SnapshotItem is one checkout line frozen at initiation time. The unit
// price always comes from the catalog row, never from the client.
type SnapshotItem struct {
	ProductID uint
	Name      string
	Deskripsi string
	UnitPrice int64
	Quantity  int
}

type RequestItem struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

// BuildSnapshot materializes the immutable line list for a checkout. With
// explicit request items those are priced against the live catalog; with
// none, the user's stored cart rows are used. No side effects.
func BuildSnapshot(db *gorm.DB, userID uint, requested []RequestItem) ([]SnapshotItem, error) {
	if len(requested) == 0 {
		var rows []cart.CartItem
		if err := db.Where("user_id = ?", userID).Order("created_at").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		for _, row := range rows {
			requested = append(requested, RequestItem{ID: row.ProductID, Quantity: row.Quantity})
		}
	}

	if len(requested) == 0 {
		return nil, ErrEmptyCart
	}

	var snapshot []SnapshotItem
	for _, item := range requested {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		var product products.Product
		err := db.Where("id = ? AND aktif = ?", item.ID, true).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, item.ID)
			}
			return nil, fmt.Errorf("load product: %w", err)
		}

		snapshot = append(snapshot, SnapshotItem{
			ProductID: product.ID,
			Name:      product.NamaProduk,
			Deskripsi: product.Deskripsi,
			UnitPrice: product.Harga,
			Quantity:  qty,
		})
	}

	return snapshot, nil
}

// SnapshotTotal is Σ unit_price × quantity in minor units. Integer
// arithmetic throughout; no rounding anywhere in the flow.
func SnapshotTotal(items []SnapshotItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

func snapshotQuantity(items []SnapshotItem) int {
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
