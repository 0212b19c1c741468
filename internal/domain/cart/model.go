package cart

import (
	"arfcoder-backend/internal/domain/products"
	"time"
)

type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product"`
	Product   products.Product
	Quantity  int `gorm:"default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
