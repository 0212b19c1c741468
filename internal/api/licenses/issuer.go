package licenses

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"arfcoder-backend/internal/domain/licenses"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/products"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateLicenseCode() string {
	suffix := make([]byte, 9)
	rand.Read(suffix)
	for i := range suffix {
		suffix[i] = codeAlphabet[int(suffix[i])%len(codeAlphabet)]
	}
	return fmt.Sprintf("LIC-%d-%s", time.Now().UnixMilli(), suffix)
}

func tutorialText(p *products.Product, code string) string {
	return fmt.Sprintf("Tutorial untuk %s:\n1. Download produk dari link yang disediakan\n2. Ekstrak file jika berupa ZIP\n3. Ikuti petunjuk instalasi\n4. Gunakan lisensi code: %s", p.NamaProduk, code)
}

func downloadLink(p *products.Product) string {
	return fmt.Sprintf("https://download.arfcoder.com/%s/%d", p.Kategori, p.ID)
}

// IssueForOrder grants the license for a paid order. Issuance is
// idempotent per order: when a license already exists for the order id the
// existing row is returned untouched. A missing product is an error for
// the caller to log; the order keeps its completed status because the
// payment itself was real.
func IssueForOrder(db *gorm.DB, order *orders.Order) (*licenses.License, error) {
	var existing licenses.License
	err := db.Where("order_id = ?", order.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up existing license: %w", err)
	}

	if len(order.Items) == 0 {
		return nil, fmt.Errorf("order %d has no items", order.ID)
	}
	productID := order.Items[0].ProductID

	var product products.Product
	if err := db.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	code := generateLicenseCode()
	orderID := order.ID
	license := licenses.License{
		UserID:       order.UserID,
		ProductID:    product.ID,
		OrderID:      &orderID,
		KodeLisensi:  code,
		Aktif:        true,
		Tutorial:     tutorialText(&product, code),
		LinkDownload: downloadLink(&product),
	}
	if err := db.Create(&license).Error; err != nil {
		return nil, fmt.Errorf("create license: %w", err)
	}

	fmt.Printf("✅ License created: %s for user %d\n", code, order.UserID)
	return &license, nil
}
