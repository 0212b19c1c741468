package licenses

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arfcoder-backend/database"
	notifier "arfcoder-backend/internal/api/notifications"
	"arfcoder-backend/internal/domain/licenses"
	"arfcoder-backend/internal/domain/notifications"
	"arfcoder-backend/internal/domain/products"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetLicenses(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var rows []licenses.License
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load licenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"licenses": rows})
}

// CreateLicense issues a license outside the webhook path (admin tooling,
// manual fulfillment). The target user defaults to the caller; the license
// code may be supplied, otherwise one is derived from the product category.
func CreateLicense(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body struct {
		UserID      uint    `json:"user_id"`
		ProductID   uint    `json:"product_id"`
		OrderID     *uint   `json:"order_id"`
		KodeLisensi *string `json:"kode_lisensi"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}
	if body.UserID != 0 {
		userID = body.UserID
	}

	var product products.Product
	if err := database.DB.Where("id = ?", body.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}

	code := ""
	if body.KodeLisensi != nil && *body.KodeLisensi != "" {
		code = *body.KodeLisensi
	} else {
		ms := fmt.Sprint(time.Now().UnixMilli())
		code = strings.ToUpper(product.Kategori) + ms[len(ms)-6:]
	}

	license := licenses.License{
		UserID:       userID,
		ProductID:    product.ID,
		OrderID:      body.OrderID,
		KodeLisensi:  code,
		Aktif:        true,
		Tutorial:     tutorialText(&product, code),
		LinkDownload: downloadLink(&product),
	}
	if err := database.DB.Create(&license).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create license"})
		return
	}

	pesan := fmt.Sprintf("Lisensi %s telah berhasil dibuat! Kode lisensi: %s", product.NamaProduk, code)
	if err := notifier.Notify(database.DB, userID, pesan, notifications.TipeSuccess); err != nil {
		fmt.Println("⚠️ Failed to create license notification:", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "License created successfully",
		"license": license,
	})
}
