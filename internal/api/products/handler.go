package products

import (
	"net/http"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/products"

	"github.com/gin-gonic/gin"
)

func ListProducts(c *gin.Context) {
	var rows []products.Product
	if err := database.DB.
		Where("aktif = ?", true).
		Order("kategori").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": rows})
}

func CreateProduct(c *gin.Context) {
	var body struct {
		NamaProduk string `json:"nama_produk" binding:"required"`
		Deskripsi  string `json:"deskripsi"`
		Kategori   string `json:"kategori" binding:"required"`
		Harga      int64  `json:"harga" binding:"required"`
		Stok       int    `json:"stok"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Harga <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "harga must be greater than zero"})
		return
	}

	product := products.Product{
		NamaProduk: body.NamaProduk,
		Deskripsi:  body.Deskripsi,
		Kategori:   body.Kategori,
		Harga:      body.Harga,
		Stok:       body.Stok,
		Aktif:      true,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func UpdateProduct(c *gin.Context) {
	var product products.Product
	if err := database.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var body struct {
		NamaProduk *string `json:"nama_produk"`
		Deskripsi  *string `json:"deskripsi"`
		Kategori   *string `json:"kategori"`
		Harga      *int64  `json:"harga"`
		Stok       *int    `json:"stok"`
		Aktif      *bool   `json:"aktif"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if body.NamaProduk != nil {
		updates["nama_produk"] = *body.NamaProduk
	}
	if body.Deskripsi != nil {
		updates["deskripsi"] = *body.Deskripsi
	}
	if body.Kategori != nil {
		updates["kategori"] = *body.Kategori
	}
	if body.Harga != nil {
		updates["harga"] = *body.Harga
	}
	if body.Stok != nil {
		updates["stok"] = *body.Stok
	}
	if body.Aktif != nil {
		updates["aktif"] = *body.Aktif
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
