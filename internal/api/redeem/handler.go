package redeem

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"arfcoder-backend/database"
	notifier "arfcoder-backend/internal/api/notifications"
	"arfcoder-backend/internal/domain/notifications"
	"arfcoder-backend/internal/domain/redeem"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRedeemCode lets an admin mint a one-time code.
func CreateRedeemCode(c *gin.Context) {
	adminID := c.GetUint("user_id")

	var body struct {
		Kode      string     `json:"kode" binding:"required"`
		Reward    string     `json:"reward" binding:"required"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kode and reward are required"})
		return
	}

	code := redeem.RedeemCode{
		Kode:      body.Kode,
		Reward:    body.Reward,
		Status:    redeem.StatusActive,
		CreatedBy: &adminID,
		ExpiresAt: body.ExpiresAt,
	}
	if err := database.DB.Create(&code).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Redeem code already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"redeem_code": code})
}

// RedeemCode exchanges a one-time code for its reward. The used-flip is a
// compare-and-swap on status=active so two concurrent submissions of the
// same code cannot both win.
func RedeemCode(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body struct {
		Kode string `json:"kode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Kode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redeem code is required"})
		return
	}

	var code redeem.RedeemCode
	err := database.DB.
		Where("kode = ? AND status = ?", body.Kode, redeem.StatusActive).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired redeem code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load redeem code"})
		return
	}

	if code.ExpiresAt != nil && code.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redeem code has expired"})
		return
	}

	now := time.Now()
	res := database.DB.Model(&redeem.RedeemCode{}).
		Where("id = ? AND status = ?", code.ID, redeem.StatusActive).
		Updates(map[string]interface{}{
			"status":  redeem.StatusUsed,
			"used_by": userID,
			"used_at": now,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem code"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired redeem code"})
		return
	}

	pesan := fmt.Sprintf("Selamat! Anda telah berhasil menukar kode redeem dan mendapatkan: %s", code.Reward)
	if err := notifier.Notify(database.DB, userID, pesan, notifications.TipeSuccess); err != nil {
		fmt.Println("⚠️ Failed to create redeem notification:", err)
	}

	fmt.Printf("Redeem code %s used by user %d\n", body.Kode, userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Redeem code successfully used",
		"reward":  code.Reward,
	})
}
