package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const otpTTL = 15 * time.Minute

func generateOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in real trouble
		panic(err)
	}
	return fmt.Sprint(n.Int64() + 100000)
}

func issueOTP(user *users.User, purpose string) error {
	code := generateOTPCode()
	userID := user.ID

	otp := users.OTPCode{
		UserID:    &userID,
		Kode:      code,
		Purpose:   purpose,
		Used:      false,
		ExpiredAt: time.Now().Add(otpTTL),
	}
	if err := database.DB.Create(&otp).Error; err != nil {
		return fmt.Errorf("save otp: %w", err)
	}

	return SendOTPEmail(user.Email, code, purpose)
}

func SendOTP(c *gin.Context) {
	var body struct {
		Email   string `json:"email" binding:"required,email"`
		Purpose string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}
	if body.Purpose == "" {
		body.Purpose = users.OTPPurposeEmailVerification
	}

	var user users.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Don't reveal which emails have accounts.
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	if err := issueOTP(&user, body.Purpose); err != nil {
		fmt.Println("❌ Failed to send OTP:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "OTP sent successfully",
		"expires_at": time.Now().Add(otpTTL),
	})
}

func VerifyOTP(c *gin.Context) {
	var body struct {
		OTPCode string `json:"otp_code" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Purpose string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP code and email are required"})
		return
	}
	if body.Purpose == "" {
		body.Purpose = users.OTPPurposeEmailVerification
	}

	var user users.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or expired OTP code"})
		return
	}

	var otp users.OTPCode
	err := database.DB.
		Where("kode = ? AND user_id = ? AND purpose = ? AND used = ? AND expired_at >= ?",
			body.OTPCode, user.ID, body.Purpose, false, time.Now()).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or expired OTP code"})
		return
	}

	// Single use: flip before acting on it.
	if err := database.DB.Model(&otp).Update("used", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update OTP"})
		return
	}

	if body.Purpose == users.OTPPurposeEmailVerification {
		if err := database.DB.Model(&user).Update("is_verified", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified successfully"})
}
