package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	database.DB = db
	return db
}

func seedUnverifiedUser(t *testing.T, db *gorm.DB, email string) users.User {
	t.Helper()
	user := users.User{Nama: "Baru", Email: email, IsVerified: false, Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedOTP(t *testing.T, db *gorm.DB, userID uint, kode, purpose string, used bool, expiredAt time.Time) users.OTPCode {
	t.Helper()
	otp := users.OTPCode{UserID: &userID, Kode: kode, Purpose: purpose, Used: used, ExpiredAt: expiredAt}
	require.NoError(t, db.Create(&otp).Error)
	return otp
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestSendOTP(t *testing.T) {
	db := setupTestDB(t)
	user := seedUnverifiedUser(t, db, "baru@example.com")

	w := postJSON(t, SendOTP, "/send-otp", gin.H{"email": user.Email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var otp users.OTPCode
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&otp).Error)
	assert.Equal(t, users.OTPPurposeEmailVerification, otp.Purpose)
	assert.False(t, otp.Used)
	assert.Regexp(t, `^\d{6}$`, otp.Kode)
	assert.True(t, otp.ExpiredAt.After(time.Now()))
}

func TestSendOTPUnknownEmailDoesNotLeak(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, SendOTP, "/send-otp", gin.H{"email": "tidakada@example.com"})
	// Same 200 as the known-account path.
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&users.OTPCode{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestVerifyOTP(t *testing.T) {
	db := setupTestDB(t)
	user := seedUnverifiedUser(t, db, "verif@example.com")
	seedOTP(t, db, user.ID, "123456", users.OTPPurposeEmailVerification, false, time.Now().Add(10*time.Minute))

	w := postJSON(t, VerifyOTP, "/verify-otp", gin.H{"email": user.Email, "otp_code": "123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded users.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.True(t, reloaded.IsVerified)

	var otp users.OTPCode
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&otp).Error)
	assert.True(t, otp.Used)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	db := setupTestDB(t)
	user := seedUnverifiedUser(t, db, "salah@example.com")
	seedOTP(t, db, user.ID, "123456", users.OTPPurposeEmailVerification, false, time.Now().Add(10*time.Minute))

	w := postJSON(t, VerifyOTP, "/verify-otp", gin.H{"email": user.Email, "otp_code": "654321"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded users.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&reloaded).Error)
	assert.False(t, reloaded.IsVerified)
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	db := setupTestDB(t)
	user := seedUnverifiedUser(t, db, "telat@example.com")
	seedOTP(t, db, user.ID, "123456", users.OTPPurposeEmailVerification, false, time.Now().Add(-time.Minute))

	w := postJSON(t, VerifyOTP, "/verify-otp", gin.H{"email": user.Email, "otp_code": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTPSingleUse(t *testing.T) {
	db := setupTestDB(t)
	user := seedUnverifiedUser(t, db, "sekali@example.com")
	seedOTP(t, db, user.ID, "123456", users.OTPPurposeEmailVerification, false, time.Now().Add(10*time.Minute))

	require.Equal(t, http.StatusOK, postJSON(t, VerifyOTP, "/verify-otp", gin.H{"email": user.Email, "otp_code": "123456"}).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(t, VerifyOTP, "/verify-otp", gin.H{"email": user.Email, "otp_code": "123456"}).Code)
}

func TestVerifyOTPPurposeMismatch(t *testing.T) {
	db := setupTestDB(t)
	user := seedUnverifiedUser(t, db, "tujuan@example.com")
	seedOTP(t, db, user.ID, "123456", users.OTPPurposePasswordReset, false, time.Now().Add(10*time.Minute))

	w := postJSON(t, VerifyOTP, "/verify-otp", gin.H{
		"email":    user.Email,
		"otp_code": "123456",
		"purpose":  users.OTPPurposeEmailVerification,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
