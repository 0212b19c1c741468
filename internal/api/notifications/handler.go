package notifications

import (
	"net/http"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/notifications"

	"github.com/gin-gonic/gin"
)

func ListNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rows []notifications.Notification
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": rows})
}

func MarkNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res := database.DB.Model(&notifications.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("status_baca", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
