package stories

import (
	"net/http"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/stories"

	"github.com/gin-gonic/gin"
)

func ListStories(c *gin.Context) {
	var rows []stories.Story
	if err := database.DB.
		Where("status = ?", stories.StatusApproved).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stories": rows})
}

func CreateStory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Judul    string `json:"judul" binding:"required"`
		Isi      string `json:"isi" binding:"required"`
		Kategori string `json:"kategori"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story := stories.Story{
		PenulisID: userID,
		Judul:     body.Judul,
		Isi:       body.Isi,
		Kategori:  body.Kategori,
		Status:    stories.StatusPending,
	}
	if err := database.DB.Create(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit story"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"story": story})
}

func ModerateStory(c *gin.Context) {
	var body struct {
		Status     string  `json:"status" binding:"required"`
		AdminNotes *string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Status != stories.StatusApproved && body.Status != stories.StatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
		return
	}

	res := database.DB.Model(&stories.Story{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"status":      body.Status,
			"admin_notes": body.AdminNotes,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate story"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story moderated"})
}
