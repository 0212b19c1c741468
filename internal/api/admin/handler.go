package admin

import (
	"net/http"
	"time"

	"arfcoder-backend/database"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint      `json:"id"`
	Nama       string    `json:"nama"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminOrder struct {
	ID             uint   `json:"id"`
	Email          string `json:"email"`
	MerchantRef    string `json:"merchant_ref"`
	MetodeBayar    string `json:"metode_bayar"`
	Total          int64  `json:"total"`
	PaymentStatus  string `json:"payment_status"`
	SupplierStatus string `json:"supplier_status,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type AdminStats struct {
	TotalUsers      int            `json:"total_users"`
	TotalRevenue    int64          `json:"total_revenue"`
	RecentRevenue   int64          `json:"recent_revenue"`
	OrdersPerStatus map[string]int `json:"orders_per_status"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalRevenue int64
	var recentRevenue int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&orders.Order{}).
		Where("payment_status = ?", orders.StatusCompleted).
		Select("COALESCE(SUM(total), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&orders.Order{}).
		Where("payment_status = ? AND created_at >= ?", orders.StatusCompleted, thirtyDaysAgo).
		Select("COALESCE(SUM(total), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type StatusCount struct {
		PaymentStatus string
		Count         int
	}
	var counts []StatusCount
	database.DB.Model(&orders.Order{}).
		Select("payment_status, COUNT(id) as count").
		Group("payment_status").
		Scan(&counts)

	stats.OrdersPerStatus = map[string]int{}
	for _, row := range counts {
		stats.OrdersPerStatus[row.PaymentStatus] = row.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var rows []users.User
	if err := database.DB.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var result []AdminUser
	for _, u := range rows {
		result = append(result, AdminUser{
			ID:         u.ID,
			Nama:       u.Nama,
			Email:      u.Email,
			Phone:      u.Phone,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, result)
}

func ListAllOrders(c *gin.Context) {
	var rows []orders.Order
	if err := database.DB.Preload("User").Order("created_at DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	var result []AdminOrder
	for _, o := range rows {
		supplierStatus := ""
		if o.SupplierStatus != nil {
			supplierStatus = *o.SupplierStatus
		}
		result = append(result, AdminOrder{
			ID:             o.ID,
			Email:          o.User.Email,
			MerchantRef:    o.MerchantRef,
			MetodeBayar:    o.MetodeBayar,
			Total:          o.Total,
			PaymentStatus:  o.PaymentStatus,
			SupplierStatus: supplierStatus,
			CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}
