package database

import (
	"fmt"
	"log"
	"os"

	"arfcoder-backend/internal/domain/cart"
	"arfcoder-backend/internal/domain/licenses"
	"arfcoder-backend/internal/domain/notifications"
	"arfcoder-backend/internal/domain/orders"
	"arfcoder-backend/internal/domain/products"
	"arfcoder-backend/internal/domain/redeem"
	"arfcoder-backend/internal/domain/stories"
	"arfcoder-backend/internal/domain/suppliers"
	"arfcoder-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(Models()...); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Models lists every domain model in migration order. Tests reuse it to
// migrate an in-memory database.
func Models() []interface{} {
	return []interface{}{
		&users.User{},
		&users.OTPCode{},

		&products.Product{},
		&cart.CartItem{},

		&orders.Order{},
		&orders.OrderItem{},
		&licenses.License{},
		&notifications.Notification{},

		&suppliers.SupplierConfig{},
		&suppliers.TransactionLog{},

		&redeem.RedeemCode{},
		&stories.Story{},
	}
}
