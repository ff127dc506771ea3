package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/apexstock/apex-stock-api/internal/config"
	"github.com/apexstock/apex-stock-api/internal/database"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/services"
	"github.com/apexstock/apex-stock-api/pkg/logger"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Setup("development")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "init":
		initDB(db)
	case "admin":
		initDB(db)
		seedAdmin(db)
	case "data":
		initDB(db)
		seedData(db)
	case "all":
		initDB(db)
		seedAdmin(db)
		seedData(db)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  seed init   - Create database tables")
	fmt.Println("  seed admin  - Create default admin user")
	fmt.Println("  seed data   - Add sample suppliers and items")
	fmt.Println("  seed all    - Do all of the above")
}

func initDB(db *gorm.DB) {
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	fmt.Println("Database tables created")
}

func seedAdmin(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		fmt.Println("Admin user already exists, skipping")
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check for admin user: %v", err)
	}

	hash, err := services.HashPassword("admin123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@apexstock.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created (username: admin, password: admin123)")
	fmt.Println("CHANGE THE PASSWORD IN PRODUCTION!")
}

func seedData(db *gorm.DB) {
	var supplierCount int64
	if err := db.Model(&models.Supplier{}).Count(&supplierCount).Error; err != nil {
		log.Fatalf("Failed to count suppliers: %v", err)
	}
	if supplierCount > 0 {
		fmt.Println("Sample data already exists, skipping")
		return
	}

	strPtr := func(s string) *string { return &s }

	techSupplies := models.Supplier{
		Name:          "Tech Supplies Inc",
		ContactPerson: strPtr("John Doe"),
		Email:         strPtr("john@techsupplies.com"),
		Phone:         strPtr("555-1234"),
		Address:       strPtr("123 Tech Street"),
	}
	officeMart := models.Supplier{
		Name:          "Office Mart",
		ContactPerson: strPtr("Jane Smith"),
		Email:         strPtr("jane@officemart.com"),
		Phone:         strPtr("555-5678"),
		Address:       strPtr("456 Office Road"),
	}
	if err := db.Create(&techSupplies).Error; err != nil {
		log.Fatalf("Failed to create supplier: %v", err)
	}
	if err := db.Create(&officeMart).Error; err != nil {
		log.Fatalf("Failed to create supplier: %v", err)
	}

	items := []models.Item{
		{Name: "Laptop", Category: "Electronics", Quantity: 15, Price: 999.99, ReorderLevel: 5, SupplierID: &techSupplies.ID},
		{Name: "Mouse", Category: "Electronics", Quantity: 50, Price: 29.99, ReorderLevel: 10, SupplierID: &techSupplies.ID},
		{Name: "Keyboard", Category: "Electronics", Quantity: 3, Price: 79.99, ReorderLevel: 5, SupplierID: &techSupplies.ID},
		{Name: "Monitor", Category: "Electronics", Quantity: 8, Price: 299.99, ReorderLevel: 5, SupplierID: &techSupplies.ID},
		{Name: "Office Chair", Category: "Furniture", Quantity: 12, Price: 199.99, ReorderLevel: 3, SupplierID: &officeMart.ID},
		{Name: "Desk", Category: "Furniture", Quantity: 2, Price: 399.99, ReorderLevel: 3, SupplierID: &officeMart.ID},
		{Name: "Printer Paper", Category: "Supplies", Quantity: 100, Price: 4.99, ReorderLevel: 20, SupplierID: &officeMart.ID},
	}
	if err := db.Create(&items).Error; err != nil {
		log.Fatalf("Failed to create items: %v", err)
	}

	fmt.Printf("Seeded %d items and 2 suppliers\n", len(items))
}
