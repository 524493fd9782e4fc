package utils

import (
	"fmt"
	"testing"
	"time"

	"grocerystore/config"
	"grocerystore/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TestSetup points config.DB at a fresh in-memory database so tests run
// without a Postgres server
func TestSetup(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// The in-memory database lives per connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.DB = db
}

// CreateTestUser creates a test user
func CreateTestUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  "Test123!",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestClient creates a client with the given wallet balance
func CreateTestClient(t *testing.T, username string, money decimal.Decimal) *models.Client {
	t.Helper()

	user := CreateTestUser(t, username)
	client := &models.Client{
		UserID: user.ID,
		Money:  money,
	}
	if err := config.DB.Create(client).Error; err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}
	return client
}

// CreateTestCategory creates a test category
func CreateTestCategory(t *testing.T) *models.Category {
	t.Helper()

	category := &models.Category{
		Title:       "Vegetables",
		Description: "Fresh vegetables",
	}
	if err := config.DB.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestProduct creates a product with the given price
func CreateTestProduct(t *testing.T, title string, price decimal.Decimal) *models.Product {
	t.Helper()

	category := CreateTestCategory(t)
	product := &models.Product{
		Title:      title,
		Price:      price,
		CategoryID: category.ID,
	}
	if err := config.DB.Create(product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

// CreateTestPromotion creates a promotion active from today for a week
func CreateTestPromotion(t *testing.T, title string, discount int) *models.Promotion {
	t.Helper()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	promotion := &models.Promotion{
		Title:          title,
		DiscountAmount: discount,
		StartDate:      today,
		EndDate:        today.AddDate(0, 0, 7),
	}
	if err := config.DB.Create(promotion).Error; err != nil {
		t.Fatalf("Failed to create test promotion: %v", err)
	}
	return promotion
}

// LinkTestPromotion links a promotion to a product
func LinkTestPromotion(t *testing.T, product *models.Product, promotion *models.Promotion) {
	t.Helper()

	link := &models.ProductToPromotion{
		ProductID:   product.ID,
		PromotionID: promotion.ID,
	}
	if err := config.DB.Create(link).Error; err != nil {
		t.Fatalf("Failed to link test promotion: %v", err)
	}
}
