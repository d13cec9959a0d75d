package db

import (
	"fmt"

	"gorm.io/gorm"

	"storepulse/internal/app/store/entity"
	"storepulse/pkg/logger"
)

var seedProducts = []entity.Product{
	// Electronics
	{Name: "iPhone 14 Pro", Category: "Electronics", Price: 999.99},
	{Name: "Samsung Galaxy Buds", Category: "Electronics", Price: 149.99},
	{Name: "Bluetooth Speaker", Category: "Electronics", Price: 29.99},

	// Clothing
	{Name: "Nike Air Force 1", Category: "Clothing", Price: 89.99},
	{Name: "Levi's 501 Jeans", Category: "Clothing", Price: 69.99},
	{Name: "Basic T-Shirt", Category: "Clothing", Price: 12.99},

	// Home & Garden
	{Name: "Dyson V11 Vacuum", Category: "Home & Garden", Price: 399.99},
	{Name: "Coffee Machine", Category: "Home & Garden", Price: 179.99},
	{Name: "Plant Pot Set", Category: "Home & Garden", Price: 15.99},

	// Sports
	{Name: "Wilson Tennis Racket", Category: "Sports", Price: 129.99},
	{Name: "Football", Category: "Sports", Price: 24.99},
	{Name: "Yoga Mat", Category: "Sports", Price: 34.99},

	// Beauty
	{Name: "MAC Lipstick", Category: "Beauty", Price: 22.50},
	{Name: "Skincare Set", Category: "Beauty", Price: 79.99},
	{Name: "Face Mask", Category: "Beauty", Price: 8.99},

	// Food & Drink
	{Name: "Organic Honey", Category: "Food & Drink", Price: 16.50},
	{Name: "Premium Wine", Category: "Food & Drink", Price: 45.00},
	{Name: "Artisan Chocolate Box", Category: "Food & Drink", Price: 28.99},
}

// Seed наполняет каталог стартовым набором товаров.
// Если таблица не пуста, наполнение пропускается.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Info().Int64("existing", count).Msg("Products already exist, skipping seeding")
		return nil
	}

	products := make([]entity.Product, len(seedProducts))
	copy(products, seedProducts)

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logger.Info().Int("count", len(seedProducts)).Msg("Seeded product catalog")
	return nil
}
