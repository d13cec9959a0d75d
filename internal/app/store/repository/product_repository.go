package repository

import (
	"context"
	"errors"

	"storepulse/internal/app/store/entity"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetByNameAndCategory получает товар по паре (name, category)
// Используется для проверки уникальности перед созданием
func (r *productRepository) GetByNameAndCategory(ctx context.Context, name, category string) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "name = ? AND category = ?", name, category)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetAll получает все товары: категория по возрастанию, внутри категории - по имени
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Order("category ASC").
		Order("name ASC").
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// GetByCategory получает товары категории по имени
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// GetByPriceBounds получает товары с ценой в [min, max), по возрастанию цены.
// unbounded = true означает отсутствие верхней границы ("Over £200")
func (r *productRepository) GetByPriceBounds(ctx context.Context, min, max float64, unbounded bool) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).Where("price >= ?", min)
	if !unbounded {
		query = query.Where("price < ?", max)
	}

	var products []entity.Product
	result := query.Order("price ASC").Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Delete удаляет товар; отзывы удаляются каскадно на уровне БД
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
