package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/repository"
	"storepulse/internal/app/store/util"

	"storepulse/pkg/logger"
)

// Время жизни кеша каталога. Товары в нормальной работе не меняются,
// поэтому кеш сбрасывается только при создании или удалении товара
const productsCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозитория и Redis кеша
type CatalogService struct {
	productRepo repository.ProductRepository
	cache       util.ProductCache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(productRepo repository.ProductRepository, cache util.ProductCache) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// ListProducts возвращает весь каталог со справочниками категорий и диапазонов
// Сначала проверяет кеш, при промахе загружает из БД и кеширует
func (s *CatalogService) ListProducts(ctx context.Context) (*entity.ProductListResponse, error) {
	products, err := s.cache.GetProducts(ctx)
	if err != nil || products == nil {
		if err != nil {
			// Проблемы с кешем не критичны, продолжаем с БД
			logger.Warn().Err(err).Msg("Failed to read products cache")
		}

		products, err = s.productRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get products: %w", err)
		}
		if products == nil {
			// nil сериализуется в JSON null и читался бы как вечный промах
			products = make([]entity.Product, 0)
		}

		if err := s.cache.SetProducts(ctx, products, productsCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache products")
		}
	}

	return &entity.ProductListResponse{
		Products:    decorate(products),
		Categories:  entity.Categories,
		PriceRanges: entity.PriceRanges,
	}, nil
}

// ListByCategory возвращает товары категории
// Неизвестная категория - не ошибка, просто пустой список
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]entity.ProductWithRange, error) {
	products, err := s.productRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}

	return decorate(products), nil
}

// ListByPriceRange возвращает товары ценового диапазона по его метке.
// Числовые границы выводятся из той же разбивки, что и классификация цен,
// поэтому фильтр и аналитика никогда не расходятся на граничных ценах
func (s *CatalogService) ListByPriceRange(ctx context.Context, label string) ([]entity.ProductWithRange, error) {
	min, max, unbounded, ok := entity.PriceRangeBounds(label)
	if !ok {
		return nil, ErrInvalidPriceRange
	}

	products, err := s.productRepo.GetByPriceBounds(ctx, min, max, unbounded)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by price range: %w", err)
	}

	return decorate(products), nil
}

// GetProduct получает товар по ID
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*entity.ProductWithRange, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	decorated := entity.WithPriceRange(*product)
	return &decorated, nil
}

// CreateProduct создает новый товар
// Пара (name, category) уникальна: повторное создание отклоняется
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductWithRange, error) {
	if !entity.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	existing, err := s.productRepo.GetByNameAndCategory(ctx, req.Name, req.Category)
	if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
		return nil, fmt.Errorf("failed to check existing product: %w", err)
	}
	if existing != nil {
		return nil, ErrProductExists
	}

	product := &entity.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		// Гонка двух одинаковых созданий упирается в уникальный индекс
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrProductExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.cache.DeleteProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate products cache")
	}

	decorated := entity.WithPriceRange(*product)
	return &decorated, nil
}

// DeleteProduct удаляет товар; его отзывы удаляются каскадно на уровне БД
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.cache.DeleteProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate products cache")
	}

	return nil
}

func decorate(products []entity.Product) []entity.ProductWithRange {
	decorated := make([]entity.ProductWithRange, 0, len(products))
	for _, p := range products {
		decorated = append(decorated, entity.WithPriceRange(p))
	}
	return decorated
}
