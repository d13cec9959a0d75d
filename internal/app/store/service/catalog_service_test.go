package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/repository"
	"storepulse/internal/app/store/repository/mocks"
)

func TestListProducts_CacheHit(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	cached := []entity.Product{
		{ID: 1, Name: "Bluetooth Speaker", Category: "Electronics", Price: 29.99},
	}

	cache.On("GetProducts", ctx).Return(cached, nil)

	resp, err := service.ListProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp.Products, 1)
	assert.Equal(t, "£20-£50", resp.Products[0].PriceRange)
	assert.Equal(t, "£29.99", resp.Products[0].FormattedPrice)
	assert.Equal(t, entity.Categories, resp.Categories)
	assert.Equal(t, entity.PriceRanges, resp.PriceRanges)
	productRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestListProducts_CacheMiss(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	products := []entity.Product{
		{ID: 1, Name: "Face Mask", Category: "Beauty", Price: 8.99},
		{ID: 2, Name: "iPhone 14 Pro", Category: "Electronics", Price: 999.99},
	}

	cache.On("GetProducts", ctx).Return(nil, nil)
	productRepo.On("GetAll", ctx).Return(products, nil)
	cache.On("SetProducts", ctx, products, productsCacheTTL).Return(nil)

	resp, err := service.ListProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, "Under £20", resp.Products[0].PriceRange)
	assert.Equal(t, "Over £200", resp.Products[1].PriceRange)
	cache.AssertCalled(t, "SetProducts", ctx, products, productsCacheTTL)
}

func TestListProducts_EmptyCatalogCachesEmptySlice(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()

	cache.On("GetProducts", ctx).Return(nil, nil)
	productRepo.On("GetAll", ctx).Return(nil, nil)
	// nil из репозитория превращается в пустой срез перед кешированием,
	// иначе закешированный null вечно читался бы как промах
	cache.On("SetProducts", ctx, mock.MatchedBy(func(p []entity.Product) bool {
		return p != nil && len(p) == 0
	}), productsCacheTTL).Return(nil)

	resp, err := service.ListProducts(ctx)

	assert.NoError(t, err)
	assert.Empty(t, resp.Products)
	cache.AssertExpectations(t)
}

func TestListProducts_CacheErrorFallsBackToRepo(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	products := []entity.Product{
		{ID: 1, Name: "Yoga Mat", Category: "Sports", Price: 34.99},
	}

	cache.On("GetProducts", ctx).Return(nil, errors.New("redis down"))
	productRepo.On("GetAll", ctx).Return(products, nil)
	cache.On("SetProducts", ctx, products, productsCacheTTL).Return(errors.New("redis down"))

	resp, err := service.ListProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp.Products, 1)
}

func TestListByCategory_UnknownCategoryReturnsEmpty(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	productRepo.On("GetByCategory", ctx, "Toys").Return([]entity.Product{}, nil)

	products, err := service.ListByCategory(ctx, "Toys")

	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestListByPriceRange_Success(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	products := []entity.Product{
		{ID: 1, Name: "MAC Lipstick", Category: "Beauty", Price: 22.50},
	}

	productRepo.On("GetByPriceBounds", ctx, 20.0, 50.0, false).Return(products, nil)

	result, err := service.ListByPriceRange(ctx, "£20-£50")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "£22.50", result[0].FormattedPrice)
}

func TestListByPriceRange_Unbounded(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	productRepo.On("GetByPriceBounds", ctx, 200.0, 0.0, true).Return([]entity.Product{}, nil)

	_, err := service.ListByPriceRange(ctx, "Over £200")

	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestListByPriceRange_InvalidLabel(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	_, err := service.ListByPriceRange(context.Background(), "cheap stuff")

	assert.ErrorIs(t, err, ErrInvalidPriceRange)
	productRepo.AssertNotCalled(t, "GetByPriceBounds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProduct_Success(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	req := &entity.CreateProductRequest{Name: "Gaming Mouse", Category: "Electronics", Price: 59.99}

	productRepo.On("GetByNameAndCategory", ctx, "Gaming Mouse", "Electronics").
		Return(nil, repository.ErrProductNotFound)
	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*entity.Product)
			product.ID = 42
		})
	cache.On("DeleteProducts", ctx).Return(nil)

	product, err := service.CreateProduct(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), product.ID)
	assert.Equal(t, "£50-£100", product.PriceRange)
	cache.AssertCalled(t, "DeleteProducts", ctx)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	req := &entity.CreateProductRequest{Name: "Teddy Bear", Category: "Toys", Price: 15.00}

	_, err := service.CreateProduct(context.Background(), req)

	assert.ErrorIs(t, err, ErrValidation)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_AlreadyExists(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	req := &entity.CreateProductRequest{Name: "Yoga Mat", Category: "Sports", Price: 34.99}

	existing := &entity.Product{ID: 12, Name: "Yoga Mat", Category: "Sports", Price: 34.99}
	productRepo.On("GetByNameAndCategory", ctx, "Yoga Mat", "Sports").Return(existing, nil)

	_, err := service.CreateProduct(ctx, req)

	assert.ErrorIs(t, err, ErrProductExists)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_DuplicateKeyRace(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	req := &entity.CreateProductRequest{Name: "Football", Category: "Sports", Price: 24.99}

	productRepo.On("GetByNameAndCategory", ctx, "Football", "Sports").
		Return(nil, repository.ErrProductNotFound)
	productRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := service.CreateProduct(ctx, req)

	assert.ErrorIs(t, err, ErrProductExists)
}

func TestDeleteProduct_Success(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	productRepo.On("Delete", ctx, uint(7)).Return(nil)
	cache.On("DeleteProducts", ctx).Return(nil)

	err := service.DeleteProduct(ctx, 7)

	assert.NoError(t, err)
	cache.AssertCalled(t, "DeleteProducts", ctx)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	service := NewCatalogService(productRepo, cache)

	ctx := context.Background()
	productRepo.On("Delete", ctx, uint(99)).Return(repository.ErrProductNotFound)

	err := service.DeleteProduct(ctx, 99)

	assert.ErrorIs(t, err, ErrProductNotFound)
	cache.AssertNotCalled(t, "DeleteProducts", mock.Anything)
}
