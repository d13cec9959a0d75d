package repository

import (
	"context"
	"errors"

	"storepulse/internal/app/store/entity"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateKey    = errors.New("duplicate key")
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetByNameAndCategory(ctx context.Context, name, category string) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)
	GetByPriceBounds(ctx context.Context, min, max float64, unbounded bool) ([]entity.Product, error)
	Delete(ctx context.Context, id uint) error
}

// RatingCount - количество отзывов с конкретной оценкой
type RatingCount struct {
	Rating int
	Count  int64
}

// PriceRangeCount - количество отзывов на товары из ценового диапазона
type PriceRangeCount struct {
	PriceRange  string
	ReviewCount int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id uint) (*entity.Review, error)
	List(ctx context.Context, filter entity.ReviewListFilter) ([]entity.Review, int64, error)

	// Агрегаты для аналитики: каждый вызов читает текущее состояние БД
	Count(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	CategoryRatings(ctx context.Context) ([]entity.CategoryRating, error)
	RatingCounts(ctx context.Context) ([]RatingCount, error)
	PriceRangeCounts(ctx context.Context) ([]PriceRangeCount, error)
	ProductsNeedingAttention(ctx context.Context, threshold float64) ([]entity.ProductAttention, error)
	Recent(ctx context.Context, limit int) ([]entity.Review, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}
