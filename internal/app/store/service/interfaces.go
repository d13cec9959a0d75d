package service

import (
	"context"

	"storepulse/internal/app/store/entity"
)

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context) (*entity.ProductListResponse, error)
	ListByCategory(ctx context.Context, category string) ([]entity.ProductWithRange, error)
	ListByPriceRange(ctx context.Context, label string) ([]entity.ProductWithRange, error)
	GetProduct(ctx context.Context, id uint) (*entity.ProductWithRange, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductWithRange, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
	ListReviews(ctx context.Context, filter entity.ReviewListFilter) (*entity.ReviewListResponse, error)
	GetReview(ctx context.Context, id uint) (*entity.Review, error)
}

type AnalyticsServiceInterface interface {
	ComputeAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*entity.User, error)
}

type UserServiceInterface interface {
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	CreateUser(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) (*entity.User, error)
}
