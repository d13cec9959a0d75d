package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/repository"
	"storepulse/internal/app/store/util"

	"storepulse/pkg/logger"
	"storepulse/pkg/metrics"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ReviewService обрабатывает бизнес-логику отзывов
// Координирует работу репозиториев и Kafka
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	publisher   util.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	publisher util.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// CreateReview создает новый отзыв
// 1. Проверяет существование товара; без товара отзыв не создается
// 2. Копирует категорию товара в отзыв (снимок на момент создания)
// 3. Сохраняет отзыв и отправляет событие REVIEW_CREATED в Kafka
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	review := &entity.Review{
		ProductID: product.ID,
		Category:  product.Category,
		Rating:    req.Rating,
	}
	if req.Comment != "" {
		comment := req.Comment
		review.Comment = &comment
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	event := entity.ReviewEvent{
		EventType: "REVIEW_CREATED",
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		Category:  review.Category,
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}

	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Uint("review_id", review.ID).Msg("Failed to publish review created event")
	}

	// Перечитываем отзыв, чтобы вернуть его с проекцией товара
	created, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created review: %w", err)
	}

	return created, nil
}

// ListReviews возвращает страницу отзывов с проекцией товара и метаданными пагинации
func (s *ReviewService) ListReviews(ctx context.Context, filter entity.ReviewListFilter) (*entity.ReviewListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	reviews, total, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &entity.ReviewListResponse{
		Reviews: reviews,
		Pagination: entity.Pagination{
			CurrentPage:  filter.Page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: filter.Limit,
			HasNextPage:  filter.Page < totalPages,
			HasPrevPage:  filter.Page > 1,
		},
	}, nil
}

// GetReview получает отзыв по ID с проекцией товара
func (s *ReviewService) GetReview(ctx context.Context, id uint) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka
// Key - это ProductID для правильного партиционирования
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	key := strconv.FormatUint(uint64(event.ProductID), 10)
	if err := s.publisher.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
