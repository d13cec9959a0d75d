package service

import (
	"context"
	"fmt"
	"math"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/repository"
)

const (
	// Товар попадает в "needs attention" при среднем рейтинге строго ниже порога
	attentionThreshold = 3.0

	recentReviewsLimit = 5
)

// AnalyticsService собирает статистику дашборда
// Никакого кеша и инкрементального состояния: каждый вызов заново
// читает текущие строки из БД. Подзапросы не обернуты в транзакцию,
// поэтому при параллельной записи снимок может быть слегка несогласованным -
// это принятый риск свежести, не корректности
type AnalyticsService struct {
	reviewRepo repository.ReviewRepository
}

// NewAnalyticsService создает новый сервис аналитики
func NewAnalyticsService(reviewRepo repository.ReviewRepository) *AnalyticsService {
	return &AnalyticsService{reviewRepo: reviewRepo}
}

// ComputeAnalytics вычисляет полный снимок аналитики.
// Все или ничего: ошибка любого подзапроса отменяет весь расчет,
// частичный результат не возвращается
func (s *AnalyticsService) ComputeAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error) {
	totalReviews, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	avgRating, err := s.reviewRepo.AverageRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	categoryRatings, err := s.reviewRepo.CategoryRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	// Категории отсортированы по среднему рейтингу по убыванию,
	// при равенстве - по алфавиту, поэтому первый элемент детерминирован
	bestCategory := "N/A"
	if len(categoryRatings) > 0 {
		bestCategory = categoryRatings[0].Category
	}

	ratingCounts, err := s.reviewRepo.RatingCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	// Только ненулевые оценки; отсутствие ключа читается потребителем как ноль
	ratingDistribution := make(map[string]int64, len(ratingCounts))
	for _, rc := range ratingCounts {
		ratingDistribution[starLabel(rc.Rating)] = rc.Count
	}

	priceRangeCounts, err := s.reviewRepo.PriceRangeCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	// Все пять диапазонов присутствуют всегда, по умолчанию с нулем
	priceRangeDistribution := make(map[string]int64, len(entity.PriceRanges))
	for _, label := range entity.PriceRanges {
		priceRangeDistribution[label] = 0
	}
	for _, prc := range priceRangeCounts {
		if _, known := priceRangeDistribution[prc.PriceRange]; known {
			priceRangeDistribution[prc.PriceRange] = prc.ReviewCount
		}
	}

	// Максимум обходом меток в фиксированном порядке:
	// при равенстве побеждает более дешевый диапазон
	mostReviewed := entity.PriceRanges[0]
	for _, label := range entity.PriceRanges {
		if priceRangeDistribution[label] > priceRangeDistribution[mostReviewed] {
			mostReviewed = label
		}
	}

	attention, err := s.reviewRepo.ProductsNeedingAttention(ctx, attentionThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	recentReviews, err := s.reviewRepo.Recent(ctx, recentReviewsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	return &entity.AnalyticsSnapshot{
		StoreInsights: entity.StoreInsights{
			TotalReviews:           totalReviews,
			AvgRating:              math.Round(avgRating*100) / 100,
			BestCategory:           bestCategory,
			MostReviewedPriceRange: mostReviewed,
		},
		CategoryRatings:          categoryRatings,
		RatingDistribution:       ratingDistribution,
		PriceRangeDistribution:   priceRangeDistribution,
		ProductsNeedingAttention: attention,
		RecentReviews:            recentReviews,
	}, nil
}

// starLabel форматирует оценку в метку распределения: "1 Star", "2 Stars", ...
func starLabel(rating int) string {
	if rating == 1 {
		return "1 Star"
	}
	return fmt.Sprintf("%d Stars", rating)
}
