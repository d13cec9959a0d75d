package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storepulse/internal/app/store/entity"

	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create создает новый отзыв
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	result := r.db.WithContext(ctx).Create(review)
	if result.Error != nil {
		return fmt.Errorf("failed to create review: %w", result.Error)
	}
	return nil
}

// GetByID получает отзыв с присоединенной проекцией товара
func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*entity.Review, error) {
	var review entity.Review
	result := r.db.WithContext(ctx).Preload("Product").First(&review, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, result.Error
	}

	return &review, nil
}

// filtered применяет фильтры по категории и корзине оценок
// Корзины: "1-2" -> rating IN {1,2}, "3" -> rating = 3, "4-5" -> rating IN {4,5}
func (r *reviewRepository) filtered(ctx context.Context, filter entity.ReviewListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Review{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	switch filter.RatingBucket {
	case "1-2":
		query = query.Where("rating BETWEEN ? AND ?", 1, 2)
	case "3":
		query = query.Where("rating = ?", 3)
	case "4-5":
		query = query.Where("rating BETWEEN ? AND ?", 4, 5)
	}

	return query
}

// sortColumn сводит имя поля сортировки из API к колонке таблицы.
// Неизвестные значения откатываются к created_at
func sortColumn(sortBy string) string {
	switch sortBy {
	case "rating":
		return "rating"
	case "category":
		return "category"
	default:
		return "created_at"
	}
}

// List получает страницу отзывов с проекцией товара и общее число строк под фильтром
func (r *reviewRepository) List(ctx context.Context, filter entity.ReviewListFilter) ([]entity.Review, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "ASC") {
		direction = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit

	var reviews []entity.Review
	err := r.filtered(ctx, filter).
		Preload("Product").
		Order(sortColumn(filter.SortBy) + " " + direction).
		Limit(filter.Limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, total, nil
}

// Count возвращает общее количество отзывов
func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// AverageRating возвращает средний рейтинг по всем отзывам, 0 если отзывов нет
func (r *reviewRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}

// CategoryRatings возвращает средний рейтинг и число отзывов по каждой категории,
// у которой есть хотя бы один отзыв. Сортировка по среднему рейтингу по убыванию,
// при равенстве - по имени категории, чтобы порядок был детерминированным
func (r *reviewRepository) CategoryRatings(ctx context.Context) ([]entity.CategoryRating, error) {
	var ratings []entity.CategoryRating
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("category, AVG(rating) AS avg_rating, COUNT(id) AS review_count").
		Group("category").
		Order("avg_rating DESC").
		Order("category ASC").
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute category ratings: %w", err)
	}
	return ratings, nil
}

// RatingCounts возвращает количество отзывов по каждой встречающейся оценке
func (r *reviewRepository) RatingCounts(ctx context.Context) ([]RatingCount, error) {
	var counts []RatingCount
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("rating, COUNT(id) AS count").
		Group("rating").
		Order("rating ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating counts: %w", err)
	}
	return counts, nil
}

// PriceRangeCounts группирует отзывы по ценовому диапазону связанного товара.
// CASE повторяет разбивку entity.PriceRangeOf; классификация идет по текущей
// цене товара через JOIN, а не по снимку категории на отзыве
func (r *reviewRepository) PriceRangeCounts(ctx context.Context) ([]PriceRangeCount, error) {
	var counts []PriceRangeCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			CASE
				WHEN p.price < 20 THEN 'Under £20'
				WHEN p.price < 50 THEN '£20-£50'
				WHEN p.price < 100 THEN '£50-£100'
				WHEN p.price < 200 THEN '£100-£200'
				ELSE 'Over £200'
			END AS price_range,
			COUNT(r.id) AS review_count
		FROM reviews r
		INNER JOIN products p ON r.product_id = p.id
		GROUP BY 1
	`).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute price range counts: %w", err)
	}
	return counts, nil
}

type attentionRow struct {
	ProductID   uint
	AvgRating   float64
	ReviewCount int64
	Name        string
	Category    string
}

// ProductsNeedingAttention возвращает товары со средним рейтингом строго ниже
// порога, от худшего к лучшему; при равенстве - по ID товара
func (r *reviewRepository) ProductsNeedingAttention(ctx context.Context, threshold float64) ([]entity.ProductAttention, error) {
	var rows []attentionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.product_id,
			AVG(r.rating) AS avg_rating,
			COUNT(r.id) AS review_count,
			p.name,
			p.category
		FROM reviews r
		INNER JOIN products p ON r.product_id = p.id
		GROUP BY r.product_id, p.name, p.category
		HAVING AVG(r.rating) < ?
		ORDER BY avg_rating ASC, r.product_id ASC
	`, threshold).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute products needing attention: %w", err)
	}

	attention := make([]entity.ProductAttention, 0, len(rows))
	for _, row := range rows {
		attention = append(attention, entity.ProductAttention{
			ProductID:   row.ProductID,
			AvgRating:   row.AvgRating,
			ReviewCount: row.ReviewCount,
			Product: entity.ProductRef{
				Name:     row.Name,
				Category: row.Category,
			},
		})
	}

	return attention, nil
}

// Recent возвращает последние созданные отзывы с проекцией товара
func (r *reviewRepository) Recent(ctx context.Context, limit int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reviews: %w", err)
	}
	return reviews, nil
}
