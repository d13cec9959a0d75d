package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/service"
)

// ReviewHandler обрабатывает HTTP запросы отзывов и аналитики
type ReviewHandler struct {
	reviewService    service.ReviewServiceInterface
	analyticsService service.AnalyticsServiceInterface
	validator        *validator.Validate
}

// NewReviewHandler создает новый обработчик отзывов
func NewReviewHandler(
	reviewService service.ReviewServiceInterface,
	analyticsService service.AnalyticsServiceInterface,
) *ReviewHandler {
	return &ReviewHandler{
		reviewService:    reviewService,
		analyticsService: analyticsService,
		validator:        validator.New(),
	}
}

// CreateReview обрабатывает POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req entity.CreateReviewRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: formatValidationError(err),
		})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{
				Error:   "Not Found",
				Message: "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create review",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// GetReviews обрабатывает GET /api/reviews?page&limit&category&rating&sortBy&sortOrder
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := entity.ReviewListFilter{
		Category:     c.Query("category"),
		RatingBucket: c.Query("rating"),
		Page:         page,
		Limit:        limit,
		SortBy:       c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:    c.DefaultQuery("sortOrder", "DESC"),
	}

	response, err := h.reviewService.ListReviews(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get reviews",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAnalytics обрабатывает GET /api/reviews/analytics
// Любая ошибка агрегации - один общий Internal error, частичных ответов нет
func (h *ReviewHandler) GetAnalytics(c *gin.Context) {
	snapshot, err := h.analyticsService.ComputeAnalytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get analytics",
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetReview обрабатывает GET /api/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid review ID",
		})
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{
				Error:   "Not Found",
				Message: "Review not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get review",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}
