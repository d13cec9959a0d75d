package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/service"
)

func setupReviewRouter(reviewService *MockReviewService, analyticsService *MockAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewReviewHandler(reviewService, analyticsService)
	router.POST("/api/reviews", h.CreateReview)
	router.GET("/api/reviews", h.GetReviews)
	router.GET("/api/reviews/:id", func(c *gin.Context) {
		if c.Param("id") == "analytics" {
			h.GetAnalytics(c)
			return
		}
		h.GetReview(c)
	})

	return router
}

func TestCreateReview_Success(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	comment := "Solid build quality"
	created := &entity.Review{ID: 11, ProductID: 3, Category: "Electronics", Rating: 5, Comment: &comment}
	reviewService.On("CreateReview", mock.Anything, mock.AnythingOfType("*entity.CreateReviewRequest")).
		Return(created, nil)

	body, _ := json.Marshal(entity.CreateReviewRequest{ProductID: 3, Rating: 5, Comment: comment})
	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "message")
	assert.Contains(t, resp, "review")
	assert.Contains(t, w.Body.String(), "Review created successfully")
}

func TestCreateReview_ProductNotFound(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	reviewService.On("CreateReview", mock.Anything, mock.Anything).
		Return(nil, service.ErrProductNotFound)

	body, _ := json.Marshal(entity.CreateReviewRequest{ProductID: 99, Rating: 4})
	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	body, _ := json.Marshal(entity.CreateReviewRequest{ProductID: 3, Rating: 6})
	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reviewService.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestCreateReview_CommentLengthBoundary(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	maxComment := strings.Repeat("a", 300)
	created := &entity.Review{ID: 12, ProductID: 3, Category: "Electronics", Rating: 4, Comment: &maxComment}
	reviewService.On("CreateReview", mock.Anything, mock.Anything).Return(created, nil)

	body, _ := json.Marshal(entity.CreateReviewRequest{ProductID: 3, Rating: 4, Comment: maxComment})
	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	body, _ = json.Marshal(entity.CreateReviewRequest{ProductID: 3, Rating: 4, Comment: strings.Repeat("a", 301)})
	req, _ = http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReview_InvalidBody(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	req, _ := http.NewRequest(http.MethodPost, "/api/reviews", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestGetReviews_DefaultQueryParams(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	expected := entity.ReviewListFilter{
		Page:      1,
		Limit:     10,
		SortBy:    "createdAt",
		SortOrder: "DESC",
	}
	response := &entity.ReviewListResponse{
		Reviews: []entity.Review{},
		Pagination: entity.Pagination{
			CurrentPage:  1,
			TotalPages:   0,
			TotalItems:   0,
			ItemsPerPage: 10,
		},
	}
	reviewService.On("ListReviews", mock.Anything, expected).Return(response, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	reviewService.AssertExpectations(t)
}

func TestGetReviews_FiltersAndPagination(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	expected := entity.ReviewListFilter{
		Category:     "Sports",
		RatingBucket: "4-5",
		Page:         2,
		Limit:        5,
		SortBy:       "rating",
		SortOrder:    "ASC",
	}
	response := &entity.ReviewListResponse{
		Reviews: []entity.Review{{ID: 8, ProductID: 2, Category: "Sports", Rating: 4}},
		Pagination: entity.Pagination{
			CurrentPage:  2,
			TotalPages:   3,
			TotalItems:   12,
			ItemsPerPage: 5,
			HasNextPage:  true,
			HasPrevPage:  true,
		},
	}
	reviewService.On("ListReviews", mock.Anything, expected).Return(response, nil)

	req, _ := http.NewRequest(http.MethodGet,
		"/api/reviews?category=Sports&rating=4-5&page=2&limit=5&sortBy=rating&sortOrder=ASC", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "reviews")
	assert.Contains(t, body, "pagination")

	var pagination map[string]interface{}
	assert.NoError(t, json.Unmarshal(body["pagination"], &pagination))
	assert.Equal(t, float64(2), pagination["currentPage"])
	assert.Equal(t, float64(3), pagination["totalPages"])
	assert.Equal(t, float64(12), pagination["totalItems"])
	assert.Equal(t, float64(5), pagination["itemsPerPage"])
	assert.Equal(t, true, pagination["hasNextPage"])
	assert.Equal(t, true, pagination["hasPrevPage"])
}

func TestGetAnalytics_Success(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	snapshot := &entity.AnalyticsSnapshot{
		StoreInsights: entity.StoreInsights{
			TotalReviews:           42,
			AvgRating:              3.67,
			BestCategory:           "Beauty",
			MostReviewedPriceRange: "£20-£50",
		},
		CategoryRatings: []entity.CategoryRating{
			{Category: "Beauty", AvgRating: 4.5, ReviewCount: 10},
		},
		RatingDistribution:     map[string]int64{"1 Star": 2, "4 Stars": 9},
		PriceRangeDistribution: map[string]int64{"Under £20": 3, "£20-£50": 20, "£50-£100": 10, "£100-£200": 6, "Over £200": 3},
		ProductsNeedingAttention: []entity.ProductAttention{
			{ProductID: 7, AvgRating: 2.1, ReviewCount: 4, Product: entity.ProductRef{Name: "Scented Candle Set", Category: "Home & Garden"}},
		},
		RecentReviews: []entity.Review{{ID: 42, ProductID: 1, Category: "Electronics", Rating: 5}},
	}
	analyticsService.On("ComputeAnalytics", mock.Anything).Return(snapshot, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/analytics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{
		"storeInsights", "categoryRatings", "ratingDistribution",
		"priceRangeDistribution", "productsNeedingAttention", "recentReviews",
	} {
		assert.Contains(t, body, key)
	}

	var insights map[string]interface{}
	assert.NoError(t, json.Unmarshal(body["storeInsights"], &insights))
	assert.Equal(t, float64(42), insights["totalReviews"])
	assert.Equal(t, 3.67, insights["avgRating"])
	assert.Equal(t, "Beauty", insights["bestCategory"])
	assert.Equal(t, "£20-£50", insights["mostReviewedPriceRange"])
}

func TestGetAnalytics_AggregationError(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	analyticsService.On("ComputeAnalytics", mock.Anything).
		Return(nil, errors.New("db unavailable"))

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/analytics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to get analytics")
}

func TestGetReview_Success(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	review := &entity.Review{ID: 15, ProductID: 2, Category: "Sports", Rating: 4}
	reviewService.On("GetReview", mock.Anything, uint(15)).Return(review, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/15", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "review")
}

func TestGetReview_NotFound(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	reviewService.On("GetReview", mock.Anything, uint(404)).Return(nil, service.ErrReviewNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReview_InvalidID(t *testing.T) {
	reviewService := new(MockReviewService)
	analyticsService := new(MockAnalyticsService)
	router := setupReviewRouter(reviewService, analyticsService)

	req, _ := http.NewRequest(http.MethodGet, "/api/reviews/latest", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid review ID")
}
