package entity

// CreateProductRequest - запрос на создание товара
// Принадлежность категории к фиксированному набору проверяется в service
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=5,max=100"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"required,gte=0.01,lte=99999.99"`
}

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	ProductID uint   `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=300"`
}

// ReviewListFilter - параметры фильтрации, сортировки и пагинации списка отзывов
type ReviewListFilter struct {
	Category     string // пустая строка = без фильтра
	RatingBucket string // "1-2" | "3" | "4-5" | ""
	Page         int
	Limit        int
	SortBy       string // createdAt | rating | category
	SortOrder    string // ASC | DESC
}

// RegisterRequest - запрос на регистрацию сотрудника
// Требование минимум одной цифры в пароле проверяется явной функцией в service
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - ответ register/login: пользователь без пароля + токен
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Pagination - метаданные страницы списка отзывов
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// ProductListResponse - ответ каталога со справочниками для фронтенда
type ProductListResponse struct {
	Products    []ProductWithRange `json:"products"`
	Categories  []string           `json:"categories"`
	PriceRanges []string           `json:"priceRanges"`
}

// ReviewListResponse - страница отзывов с пагинацией
type ReviewListResponse struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

// StoreInsights - сводные показатели магазина
type StoreInsights struct {
	TotalReviews           int64   `json:"totalReviews"`
	AvgRating              float64 `json:"avgRating"`
	BestCategory           string  `json:"bestCategory"`
	MostReviewedPriceRange string  `json:"mostReviewedPriceRange"`
}

// CategoryRating - средний рейтинг и количество отзывов по категории
type CategoryRating struct {
	Category    string  `json:"category"`
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int64   `json:"reviewCount"`
}

// ProductRef - минимальная ссылка на товар в списке проблемных
type ProductRef struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ProductAttention - товар со средним рейтингом ниже 3
type ProductAttention struct {
	ProductID   uint       `json:"productId"`
	AvgRating   float64    `json:"avgRating"`
	ReviewCount int64      `json:"reviewCount"`
	Product     ProductRef `json:"product"`
}

// AnalyticsSnapshot - полный набор производных статистик,
// пересчитываемый заново на каждый запрос аналитики
type AnalyticsSnapshot struct {
	StoreInsights            StoreInsights      `json:"storeInsights"`
	CategoryRatings          []CategoryRating   `json:"categoryRatings"`
	RatingDistribution       map[string]int64   `json:"ratingDistribution"`
	PriceRangeDistribution   map[string]int64   `json:"priceRangeDistribution"`
	ProductsNeedingAttention []ProductAttention `json:"productsNeedingAttention"`
	RecentReviews            []Review           `json:"recentReviews"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
