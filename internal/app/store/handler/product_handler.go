package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/service"
	"storepulse/pkg/metrics"
)

// ProductHandler обрабатывает HTTP запросы каталога
type ProductHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewProductHandler создает новый обработчик каталога
func NewProductHandler(catalogService service.CatalogServiceInterface) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// GetProducts обрабатывает GET /api/products
// Возвращает каталог вместе со справочниками категорий и ценовых диапазонов
func (h *ProductHandler) GetProducts(c *gin.Context) {
	response, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get products",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// FilterProducts обрабатывает GET /api/products/category/:value
// и GET /api/products/price/:value (см. комментарий о маршрутах в router.go)
func (h *ProductHandler) FilterProducts(c *gin.Context) {
	value := c.Param("value")

	switch c.Param("id") {
	case "category":
		products, err := h.catalogService.ListByCategory(c.Request.Context(), value)
		if err != nil {
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to get products by category",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})

	case "price":
		products, err := h.catalogService.ListByPriceRange(c.Request.Context(), value)
		if err != nil {
			if errors.Is(err, service.ErrInvalidPriceRange) {
				c.JSON(http.StatusBadRequest, entity.ErrorResponse{
					Error:   "Bad Request",
					Message: "Invalid price range",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to get products by price range",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})

	default:
		c.JSON(http.StatusNotFound, entity.ErrorResponse{
			Error:   "Not Found",
			Message: "Unknown product filter",
		})
	}
}

// GetProduct обрабатывает GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid product ID",
		})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), uint(id))
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
			Message: "Failed to get product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct обрабатывает POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest

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

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrProductExists):
			c.JSON(http.StatusConflict, entity.ErrorResponse{
				Error:   "Conflict",
				Message: "Product already exists in this category",
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to create product",
			})
		}
		return
	}

	metrics.ProductsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// DeleteProduct обрабатывает DELETE /api/products/:id
// Отзывы товара удаляются каскадом на уровне БД
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid product ID",
		})
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{
				Error:   "Not Found",
				Message: "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete product",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Product deleted successfully",
	})
}

// formatValidationError форматирует первую ошибку валидации для ответа
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Field() + " validation failed"
	}
	return "Validation failed"
}
