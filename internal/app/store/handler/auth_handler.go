package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storepulse/internal/app/store/entity"
	"storepulse/internal/app/store/service"
	"storepulse/pkg/metrics"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest

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

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, entity.ErrorResponse{
				Error:   "Conflict",
				Message: "User with this email already exists",
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to register user",
			})
		}
		return
	}

	metrics.AuthRegistrations.Inc()
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

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

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid email or password",
			})
		case errors.Is(err, service.ErrAccountInactive):
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Account is deactivated",
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to login",
			})
		}
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// GetProfile обрабатывает GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Unauthorized",
		})
		return
	}

	userID, ok := userIDValue.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Unauthorized",
		})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{
				Error:   "Not Found",
				Message: "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get user info",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
