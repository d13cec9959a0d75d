package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storepulse/internal/app/store/entity"
	"storepulse/pkg/logger"
	"storepulse/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	productHandler *ProductHandler,
	reviewHandler *ReviewHandler,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("storepulse"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storepulse",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Публичные эндпоинты каталога
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			// gin не позволяет смешивать статические сегменты с :id на одном
			// уровне, поэтому /category/:category и /price/:range
			// диспетчеризуются внутри FilterProducts
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/:value", productHandler.FilterProducts)

			// Изменение каталога требует аутентификации
			products.POST("", authMiddleware.Authenticate(), productHandler.CreateProduct)
			products.DELETE("/:id", authMiddleware.Authenticate(), productHandler.DeleteProduct)
		}

		reviews := api.Group("/reviews")
		reviews.Use(authMiddleware.Authenticate())
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.POST("", reviewHandler.CreateReview)
			// /analytics делит уровень пути с :id, разрешаем вручную
			reviews.GET("/:id", func(c *gin.Context) {
				if c.Param("id") == "analytics" {
					reviewHandler.GetAnalytics(c)
					return
				}
				reviewHandler.GetReview(c)
			})
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			protected := auth.Group("")
			protected.Use(authMiddleware.Authenticate())
			{
				protected.GET("/profile", authHandler.GetProfile)
			}
		}

		users := api.Group("/users")
		users.Use(authMiddleware.Authenticate())
		{
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.ErrorResponse{
			Error:   "Not Found",
			Message: "Route not found",
		})
	})

	return router
}
