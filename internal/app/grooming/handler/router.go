package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"groomhub/pkg/logger"
	"groomhub/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Grooming Service с использованием Gin
func SetupRoutes(groomerHandler *GroomerHandler, reviewHandler *ReviewHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("grooming-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "grooming-service",
			})
		})

		groomers := v1.Group("/groomers")
		{
			groomers.POST("", groomerHandler.CreateGroomer)
			groomers.GET("", groomerHandler.SearchGroomers)
			groomers.GET("/:id", groomerHandler.GetGroomer)
			groomers.PUT("/:id", groomerHandler.UpdateGroomer)
			groomers.DELETE("/:id", groomerHandler.DeleteGroomer)

			groomers.POST("/:id/reviews", reviewHandler.SubmitReview)
			groomers.GET("/:id/reviews", reviewHandler.ListGroomerReviews)
		}
	}

	return router
}
