package handler

import (
	"errors"
	"net/http"

	"groomhub/internal/app/grooming/entity"
	"groomhub/internal/app/grooming/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ReviewHandler обрабатывает HTTP запросы для отзывов
type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

// NewReviewHandler создает новый обработчик отзывов
func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// SubmitReview обрабатывает POST /api/v1/groomers/:id/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	groomerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid groomer ID"})
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), groomerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Rating must be between 1 and 5"})
			return
		}
		if errors.Is(err, service.ErrGroomerNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Groomer not found"})
			return
		}
		if errors.Is(err, service.ErrRatingConflict) {
			c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "Concurrent update conflict, retry the request"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, entity.NewReviewResponse(review))
}

// ListGroomerReviews обрабатывает GET /api/v1/groomers/:id/reviews
func (h *ReviewHandler) ListGroomerReviews(c *gin.Context) {
	groomerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid groomer ID"})
		return
	}

	skip, err := parseIntQuery(c, "skip", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid skip parameter"})
		return
	}
	limit, err := parseIntQuery(c, "limit", service.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	reviews, err := h.reviewService.ListGroomerReviews(c.Request.Context(), groomerID, skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrGroomerNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Groomer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get reviews"})
		return
	}

	responses := make([]entity.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, entity.NewReviewResponse(&reviews[i]))
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: responses,
		Total:   len(responses),
	})
}
