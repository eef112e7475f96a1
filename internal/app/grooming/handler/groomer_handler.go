package handler

import (
	"errors"
	"net/http"
	"strconv"

	"groomhub/internal/app/grooming/entity"
	"groomhub/internal/app/grooming/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// GroomerHandler обрабатывает HTTP запросы для профилей грумеров
type GroomerHandler struct {
	groomerService service.GroomerServiceInterface
	validator      *validator.Validate
}

// NewGroomerHandler создает новый обработчик грумеров
func NewGroomerHandler(groomerService service.GroomerServiceInterface) *GroomerHandler {
	return &GroomerHandler{
		groomerService: groomerService,
		validator:      validator.New(),
	}
}

// CreateGroomer обрабатывает POST /api/v1/groomers
func (h *GroomerHandler) CreateGroomer(c *gin.Context) {
	var req entity.CreateGroomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	groomer, err := h.groomerService.CreateGroomer(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create groomer"})
		return
	}

	c.JSON(http.StatusCreated, entity.NewGroomerResponse(groomer))
}

// GetGroomer обрабатывает GET /api/v1/groomers/:id
// Мягко удалённые грумеры отдаются как 404
func (h *GroomerHandler) GetGroomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid groomer ID"})
		return
	}

	groomer, err := h.groomerService.GetGroomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroomerNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Groomer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get groomer"})
		return
	}

	c.JSON(http.StatusOK, entity.NewGroomerResponse(groomer))
}

// UpdateGroomer обрабатывает PUT /api/v1/groomers/:id
func (h *GroomerHandler) UpdateGroomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid groomer ID"})
		return
	}

	var req entity.UpdateGroomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	groomer, err := h.groomerService.UpdateGroomer(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrGroomerNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Groomer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to update groomer"})
		return
	}

	c.JSON(http.StatusOK, entity.NewGroomerResponse(groomer))
}

// DeleteGroomer обрабатывает DELETE /api/v1/groomers/:id (мягкое удаление)
func (h *GroomerHandler) DeleteGroomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid groomer ID"})
		return
	}

	if err := h.groomerService.SoftDeleteGroomer(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGroomerNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Groomer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to delete groomer"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Groomer deleted successfully",
	})
}

// SearchGroomers обрабатывает GET /api/v1/groomers
// Query параметры: location, specialization, min_rating, skip, limit
func (h *GroomerHandler) SearchGroomers(c *gin.Context) {
	filter := entity.GroomerFilter{
		Location:       c.Query("location"),
		Specialization: c.Query("specialization"),
	}

	if raw := c.Query("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid min_rating, must be between 0 and 5"})
			return
		}
		filter.MinRating = &minRating
	}

	var err error
	filter.Skip, err = parseIntQuery(c, "skip", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid skip parameter"})
		return
	}
	filter.Limit, err = parseIntQuery(c, "limit", service.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	groomers, err := h.groomerService.SearchGroomers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to search groomers"})
		return
	}

	responses := make([]entity.GroomerResponse, 0, len(groomers))
	for i := range groomers {
		responses = append(responses, entity.NewGroomerResponse(&groomers[i]))
	}

	c.JSON(http.StatusOK, entity.GroomerListResponse{
		Groomers: responses,
		Total:    len(responses),
	})
}

// === HELPER FUNCTIONS ===

func parseIntQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.New("invalid integer query parameter")
	}
	return value, nil
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
