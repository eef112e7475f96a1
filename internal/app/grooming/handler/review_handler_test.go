package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"groomhub/internal/app/grooming/entity"
	"groomhub/internal/app/grooming/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService мок для ReviewService в тестах handler
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, groomerID uuid.UUID, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, groomerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) ListGroomerReviews(ctx context.Context, groomerID uuid.UUID, skip, limit int) ([]entity.Review, error) {
	args := m.Called(ctx, groomerID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func setupReviewRouter(mockService *MockReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewReviewHandler(mockService)

	router.POST("/groomers/:id/reviews", h.SubmitReview)
	router.GET("/groomers/:id/reviews", h.ListGroomerReviews)
	return router
}

// ===================== SubmitReview Handler Tests =====================

func TestSubmitReviewHandler_Success(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	review := &entity.Review{
		ReviewID:  uuid.New(),
		GroomerID: groomerID,
		BookingID: uuid.New(),
		UserID:    uuid.New(),
		Rating:    5,
		Comment:   "Excellent grooming",
		CreatedAt: time.Now().UTC(),
	}
	mockService.On("SubmitReview", mock.Anything, groomerID, mock.AnythingOfType("*entity.CreateReviewRequest")).Return(review, nil)

	body, _ := json.Marshal(entity.CreateReviewRequest{
		BookingID: review.BookingID,
		UserID:    review.UserID,
		Rating:    5,
		Comment:   "Excellent grooming",
	})
	req, _ := http.NewRequest(http.MethodPost, "/groomers/"+groomerID.String()+"/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.ReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, review.ReviewID, resp.ReviewID)
	assert.Equal(t, groomerID, resp.GroomerID)
	assert.Equal(t, 5, resp.Rating)
}

func TestSubmitReviewHandler_InvalidGroomerID(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	body, _ := json.Marshal(entity.CreateReviewRequest{BookingID: uuid.New(), UserID: uuid.New(), Rating: 5})
	req, _ := http.NewRequest(http.MethodPost, "/groomers/not-a-uuid/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SubmitReview")
}

func TestSubmitReviewHandler_RatingOutOfRange(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()

	for _, rating := range []int{0, 6} {
		body, _ := json.Marshal(map[string]interface{}{
			"booking_id": uuid.New(),
			"user_id":    uuid.New(),
			"rating":     rating,
		})
		req, _ := http.NewRequest(http.MethodPost, "/groomers/"+groomerID.String()+"/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	mockService.AssertNotCalled(t, "SubmitReview")
}

func TestSubmitReviewHandler_GroomerNotFound(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	mockService.On("SubmitReview", mock.Anything, groomerID, mock.Anything).Return(nil, service.ErrGroomerNotFound)

	body, _ := json.Marshal(entity.CreateReviewRequest{BookingID: uuid.New(), UserID: uuid.New(), Rating: 4})
	req, _ := http.NewRequest(http.MethodPost, "/groomers/"+groomerID.String()+"/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitReviewHandler_RatingConflict(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	mockService.On("SubmitReview", mock.Anything, groomerID, mock.Anything).Return(nil, service.ErrRatingConflict)

	body, _ := json.Marshal(entity.CreateReviewRequest{BookingID: uuid.New(), UserID: uuid.New(), Rating: 4})
	req, _ := http.NewRequest(http.MethodPost, "/groomers/"+groomerID.String()+"/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitReviewHandler_ServiceError(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	mockService.On("SubmitReview", mock.Anything, groomerID, mock.Anything).Return(nil, errors.New("db error"))

	body, _ := json.Marshal(entity.CreateReviewRequest{BookingID: uuid.New(), UserID: uuid.New(), Rating: 4})
	req, _ := http.NewRequest(http.MethodPost, "/groomers/"+groomerID.String()+"/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ===================== ListGroomerReviews Handler Tests =====================

func TestListGroomerReviewsHandler_Success(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	reviews := []entity.Review{
		{ReviewID: uuid.New(), GroomerID: groomerID, Rating: 5, CreatedAt: time.Now().Add(-time.Hour)},
		{ReviewID: uuid.New(), GroomerID: groomerID, Rating: 3, CreatedAt: time.Now()},
	}
	mockService.On("ListGroomerReviews", mock.Anything, groomerID, 0, service.DefaultLimit).Return(reviews, nil)

	req, _ := http.NewRequest(http.MethodGet, "/groomers/"+groomerID.String()+"/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ReviewListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Reviews, 2)
}

func TestListGroomerReviewsHandler_Pagination(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	mockService.On("ListGroomerReviews", mock.Anything, groomerID, 5, 10).Return([]entity.Review{}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/groomers/"+groomerID.String()+"/reviews?skip=5&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertCalled(t, "ListGroomerReviews", mock.Anything, groomerID, 5, 10)
}

func TestListGroomerReviewsHandler_GroomerNotFound(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	groomerID := uuid.New()
	mockService.On("ListGroomerReviews", mock.Anything, groomerID, 0, service.DefaultLimit).Return(nil, service.ErrGroomerNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/groomers/"+groomerID.String()+"/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListGroomerReviewsHandler_InvalidID(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService)

	req, _ := http.NewRequest(http.MethodGet, "/groomers/not-a-uuid/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListGroomerReviews")
}
