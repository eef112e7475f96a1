package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CreateGroomerRequest - запрос на создание профиля грумера
type CreateGroomerRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" validate:"required,min=1,max=100"`
	Location       string `json:"location" validate:"required,min=1,max=255"`
	Specialization string `json:"specialization" validate:"omitempty,max=255"`
}

// UpdateGroomerRequest - запрос на частичное обновление профиля
// Поля-указатели отличают "не передано" от пустого значения.
// Rating, ReviewCount и Status через этот запрос недоступны.
type UpdateGroomerRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Location       *string `json:"location" validate:"omitempty,min=1,max=255"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
}

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=500"`
}

// GroomerFilter - параметры поиска грумеров
// Фильтры комбинируются через AND, nil/пустые значения пропускаются
type GroomerFilter struct {
	Location       string
	Specialization string
	MinRating      *float64
	Skip           int
	Limit          int
}

// GroomerResponse - представление грумера в API
// Rating округляется до одного знака только на границе API,
// в БД хранится точное среднее
type GroomerResponse struct {
	GroomerID          uuid.UUID     `json:"groomer_id"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	Location           string        `json:"location"`
	Specialization     string        `json:"specialization,omitempty"`
	Status             GroomerStatus `json:"status"`
	Rating             float64       `json:"rating"`
	ReviewCount        int           `json:"review_count"`
	ComplaintCount     int           `json:"complaint_count"`
	TotalBookingsCount int           `json:"total_bookings_count"`
}

func NewGroomerResponse(g *Groomer) GroomerResponse {
	return GroomerResponse{
		GroomerID:          g.GroomerID,
		FirstName:          g.FirstName,
		LastName:           g.LastName,
		Location:           g.Location,
		Specialization:     g.Specialization,
		Status:             g.Status,
		Rating:             RoundRating(g.Rating),
		ReviewCount:        g.ReviewCount,
		ComplaintCount:     g.ComplaintCount,
		TotalBookingsCount: g.TotalBookingsCount,
	}
}

// RoundRating округляет рейтинг до одного знака для выдачи клиенту
func RoundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}

// ReviewResponse - представление отзыва в API
type ReviewResponse struct {
	ReviewID  uuid.UUID `json:"review_id"`
	GroomerID uuid.UUID `json:"groomer_id"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ReviewID:  r.ReviewID,
		GroomerID: r.GroomerID,
		BookingID: r.BookingID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
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

// GroomerListResponse - ответ со списком грумеров
type GroomerListResponse struct {
	Groomers []GroomerResponse `json:"groomers"`
	Total    int               `json:"total"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}
