package repository

import (
	"context"
	"errors"

	"groomhub/internal/app/grooming/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrGroomerNotFound = errors.New("groomer not found")
	ErrReviewNotFound  = errors.New("review not found")
)

// RatingAggregateFunc вычисляет новый агрегат (rating, review_count)
// по текущему состоянию грумера. Вызывается внутри транзакции создания отзыва.
type RatingAggregateFunc func(rating float64, reviewCount int) (float64, int, error)

// GroomerRepository определяет методы для работы с грумерами в PostgreSQL
type GroomerRepository interface {
	Create(ctx context.Context, groomer *entity.Groomer) error
	// GetByID возвращает грумера, исключая мягко удалённых
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Groomer, error)
	// GetAnyByID возвращает грумера независимо от статуса
	GetAnyByID(ctx context.Context, id uuid.UUID) (*entity.Groomer, error)
	Update(ctx context.Context, groomer *entity.Groomer) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter entity.GroomerFilter) ([]entity.Groomer, error)
}

// ReviewRepository определяет методы для работы с отзывами в PostgreSQL
type ReviewRepository interface {
	// CreateWithRatingUpdate создаёт отзыв и атомарно применяет агрегат
	// к грумеру-владельцу в одной транзакции; возвращает грумера
	// с обновлёнными rating/review_count
	CreateWithRatingUpdate(ctx context.Context, review *entity.Review, aggregate RatingAggregateFunc) (*entity.Groomer, error)
	GetByGroomerID(ctx context.Context, groomerID uuid.UUID, skip, limit int) ([]entity.Review, error)
}
