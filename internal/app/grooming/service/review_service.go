package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"groomhub/internal/app/grooming/entity"
	"groomhub/internal/app/grooming/infrastructure"
	"groomhub/internal/app/grooming/repository"
	"groomhub/internal/app/grooming/util"
	"groomhub/pkg/logger"
	"groomhub/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// ErrRatingConflict зарезервирована под оптимистичную стратегию
	// блокировок: при текущей блокировке строки FOR UPDATE конкурентные
	// отзывы сериализуются и конфликт наружу не выходит
	ErrRatingConflict = errors.New("concurrent rating update conflict")
)

// ReviewService обрабатывает бизнес-логику отзывов
// Владеет транзакционной границей "отзыв + пересчёт рейтинга"
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	groomerRepo   repository.GroomerRepository
	cache         util.GroomerCache
	kafkaProducer infrastructure.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	groomerRepo repository.GroomerRepository,
	cache util.GroomerCache,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		groomerRepo:   groomerRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// SubmitReview создает отзыв и пересчитывает рейтинг грумера
// 1. Валидирует оценку до любых записей
// 2. В одной транзакции сохраняет отзыв и применяет ApplyReview к грумеру
// 3. Инвалидирует кеш профиля и отправляет событие REVIEW_CREATED в Kafka
//
// Отзыв и обновлённый агрегат видимы только вместе: при любой ошибке
// транзакция откатывается и ни одна запись не сохраняется.
func (s *ReviewService) SubmitReview(ctx context.Context, groomerID uuid.UUID, req *entity.CreateReviewRequest) (*entity.Review, error) {
	// Оценка проверяется до обращения к хранилищу
	if req.Rating < MinReviewRating || req.Rating > MaxReviewRating {
		return nil, ErrInvalidRating
	}

	review := &entity.Review{
		ReviewID:  uuid.New(),
		GroomerID: groomerID,
		BookingID: req.BookingID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}

	groomer, err := s.reviewRepo.CreateWithRatingUpdate(ctx, review, func(rating float64, reviewCount int) (float64, int, error) {
		return ApplyReview(rating, reviewCount, review.Rating)
	})
	if err != nil {
		if errors.Is(err, repository.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		if errors.Is(err, ErrInvalidRating) {
			return nil, ErrInvalidRating
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Кеш профиля теперь содержит устаревший рейтинг
	if err := s.cache.DeleteGroomer(ctx, groomerID); err != nil {
		logger.Warn().Err(err).Str("groomer_id", groomerID.String()).Msg("Failed to invalidate groomer cache")
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	// Отправляем событие REVIEW_CREATED в Kafka
	event := entity.ReviewEvent{
		EventType:   "REVIEW_CREATED",
		ReviewID:    review.ReviewID,
		GroomerID:   review.GroomerID,
		BookingID:   review.BookingID,
		UserID:      review.UserID,
		Rating:      review.Rating,
		NewRating:   groomer.Rating,
		ReviewCount: groomer.ReviewCount,
		Timestamp:   time.Now(),
	}
	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("review_id", review.ReviewID.String()).Msg("Failed to publish review created event")
	}

	return review, nil
}

// ListGroomerReviews получает отзывы грумера с пагинацией, старые первыми
// NotFound только если грумер никогда не существовал: отзывы мягко
// удалённых грумеров остаются читаемыми
func (s *ReviewService) ListGroomerReviews(ctx context.Context, groomerID uuid.UUID, skip, limit int) ([]entity.Review, error) {
	if _, err := s.groomerRepo.GetAnyByID(ctx, groomerID); err != nil {
		if errors.Is(err, repository.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		return nil, fmt.Errorf("failed to get groomer: %w", err)
	}

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	reviews, err := s.reviewRepo.GetByGroomerID(ctx, groomerID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka
// Key - это GroomerID, чтобы события одного грумера шли в одну партицию
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.GroomerID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
