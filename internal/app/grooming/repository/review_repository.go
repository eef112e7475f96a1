package repository

import (
	"context"
	"errors"

	"groomhub/internal/app/grooming/entity"
	"groomhub/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateWithRatingUpdate создаёт отзыв и пересчитывает рейтинг грумера
// в одной транзакции. Строка грумера блокируется через SELECT ... FOR UPDATE,
// поэтому конкурентные отзывы на одного грумера сериализуются и
// read-modify-write по (rating, review_count) не теряет обновления.
// Отзывы на разных грумеров выполняются параллельно.
func (r *reviewRepository) CreateWithRatingUpdate(ctx context.Context, review *entity.Review, aggregate RatingAggregateFunc) (*entity.Groomer, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "reviews")
	defer timer.ObserveDuration()

	var groomer entity.Groomer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Блокируем строку грумера на время пересчёта
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&groomer, "groomer_id = ? AND status <> ?", review.GroomerID, entity.GroomerStatusDeleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroomerNotFound
			}
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		newRating, newCount, err := aggregate(groomer.Rating, groomer.ReviewCount)
		if err != nil {
			return err
		}

		result := tx.Model(&entity.Groomer{}).
			Where("groomer_id = ?", groomer.GroomerID).
			Updates(map[string]interface{}{
				"rating":       newRating,
				"review_count": newCount,
			})
		if result.Error != nil {
			return result.Error
		}

		groomer.Rating = newRating
		groomer.ReviewCount = newCount
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrGroomerNotFound) {
			metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		}
		return nil, err
	}

	return &groomer, nil
}

// GetByGroomerID получает отзывы грумера, старые первыми
// Статус грумера не проверяется: отзывы удалённых грумеров остаются читаемыми
func (r *reviewRepository) GetByGroomerID(ctx context.Context, groomerID uuid.UUID, skip, limit int) ([]entity.Review, error) {
	var reviews []entity.Review
	result := r.db.WithContext(ctx).
		Where("groomer_id = ?", groomerID).
		Order("created_at ASC, review_id ASC").
		Offset(skip).
		Limit(limit).
		Find(&reviews)

	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}
