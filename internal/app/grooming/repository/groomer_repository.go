package repository

import (
	"context"
	"errors"

	"groomhub/internal/app/grooming/entity"
	"groomhub/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceName = "grooming-service"

type groomerRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewGroomerRepository создает новый репозиторий грумеров
func NewGroomerRepository(db *gorm.DB) GroomerRepository {
	return &groomerRepository{db: db}
}

// Create создает новый профиль грумера
func (r *groomerRepository) Create(ctx context.Context, groomer *entity.Groomer) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "groomers")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(groomer)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
	}
	return result.Error
}

// GetByID получает грумера по ID, мягко удалённые считаются отсутствующими
func (r *groomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	var groomer entity.Groomer
	result := r.db.WithContext(ctx).
		First(&groomer, "groomer_id = ? AND status <> ?", id, entity.GroomerStatusDeleted)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroomerNotFound
		}
		return nil, result.Error
	}

	return &groomer, nil
}

// GetAnyByID получает грумера по ID независимо от статуса
// Используется для проверки существования при листинге отзывов
func (r *groomerRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	var groomer entity.Groomer
	result := r.db.WithContext(ctx).First(&groomer, "groomer_id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroomerNotFound
		}
		return nil, result.Error
	}

	return &groomer, nil
}

// Update обновляет профиль грумера
// Allow-list полей: rating, review_count и status через этот путь недостижимы
func (r *groomerRepository) Update(ctx context.Context, groomer *entity.Groomer) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "groomers")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(groomer).
		Where("groomer_id = ?", groomer.GroomerID).
		Updates(map[string]interface{}{
			"first_name":     groomer.FirstName,
			"last_name":      groomer.LastName,
			"location":       groomer.Location,
			"specialization": groomer.Specialization,
		})

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGroomerNotFound
	}

	return nil
}

// SoftDelete переводит грумера в статус deleted
// Идемпотентна: повторный вызов для уже удалённого грумера не ошибка
func (r *groomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.Groomer{}).
		Where("groomer_id = ?", id).
		Update("status", entity.GroomerStatusDeleted)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGroomerNotFound
	}

	return nil
}

// Search ищет грумеров по фильтрам (AND-комбинация)
// Мягко удалённые исключаются всегда; location и specialization
// матчатся как case-insensitive подстроки (ILIKE)
func (r *groomerRepository) Search(ctx context.Context, filter entity.GroomerFilter) ([]entity.Groomer, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "groomers")
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx).Model(&entity.Groomer{}).
		Where("status <> ?", entity.GroomerStatusDeleted)

	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	if filter.Specialization != "" {
		query = query.Where("specialization ILIKE ?", "%"+filter.Specialization+"%")
	}

	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}

	// Детерминированный порядок для корректной пагинации
	var groomers []entity.Groomer
	result := query.
		Order("rating DESC, groomer_id ASC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&groomers)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, result.Error
	}

	return groomers, nil
}
