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
	// Ошибки бизнес-логики для обработки в handlers
	ErrGroomerNotFound = errors.New("groomer not found")
)

const (
	serviceName = "grooming-service"

	// TTL кеша профиля грумера
	groomerCacheTTL = 15 * time.Minute

	// Пагинация по умолчанию
	DefaultLimit = 100
	MaxLimit     = 100
)

// GroomerService обрабатывает бизнес-логику профилей грумеров
// Координирует работу репозитория, Redis кеша и Kafka producer
type GroomerService struct {
	groomerRepo   repository.GroomerRepository
	cache         util.GroomerCache
	kafkaProducer infrastructure.MessagePublisher
}

// NewGroomerService создает новый сервис грумеров с внедрением зависимостей
func NewGroomerService(
	groomerRepo repository.GroomerRepository,
	cache util.GroomerCache,
	kafkaProducer infrastructure.MessagePublisher,
) *GroomerService {
	return &GroomerService{
		groomerRepo:   groomerRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// CreateGroomer создает новый профиль грумера
// Статус active, производные поля и счётчики нулевые
func (s *GroomerService) CreateGroomer(ctx context.Context, req *entity.CreateGroomerRequest) (*entity.Groomer, error) {
	groomer := &entity.Groomer{
		GroomerID:      uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Location:       req.Location,
		Specialization: req.Specialization,
		Status:         entity.GroomerStatusActive,
		Rating:         0.0,
		ReviewCount:    0,
	}

	if err := s.groomerRepo.Create(ctx, groomer); err != nil {
		return nil, fmt.Errorf("failed to create groomer: %w", err)
	}

	metrics.GroomersCreated.Inc()

	return groomer, nil
}

// GetGroomer получает грумера по ID с кешированием в Redis
// Мягко удалённые грумеры для прямого чтения недоступны (публичная политика)
func (s *GroomerService) GetGroomer(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	// Пытаемся получить из кеша Redis
	cached, err := s.cache.GetGroomer(ctx, id)
	if err != nil {
		// Проблемы с кешем не критичны, идём в БД
		logger.Warn().Err(err).Str("groomer_id", id.String()).Msg("Failed to read groomer cache")
	}
	if cached != nil {
		metrics.RecordCacheHit(serviceName, "groomer")
		return cached, nil
	}
	metrics.RecordCacheMiss(serviceName, "groomer")

	groomer, err := s.groomerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		return nil, fmt.Errorf("failed to get groomer: %w", err)
	}

	if err := s.cache.SetGroomer(ctx, groomer, groomerCacheTTL); err != nil {
		logger.Warn().Err(err).Str("groomer_id", id.String()).Msg("Failed to cache groomer")
	}

	return groomer, nil
}

// UpdateGroomer обновляет профиль грумера (частичное обновление)
// Разрешены только first_name, last_name, location, specialization:
// rating, review_count и status через этот путь не меняются
func (s *GroomerService) UpdateGroomer(ctx context.Context, id uuid.UUID, req *entity.UpdateGroomerRequest) (*entity.Groomer, error) {
	groomer, err := s.groomerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		return nil, fmt.Errorf("failed to get groomer: %w", err)
	}

	// Обновляем только переданные поля
	if req.FirstName != nil {
		groomer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		groomer.LastName = *req.LastName
	}
	if req.Location != nil {
		groomer.Location = *req.Location
	}
	if req.Specialization != nil {
		groomer.Specialization = *req.Specialization
	}

	if err := s.groomerRepo.Update(ctx, groomer); err != nil {
		if errors.Is(err, repository.ErrGroomerNotFound) {
			return nil, ErrGroomerNotFound
		}
		return nil, fmt.Errorf("failed to update groomer: %w", err)
	}

	// Инвалидируем кеш для обновления данных
	if err := s.cache.DeleteGroomer(ctx, id); err != nil {
		logger.Warn().Err(err).Str("groomer_id", id.String()).Msg("Failed to invalidate groomer cache")
	}

	return groomer, nil
}

// SoftDeleteGroomer переводит грумера в статус deleted
// Идемпотентна: повторное удаление не ошибка, NotFound только если
// грумер никогда не существовал. Отзывы грумера не удаляются.
func (s *GroomerService) SoftDeleteGroomer(ctx context.Context, id uuid.UUID) error {
	if err := s.groomerRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGroomerNotFound) {
			return ErrGroomerNotFound
		}
		return fmt.Errorf("failed to soft delete groomer: %w", err)
	}

	if err := s.cache.DeleteGroomer(ctx, id); err != nil {
		logger.Warn().Err(err).Str("groomer_id", id.String()).Msg("Failed to invalidate groomer cache")
	}

	metrics.GroomersDeleted.Inc()

	// Отправляем событие GROOMER_DELETED в Kafka
	event := entity.GroomerEvent{
		EventType: "GROOMER_DELETED",
		GroomerID: id,
		Timestamp: time.Now(),
	}
	if err := s.publishGroomerEvent(ctx, event); err != nil {
		// Грумер уже удалён, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("groomer_id", id.String()).Msg("Failed to publish groomer deleted event")
	}

	return nil
}

// SearchGroomers ищет грумеров по фильтрам с пагинацией
// Фильтры комбинируются через AND, мягко удалённые всегда исключаются
func (s *GroomerService) SearchGroomers(ctx context.Context, filter entity.GroomerFilter) ([]entity.Groomer, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	metrics.GroomerSearches.Inc()

	groomers, err := s.groomerRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search groomers: %w", err)
	}

	return groomers, nil
}

// publishGroomerEvent отправляет событие о грумере в Kafka
// Key - это GroomerID для правильного партиционирования
func (s *GroomerService) publishGroomerEvent(ctx context.Context, event entity.GroomerEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal groomer event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.GroomerID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
