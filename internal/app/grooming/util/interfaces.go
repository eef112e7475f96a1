package util

import (
	"context"
	"time"

	"groomhub/internal/app/grooming/entity"

	"github.com/google/uuid"
)

// GroomerCache интерфейс для кеширования профилей грумеров в Redis
// Используется для dependency injection и упрощения тестирования
type GroomerCache interface {
	SetGroomer(ctx context.Context, groomer *entity.Groomer, ttl time.Duration) error
	GetGroomer(ctx context.Context, id uuid.UUID) (*entity.Groomer, error)
	DeleteGroomer(ctx context.Context, id uuid.UUID) error
	Close() error
}
