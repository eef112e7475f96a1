package mocks

import (
	"context"
	"time"

	"groomhub/internal/app/grooming/entity"
	"groomhub/internal/app/grooming/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGroomerRepository мок для GroomerRepository
type MockGroomerRepository struct {
	mock.Mock
}

func (m *MockGroomerRepository) Create(ctx context.Context, groomer *entity.Groomer) error {
	args := m.Called(ctx, groomer)
	return args.Error(0)
}

func (m *MockGroomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Groomer), args.Error(1)
}

func (m *MockGroomerRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Groomer), args.Error(1)
}

func (m *MockGroomerRepository) Update(ctx context.Context, groomer *entity.Groomer) error {
	args := m.Called(ctx, groomer)
	return args.Error(0)
}

func (m *MockGroomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroomerRepository) Search(ctx context.Context, filter entity.GroomerFilter) ([]entity.Groomer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Groomer), args.Error(1)
}

// MockReviewRepository мок для ReviewRepository.
// Если задан Groomer, CreateWithRatingUpdate применяет aggregate к его
// текущим rating/review_count как настоящая транзакция.
type MockReviewRepository struct {
	mock.Mock
	Groomer *entity.Groomer
}

func (m *MockReviewRepository) CreateWithRatingUpdate(ctx context.Context, review *entity.Review, aggregate repository.RatingAggregateFunc) (*entity.Groomer, error) {
	args := m.Called(ctx, review, aggregate)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	if m.Groomer != nil {
		newRating, newCount, err := aggregate(m.Groomer.Rating, m.Groomer.ReviewCount)
		if err != nil {
			return nil, err
		}
		m.Groomer.Rating = newRating
		m.Groomer.ReviewCount = newCount
		return m.Groomer, nil
	}
	return args.Get(0).(*entity.Groomer), nil
}

func (m *MockReviewRepository) GetByGroomerID(ctx context.Context, groomerID uuid.UUID, skip, limit int) ([]entity.Review, error) {
	args := m.Called(ctx, groomerID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

// MockGroomerCache мок для GroomerCache (Redis)
type MockGroomerCache struct {
	mock.Mock
}

func (m *MockGroomerCache) SetGroomer(ctx context.Context, groomer *entity.Groomer, ttl time.Duration) error {
	args := m.Called(ctx, groomer, ttl)
	return args.Error(0)
}

func (m *MockGroomerCache) GetGroomer(ctx context.Context, id uuid.UUID) (*entity.Groomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Groomer), args.Error(1)
}

func (m *MockGroomerCache) DeleteGroomer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroomerCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для MessagePublisher (Kafka)
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
