package service

import (
	"context"

	"groomhub/internal/app/grooming/entity"

	"github.com/google/uuid"
)

type GroomerServiceInterface interface {
	CreateGroomer(ctx context.Context, req *entity.CreateGroomerRequest) (*entity.Groomer, error)
	GetGroomer(ctx context.Context, id uuid.UUID) (*entity.Groomer, error)
	UpdateGroomer(ctx context.Context, id uuid.UUID, req *entity.UpdateGroomerRequest) (*entity.Groomer, error)
	SoftDeleteGroomer(ctx context.Context, id uuid.UUID) error
	SearchGroomers(ctx context.Context, filter entity.GroomerFilter) ([]entity.Groomer, error)
}

type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, groomerID uuid.UUID, req *entity.CreateReviewRequest) (*entity.Review, error)
	ListGroomerReviews(ctx context.Context, groomerID uuid.UUID, skip, limit int) ([]entity.Review, error)
}
