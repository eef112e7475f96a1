package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"groomhub/internal/app/grooming/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ReviewRepositoryTestSuite тестовый suite для PostgreSQL repository
type ReviewRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ReviewRepository
	sqlDB *sql.DB
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositoryTestSuite))
}

func (s *ReviewRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewReviewRepository(s.db)
}

func (s *ReviewRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func reviewColumns() []string {
	return []string{"review_id", "groomer_id", "booking_id", "user_id", "rating", "comment", "created_at"}
}

func testReview(groomerID uuid.UUID, rating int) *entity.Review {
	return &entity.Review{
		ReviewID:  uuid.New(),
		GroomerID: groomerID,
		BookingID: uuid.New(),
		UserID:    uuid.New(),
		Rating:    rating,
		Comment:   "Nice grooming",
		CreatedAt: time.Now().UTC(),
	}
}

// ===================== CreateWithRatingUpdate Tests =====================

func (s *ReviewRepositoryTestSuite) TestCreateWithRatingUpdate_Success() {
	ctx := context.Background()
	groomerID := uuid.New()
	review := testReview(groomerID, 5)

	s.mock.ExpectBegin()
	// Строка грумера блокируется на время пересчёта
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groomers" WHERE groomer_id = $1 AND status <> $2`)).
		WithArgs(groomerID, "deleted", 1).
		WillReturnRows(sqlmock.NewRows(groomerColumns()).
			AddRow(groomerID, "Anna", "Petrova", "Moscow", "cats", "active", 5.0, 1, 0, 3))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "groomers" SET`)).
		WithArgs(5.0, 2, groomerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	groomer, err := s.repo.CreateWithRatingUpdate(ctx, review, func(rating float64, reviewCount int) (float64, int, error) {
		return (rating*float64(reviewCount) + float64(review.Rating)) / float64(reviewCount+1), reviewCount + 1, nil
	})

	// Assert
	s.NoError(err)
	s.NotNil(groomer)
	s.Equal(5.0, groomer.Rating)
	s.Equal(2, groomer.ReviewCount)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestCreateWithRatingUpdate_GroomerNotFound() {
	ctx := context.Background()
	groomerID := uuid.New()
	review := testReview(groomerID, 4)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groomers" WHERE groomer_id = $1 AND status <> $2`)).
		WithArgs(groomerID, "deleted", 1).
		WillReturnRows(sqlmock.NewRows(groomerColumns()))
	s.mock.ExpectRollback()

	// Act
	groomer, err := s.repo.CreateWithRatingUpdate(ctx, review, func(rating float64, reviewCount int) (float64, int, error) {
		return rating, reviewCount, nil
	})

	// Assert
	s.Error(err)
	s.Nil(groomer)
	s.ErrorIs(err, ErrGroomerNotFound)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestCreateWithRatingUpdate_DeletedGroomerRejected() {
	ctx := context.Background()
	groomerID := uuid.New()
	review := testReview(groomerID, 4)

	// status <> 'deleted' в условии: удалённый грумер не находится
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groomers" WHERE groomer_id = $1 AND status <> $2`)).
		WithArgs(groomerID, "deleted", 1).
		WillReturnRows(sqlmock.NewRows(groomerColumns()))
	s.mock.ExpectRollback()

	// Act
	groomer, err := s.repo.CreateWithRatingUpdate(ctx, review, func(rating float64, reviewCount int) (float64, int, error) {
		return rating, reviewCount, nil
	})

	// Assert
	s.ErrorIs(err, ErrGroomerNotFound)
	s.Nil(groomer)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestCreateWithRatingUpdate_AggregateErrorRollsBack() {
	ctx := context.Background()
	groomerID := uuid.New()
	review := testReview(groomerID, 5)
	aggregateErr := errors.New("aggregate failed")

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groomers" WHERE groomer_id = $1 AND status <> $2`)).
		WithArgs(groomerID, "deleted", 1).
		WillReturnRows(sqlmock.NewRows(groomerColumns()).
			AddRow(groomerID, "Anna", "Petrova", "Moscow", "cats", "active", 4.0, 2, 0, 5))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectRollback()

	// Act
	groomer, err := s.repo.CreateWithRatingUpdate(ctx, review, func(rating float64, reviewCount int) (float64, int, error) {
		return rating, reviewCount, aggregateErr
	})

	// Assert
	s.ErrorIs(err, aggregateErr)
	s.Nil(groomer)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestCreateWithRatingUpdate_InsertErrorRollsBack() {
	ctx := context.Background()
	groomerID := uuid.New()
	review := testReview(groomerID, 3)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groomers" WHERE groomer_id = $1 AND status <> $2`)).
		WithArgs(groomerID, "deleted", 1).
		WillReturnRows(sqlmock.NewRows(groomerColumns()).
			AddRow(groomerID, "Anna", "Petrova", "Moscow", "cats", "active", 4.0, 2, 0, 5))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	groomer, err := s.repo.CreateWithRatingUpdate(ctx, review, func(rating float64, reviewCount int) (float64, int, error) {
		return rating, reviewCount, nil
	})

	// Assert
	s.Error(err)
	s.Nil(groomer)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByGroomerID Tests =====================

func (s *ReviewRepositoryTestSuite) TestGetByGroomerID_OrderedOldestFirst() {
	ctx := context.Background()
	groomerID := uuid.New()
	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	firstID := uuid.New()
	secondID := uuid.New()

	rows := sqlmock.NewRows(reviewColumns()).
		AddRow(firstID, groomerID, uuid.New(), uuid.New(), 5, "First visit", older).
		AddRow(secondID, groomerID, uuid.New(), uuid.New(), 3, "Second visit", newer)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE groomer_id = $1 ORDER BY created_at ASC, review_id ASC`)).
		WithArgs(groomerID, 100).
		WillReturnRows(rows)

	// Act
	reviews, err := s.repo.GetByGroomerID(ctx, groomerID, 0, 100)

	// Assert
	s.NoError(err)
	s.Len(reviews, 2)
	s.Equal(firstID, reviews[0].ReviewID)
	s.Equal(secondID, reviews[1].ReviewID)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestGetByGroomerID_Pagination() {
	ctx := context.Background()
	groomerID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE groomer_id = $1 ORDER BY created_at ASC, review_id ASC LIMIT $2 OFFSET $3`)).
		WithArgs(groomerID, 10, 5).
		WillReturnRows(sqlmock.NewRows(reviewColumns()))

	// Act
	reviews, err := s.repo.GetByGroomerID(ctx, groomerID, 5, 10)

	// Assert
	s.NoError(err)
	s.Empty(reviews)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestGetByGroomerID_Empty() {
	ctx := context.Background()
	groomerID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE groomer_id = $1`)).
		WithArgs(groomerID, 100).
		WillReturnRows(sqlmock.NewRows(reviewColumns()))

	// Act
	reviews, err := s.repo.GetByGroomerID(ctx, groomerID, 0, 100)

	// Assert
	s.NoError(err)
	s.Empty(reviews)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRepositoryTestSuite) TestGetByGroomerID_DBError() {
	ctx := context.Background()
	groomerID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE groomer_id = $1`)).
		WithArgs(groomerID, 100).
		WillReturnError(sql.ErrConnDone)

	// Act
	reviews, err := s.repo.GetByGroomerID(ctx, groomerID, 0, 100)

	// Assert
	s.Error(err)
	s.Nil(reviews)

	s.NoError(s.mock.ExpectationsWereMet())
}
