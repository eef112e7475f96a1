package service

import "errors"

const (
	// Границы допустимой оценки отзыва
	MinReviewRating = 1
	MaxReviewRating = 5
)

var (
	// ErrInvalidRating - оценка отзыва вне диапазона [1, 5]
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ApplyReview применяет новый отзыв к агрегатному состоянию грумера
// и возвращает обновлённую пару (rating, review_count).
//
// Чистая функция без побочных эффектов: единственный путь, через который
// меняются rating и review_count. Инкрементальная формула
// (rating*count + r) / (count + 1) математически эквивалентна пересчёту
// среднего по всем отзывам с нуля.
//
// Для первого отзыва (reviewCount == 0) прежний rating имеет нулевой вес
// и результат равен оценке отзыва.
func ApplyReview(rating float64, reviewCount int, reviewRating int) (float64, int, error) {
	if reviewRating < MinReviewRating || reviewRating > MaxReviewRating {
		return rating, reviewCount, ErrInvalidRating
	}

	newCount := reviewCount + 1
	newRating := (rating*float64(reviewCount) + float64(reviewRating)) / float64(newCount)

	return newRating, newCount, nil
}
