package entity

import (
	"time"

	"github.com/google/uuid"
)

// GroomerStatus статус профиля грумера
// Переход в deleted односторонний (мягкое удаление, без восстановления)
type GroomerStatus string

const (
	GroomerStatusActive   GroomerStatus = "active"
	GroomerStatusInactive GroomerStatus = "inactive"
	GroomerStatusDeleted  GroomerStatus = "deleted"
)

// Groomer представляет профиль грумера
// Rating и ReviewCount - производные поля, пишутся только через пересчёт
// рейтинга при создании отзыва. ComplaintCount и TotalBookingsCount
// поддерживаются внешними сервисами (Complaints/Bookings), здесь только хранятся.
type Groomer struct {
	GroomerID          uuid.UUID     `json:"groomer_id" gorm:"column:groomer_id;type:uuid;primaryKey"`
	FirstName          string        `json:"first_name" gorm:"size:100;not null"`
	LastName           string        `json:"last_name" gorm:"size:100;not null"`
	Location           string        `json:"location" gorm:"size:255;not null"`
	Specialization     string        `json:"specialization" gorm:"size:255"`
	Status             GroomerStatus `json:"status" gorm:"size:20;not null;default:active"`
	Rating             float64       `json:"rating" gorm:"not null;default:0"`
	ReviewCount        int           `json:"review_count" gorm:"not null;default:0"`
	ComplaintCount     int           `json:"complaint_count" gorm:"not null;default:0"`
	TotalBookingsCount int           `json:"total_bookings_count" gorm:"not null;default:0"`

	Reviews []Review `json:"-" gorm:"foreignKey:GroomerID;references:GroomerID"`
}

func (Groomer) TableName() string {
	return "groomers"
}

// Review представляет отзыв клиента о грумере
// Отзывы append-only: не обновляются и не удаляются,
// мягкое удаление грумера отзывы не трогает
type Review struct {
	ReviewID  uuid.UUID `json:"review_id" gorm:"column:review_id;type:uuid;primaryKey"`
	GroomerID uuid.UUID `json:"groomer_id" gorm:"type:uuid;not null;index"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null"` // UUID брони из Booking Service (не проверяется)
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`    // UUID пользователя из Auth Service (не проверяется)
	Rating    int       `json:"rating" gorm:"not null"`               // Оценка от 1 до 5
	Comment   string    `json:"comment" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewEvent представляет событие создания отзыва для Kafka
type ReviewEvent struct {
	EventType   string    `json:"event_type"` // REVIEW_CREATED
	ReviewID    uuid.UUID `json:"review_id"`
	GroomerID   uuid.UUID `json:"groomer_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	UserID      uuid.UUID `json:"user_id"`
	Rating      int       `json:"rating"`
	NewRating   float64   `json:"new_rating"`   // Новый средний рейтинг грумера
	ReviewCount int       `json:"review_count"` // Количество отзывов после применения
	Timestamp   time.Time `json:"timestamp"`
}

// GroomerEvent представляет событие изменения профиля грумера для Kafka
type GroomerEvent struct {
	EventType string    `json:"event_type"` // GROOMER_DELETED
	GroomerID uuid.UUID `json:"groomer_id"`
	Timestamp time.Time `json:"timestamp"`
}
