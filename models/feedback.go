package models

import (
	"time"
)

// Feedback holds one rating per (booking, submitting user). The composite
// unique index backs the application-level duplicate check so a concurrent
// double submission cannot slip through.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BookingID uint      `json:"booking_id" gorm:"not null;uniqueIndex:idx_feedback_booking_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_feedback_booking_user"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comments  string    `json:"comments" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// PendingFeedbackItem is the lightweight projection returned when listing
// completed-but-unreviewed bookings.
type PendingFeedbackItem struct {
	ID            uint      `json:"id"`
	ServiceType   string    `json:"service_type"`
	PreferredDate time.Time `json:"preferred_date"`
	WorkerName    *string   `json:"worker_name"`
	CustomerName  *string   `json:"customer_name"`
}
