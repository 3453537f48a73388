package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCompleted BookingStatus = "Completed"
)

// IsValid reports whether the status is one of the accepted values.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "Cash"
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCard PaymentMode = "Card"
)

func (p PaymentMode) IsValid() bool {
	switch p {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard:
		return true
	}
	return false
}

// Booking is the central transactional entity. WorkerID stays nil until a
// worker is assigned in a follow-up step; status transitions are not order
// enforced.
type Booking struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	CustomerID         uint          `json:"customer_id" gorm:"not null;index"`
	Customer           Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WorkerID           *uint         `json:"worker_id" gorm:"index"`
	Worker             *Worker       `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	ServiceType        string        `json:"service_type" gorm:"size:100;not null"`
	PreferredDate      time.Time     `json:"preferred_date" gorm:"not null"`
	ProblemDescription string        `json:"problem_description" gorm:"type:text"`
	ToolsRequired      string        `json:"tools_required" gorm:"type:text"`
	ImagePath          string        `json:"image_path" gorm:"size:500;default:''"`
	PaymentMode        PaymentMode   `json:"payment_mode" gorm:"type:varchar(10);default:'Cash'"`
	Status             BookingStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	CreatedAt          time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}
