package models

import (
	"time"
)

// Customer is the booking-side contact record. A fresh row is created for
// every booking submission, so several rows may share one email.
type Customer struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"full_name" gorm:"size:255;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"size:20;not null"`
	Email       string    `json:"email" gorm:"size:255;not null;index"`
	Address     string    `json:"address" gorm:"size:500;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
