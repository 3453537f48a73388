package models

import (
	"time"
)

// User is the authentication identity. Worker and Customer rows are linked
// to it only by sharing the same email address, never by foreign key.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"size:50;not null"`
	LastName     string    `json:"last_name" gorm:"size:50;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	PhoneNumber  string    `json:"phone_number" gorm:"size:20"`
	City         string    `json:"city" gorm:"size:100"`
	Address      string    `json:"address" gorm:"size:500"`
	ProfileImage string    `json:"profile_image" gorm:"size:500;default:''"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
