package models

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid reports whether the gender is one of the accepted values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Worker is a service-provider profile. ServiceType is matched exactly,
// Location by case-insensitive substring. Document paths default to "" when
// the corresponding upload was not provided.
type Worker struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	FullName           string    `json:"full_name" gorm:"size:255;not null"`
	PhoneNumber        string    `json:"phone_number" gorm:"size:20;not null"`
	Email              string    `json:"email" gorm:"size:255;not null;index"`
	DateOfBirth        time.Time `json:"dob" gorm:"not null"`
	Gender             Gender    `json:"gender" gorm:"type:varchar(10);not null"`
	Location           string    `json:"location" gorm:"size:255;not null"`
	ServiceType        string    `json:"service_type" gorm:"size:100;not null;index"`
	Experience         int       `json:"experience" gorm:"not null"`
	Skills             string    `json:"skills" gorm:"type:text"`
	Languages          string    `json:"languages" gorm:"size:255;not null"`
	AvailableHours     string    `json:"available_hours" gorm:"size:100;not null"`
	MinPricePerHour    float64   `json:"min_price_per_hour" gorm:"type:decimal(10,2);not null"`
	MaxPricePerHour    float64   `json:"max_price_per_hour" gorm:"type:decimal(10,2);not null"`
	IDProofPath        string    `json:"id_proof_path" gorm:"size:500;default:''"`
	ResumePath         string    `json:"resume_path" gorm:"size:500;default:''"`
	ProfilePicturePath string    `json:"profile_picture_path" gorm:"size:500;default:''"`
	WorkSamplesPath    string    `json:"work_samples_path" gorm:"size:500;default:''"`
	AgreementAccepted  bool      `json:"agreement_accepted" gorm:"default:false"`
	InfoConfirmed      bool      `json:"info_confirmed" gorm:"default:false"`
	AvgRating          float64   `json:"avg_rating" gorm:"type:decimal(3,2);default:4.5"`
	TotalReviews       int       `json:"total_reviews" gorm:"default:0"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Worker) TableName() string {
	return "workers"
}
