package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Technician genders recognized by the matching policy
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Technician represents a field technician's service profile. One user with
// role "technician" owns exactly one Technician record (linked by UserID).
// Earnings accumulators and the rolling rating are mutated only by the job
// and rating services.
type Technician struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	UserID         string         `gorm:"uniqueIndex;not null" json:"user_id"` // back-reference to users table
	User           User           `gorm:"foreignKey:UserID" json:"-"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"not null" json:"email"`
	Phone          string         `gorm:"not null" json:"phone"`
	Gender         string         `gorm:"not null" json:"gender"` // "male" or "female"
	Cluster        string         `gorm:"not null;index" json:"cluster"`
	Online         bool           `gorm:"not null;default:false" json:"online"`
	Rating         float64        `gorm:"not null;default:0" json:"rating"`        // 0 means "no ratings yet", not a real score
	TotalJobs      int            `gorm:"not null;default:0" json:"total_jobs"`    // completed jobs
	TotalRatings   int            `gorm:"not null;default:0" json:"total_ratings"` // rating sample count, tracked separately from jobs
	EarningsToday  float64        `gorm:"not null;default:0" json:"earnings_today"`
	EarningsWeekly float64        `gorm:"not null;default:0" json:"earnings_weekly"`
	EarningsTotal  float64        `gorm:"not null;default:0" json:"earnings_total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Technician model
func (Technician) TableName() string {
	return "technicians"
}

// BeforeCreate assigns an opaque UUID identifier to new technicians
func (t *Technician) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
