package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a user's post-completion score for a job. The unique index on
// JobID enforces at most one rating per job.
type Rating struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	JobID        string    `gorm:"uniqueIndex;not null" json:"job_id"`
	UserID       string    `gorm:"not null;index" json:"user_id"`
	TechnicianID string    `gorm:"not null;index" json:"technician_id"`
	Score        int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

// BeforeCreate assigns an opaque UUID identifier to new ratings
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
