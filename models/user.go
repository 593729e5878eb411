package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles supported by the platform
const (
	RoleUser       = "user"
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
)

// User represents an account in the system (end user, technician, or admin)
type User struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `gorm:"not null" json:"phone"`
	Role      string         `gorm:"not null;default:'user'" json:"role"` // "user", "technician" or "admin"
	Cluster   string         `gorm:"not null;index" json:"cluster"`       // service zone name, matched by string
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an opaque UUID identifier to new users
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Credential stores the login secret for an account, keyed by email.
// Kept in its own table so user records never carry the password.
type Credential struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"uniqueIndex;not null" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for the Credential model
func (Credential) TableName() string {
	return "credentials"
}
