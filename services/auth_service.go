package services

import (
	"errors"
	"strings"

	"github.com/sunfix/sunfix-api/models"
	"gorm.io/gorm"
)

// Errors surfaced by signup and login. These become user-facing messages at
// the handler boundary and never propagate further.
var (
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrAccountNotFound    = errors.New("no account found with this email")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidRole        = errors.New("role must be user, technician or admin")
	ErrInvalidGender      = errors.New("gender must be male or female")
	ErrMissingGender      = errors.New("gender is required for technician signups")
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

// AuthService handles signup and login. Credentials are stored and compared
// verbatim; this is a prototype without password hashing.
type AuthService struct {
	db    *gorm.DB
	techs *TechnicianService
}

// NewAuthService creates an auth service backed by the given database
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, techs: NewTechnicianService(db)}
}

// SignupData carries the fields of an account signup
type SignupData struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
	Cluster  string
	Gender   string // required when Role is technician
}

// Signup creates a user account, its credential record, and — for
// technician signups — the linked technician profile, all in one transaction.
func (s *AuthService) Signup(data SignupData) (*models.User, error) {
	if len(data.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	switch data.Role {
	case models.RoleUser, models.RoleTechnician, models.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	if data.Role == models.RoleTechnician {
		switch data.Gender {
		case models.GenderMale, models.GenderFemale:
		case "":
			return nil, ErrMissingGender
		default:
			return nil, ErrInvalidGender
		}
	}

	var existing models.User
	err := s.db.First(&existing, "email = ?", data.Email).Error
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Name:    data.Name,
		Email:   data.Email,
		Phone:   data.Phone,
		Role:    data.Role,
		Cluster: data.Cluster,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateAccount
			}
			return err
		}

		cred := models.Credential{Email: data.Email, Password: data.Password}
		if err := tx.Create(&cred).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateAccount
			}
			return err
		}

		if data.Role == models.RoleTechnician {
			tech := models.Technician{
				UserID:  user.ID,
				Name:    data.Name,
				Email:   data.Email,
				Phone:   data.Phone,
				Gender:  data.Gender,
				Cluster: data.Cluster,
			}
			if err := tx.Create(&tech).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login validates an email/password pair and returns the account on success
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	var cred models.Credential
	if err := s.db.First(&cred, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncorrectPassword
		}
		return nil, err
	}

	if cred.Password != password {
		return nil, ErrIncorrectPassword
	}

	return &user, nil
}

// GetUserByID returns the account with the given ID
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all accounts in signup order
func (s *AuthService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// isUniqueViolation detects duplicate-key errors from both PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
