package services

import (
	"errors"
	"math"

	"github.com/sunfix/sunfix-api/models"
	"gorm.io/gorm"
)

// TechnicianService manages technician profiles, availability, earnings
// accumulators and the rolling rating.
type TechnicianService struct {
	db *gorm.DB
}

// NewTechnicianService creates a technician service backed by the given database
func NewTechnicianService(db *gorm.DB) *TechnicianService {
	return &TechnicianService{db: db}
}

// RegisterTechnicianData carries the fields needed to register a technician profile
type RegisterTechnicianData struct {
	UserID  string
	Name    string
	Email   string
	Phone   string
	Gender  string
	Cluster string
}

// Register creates a technician profile for a user. New technicians start
// offline with zeroed earnings and the unrated sentinel rating of 0.
func (s *TechnicianService) Register(data RegisterTechnicianData) (*models.Technician, error) {
	tech := models.Technician{
		UserID:  data.UserID,
		Name:    data.Name,
		Email:   data.Email,
		Phone:   data.Phone,
		Gender:  data.Gender,
		Cluster: data.Cluster,
		Online:  false,
	}

	if err := s.db.Create(&tech).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

// GetByID returns a technician by its ID
func (s *TechnicianService) GetByID(id string) (*models.Technician, error) {
	var tech models.Technician
	if err := s.db.First(&tech, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}
	return &tech, nil
}

// GetByUserID returns the technician profile owned by the given user
func (s *TechnicianService) GetByUserID(userID string) (*models.Technician, error) {
	var tech models.Technician
	if err := s.db.First(&tech, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}
	return &tech, nil
}

// List returns all technicians in registration order
func (s *TechnicianService) List() ([]models.Technician, error) {
	var techs []models.Technician
	if err := s.db.Order("created_at ASC").Find(&techs).Error; err != nil {
		return nil, err
	}
	return techs, nil
}

// ListByCluster returns all technicians in the given cluster
func (s *TechnicianService) ListByCluster(cluster string) ([]models.Technician, error) {
	var techs []models.Technician
	if err := s.db.Where("cluster = ?", cluster).Order("created_at ASC").Find(&techs).Error; err != nil {
		return nil, err
	}
	return techs, nil
}

// ToggleOnline flips the technician's availability flag. Calling it twice
// returns the technician to its original state.
func (s *TechnicianService) ToggleOnline(techID string) (*models.Technician, error) {
	tech, err := s.GetByID(techID)
	if err != nil {
		return nil, err
	}

	tech.Online = !tech.Online
	if err := s.db.Model(tech).Update("online", tech.Online).Error; err != nil {
		return nil, err
	}
	return tech, nil
}

// CreditEarnings adds amount to all three earnings accumulators and
// increments the completed-job counter. Called by the job service when a job
// with an assigned technician reaches "completed"; tx must be the transaction
// the job update runs in so both mutations commit together.
func (s *TechnicianService) CreditEarnings(tx *gorm.DB, techID string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if tx == nil {
		tx = s.db
	}

	result := tx.Model(&models.Technician{}).
		Where("id = ?", techID).
		Updates(map[string]interface{}{
			"earnings_today":  gorm.Expr("earnings_today + ?", amount),
			"earnings_weekly": gorm.Expr("earnings_weekly + ?", amount),
			"earnings_total":  gorm.Expr("earnings_total + ?", amount),
			"total_jobs":      gorm.Expr("total_jobs + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTechnicianNotFound
	}
	return nil
}

// RecordRatingScore folds a new score into the technician's rolling average
// using an incremental mean over the rating sample count. A prior rating of 0
// is the "unrated" sentinel, so the first score becomes the rating exactly.
// The result is rounded to one decimal place and never leaves [0,5].
func (s *TechnicianService) RecordRatingScore(tx *gorm.DB, techID string, score int) (*models.Technician, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidScore
	}
	if tx == nil {
		tx = s.db
	}

	var tech models.Technician
	if err := tx.First(&tech, "id = ?", techID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}

	tech.TotalRatings++
	if tech.Rating == 0 {
		tech.Rating = float64(score)
	} else {
		n := float64(tech.TotalRatings)
		tech.Rating = math.Round(((tech.Rating*(n-1))+float64(score))/n*10) / 10
	}

	err := tx.Model(&tech).Updates(map[string]interface{}{
		"rating":        tech.Rating,
		"total_ratings": tech.TotalRatings,
	}).Error
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

// UpdateProfileData carries the technician-editable profile fields
type UpdateProfileData struct {
	Phone   string
	Cluster string
}

// UpdateProfile applies technician-initiated profile edits
func (s *TechnicianService) UpdateProfile(techID string, data UpdateProfileData) (*models.Technician, error) {
	tech, err := s.GetByID(techID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if data.Phone != "" {
		updates["phone"] = data.Phone
	}
	if data.Cluster != "" {
		updates["cluster"] = data.Cluster
	}
	if len(updates) == 0 {
		return tech, nil
	}

	if err := s.db.Model(tech).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(techID)
}
