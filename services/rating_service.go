package services

import (
	"errors"

	"github.com/sunfix/sunfix-api/models"
	"gorm.io/gorm"
)

// RatingService records post-completion ratings and folds them into the
// technician's rolling average.
type RatingService struct {
	db    *gorm.DB
	jobs  *JobService
	techs *TechnicianService
}

// NewRatingService creates a rating service backed by the given database
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{
		db:    db,
		jobs:  NewJobService(db),
		techs: NewTechnicianService(db),
	}
}

// SubmitRatingData carries the fields of a rating submission
type SubmitRatingData struct {
	JobID   string
	UserID  string
	Score   int
	Comment string
}

// SubmitRating creates the rating record for a completed job, updates the
// technician's rolling average and writes the score onto the job. The job
// must be completed, have an assigned technician, belong to the submitting
// user and not be rated yet; all three writes commit in one transaction.
func (s *RatingService) SubmitRating(data SubmitRatingData) (*models.Rating, error) {
	if data.Score < 1 || data.Score > 5 {
		return nil, ErrInvalidScore
	}

	job, err := s.jobs.GetJobByID(data.JobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != data.UserID {
		return nil, ErrNotJobOwner
	}
	if job.Status != models.StatusCompleted {
		return nil, ErrJobNotCompleted
	}
	if job.TechnicianID == nil {
		return nil, ErrJobNotRatable
	}

	var existing models.Rating
	err = s.db.First(&existing, "job_id = ?", data.JobID).Error
	if err == nil {
		return nil, ErrRatingExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rating := models.Rating{
		JobID:        data.JobID,
		UserID:       data.UserID,
		TechnicianID: *job.TechnicianID,
		Score:        data.Score,
		Comment:      data.Comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}
		if _, err := s.techs.RecordRatingScore(tx, rating.TechnicianID, rating.Score); err != nil {
			return err
		}
		return s.jobs.SetJobRating(tx, rating.JobID, rating.Score)
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// ListByTechnician returns a technician's ratings, most recent first
func (s *RatingService) ListByTechnician(techID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.Where("technician_id = ?", techID).Order("created_at DESC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetForJob returns the rating recorded for a job, if any
func (s *RatingService) GetForJob(jobID string) (*models.Rating, error) {
	var rating models.Rating
	if err := s.db.First(&rating, "job_id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}
