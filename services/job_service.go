package services

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/sunfix/sunfix-api/models"
	"gorm.io/gorm"
)

// PayoutPolicy computes the amount credited to a technician when a job
// they are assigned to completes.
type PayoutPolicy func(job *models.Job) float64

// defaultPayoutPolicy pays a random whole amount between 200 and 299 per job
func defaultPayoutPolicy(job *models.Job) float64 {
	return float64(200 + rand.Intn(100))
}

var payoutPolicy PayoutPolicy = defaultPayoutPolicy

// SetPayoutPolicy replaces the completion payout policy (primarily for testing).
// Passing nil restores the default random policy.
func SetPayoutPolicy(p PayoutPolicy) {
	if p == nil {
		payoutPolicy = defaultPayoutPolicy
		return
	}
	payoutPolicy = p
}

// JobService is the job lifecycle engine: it creates jobs, matches a
// technician at creation time, advances status through the fixed lifecycle,
// appends timestamped history, and credits earnings on completion.
type JobService struct {
	db    *gorm.DB
	techs *TechnicianService
}

// NewJobService creates a job service backed by the given database
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db, techs: NewTechnicianService(db)}
}

// CreateJobData carries the fields of a new repair request
type CreateJobData struct {
	UserID        string
	UserName      string
	IssueType     string
	Description   string
	ImageURL      *string
	Cluster       string
	Location      string
	PreferredTime string
}

// matchTechnician selects a technician for a new job in the given cluster.
// Candidates are the online technicians of the cluster, ranked women first,
// ties broken by descending rating. The sort is stable, so identical pools
// always produce the same pick. Returns nil when no candidate exists.
func (s *JobService) matchTechnician(cluster string) (*models.Technician, error) {
	var candidates []models.Technician
	err := s.db.Where("cluster = ? AND online = ?", cluster, true).
		Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if (a.Gender == models.GenderFemale) != (b.Gender == models.GenderFemale) {
			return a.Gender == models.GenderFemale
		}
		return a.Rating > b.Rating
	})

	return &candidates[0], nil
}

// CreateJob validates and persists a new repair request, invoking the
// matching policy against the technician pool of the request's cluster.
// A matched job starts in "assigned" with both the "requested" and
// "assigned" history entries stamped at creation time; an unmatched job
// stays "requested" with no technician until one comes online (no automatic
// re-assignment exists).
func (s *JobService) CreateJob(data CreateJobData) (*models.Job, error) {
	if !models.IsValidIssueType(data.IssueType) {
		return nil, ErrInvalidIssueType
	}
	if strings.TrimSpace(data.Cluster) == "" {
		return nil, ErrEmptyCluster
	}

	matched, err := s.matchTechnician(data.Cluster)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := models.Job{
		UserID:        data.UserID,
		UserName:      data.UserName,
		IssueType:     data.IssueType,
		Description:   data.Description,
		ImageURL:      data.ImageURL,
		Cluster:       data.Cluster,
		Location:      data.Location,
		PreferredTime: data.PreferredTime,
		Status:        models.StatusRequested,
		CreatedAt:     now,
		UpdatedAt:     now,
		StatusHistory: []models.StatusHistoryEntry{
			{Seq: 1, Status: models.StatusRequested, Timestamp: now},
		},
	}

	if matched != nil {
		job.Status = models.StatusAssigned
		job.TechnicianID = &matched.ID
		job.TechnicianName = &matched.Name
		job.StatusHistory = append(job.StatusHistory, models.StatusHistoryEntry{
			Seq: 2, Status: models.StatusAssigned, Timestamp: now,
		})
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJobStatus advances a job one step through the lifecycle, stamps
// updatedAt and appends a history entry. Only strict forward transitions are
// accepted. When the job reaches "completed" with an assigned technician,
// the payout policy amount is credited to that technician in the same
// transaction as the job update.
func (s *JobService) UpdateJobStatus(jobID string, newStatus models.JobStatus) (*models.Job, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	job, err := s.GetJobByID(jobID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(job.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	entry := models.StatusHistoryEntry{
		JobID:     job.ID,
		Seq:       len(job.StatusHistory) + 1,
		Status:    newStatus,
		Timestamp: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     newStatus,
			"updated_at": now,
		}
		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if newStatus == models.StatusCompleted && job.TechnicianID != nil {
			amount := payoutPolicy(job)
			if err := s.techs.CreditEarnings(tx, *job.TechnicianID, amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetJobByID(jobID)
}

// GetJobByID returns a job with its history ordered by append sequence
func (s *JobService) GetJobByID(jobID string) (*models.Job, error) {
	var job models.Job
	err := s.db.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&job, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// listJobs runs a job query with history preloaded, most recent first
func (s *JobService) listJobs(cond ...interface{}) ([]models.Job, error) {
	var jobs []models.Job
	q := s.db.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Order("created_at DESC")
	if len(cond) > 0 {
		q = q.Where(cond[0], cond[1:]...)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListJobsByUser returns the jobs a user has filed, most recent first
func (s *JobService) ListJobsByUser(userID string) ([]models.Job, error) {
	return s.listJobs("user_id = ?", userID)
}

// ListJobsByTechnician returns the jobs assigned to a technician, most recent first
func (s *JobService) ListJobsByTechnician(techID string) ([]models.Job, error) {
	return s.listJobs("technician_id = ?", techID)
}

// ListAllJobs returns every job, most recent first
func (s *JobService) ListAllJobs() ([]models.Job, error) {
	return s.listJobs()
}

// SetJobRating writes the numeric score onto the job record. The score
// overwrites the field; the append-only rating records live in the ratings
// table.
func (s *JobService) SetJobRating(tx *gorm.DB, jobID string, score int) error {
	if tx == nil {
		tx = s.db
	}
	result := tx.Model(&models.Job{}).Where("id = ?", jobID).Update("rating", score)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
