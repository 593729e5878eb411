package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sunfix/sunfix-api/models"
	"gorm.io/gorm"
)

// completeTestJob walks a freshly created, matched job to "completed"
func completeTestJob(t *testing.T, svc *JobService, jobID string) *models.Job {
	t.Helper()

	var job *models.Job
	var err error
	for _, status := range []models.JobStatus{models.StatusEnroute, models.StatusInProgress, models.StatusCompleted} {
		job, err = svc.UpdateJobStatus(jobID, status)
		if err != nil {
			t.Fatalf("Failed to advance job to %s: %v", status, err)
		}
	}
	return job
}

func setupRatedScenario(t *testing.T, db *gorm.DB) (*models.Job, *models.Technician) {
	t.Helper()

	jobSvc := NewJobService(db)
	tech := createTestTechnician(t, db, "tech", models.GenderFemale, "Khanapur", true, 0)

	SetPayoutPolicy(func(job *models.Job) float64 { return 250 })
	t.Cleanup(func() { SetPayoutPolicy(nil) })

	job, err := jobSvc.CreateJob(newJobData("Khanapur"))
	if err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	job = completeTestJob(t, jobSvc, job.ID)
	return job, tech
}

func TestSubmitRating(t *testing.T) {
	db := setupJobTestDB(t)
	job, tech := setupRatedScenario(t, db)

	svc := NewRatingService(db)
	rating, err := svc.SubmitRating(SubmitRatingData{
		JobID:   job.ID,
		UserID:  job.UserID,
		Score:   4,
		Comment: "Fixed the battery quickly",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, rating.ID)
	assert.Equal(t, tech.ID, rating.TechnicianID)
	assert.Equal(t, 4, rating.Score)

	// The rolling average picked up the score
	reloadedTech, err := NewTechnicianService(db).GetByID(tech.ID)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, reloadedTech.Rating)
	assert.Equal(t, 1, reloadedTech.TotalRatings)

	// The job record carries the score
	reloadedJob, err := NewJobService(db).GetJobByID(job.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, reloadedJob.Rating) {
		assert.Equal(t, 4, *reloadedJob.Rating)
	}
}

func TestSubmitRatingRejectsDuplicates(t *testing.T) {
	db := setupJobTestDB(t)
	job, tech := setupRatedScenario(t, db)

	svc := NewRatingService(db)
	data := SubmitRatingData{JobID: job.ID, UserID: job.UserID, Score: 5, Comment: "great"}

	_, err := svc.SubmitRating(data)
	assert.NoError(t, err)

	_, err = svc.SubmitRating(data)
	assert.ErrorIs(t, err, ErrRatingExists)

	// The duplicate must not have skewed the average again
	reloaded, err := NewTechnicianService(db).GetByID(tech.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, reloaded.Rating)
	assert.Equal(t, 1, reloaded.TotalRatings)
}

func TestSubmitRatingValidation(t *testing.T) {
	db := setupJobTestDB(t)
	job, _ := setupRatedScenario(t, db)
	svc := NewRatingService(db)

	_, err := svc.SubmitRating(SubmitRatingData{JobID: job.ID, UserID: job.UserID, Score: 0})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.SubmitRating(SubmitRatingData{JobID: job.ID, UserID: job.UserID, Score: 6})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.SubmitRating(SubmitRatingData{JobID: "no-such-job", UserID: job.UserID, Score: 4})
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = svc.SubmitRating(SubmitRatingData{JobID: job.ID, UserID: "somebody-else", Score: 4})
	assert.ErrorIs(t, err, ErrNotJobOwner)
}

func TestSubmitRatingRequiresCompletedJob(t *testing.T) {
	db := setupJobTestDB(t)
	jobSvc := NewJobService(db)
	createTestTechnician(t, db, "tech", models.GenderFemale, "Khanapur", true, 0)

	job, err := jobSvc.CreateJob(newJobData("Khanapur"))
	assert.NoError(t, err)

	svc := NewRatingService(db)
	_, err = svc.SubmitRating(SubmitRatingData{JobID: job.ID, UserID: job.UserID, Score: 4})
	assert.ErrorIs(t, err, ErrJobNotCompleted)
}

func TestSubmitRatingRequiresTechnician(t *testing.T) {
	db := setupJobTestDB(t)
	jobSvc := NewJobService(db)

	// Unmatched job forced into "completed" directly; no technician to rate
	job, err := jobSvc.CreateJob(newJobData("Khanapur"))
	assert.NoError(t, err)
	assert.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).
		Update("status", models.StatusCompleted).Error)

	svc := NewRatingService(db)
	_, err = svc.SubmitRating(SubmitRatingData{JobID: job.ID, UserID: job.UserID, Score: 4})
	assert.ErrorIs(t, err, ErrJobNotRatable)
}

func TestListByTechnicianAndGetForJob(t *testing.T) {
	db := setupJobTestDB(t)
	job, tech := setupRatedScenario(t, db)

	svc := NewRatingService(db)
	_, err := svc.SubmitRating(SubmitRatingData{JobID: job.ID, UserID: job.UserID, Score: 3, Comment: "ok"})
	assert.NoError(t, err)

	ratings, err := svc.ListByTechnician(tech.ID)
	assert.NoError(t, err)
	if assert.Len(t, ratings, 1) {
		assert.Equal(t, job.ID, ratings[0].JobID)
	}

	forJob, err := svc.GetForJob(job.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, forJob.Score)

	_, err = svc.GetForJob("no-such-job")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
