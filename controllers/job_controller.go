package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/middleware"
	"github.com/sunfix/sunfix-api/models"
	"github.com/sunfix/sunfix-api/services"
)

// CreateJobRequest represents the request body for filing a repair request
type CreateJobRequest struct {
	IssueType     string  `json:"issue_type" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	ImageURL      *string `json:"image_url"`
	Cluster       string  `json:"cluster" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	PreferredTime string  `json:"preferred_time" binding:"required"`
}

// UpdateJobStatusRequest represents the request body for a status change
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateJob handles POST /api/v1/jobs - files a repair request (users only).
// The matching policy runs at creation time; when an online technician exists
// in the request's cluster the job comes back already assigned.
func CreateJob(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	authService := services.NewAuthService(db)
	user, err := authService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User account not found",
			},
		})
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	jobService := services.NewJobService(db)
	job, err := jobService.CreateJob(services.CreateJobData{
		UserID:        user.ID,
		UserName:      user.Name,
		IssueType:     req.IssueType,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Cluster:       req.Cluster,
		Location:      req.Location,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidIssueType) || errors.Is(err, services.ErrEmptyCluster) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// ListJobs handles GET /api/v1/jobs - lists jobs scoped by role:
// users see their own requests, technicians see jobs assigned to them,
// admins see everything. Always most recent first.
func ListJobs(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	role, err := middleware.GetRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_CLAIMS",
				"message": "Could not retrieve token claims",
			},
		})
		return
	}

	db := config.GetDB()
	jobService := services.NewJobService(db)

	var jobs []models.Job
	switch role {
	case models.RoleAdmin:
		jobs, err = jobService.ListAllJobs()
	case models.RoleTechnician:
		techService := services.NewTechnicianService(db)
		tech, techErr := techService.GetByUserID(userID)
		if techErr != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TECHNICIAN_NOT_FOUND",
					"message": "Technician profile not found",
				},
			})
			return
		}
		jobs, err = jobService.ListJobsByTechnician(tech.ID)
	default:
		jobs, err = jobService.ListJobsByUser(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list jobs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// GetJob handles GET /api/v1/jobs/:id - returns one job with its status history
func GetJob(c *gin.Context) {
	jobID := c.Param("id")

	jobService := services.NewJobService(config.GetDB())
	job, err := jobService.GetJobByID(jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "No job exists with this ID",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJobStatus handles PATCH /api/v1/jobs/:id/status - advances a job one
// step through the lifecycle (assigned technician only). Completing a job
// credits the technician's earnings in the same transaction.
func UpdateJobStatus(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	jobService := services.NewJobService(db)

	job, err := jobService.GetJobByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "No job exists with this ID",
			},
		})
		return
	}

	// Only the assigned technician may progress the job
	techService := services.NewTechnicianService(db)
	tech, err := techService.GetByUserID(userID)
	if err != nil || job.TechnicianID == nil || *job.TechnicianID != tech.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the assigned technician can update this job",
			},
		})
		return
	}

	updated, err := jobService.UpdateJobStatus(job.ID, models.JobStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": err.Error(),
				},
			})
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "No job exists with this ID",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update job status",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}
