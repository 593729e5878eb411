package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/middleware"
	"github.com/sunfix/sunfix-api/services"
	"gorm.io/gorm"
)

// SubmitRatingRequest represents the request body for rating a completed job
type SubmitRatingRequest struct {
	Score   int    `json:"score" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty"`
}

// SubmitRating handles POST /api/v1/jobs/:id/rating - records a rating for a
// completed job (the requesting user only, at most once per job)
func SubmitRating(c *gin.Context) {
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

	var req SubmitRatingRequest
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

	ratingService := services.NewRatingService(config.GetDB())
	rating, err := ratingService.SubmitRating(services.SubmitRatingData{
		JobID:   c.Param("id"),
		UserID:  userID,
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "JOB_NOT_FOUND",
					"message": "No job exists with this ID",
				},
			})
		case errors.Is(err, services.ErrNotJobOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Only the user who filed this job can rate it",
				},
			})
		case errors.Is(err, services.ErrRatingExists):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATING_EXISTS",
					"message": "This job has already been rated",
				},
			})
		case errors.Is(err, services.ErrInvalidScore),
			errors.Is(err, services.ErrJobNotCompleted),
			errors.Is(err, services.ErrJobNotRatable):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to submit rating",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    rating,
	})
}

// GetJobRating handles GET /api/v1/jobs/:id/rating - returns a job's rating, if any
func GetJobRating(c *gin.Context) {
	ratingService := services.NewRatingService(config.GetDB())
	rating, err := ratingService.GetForJob(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATING_NOT_FOUND",
					"message": "This job has not been rated",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load rating",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rating,
	})
}

// ListTechnicianRatings handles GET /api/v1/technicians/:id/ratings
func ListTechnicianRatings(c *gin.Context) {
	db := config.GetDB()

	// Make sure the technician exists before listing
	techService := services.NewTechnicianService(db)
	if _, err := techService.GetByID(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECHNICIAN_NOT_FOUND",
				"message": "No technician exists with this ID",
			},
		})
		return
	}

	ratingService := services.NewRatingService(db)
	ratings, err := ratingService.ListByTechnician(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list ratings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ratings,
	})
}
