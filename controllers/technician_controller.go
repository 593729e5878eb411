package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/middleware"
	"github.com/sunfix/sunfix-api/services"
)

// UpdateTechnicianRequest represents the request body for profile edits
type UpdateTechnicianRequest struct {
	Phone   string `json:"phone" binding:"omitempty"`
	Cluster string `json:"cluster" binding:"omitempty"`
}

// ListTechnicians handles GET /api/v1/technicians - lists all technician
// profiles (admins only)
func ListTechnicians(c *gin.Context) {
	techService := services.NewTechnicianService(config.GetDB())
	techs, err := techService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list technicians",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    techs,
	})
}

// GetMyTechnicianProfile handles GET /api/v1/technicians/me
func GetMyTechnicianProfile(c *gin.Context) {
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

	techService := services.NewTechnicianService(config.GetDB())
	tech, err := techService.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECHNICIAN_NOT_FOUND",
				"message": "Technician profile not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tech,
	})
}

// ToggleOnline handles PATCH /api/v1/technicians/me/online - flips the
// technician's availability for matching
func ToggleOnline(c *gin.Context) {
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

	techService := services.NewTechnicianService(config.GetDB())
	tech, err := techService.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECHNICIAN_NOT_FOUND",
				"message": "Technician profile not found",
			},
		})
		return
	}

	updated, err := techService.ToggleOnline(tech.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update availability",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// UpdateMyTechnicianProfile handles PATCH /api/v1/technicians/me
func UpdateMyTechnicianProfile(c *gin.Context) {
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

	var req UpdateTechnicianRequest
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

	techService := services.NewTechnicianService(config.GetDB())
	tech, err := techService.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECHNICIAN_NOT_FOUND",
				"message": "Technician profile not found",
			},
		})
		return
	}

	updated, err := techService.UpdateProfile(tech.ID, services.UpdateProfileData{
		Phone:   req.Phone,
		Cluster: req.Cluster,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// GetMyEarnings handles GET /api/v1/technicians/me/earnings - returns the
// technician's earnings accumulators and rating summary
func GetMyEarnings(c *gin.Context) {
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

	techService := services.NewTechnicianService(config.GetDB())
	tech, err := techService.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECHNICIAN_NOT_FOUND",
				"message": "Technician profile not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"earnings_today":  tech.EarningsToday,
			"earnings_weekly": tech.EarningsWeekly,
			"earnings_total":  tech.EarningsTotal,
			"total_jobs":      tech.TotalJobs,
			"rating":          tech.Rating,
			"total_ratings":   tech.TotalRatings,
		},
	})
}
