package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/models"
	"github.com/sunfix/sunfix-api/services"
)

// ClusterBreakdown is one row of the per-cluster distribution
type ClusterBreakdown struct {
	Name        string `json:"name"`
	Jobs        int    `json:"jobs"`
	Technicians int    `json:"technicians"`
}

// IssueBreakdown is one row of the per-issue-type distribution
type IssueBreakdown struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GetAdminStats handles GET /api/v1/admin/stats - aggregated platform
// analytics for the admin dashboard
func GetAdminStats(c *gin.Context) {
	db := config.GetDB()

	jobService := services.NewJobService(db)
	jobs, err := jobService.ListAllJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load jobs",
			},
		})
		return
	}

	techService := services.NewTechnicianService(db)
	technicians, err := techService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load technicians",
			},
		})
		return
	}

	var completed, pending, inProgress int
	for _, j := range jobs {
		switch j.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusRequested:
			pending++
		default:
			// assigned, enroute and in-progress all count as active work
			inProgress++
		}
	}

	var onlineTechs, womenTechs, ratedTechs int
	var totalEarnings, ratingSum float64
	for _, t := range technicians {
		if t.Online {
			onlineTechs++
		}
		if t.Gender == models.GenderFemale {
			womenTechs++
		}
		if t.Rating > 0 {
			ratedTechs++
			ratingSum += t.Rating
		}
		totalEarnings += t.EarningsTotal
	}

	avgRating := 0.0
	if ratedTechs > 0 {
		avgRating = ratingSum / float64(ratedTechs)
	}

	clusterData := make([]ClusterBreakdown, 0, len(models.DefaultClusters))
	for _, cl := range models.DefaultClusters {
		row := ClusterBreakdown{Name: cl.Name}
		for _, j := range jobs {
			if j.Cluster == cl.Name {
				row.Jobs++
			}
		}
		for _, t := range technicians {
			if t.Cluster == cl.Name {
				row.Technicians++
			}
		}
		clusterData = append(clusterData, row)
	}

	issueData := make([]IssueBreakdown, 0, len(models.IssueTypes))
	for _, it := range models.IssueTypes {
		row := IssueBreakdown{Name: it.Label}
		for _, j := range jobs {
			if j.IssueType == it.Value {
				row.Value++
			}
		}
		issueData = append(issueData, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_jobs":         len(jobs),
			"completed_jobs":     completed,
			"pending_jobs":       pending,
			"in_progress_jobs":   inProgress,
			"online_technicians": onlineTechs,
			"women_technicians":  womenTechs,
			"total_earnings":     totalEarnings,
			"average_rating":     avgRating,
			"cluster_breakdown":  clusterData,
			"issue_breakdown":    issueData,
		},
	})
}
