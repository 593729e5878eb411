package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/models"
)

// ListClusters handles GET /api/v1/clusters - lists the fixed service zones
func ListClusters(c *gin.Context) {
	var clusters []models.Cluster
	if err := config.GetDB().Order("id ASC").Find(&clusters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list clusters",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clusters,
	})
}

// ListIssueTypes handles GET /api/v1/issue-types - lists the selectable
// issue types shown on the request form
func ListIssueTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.IssueTypes,
	})
}
