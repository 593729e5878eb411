package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/services"
)

// ListUsers handles GET /api/v1/users - lists all accounts (admins only)
func ListUsers(c *gin.Context) {
	authService := services.NewAuthService(config.GetDB())
	users, err := authService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list users",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}
