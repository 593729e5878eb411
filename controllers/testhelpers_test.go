package controllers

import (
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/middleware"
	"github.com/sunfix/sunfix-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupControllerTestDB creates an in-memory database with the full schema
func setupControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Technician{},
		&models.Job{},
		&models.StatusHistoryEntry{},
		&models.Rating{},
		&models.Cluster{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	for _, cluster := range models.DefaultClusters {
		if err := db.Create(&cluster).Error; err != nil {
			t.Fatalf("Failed to seed clusters: %v", err)
		}
	}

	config.SetDB(db)
	return db
}

// setupTestRouter creates a bare Gin engine in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware simulates a validated session for the given user and role
func mockAuthMiddleware(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: userID},
			CustomClaims:     &middleware.CustomClaims{Role: role},
		})
		c.Next()
	}
}

// createUser inserts an account directly into the test database
func createUser(t *testing.T, db *gorm.DB, name, email, role, cluster string) *models.User {
	t.Helper()

	user := models.User{
		Name:    name,
		Email:   email,
		Phone:   "9900000000",
		Role:    role,
		Cluster: cluster,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return &user
}

// createTechnician inserts a technician profile directly into the test database
func createTechnician(t *testing.T, db *gorm.DB, user *models.User, gender string, online bool, rating float64) *models.Technician {
	t.Helper()

	tech := models.Technician{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Gender:  gender,
		Cluster: user.Cluster,
		Online:  online,
		Rating:  rating,
	}
	if err := db.Create(&tech).Error; err != nil {
		t.Fatalf("Failed to create technician for %s: %v", user.Email, err)
	}
	return &tech
}
