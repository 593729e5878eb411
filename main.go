package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/controllers"
	"github.com/sunfix/sunfix-api/middleware"
	"github.com/sunfix/sunfix-api/models"
	"github.com/sunfix/sunfix-api/services"
	"gorm.io/gorm"
)

func main() {
	// Basic logging
	log.Println("Starting SunFix Service API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := migrateDatabase(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed the fixed service zones
	if err := seedClusters(db); err != nil {
		log.Fatalf("Failed to seed clusters: %v", err)
	}

	// Initialize S3-backed photo uploads; the API still works without them
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitPhotoService(s3Service)
		log.Printf("Photo uploads enabled (bucket %s)", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, photo uploads disabled")
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// migrateDatabase runs the schema migrations for all models
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Technician{},
		&models.Job{},
		&models.StatusHistoryEntry{},
		&models.Rating{},
		&models.Cluster{},
	)
}

// seedClusters inserts the five fixed service zones if they are missing
func seedClusters(db *gorm.DB) error {
	for _, cluster := range models.DefaultClusters {
		if err := db.Where("id = ?", cluster.ID).FirstOrCreate(&cluster).Error; err != nil {
			return err
		}
	}
	return nil
}

// setupRouter builds the Gin engine with all routes and middleware
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	authRequired := middleware.EnsureValidToken(cfg)

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public reference data
		v1.GET("/clusters", controllers.ListClusters)
		v1.GET("/issue-types", controllers.ListIssueTypes)

		// Auth
		v1.POST("/auth/signup", controllers.Signup)
		v1.POST("/auth/login", controllers.Login)
		v1.GET("/auth/me", authRequired, controllers.GetMe)

		// Jobs
		v1.POST("/jobs", authRequired, middleware.RequireRole(models.RoleUser), controllers.CreateJob)
		v1.GET("/jobs", authRequired, controllers.ListJobs)
		v1.GET("/jobs/:id", authRequired, controllers.GetJob)
		v1.PATCH("/jobs/:id/status", authRequired, middleware.RequireRole(models.RoleTechnician), controllers.UpdateJobStatus)
		v1.POST("/jobs/:id/rating", authRequired, middleware.RequireRole(models.RoleUser), controllers.SubmitRating)
		v1.GET("/jobs/:id/rating", authRequired, controllers.GetJobRating)

		// Technicians
		v1.GET("/technicians", authRequired, middleware.RequireRole(models.RoleAdmin), controllers.ListTechnicians)
		v1.GET("/technicians/me", authRequired, middleware.RequireRole(models.RoleTechnician), controllers.GetMyTechnicianProfile)
		v1.PATCH("/technicians/me", authRequired, middleware.RequireRole(models.RoleTechnician), controllers.UpdateMyTechnicianProfile)
		v1.PATCH("/technicians/me/online", authRequired, middleware.RequireRole(models.RoleTechnician), controllers.ToggleOnline)
		v1.GET("/technicians/me/earnings", authRequired, middleware.RequireRole(models.RoleTechnician), controllers.GetMyEarnings)
		v1.GET("/technicians/:id/ratings", authRequired, controllers.ListTechnicianRatings)

		// Admin
		v1.GET("/users", authRequired, middleware.RequireRole(models.RoleAdmin), controllers.ListUsers)
		v1.GET("/admin/stats", authRequired, middleware.RequireRole(models.RoleAdmin), controllers.GetAdminStats)

		// Uploads
		v1.POST("/uploads/photo", authRequired, controllers.UploadPhoto)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "SunFix Service API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database is not initialized",
			},
		})
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
