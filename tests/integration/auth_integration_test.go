package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/controllers"
	"github.com/sunfix/sunfix-api/middleware"
	"github.com/sunfix/sunfix-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthIntegrationTestSuite exercises signup, login and the real token
// middleware together. Unlike the other suites it does not mock auth:
// tokens issued by the login endpoint pass through EnsureValidToken.
type AuthIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

// SetupSuite runs once before all tests
func (suite *AuthIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	os.Setenv("GO_ENV", "test")
	os.Setenv("JWT_SECRET", "integration-test-secret")
	os.Setenv("PORT", "8080")

	cfg, err := config.Load()
	suite.NoError(err)
	suite.cfg = cfg
	config.SetConfig(cfg)
}

// SetupTest runs before each test
func (suite *AuthIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.User{}, &models.Credential{}, &models.Technician{})
	suite.NoError(err)

	config.SetDB(db)

	suite.router = gin.New()

	v1 := suite.router.Group("/api/v1")
	{
		v1.POST("/auth/signup", controllers.Signup)
		v1.POST("/auth/login", controllers.Login)

		authRequired := v1.Group("")
		authRequired.Use(middleware.EnsureValidToken(suite.cfg))
		{
			authRequired.GET("/auth/me", controllers.GetMe)
			authRequired.GET("/users", middleware.RequireRole(models.RoleAdmin), controllers.ListUsers)
		}
	}
}

// TearDownTest runs after each test
func (suite *AuthIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// signup creates an account through the API and returns its token
func (suite *AuthIntegrationTestSuite) signup(name, email, role string) string {
	payload := map[string]interface{}{
		"name":     name,
		"email":    email,
		"phone":    "9900000000",
		"password": "sunfix123",
		"role":     role,
		"cluster":  "Belgaum North",
	}
	if role == models.RoleTechnician {
		payload["gender"] = models.GenderFemale
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	return data["token"].(string)
}

// TestSignupTokenPassesRealMiddleware signs up and uses the returned token
func (suite *AuthIntegrationTestSuite) TestSignupTokenPassesRealMiddleware() {
	token := suite.signup("Asha Patil", "asha@test.com", models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "asha@test.com", data["email"])
}

// TestLoginIssuesWorkingToken logs in with seeded credentials
func (suite *AuthIntegrationTestSuite) TestLoginIssuesWorkingToken() {
	suite.signup("Asha Patil", "asha@test.com", models.RoleUser)

	body, _ := json.Marshal(map[string]string{
		"email":    "asha@test.com",
		"password": "sunfix123",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	token := response["data"].(map[string]interface{})["token"].(string)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestMissingAndGarbageTokensRejected hits a protected route without valid credentials
func (suite *AuthIntegrationTestSuite) TestMissingAndGarbageTokensRejected() {
	for name, header := range map[string]string{
		"no token":      "",
		"garbage token": "Bearer not-a-jwt",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		suite.router.ServeHTTP(w, req)
		assert.Equal(suite.T(), http.StatusUnauthorized, w.Code, name)
	}
}

// TestRoleEnforcement verifies RequireRole against real token claims
func (suite *AuthIntegrationTestSuite) TestRoleEnforcement() {
	userToken := suite.signup("Asha Patil", "asha@test.com", models.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	adminToken := suite.signup("Admin", "admin@test.com", models.RoleAdmin)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestAuthIntegrationSuite runs the test suite
func TestAuthIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AuthIntegrationTestSuite))
}
