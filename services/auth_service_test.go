package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sunfix/sunfix-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Credential{}, &models.Technician{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func validSignup() SignupData {
	return SignupData{
		Name:     "Asha Patil",
		Email:    "asha@example.com",
		Phone:    "9900000001",
		Password: "secret123",
		Role:     models.RoleUser,
		Cluster:  "Khanapur",
	}
}

func TestSignupCreatesUserAndCredential(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Signup(validSignup())
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)

	var cred models.Credential
	assert.NoError(t, db.First(&cred, "email = ?", user.Email).Error)
	assert.Equal(t, "secret123", cred.Password)

	// Plain user signups do not create a technician profile
	var count int64
	db.Model(&models.Technician{}).Count(&count)
	assert.Zero(t, count)
}

func TestSignupTechnicianCreatesProfile(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := NewAuthService(db)

	data := validSignup()
	data.Email = "sunita@example.com"
	data.Role = models.RoleTechnician
	data.Gender = models.GenderFemale

	user, err := svc.Signup(data)
	assert.NoError(t, err)

	tech, err := NewTechnicianService(db).GetByUserID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.GenderFemale, tech.Gender)
	assert.Equal(t, data.Cluster, tech.Cluster)
	assert.False(t, tech.Online)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(setupAuthTestDB(t))

	_, err := svc.Signup(validSignup())
	assert.NoError(t, err)

	_, err = svc.Signup(validSignup())
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestSignupValidation(t *testing.T) {
	svc := NewAuthService(setupAuthTestDB(t))

	short := validSignup()
	short.Password = "abc"
	_, err := svc.Signup(short)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	badRole := validSignup()
	badRole.Role = "manager"
	_, err = svc.Signup(badRole)
	assert.ErrorIs(t, err, ErrInvalidRole)

	noGender := validSignup()
	noGender.Role = models.RoleTechnician
	_, err = svc.Signup(noGender)
	assert.ErrorIs(t, err, ErrMissingGender)

	badGender := validSignup()
	badGender.Role = models.RoleTechnician
	badGender.Gender = "other"
	_, err = svc.Signup(badGender)
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(setupAuthTestDB(t))

	created, err := svc.Signup(validSignup())
	assert.NoError(t, err)

	user, err := svc.Login("asha@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login("asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetUserByID(t *testing.T) {
	svc := NewAuthService(setupAuthTestDB(t))

	created, err := svc.Signup(validSignup())
	assert.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.GetUserByID("no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
