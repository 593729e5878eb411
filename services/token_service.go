package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sunfix/sunfix-api/config"
	"github.com/sunfix/sunfix-api/models"
)

// TokenTTL is how long an issued session token remains valid
const TokenTTL = 24 * time.Hour

// TokenService issues the HS256 session tokens validated by the auth middleware
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenService creates a token service from the application configuration
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
	}
}

// IssueToken signs a session token for the given user. The subject claim
// carries the user ID and a custom claim carries the role.
func (s *TokenService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"aud":  s.audience,
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
