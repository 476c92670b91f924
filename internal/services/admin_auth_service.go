package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login
var ErrInvalidCredentials = errors.New("invalid email or password")

// AdminAuthService authenticates the single configured operator account
type AdminAuthService struct {
	email        string
	passwordHash []byte
	jwtService   *jwt.Service
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(email, passwordHash string, jwtService *jwt.Service) *AdminAuthService {
	return &AdminAuthService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		jwtService:   jwtService,
	}
}

// Login checks the credentials and issues an access token
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (*models.AdminLoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Always run bcrypt so a wrong email costs the same as a wrong password
	pwErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	if pwErr != nil || !emailOK {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(s.email, jwt.RoleOperator)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.AdminLoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtService.AccessTokenExpiry().Seconds()),
		ExpiresAt:   expiresAt,
		Email:       s.email,
	}, nil
}
