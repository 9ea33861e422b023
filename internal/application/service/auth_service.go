package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopbill/billing-api/internal/config"
	"github.com/shopbill/billing-api/pkg/apperror"
	"github.com/shopbill/billing-api/pkg/utils"
)

// AuthService authenticates the single shop owner configured at startup.
type AuthService struct {
	owner      config.OwnerConfig
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(owner config.OwnerConfig, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{owner: owner, jwtManager: jwtManager}
}

// LoginResult carries the session token issued on a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login checks the owner credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s.owner.PasswordHash == "" {
		return nil, apperror.NewUnavailableError("Owner account not configured")
	}
	if username != s.owner.Username {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.owner.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Username: username}, nil
}
