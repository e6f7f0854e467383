package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/pkg/apperror"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
	tokens    *utils.TokenManager
}

func NewAuthService(userRepo *repository.UserRepository, auditRepo *repository.AuditRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		tokens:    tokens,
	}
}

// UserResponse is the public view of a staff account
type UserResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func publicUser(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// Register creates a new staff account and returns its public summary.
// No token is issued; the caller logs in separately.
func (s *AuthService) Register(name, email, password string, role models.Role) (*UserResponse, error) {
	if !role.IsValid() {
		return nil, apperror.Validation("invalid role specified")
	}

	// Check if email already registered
	existingUser, err := s.userRepo.FindUserByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existingUser != nil {
		return nil, apperror.Conflict("email already exists")
	}

	// Hash the password
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	// Log registration action
	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, models.AuditUserRegistration, fmt.Sprintf("User %s registered with role %s", email, role))

	resp := publicUser(user)
	return &resp, nil
}

// Login authenticates a staff member and returns a signed access token plus
// a refresh token. Unknown email and wrong password produce the same error
// so the response does not reveal whether the email exists.
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil {
		return nil, apperror.Auth("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, apperror.Auth("invalid credentials")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to generate access token: %w", err))
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to generate refresh token: %w", err))
	}

	// Hash and store refresh token
	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTokenExpiry()),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to store refresh token: %w", err))
	}

	// Log login action
	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, models.AuditUserLogin, fmt.Sprintf("User %s logged in", email))

	return &LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         publicUser(user),
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", apperror.Auth("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", apperror.Auth("refresh token expired")
	}

	accessToken, err := s.tokens.GenerateAccessToken(token.User.ID, token.User.Name, string(token.User.Role))
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("failed to generate access token: %w", err))
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return apperror.Internal(fmt.Errorf("failed to revoke refresh token: %w", err))
	}

	return nil
}
