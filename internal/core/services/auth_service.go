package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/jwt"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/password"
)

// Auth errors
var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// deactivated accounts alike. Callers must not reveal which failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	audit    *AuditService
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, audit *AuditService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		audit:    audit,
		cfg:      cfg,
		log:      logger.Get(),
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestMeta carries caller details for the audit trail
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string               `json:"token"`
	User  *models.UserResponse `json:"user"`
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput, meta RequestMeta) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check the account is active
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, err := jwt.Generate(user.ID, user.Email, user.Role.RoleName, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, err
	}

	// 5. Record last login
	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("last login update failed")
	}

	// 6. Audit
	s.audit.Record(ctx, AuditEntry{
		UserID:     user.ID,
		Action:     models.ActionLogin,
		EntityType: "user",
		EntityID:   user.ID,
		Detail:     map[string]string{"email": user.Email},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	s.log.Info().Uint("user_id", user.ID).Str("role", user.Role.RoleName).Msg("user logged in")

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Logout records the logout. Tokens are stateless and stay valid until
// expiry; this exists for the audit trail.
func (s *AuthService) Logout(ctx context.Context, userID uint, meta RequestMeta) {
	s.audit.Record(ctx, AuditEntry{
		UserID:     userID,
		Action:     models.ActionLogout,
		EntityType: "user",
		EntityID:   userID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("user_id", userID).Msg("user logged out")
}

// ValidateToken verifies an access token and returns its claims
func (s *AuthService) ValidateToken(token string) (*jwt.Claims, error) {
	return jwt.Validate(token, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
