package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/password"
)

// User management errors
var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrRoleNotFound   = errors.New("role not found")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrWrongPassword  = errors.New("current password is incorrect")
	ErrSelfDeactivate = errors.New("cannot deactivate own account")
)

// UserService handles staff account management
type UserService struct {
	userRepo repositories.UserRepository
	audit    *AuditService
	log      zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, audit *AuditService) *UserService {
	return &UserService{
		userRepo: userRepo,
		audit:    audit,
		log:      logger.Get(),
	}
}

// CreateUserInput represents new account input
type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Phone     string `json:"phone"`
}

// UpdateUserInput represents account update input. Nil fields are unchanged.
type UpdateUserInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Phone     *string `json:"phone"`
}

// ChangePasswordInput represents a password change request
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// CreateUser creates a staff account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput, actorID uint, meta RequestMeta) (*models.User, error) {
	// 1. Check email is free
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 2. Resolve role
	role, err := s.userRepo.GetRoleByName(ctx, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	// 3. Hash password
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Email:        input.Email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		RoleID:       role.ID,
		Role:         *role,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionCreate,
		EntityType: "user",
		EntityID:   user.ID,
		Detail:     map[string]string{"email": user.Email, "role": role.RoleName},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("user_id", user.ID).Str("role", role.RoleName).Msg("user created")

	return user, nil
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update to an account
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput, actorID uint, meta RequestMeta) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]string{}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
		changed["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
		changed["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
		changed["phone"] = *input.Phone
	}
	if input.Role != nil {
		role, err := s.userRepo.GetRoleByName(ctx, *input.Role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
		changed["role"] = role.RoleName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "user",
		EntityID:   user.ID,
		Detail:     changed,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return user, nil
}

// DeactivateUser marks an account inactive. Accounts are never deleted,
// the audit trail references them.
func (s *UserService) DeactivateUser(ctx context.Context, id, actorID uint, meta RequestMeta) error {
	if id == actorID {
		return ErrSelfDeactivate
	}

	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     actorID,
		Action:     models.ActionDeactivate,
		EntityType: "user",
		EntityID:   id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
	s.log.Info().Uint("user_id", id).Msg("user deactivated")

	return nil
}

// ListUsers lists accounts with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// ListRoles lists the assignable roles
func (s *UserService) ListRoles(ctx context.Context) ([]*models.UserRole, error) {
	return s.userRepo.ListRoles(ctx)
}

// ChangePassword lets a user change their own password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput, meta RequestMeta) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(input.CurrentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}
	if !password.ValidatePassword(input.NewPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:     userID,
		Action:     models.ActionUpdate,
		EntityType: "user",
		EntityID:   userID,
		Detail:     map[string]string{"change": "password"},
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}
