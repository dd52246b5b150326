package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/jwt"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/password"
)

type stubUserRepo struct {
	users map[string]*models.User
	roles map[string]*models.UserRole
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[string]*models.User),
		roles: make(map[string]*models.UserRole),
	}
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) Deactivate(ctx context.Context, id uint) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	return nil
}

func (r *stubUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubUserRepo) GetRoleByName(ctx context.Context, name string) (*models.UserRole, error) {
	if role, ok := r.roles[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ListRoles(ctx context.Context) ([]*models.UserRole, error) {
	var roles []*models.UserRole
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "auth-test-secret", ExpiryHours: 1},
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, email, plaintext, role string, active bool) *models.User {
	t.Helper()

	hash, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Thandi",
		LastName:     "Mokoena",
		Role:         models.UserRole{ID: 1, RoleName: role},
		RoleID:       1,
		IsActive:     active,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	userRepo := newStubUserRepo()
	auditRepo := &stubAuditRepo{}
	cfg := authTestConfig()
	svc := NewAuthService(userRepo, NewAuditService(auditRepo), cfg)

	seedUser(t, userRepo, "nurse@polmed.co.za", "s3cure-pass", models.RoleNurse, true)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nurse@polmed.co.za",
		Password: "s3cure-pass",
	}, RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := jwt.Validate(resp.Token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "nurse@polmed.co.za" || claims.Role != models.RoleNurse {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	stored, _ := userRepo.GetByEmail(context.Background(), "nurse@polmed.co.za")
	if stored.LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}

	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != models.ActionLogin {
		t.Fatalf("expected one LOGIN audit entry, got %+v", auditRepo.entries)
	}
}

// Unknown email, wrong password and a deactivated account must be
// indistinguishable to the caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	userRepo := newStubUserRepo()
	svc := NewAuthService(userRepo, NewAuditService(&stubAuditRepo{}), authTestConfig())

	seedUser(t, userRepo, "active@polmed.co.za", "s3cure-pass", models.RoleClerk, true)
	seedUser(t, userRepo, "inactive@polmed.co.za", "s3cure-pass", models.RoleClerk, false)

	cases := []struct {
		name  string
		input LoginInput
	}{
		{"unknown email", LoginInput{Email: "nobody@polmed.co.za", Password: "s3cure-pass"}},
		{"wrong password", LoginInput{Email: "active@polmed.co.za", Password: "wrong"}},
		{"deactivated account", LoginInput{Email: "inactive@polmed.co.za", Password: "s3cure-pass"}},
	}

	for _, tc := range cases {
		_, err := svc.Login(context.Background(), &tc.input, RequestMeta{})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestLogoutAudits(t *testing.T) {
	auditRepo := &stubAuditRepo{}
	svc := NewAuthService(newStubUserRepo(), NewAuditService(auditRepo), authTestConfig())

	svc.Logout(context.Background(), 9, RequestMeta{IPAddress: "10.0.0.1"})

	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != models.ActionLogout {
		t.Fatalf("expected one LOGOUT audit entry, got %+v", auditRepo.entries)
	}
	if auditRepo.entries[0].UserID != 9 {
		t.Fatalf("expected user 9, got %d", auditRepo.entries[0].UserID)
	}
}
