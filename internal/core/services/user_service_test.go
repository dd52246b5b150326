package services

import (
	"context"
	"errors"
	"testing"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/password"
)

func newUserTestService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	repo.roles[models.RoleNurse] = &models.UserRole{ID: 2, RoleName: models.RoleNurse}
	svc := NewUserService(repo, NewAuditService(&stubAuditRepo{}))
	return svc, repo
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, _ := newUserTestService()

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Email:     "nurse@polmed.co.za",
		Password:  "s3cure-pass",
		FirstName: "Thandi",
		LastName:  "Mokoena",
		Role:      models.RoleNurse,
	}, 1, RequestMeta{})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if user.PasswordHash == "s3cure-pass" {
		t.Fatal("password stored in plaintext")
	}
	if !password.Verify("s3cure-pass", user.PasswordHash) {
		t.Fatal("stored hash does not verify against the password")
	}
	if user.Role.RoleName != models.RoleNurse {
		t.Fatalf("unexpected role: %q", user.Role.RoleName)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserTestService()

	input := &CreateUserInput{
		Email:     "nurse@polmed.co.za",
		Password:  "s3cure-pass",
		FirstName: "Thandi",
		LastName:  "Mokoena",
		Role:      models.RoleNurse,
	}
	if _, err := svc.CreateUser(context.Background(), input, 1, RequestMeta{}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), input, 1, RequestMeta{}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	svc, _ := newUserTestService()

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Email:     "nurse@polmed.co.za",
		Password:  "short",
		FirstName: "Thandi",
		LastName:  "Mokoena",
		Role:      models.RoleNurse,
	}, 1, RequestMeta{})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := newUserTestService()

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Email:     "nurse@polmed.co.za",
		Password:  "s3cure-pass",
		FirstName: "Thandi",
		LastName:  "Mokoena",
		Role:      "superuser",
	}, 1, RequestMeta{})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestDeactivateUserBlocksSelf(t *testing.T) {
	svc, _ := newUserTestService()

	err := svc.DeactivateUser(context.Background(), 7, 7, RequestMeta{})
	if !errors.Is(err, ErrSelfDeactivate) {
		t.Fatalf("expected ErrSelfDeactivate, got %v", err)
	}
}
