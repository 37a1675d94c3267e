package service

import (
	"context"
	"errors"
	"testing"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

const missingID = "65f1c0ffee0000000000dead"

func registerJane(t *testing.T, f *fixture) *domain.Profile {
	t.Helper()
	p, err := f.auth.Register(context.Background(), janeRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return p
}

func TestUserService_GetByID(t *testing.T) {
	f := newFixture()
	jane := registerJane(t, f)

	got, err := f.users.GetByID(context.Background(), jane.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != jane.ID || got.Email != "jane@x.com" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := f.users.GetByID(context.Background(), missingID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	_, err = f.users.GetByID(context.Background(), "not-an-id")
	de, ok := domain.AsError(err)
	if !ok || de.Code != domain.CodeInvalidUserIDFormat {
		t.Fatalf("expected invalid id format, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	f := newFixture()
	registerJane(t, f)
	second := janeRegistration()
	second.Email = "john@x.com"
	second.FullName = "John Roe"
	if _, err := f.auth.Register(context.Background(), second); err != nil {
		t.Fatalf("register: %v", err)
	}

	profiles, err := f.users.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(profiles) != 2 || profiles[0].Email != "jane@x.com" || profiles[1].Email != "john@x.com" {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}

	n, err := f.users.Count(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
}

func TestUserService_List_StoreFailure(t *testing.T) {
	f := newFixture()
	f.dir.listErr = errors.New("connection reset")
	_, err := f.users.List(context.Background())
	if err == nil || domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected unclassified error, got %v", err)
	}
}

func TestUserService_ResetPassword(t *testing.T) {
	f := newFixture()
	jane := registerJane(t, f)

	ok, err := f.users.ResetPassword(context.Background(), jane.ID, ports.ResetPasswordInput{NewPassword: "Another1"})
	if err != nil || !ok {
		t.Fatalf("ResetPassword: ok=%v err=%v", ok, err)
	}

	if _, err := f.auth.Login(context.Background(), ports.LoginInput{Email: "jane@x.com", Password: "Secret1!"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := f.auth.Login(context.Background(), ports.LoginInput{Email: "jane@x.com", Password: "Another1"}); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestUserService_ResetPassword_ShortPassword(t *testing.T) {
	f := newFixture()
	jane := registerJane(t, f)

	ok, err := f.users.ResetPassword(context.Background(), jane.ID, ports.ResetPasswordInput{NewPassword: "short"})
	if ok {
		t.Fatalf("expected reset to fail")
	}
	de, isDomain := domain.AsError(err)
	if !isDomain || de.Code != domain.CodeValidation || de.Message != "New password must be at least 8 characters long." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserService_ResetPassword_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.users.ResetPassword(context.Background(), missingID, ports.ResetPasswordInput{NewPassword: "Another1"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture()
	jane := registerJane(t, f)

	if err := f.users.Delete(context.Background(), jane.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.users.GetByID(context.Background(), jane.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("deleted user must not be found, got %v", err)
	}
	if err := f.users.Delete(context.Background(), jane.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
}

func TestUserService_Delete_InvalidID(t *testing.T) {
	f := newFixture()
	err := f.users.Delete(context.Background(), "42")
	de, ok := domain.AsError(err)
	if !ok || de.Kind != domain.KindValidation || de.Code != domain.CodeInvalidUserIDFormat {
		t.Fatalf("expected invalid id validation error, got %v", err)
	}
}
