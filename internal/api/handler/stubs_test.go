package handler

import (
	"context"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Profile, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Profile, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Profile(identity domain.Identity) domain.Profile {
	return identity.Profile()
}

type stubUserService struct {
	getFn    func(ctx context.Context, id string) (*domain.Profile, error)
	listFn   func(ctx context.Context) ([]domain.Profile, error)
	resetFn  func(ctx context.Context, id string, in ports.ResetPasswordInput) (bool, error)
	deleteFn func(ctx context.Context, id string) error
	countFn  func(ctx context.Context) (int64, error)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) ResetPassword(ctx context.Context, id string, in ports.ResetPasswordInput) (bool, error) {
	return s.resetFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

type stubPinger struct {
	name string
	err  error
}

func (p stubPinger) Name() string               { return p.name }
func (p stubPinger) Ping(context.Context) error { return p.err }
