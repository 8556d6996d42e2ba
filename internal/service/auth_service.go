package service

import (
	"context"
	"strings"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/store"
)

// AuthService определяет интерфейс учётных записей.
// Текущий пользователь один на процесс, сессий и токенов нет.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error)
	Logout(ctx context.Context)
	Me(ctx context.Context) (*domain.User, error)
	SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
}

type authService struct {
	store *store.Store
}

// NewAuthService создаёт новый экземпляр сервиса
func NewAuthService(s *store.Store) AuthService {
	return &authService{store: s}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	user, err := s.store.RegisterUser(ctx,
		strings.TrimSpace(req.Username),
		req.Password,
		strings.TrimSpace(req.Email),
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	user, ok := s.store.LoginUser(ctx, strings.TrimSpace(req.Username), req.Password)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *authService) Logout(ctx context.Context) {
	s.store.LogoutUser(ctx)
}

func (s *authService) Me(ctx context.Context) (*domain.User, error) {
	user, ok := s.store.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return &user, nil
}

func (s *authService) SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if _, ok := s.store.GetUserByID(id); !ok {
		return nil, domain.ErrUserNotFound
	}
	s.store.SetUserRole(ctx, id, role)

	user, ok := s.store.GetUserByID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
