package store

import (
	"context"
	"fmt"

	"github.com/org-structure-manager/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser создаёт учётную запись с ролью user.
// Имя пользователя сравнивается точно, с учётом регистра.
func (s *Store) RegisterUser(ctx context.Context, username, password, email, firstName, lastName string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[username]; taken {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrDuplicateUsername, username)
	}

	user := &domain.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleUser,
		CreatedAt:    s.now(),
	}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	s.usernames[username] = user.ID

	s.commit(ctx, "register_user")
	return *user, nil
}

// LoginUser проверяет имя и пароль и при успехе делает пользователя текущим
func (s *Store) LoginUser(ctx context.Context, username, password string) (domain.User, bool) {
	s.mu.RLock()
	var user domain.User
	id, ok := s.usernames[username]
	if ok {
		user = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.users[user.ID]
	if !exists || current.PasswordHash != user.PasswordHash {
		return domain.User{}, false
	}
	s.currentUserID = current.ID

	s.commit(ctx, "login_user")
	return *current, true
}

// LogoutUser сбрасывает текущего пользователя
func (s *Store) LogoutUser(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUserID == "" {
		return
	}
	s.currentUserID = ""

	s.commit(ctx, "logout_user")
}

// CurrentUser возвращает текущего пользователя
func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[s.currentUserID]
	if !ok {
		return domain.User{}, false
	}
	return *user, true
}

// SetUserRole меняет роль пользователя
func (s *Store) SetUserRole(ctx context.Context, id string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || user.Role == role {
		return
	}
	user.Role = role

	s.commit(ctx, "set_user_role")
}

// GetUserByID возвращает учётную запись по id
func (s *Store) GetUserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return *user, true
}
