package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/app/repositories"
	"github.com/shashiranjanraj/dukaan/pkg/hash"
)

// AuthService implements signup, login and profile lookup. Login is a
// stateless per-request credential check: no token or session is issued.
type AuthService struct {
	users repositories.UserRepository
	cost  int
	now   func() time.Time
}

func NewAuthService(users repositories.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{
		users: users,
		cost:  bcryptCost,
		now:   time.Now,
	}
}

// Register hashes the password and stores a new user. Field presence and
// shape are validated at the HTTP boundary; here only uniqueness is
// enforced. The pre-insert existence check gives the common case a clean
// conflict answer, the unique index catches the concurrent-signup race.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserConflict
	}

	hashed, err := hash.Password(password, s.cost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: s.now().UTC(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrUserConflict
		}
		return err
	}
	return nil
}

// Authenticate verifies the credentials and, on success, stamps last_login
// and returns the user's email. Unknown username and wrong password both
// yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !hash.Verify(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, username, s.now().UTC()); err != nil {
		return "", err
	}

	return user.Email, nil
}

// Lookup returns the public profile for a username. The projection never
// includes the password hash.
func (s *AuthService) Lookup(ctx context.Context, username string) (models.Profile, error) {
	profile, err := s.users.Profile(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Profile{}, ErrUserNotFound
	}
	if err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}
