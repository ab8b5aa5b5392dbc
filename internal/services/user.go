package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"time"

	"github.com/userdesk/apiserver/config"
	"github.com/userdesk/apiserver/internal/auth"
	"github.com/userdesk/apiserver/internal/store"
	"github.com/userdesk/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	SetPassword(ctx context.Context, id int, hash, salt string) error
	RecordLogin(ctx context.Context, id int, at time.Time) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]types.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Authenticate verifies a username/password pair and stamps last_login
// on success. Blank-password accounts are rejected before any
// verification; they stay locked out until an administrator assigns a
// real password. An unknown username reports the same error as a wrong
// password so login cannot be used to enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, auth.ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if auth.VerifyPassword(user.PasswordHash, "", user.Salt) {
		return types.User{}, auth.ErrAccountInsecure
	}
	if !auth.VerifyPassword(user.PasswordHash, password, user.Salt) {
		return types.User{}, auth.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
		return types.User{}, err
	}
	user.LastLogin = &now
	return user, nil
}

// Register creates a new account after checking the password policy.
// Duplicate usernames surface as store.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, password string, isAdmin bool) (types.User, error) {
	if !auth.MeetsPolicy(password) {
		return types.User{}, auth.ErrPasswordPolicy
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		IsAdmin:      isAdmin,
	})
}

// SetPassword replaces a user's credential with a fresh hash and salt.
// No policy check applies here: administrators may set any password,
// and self-service changes follow the same rule the original system
// had.
func (s *UserService) SetPassword(ctx context.Context, id int, newPassword string) error {
	hash, salt, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, id, hash, salt)
}

// ResetPassword blanks a user's credential. The account becomes
// insecure and cannot log in until a real password is set.
func (s *UserService) ResetPassword(ctx context.Context, id int) error {
	return s.SetPassword(ctx, id, "")
}

// EnsureAdmin creates the initial admin user when none exists.
// It is idempotent: if an admin already exists, it does nothing.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AuthConfig) error {
	if !cfg.BootstrapAdmin {
		return nil
	}

	has, err := s.repo.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	username := cfg.BootstrapAdminUsername
	if username == "" {
		username = "admin"
	}

	password := cfg.BootstrapAdminPassword
	generated := false
	if password == "" {
		password, err = generatePassword(32)
		if err != nil {
			return err
		}
		generated = true
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := s.repo.Create(ctx, types.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		IsAdmin:      true,
	}); err != nil {
		return err
	}

	if generated {
		log.Printf("initial admin created username=%s password=%s", username, password)
	} else {
		log.Printf("initial admin created username=%s", username)
	}
	return nil
}

func generatePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
