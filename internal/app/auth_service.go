package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pressfeed/internal/model"
	"pressfeed/internal/pkg/jwtutil"
	"pressfeed/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrLoginExists       = errors.New("login already exists")
	ErrUnknownLogin      = errors.New("login not found")
	ErrInvalidCredential = errors.New("invalid login or password")
	ErrPasswordMismatch  = errors.New("old password does not match")
	ErrSamePassword      = errors.New("new password equals the old one")
)

// UserStore is the slice of the user repository the auth and user
// services depend on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	SwapPasswordHash(ctx context.Context, login string, verify func(currentHash string) (string, error)) error
	UpdateDescription(ctx context.Context, login, description string) error
}

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration
	bcryptCost    int
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, jwtSecret string, jwtExpiration time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		bcryptCost:    bcryptCost,
	}
}

// SignUp registers a new account and issues its first token. A duplicate
// login surfaces as ErrLoginExists; the insert is transactional, so a
// failed registration leaves no partial row.
func (s *AuthService) SignUp(ctx context.Context, login, password, description string) (*AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Login:        login,
		PasswordHash: string(hash),
		Description:  description,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return nil, ErrLoginExists
		}
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.Login)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// SignIn distinguishes an unknown login from a wrong password so the
// transport can map them to different statuses.
func (s *AuthService) SignIn(ctx context.Context, login, password string) (*AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.Login)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// CheckLogin is a pure existence probe.
func (s *AuthService) CheckLogin(ctx context.Context, login string) (bool, error) {
	return s.users.ExistsByLogin(ctx, login)
}

// CheckCredentials reports whether the pair is valid. A wrong password
// is false, never an error; only connectivity failures propagate.
func (s *AuthService) CheckCredentials(ctx context.Context, login, password string) (bool, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil, nil
}

// ChangePassword swaps the stored digest inside one transaction.
// new == old is rejected up front, before any store access; the digests
// are salted and would never compare equal, so the plaintexts are what
// gets compared. A mismatching old password rolls the transaction back
// with the stored digest untouched.
func (s *AuthService) ChangePassword(ctx context.Context, login, oldPassword, newPassword string) error {
	login = strings.TrimSpace(login)
	if login == "" || oldPassword == "" || newPassword == "" {
		return ErrInvalidInput
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}

	err := s.users.SwapPasswordHash(ctx, login, func(currentHash string) (string, error) {
		if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(oldPassword)); err != nil {
			return "", ErrPasswordMismatch
		}
		newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("hash password failed: %w", err)
		}
		return string(newHash), nil
	})
	if errors.Is(err, repository.ErrUnknownLogin) {
		return ErrUnknownLogin
	}
	return err
}
