package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// BcryptHasher is a bcrypt PasswordHasher.
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify returns nil when password matches hash.
func (h BcryptHasher) Verify(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	accounts *validation.AccountValidator
	hasher   PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, emails validation.EmailValidator, hasher PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		accounts: validation.NewAccountValidator(emails, userRepo),
		hasher:   hasher,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register validates the sign-up form and creates the user. Field problems are
// returned as *validation.ValidationError.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email, fieldErrs, err := s.accounts.ValidateRegistration(ctx, validation.Registration{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, &validation.ValidationError{Fields: fieldErrs}
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration
			return nil, &validation.ValidationError{Fields: validation.Errors{
				validation.AccountEmail.Key(): constants.MsgEmailTaken,
			}}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email, fieldErrs := s.accounts.ValidateLogin(input.Email, input.Password)
	if len(fieldErrs) > 0 {
		return nil, &validation.ValidationError{Fields: fieldErrs}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ValidateField runs the live check for one account form field.
func (s *AuthService) ValidateField(ctx context.Context, key, value string) (validation.Result, error) {
	field, ok := validation.AccountFieldByKey(key)
	if !ok {
		return validation.Result{Message: constants.MsgInvalidField}, nil
	}
	return s.accounts.ValidateField(ctx, field, value)
}
