package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/storage"
)

const minPasswordLength = 8

// userService handles user-related business logic.
type userService struct {
	gw   storage.Gateway
	cost int
}

// NewUserService creates a new UserServicer.
func NewUserService(gw storage.Gateway) UserServicer {
	return &userService{gw: gw, cost: bcrypt.DefaultCost}
}

// Register creates a user and provisions the default categories in the same
// storage transaction.
func (s *userService) Register(ctx context.Context, username, password, fullName, phoneNumber string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.WithMessagef(apperrors.ErrInvalidInput, "password must be at least %d characters", minPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username:    username,
		Password:    string(hashedPassword),
		FullName:    strings.TrimSpace(fullName),
		PhoneNumber: strings.TrimSpace(phoneNumber),
	}

	err = s.gw.InTransaction(ctx, func(tx storage.Gateway) error {
		taken, err := tx.Users().ExistsByUsername(ctx, username)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if taken {
			return duplicateUsername(username)
		}

		if err := tx.Users().Save(ctx, user); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return duplicateUsername(username)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return provisionDefaultCategories(ctx, tx.Categories(), user.ID)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func duplicateUsername(username string) error {
	return apperrors.WithMessagef(apperrors.ErrDuplicateUsername, "Username already exists: %s", username)
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords fail the same way.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.gw.Users().FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.gw.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// ResolveUserID maps an authenticated username to its user id. A principal
// whose user no longer exists is unauthorized.
func (s *userService) ResolveUserID(ctx context.Context, username string) (string, error) {
	user, err := s.gw.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.ID, nil
}
