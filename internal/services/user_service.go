package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// FindOrCreateUser returns the user with the given email, creating one from
// the identity claims on first login. Email matching is exact.
func (s *userService) FindOrCreateUser(email, givenName, familyName, displayName string) (*models.User, bool, error) {
	if strings.TrimSpace(email) == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}

	user, err := s.GetUserByEmail(email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, false, err
	}

	if displayName == "" {
		displayName = strings.TrimSpace(givenName + " " + familyName)
	}
	if displayName == "" {
		displayName = email
	}

	user = &models.User{
		Username:  displayName,
		Email:     email,
		FirstName: givenName,
		LastName:  familyName,
	}
	if err := s.db.Create(user).Error; err != nil {
		// A concurrent first login for the same email may have won the race.
		if existing, lookupErr := s.GetUserByEmail(email); lookupErr == nil {
			return existing, false, nil
		}
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, true, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
