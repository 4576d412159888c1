// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"clearpass/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleCallbackInput carries the ID token obtained from Google Sign-In.
type GoogleCallbackInput struct {
	IDToken string
}

// UpdateProfileInput defines the fields a user may change on their profile.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Email             *string
	Password          *string
	Name              *string
	PhoneNumber       *string
	DNI               *string
	ProfilePictureURL *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for authentication and account
// operations. This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	GoogleCallback(ctx context.Context, input GoogleCallbackInput) (*LoginOutput, error)
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}
