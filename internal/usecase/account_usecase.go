// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// ClientIP is resolved by the delivery layer, never taken from the body.
type RegisterInput struct {
	Email             string
	Password          string
	SecretWord        string
	FirstName         string
	LastName          string
	PhoneNumber       string
	Timezone          string
	PreferredLanguage string
	ClientIP          string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

// ChangePasswordInput carries the password-change request for a user.
// SecretWord is required whenever one was set at registration.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	SecretWord      string
}

// RefreshTokenInput defines the data required to refresh an access token.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput defines the data required to log out.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public view.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns a fresh access token. The refresh token
// itself is not rotated.
type RefreshTokenOutput struct {
	AccessToken string
}

// AccountUsecase defines the interface for registration, authentication
// and credential management. This is the contract the delivery layer
// depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
}
