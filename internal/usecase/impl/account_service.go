// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"pulse/config"
	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/domain/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minPasswordLength = 8

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	credentialRepo    repository.CredentialRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	maxActiveSessions int
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	CredentialRepo   repository.CredentialRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	maxActiveSessions := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &accountService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		credentialRepo:    params.CredentialRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if len(input.Password) < minPasswordLength {
		return nil, errors.Wrap(domainerrors.ErrPasswordTooShort, "registration rejected")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := buildNewUserEntity(input)
	newCredential := &entity.Credential{
		PasswordHash: hashedPassword,
		SecretWord:   input.SecretWord,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := userRepo.Create(ctx, newUser, newCredential); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		if err := userRepo.RecordRegistration(ctx, newUser.ID, input.ClientIP); err != nil {
			return errors.Wrap(err, "failed to record registration metadata")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

func buildNewUserEntity(input *usecase.RegisterInput) *entity.User {
	user := &entity.User{
		Email:             input.Email,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		PhoneNumber:       input.PhoneNumber,
		Timezone:          input.Timezone,
		PreferredLanguage: input.PreferredLanguage,
		PrivacyLevel:      entity.PrivacyPublic,
		Status:            entity.StatusActive,
		RegistrationIP:    input.ClientIP,
		LastUsingIP:       input.ClientIP,
	}
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = "en"
	}

	return user
}

// Login orchestrates the login process, including the silent hash
// upgrade when the stored bcrypt cost is stale.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	credential, err := srv.credentialRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load credential for login")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	srv.upgradeStaleHash(ctx, credential.UserID, input.Password, credential.PasswordHash)

	loggedInUser, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}
	if !loggedInUser.IsActive() {
		return nil, errors.Wrap(domainerrors.ErrAccountDisabled, "login rejected")
	}

	// Generate tokens outside transaction.
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(loggedInUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// Store the refresh token and stamp login metadata together.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.storeRefreshToken(ctx, repoFactory, loggedInUser.ID, refreshTokenString); err != nil {
			return err
		}

		if err := repoFactory.UserRepo().RecordLogin(ctx, loggedInUser.ID, input.ClientIP); err != nil {
			return errors.Wrap(err, "failed to record login metadata")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// upgradeStaleHash rewrites the stored hash after a successful verify
// when its cost is below the configured one. The rewrite deliberately
// leaves last_password_change untouched and never fails the caller.
func (srv *accountService) upgradeStaleHash(ctx context.Context, userID uuid.UUID, password, storedHash string) {
	if !srv.hasher.NeedsRehash(storedHash) {
		return
	}

	upgraded, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Warn("Failed to compute upgraded hash", slog.Any("userID", userID), slog.Any("error", err))

		return
	}

	if err := srv.credentialRepo.UpdatePassword(ctx, userID, upgraded, false); err != nil {
		srv.log(ctx).Warn("Failed to persist upgraded hash", slog.Any("userID", userID), slog.Any("error", err))

		return
	}

	srv.log(ctx).Info("Upgraded stale password hash", slog.Any("userID", userID))
}

// ChangePassword walks the password-change gates in a fixed order. The
// first failing gate aborts the whole operation.
func (srv *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Starting password change", slog.Any("userID", userID))

	// Gate 1: the account must exist.
	credential, err := srv.credentialRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "password change failed")
		}

		return errors.Wrap(err, "failed to load credential for password change")
	}

	// Gate 2: the current password must verify. A stale-cost hash is
	// upgraded here as a side effect regardless of how the remaining
	// gates turn out.
	if !srv.hasher.Check(input.CurrentPassword, credential.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}
	srv.upgradeStaleHash(ctx, userID, input.CurrentPassword, credential.PasswordHash)

	// Gate 3: the secret word, when one was set, must match exactly.
	if credential.HasSecretWord() {
		if input.SecretWord == "" {
			return errors.Wrap(domainerrors.ErrSecretWordRequired, "password change failed")
		}
		if input.SecretWord != credential.SecretWord {
			return errors.Wrap(domainerrors.ErrSecretWordIncorrect, "password change failed")
		}
	}

	// Gate 4: the new password must differ from the current one and meet
	// the length floor. Equality is checked through the verifier so any
	// hash of the current password counts as unchanged.
	if srv.hasher.Check(input.NewPassword, credential.PasswordHash) {
		return errors.Wrap(domainerrors.ErrPasswordUnchanged, "password change failed")
	}
	if len(input.NewPassword) < minPasswordLength {
		return errors.Wrap(domainerrors.ErrPasswordTooShort, "password change failed")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	// Gate 5/6: persist the new hash, stamping last_password_change, and
	// revoke every open session under the old password.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CredentialRepo().UpdatePassword(ctx, userID, newHash, true); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return errors.Wrap(domainerrors.ErrPasswordUpdateFailed, "no account row was updated")
			}

			return errors.Wrap(err, "failed to persist new password")
		}

		if err := repoFactory.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions after password change")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Password change failed", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", userID))

	return nil
}

// RefreshToken issues a new access token from a valid refresh token.
// The refresh token itself remains unchanged.
func (srv *accountService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	// The token must still exist in the store; logout removes it.
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	if _, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user for token refresh")
	}
	if !user.IsActive() {
		return nil, errors.Wrap(domainerrors.ErrAccountDisabled, "token refresh rejected")
	}

	newAccessToken, _, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshTokenOutput{AccessToken: newAccessToken}, nil
}

// Logout invalidates a session by deleting its stored refresh token.
func (srv *accountService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken); err != nil {
		// Even if the token is invalid, proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	// Single operation, no transaction needed.
	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}

	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// storeRefreshToken stores the hashed refresh token, enforcing the
// active-session cap when one is configured.
func (srv *accountService) storeRefreshToken(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID, refreshTokenString string) error {
	refreshRepo := repoFactory.RefreshTokenRepo()

	if srv.maxActiveSessions > 0 {
		activeSessions, err := refreshRepo.CountActiveSessionsByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		if activeSessions >= srv.maxActiveSessions {
			return errors.Wrap(domainerrors.ErrSessionLimitExceeded, "active session limit exceeded")
		}
	}

	newRefreshToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}
