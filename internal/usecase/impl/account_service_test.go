package impl

import (
	"context"
	"testing"
	"time"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	mockRepo "pulse/internal/mocks/repository"
	mockSvc "pulse/internal/mocks/service"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service          usecase.AccountUsecase
	txManager        *mockRepo.MockTransactionManager
	userRepo         *mockRepo.MockUserRepository
	credentialRepo   *mockRepo.MockCredentialRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
}

func createTestAccountService(t *testing.T, maxActiveSessions int) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	refreshTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewAccountService(AccountServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		CredentialRepo:   credentialRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Config:           newTestConfig(maxActiveSessions),
		Logger:           newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:          service,
		txManager:        txManager,
		userRepo:         userRepo,
		credentialRepo:   credentialRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func activeUser(id uuid.UUID) *entity.User {
	return &entity.User{
		ID:     id,
		Email:  "test@example.com",
		Status: entity.StatusActive,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:      "test@example.com",
		Password:   "strong password",
		SecretWord: "otter",
		FirstName:  "Test",
		ClientIP:   "203.0.113.7",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User"), mock.AnythingOfType("*entity.Credential")).
				Run(func(ctx context.Context, user *entity.User, cred *entity.Credential) {
					assert.Equal(t, "hashed_password", cred.PasswordHash)
					assert.Equal(t, "otter", cred.SecretWord)
					user.ID = uuid.New()
				}).
				Return(nil)

			mockUserRepo.EXPECT().
				RecordRegistration(ctx, mock.AnythingOfType("uuid.UUID"), input.ClientIP).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, "UTC", output.User.Timezone)
	assert.Equal(t, entity.StatusActive, output.User.Status)
}

func TestAccountService_Register_PasswordTooShort(t *testing.T) {
	fx := createTestAccountService(t, 0)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "test@example.com",
		Password: "short",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooShort))
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "strong password",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(domainerrors.ErrUserAlreadyExists)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "strong password",
		ClientIP: "203.0.113.7",
	}
	credential := &entity.Credential{UserID: userID, PasswordHash: "stored_hash"}

	fx.credentialRepo.EXPECT().FindByEmail(ctx, input.Email).Return(credential, nil)
	fx.hasher.EXPECT().Check(input.Password, "stored_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("stored_hash").Return(false)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(activeUser(userID), nil)
	fx.tokenService.EXPECT().GenerateTokens(userID).Return("access", "refresh", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

			fx.tokenService.EXPECT().HashToken("refresh").Return("refresh_hash")
			fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)

			mockRefreshRepo.EXPECT().
				CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
				Run(func(ctx context.Context, token *entity.RefreshToken) {
					assert.Equal(t, userID, token.UserID)
					assert.Equal(t, "refresh_hash", token.TokenHash)
				}).
				Return(nil)

			mockUserRepo.EXPECT().RecordLogin(ctx, userID, input.ClientIP).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	fx.credentialRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrCredentialNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	credential := &entity.Credential{UserID: uuid.New(), PasswordHash: "stored_hash"}

	fx.credentialRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(credential, nil)
	fx.hasher.EXPECT().Check("wrong password", "stored_hash").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong password",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_UpgradesStaleHash(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "stale_hash"}

	fx.credentialRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(credential, nil)
	fx.hasher.EXPECT().Check("strong password", "stale_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("stale_hash").Return(true)
	fx.hasher.EXPECT().Hash("strong password").Return("fresh_hash", nil)

	// The upgrade write must not stamp last_password_change.
	fx.credentialRepo.EXPECT().
		UpdatePassword(ctx, userID, "fresh_hash", false).
		Return(nil)

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(activeUser(userID), nil)
	fx.tokenService.EXPECT().GenerateTokens(userID).Return("access", "refresh", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "strong password",
	})

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestAccountService_Login_DisabledAccount(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "stored_hash"}
	bannedUser := &entity.User{ID: userID, Status: entity.StatusBanned}

	fx.credentialRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(credential, nil)
	fx.hasher.EXPECT().Check("strong password", "stored_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("stored_hash").Return(false)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(bannedUser, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "strong password",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountDisabled))
}

func TestAccountService_Login_SessionLimitExceeded(t *testing.T) {
	fx := createTestAccountService(t, 2)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "stored_hash"}

	fx.credentialRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(credential, nil)
	fx.hasher.EXPECT().Check("strong password", "stored_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("stored_hash").Return(false)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(activeUser(userID), nil)
	fx.tokenService.EXPECT().GenerateTokens(userID).Return("access", "refresh", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
			mockRefreshRepo.EXPECT().CountActiveSessionsByUserID(ctx, userID).Return(2, nil)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrSessionLimitExceeded))
		}).
		Return(domainerrors.ErrSessionLimitExceeded)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "strong password",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionLimitExceeded))
}

func changePasswordInput() *usecase.ChangePasswordInput {
	return &usecase.ChangePasswordInput{
		CurrentPassword: "old password",
		NewPassword:     "new password",
		SecretWord:      "otter",
	}
}

func TestAccountService_ChangePassword_Success(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)
	fx.hasher.EXPECT().Check("new password", "old_hash").Return(false)
	fx.hasher.EXPECT().Hash("new password").Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCredRepo := mockRepo.NewMockCredentialRepository(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().CredentialRepo().Return(mockCredRepo)
			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

			// The real change stamps last_password_change.
			mockCredRepo.EXPECT().UpdatePassword(ctx, userID, "new_hash", true).Return(nil)
			mockRefreshRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, userID).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.ChangePassword(ctx, userID, changePasswordInput())

	require.NoError(t, err)
}

func TestAccountService_ChangePassword_UserNotFound(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()

	fx.credentialRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(nil, repository.ErrCredentialNotFound)

	err := fx.service.ChangePassword(ctx, userID, changePasswordInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAccountService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(false)

	err := fx.service.ChangePassword(ctx, userID, changePasswordInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_ChangePassword_SecretWordRequired(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)

	input := changePasswordInput()
	input.SecretWord = ""

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSecretWordRequired))
}

func TestAccountService_ChangePassword_SecretWordIncorrect(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)

	input := changePasswordInput()
	input.SecretWord = "Otter" // case matters

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSecretWordIncorrect))
}

func TestAccountService_ChangePassword_NoSecretWordSet(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	// No secret word at registration, so the gate is skipped entirely.
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)
	fx.hasher.EXPECT().Check("new password", "old_hash").Return(false)
	fx.hasher.EXPECT().Hash("new password").Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(nil)

	input := changePasswordInput()
	input.SecretWord = ""

	err := fx.service.ChangePassword(ctx, userID, input)

	require.NoError(t, err)
}

func TestAccountService_ChangePassword_Unchanged(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	// The current-password verify and the unchanged check both hit the
	// same hash with the same input, so one expectation covers both.
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)

	input := changePasswordInput()
	input.NewPassword = "old password"

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordUnchanged))
}

func TestAccountService_ChangePassword_NewTooShort(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)
	fx.hasher.EXPECT().Check("short", "old_hash").Return(false)

	input := changePasswordInput()
	input.NewPassword = "short"

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooShort))
}

func TestAccountService_ChangePassword_StaleHashUpgradeDoesNotBlockGates(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "stale_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "stale_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("stale_hash").Return(true)
	fx.hasher.EXPECT().Hash("old password").Return("upgraded_hash", nil)
	fx.credentialRepo.EXPECT().UpdatePassword(ctx, userID, "upgraded_hash", false).Return(nil)

	// The secret-word gate still fails after the upgrade was written.
	input := changePasswordInput()
	input.SecretWord = "wrong"

	err := fx.service.ChangePassword(ctx, userID, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSecretWordIncorrect))
}

func TestAccountService_ChangePassword_PersistFailure(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()
	credential := &entity.Credential{UserID: userID, PasswordHash: "old_hash", SecretWord: "otter"}

	fx.credentialRepo.EXPECT().FindByUserID(ctx, userID).Return(credential, nil)
	fx.hasher.EXPECT().Check("old password", "old_hash").Return(true)
	fx.hasher.EXPECT().NeedsRehash("old_hash").Return(false)
	fx.hasher.EXPECT().Check("new password", "old_hash").Return(false)
	fx.hasher.EXPECT().Hash("new password").Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCredRepo := mockRepo.NewMockCredentialRepository(t)

			mockFactory.EXPECT().CredentialRepo().Return(mockCredRepo)
			mockCredRepo.EXPECT().
				UpdatePassword(ctx, userID, "new_hash", true).
				Return(repository.ErrNoRowsAffected)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrPasswordUpdateFailed))
		}).
		Return(domainerrors.ErrPasswordUpdateFailed)

	err := fx.service.ChangePassword(ctx, userID, changePasswordInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordUpdateFailed))
}

func TestAccountService_RefreshToken_Success(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh").
		Return(refreshClaims(userID), nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh_hash")
	fx.refreshTokenRepo.EXPECT().
		FindRefreshTokenByHash(ctx, "refresh_hash").
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "refresh_hash"}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(activeUser(userID), nil)
	fx.tokenService.EXPECT().GenerateTokens(userID).Return("new_access", "unused_refresh", nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new_access", output.AccessToken)
}

func TestAccountService_RefreshToken_RevokedToken(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh").
		Return(refreshClaims(userID), nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh_hash")
	fx.refreshTokenRepo.EXPECT().
		FindRefreshTokenByHash(ctx, "refresh_hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestAccountService_Logout_Success(t *testing.T) {
	fx := createTestAccountService(t, 0)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh").
		Return(refreshClaims(userID), nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh_hash")
	fx.refreshTokenRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "refresh_hash").Return(nil)

	err := fx.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh"})

	require.NoError(t, err)
}
