package impl

import (
	"context"
	"testing"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	mockRepo "pulse/internal/mocks/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return profileServiceFixtures{
		service:   NewProfileService(txManager, userRepo, newDiscardLogger()),
		txManager: txManager,
		userRepo:  userRepo,
	}
}

func strPtr(s string) *string { return &s }

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(activeUser(userID), nil)

	user, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.UpdateProfileInput{
		FirstName: strPtr("New"),
		Timezone:  strPtr("Europe/Berlin"),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				UpdateProfile(ctx, userID, mock.AnythingOfType("*repository.ProfileUpdate")).
				Run(func(ctx context.Context, id uuid.UUID, update *repository.ProfileUpdate) {
					require.NotNil(t, update.FirstName)
					assert.Equal(t, "New", *update.FirstName)
					assert.Nil(t, update.LastName)
				}).
				Return(nil)

			reloaded := activeUser(userID)
			reloaded.FirstName = "New"
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(reloaded, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.UpdateProfile(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
}

func TestProfileService_UpdateProfile_EmptyInput(t *testing.T) {
	fx := createTestProfileService(t)

	user, err := fx.service.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyProfileUpdate))
}

func TestProfileService_UpdateProfile_InvalidPrivacyLevel(t *testing.T) {
	fx := createTestProfileService(t)

	bogus := entity.PrivacyLevel("sneaky")
	user, err := fx.service.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		PrivacyLevel: &bogus,
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_UpdateProfile_NoRowsAffected(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				UpdateProfile(ctx, userID, mock.AnythingOfType("*repository.ProfileUpdate")).
				Return(repository.ErrNoRowsAffected)

			err := fn(mockFactory)
			assert.True(t, errors.Is(err, domainerrors.ErrProfileUpdateFailed))
		}).
		Return(domainerrors.ErrProfileUpdateFailed)

	user, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		LastName: strPtr("Name"),
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileUpdateFailed))
}

func TestProfileService_RecordActivity(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().TouchActivity(ctx, userID).Return(nil)

	require.NoError(t, fx.service.RecordActivity(ctx, userID))
}

func TestProfileService_RecordActivity_UnknownUser(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().TouchActivity(ctx, userID).Return(repository.ErrNoRowsAffected)

	err := fx.service.RecordActivity(ctx, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
