package impl

import (
	"context"
	"log/slog"

	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves the public view of an account.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.log(ctx).Debug("Getting user profile", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return user, nil
}

// UpdateProfile applies the allow-listed profile changes and returns the
// stored profile. An input carrying no fields is a user error, not a
// silent no-op.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user profile", slog.Any("userID", userID))

	update := toProfileUpdate(input)
	if update.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrEmptyProfileUpdate, "profile update rejected")
	}

	if input.PrivacyLevel != nil && !input.PrivacyLevel.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown privacy level")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown account status")
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := userRepo.UpdateProfile(ctx, userID, update); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return errors.Wrap(domainerrors.ErrProfileUpdateFailed, "no account row was updated")
			}

			return errors.Wrap(err, "failed to update user profile")
		}

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload updated profile")
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Profile update failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", userID))

	return updated, nil
}

// RecordActivity stamps the account's last_activity_at with now.
func (srv *profileService) RecordActivity(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.TouchActivity(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "activity stamp failed")
		}

		return errors.Wrap(err, "failed to record activity")
	}

	return nil
}

// toProfileUpdate maps the usecase input onto the repository's
// allow-listed update struct field by field.
func toProfileUpdate(input *usecase.UpdateProfileInput) *repository.ProfileUpdate {
	if input == nil {
		return &repository.ProfileUpdate{}
	}

	return &repository.ProfileUpdate{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		PhoneNumber:       input.PhoneNumber,
		Timezone:          input.Timezone,
		PreferredLanguage: input.PreferredLanguage,
		PrivacyLevel:      input.PrivacyLevel,
		Status:            input.Status,
	}
}
