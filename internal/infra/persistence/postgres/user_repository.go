// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user together with its credential material.
func (repo *userRepository) Create(ctx context.Context, user *entity.User, cred *entity.Credential) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)
	if cred != nil {
		userM.HashedPassword = cred.PasswordHash
		userM.SecretWord = cred.SecretWord
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	if cred != nil {
		cred.UserID = userM.ID
	}

	return nil
}

// UpdateProfile applies the non-nil fields of the allow-listed update in one statement.
func (repo *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update *repository.ProfileUpdate) error {
	values := profileUpdateValues(update)
	if len(values) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoRowsAffected
	}

	return nil
}

// TouchActivity stamps last_activity_at with the current time.
func (repo *userRepository) TouchActivity(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_activity_at", time.Now())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record user activity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoRowsAffected
	}

	return nil
}

// RecordLogin stamps login timestamps and, when known, the caller's address.
func (repo *userRepository) RecordLogin(ctx context.Context, id uuid.UUID, ip string) error {
	now := time.Now()
	values := map[string]any{
		"last_login_at":    now,
		"last_activity_at": now,
	}
	if ip != "" {
		values["last_login_ip"] = ip
		values["last_using_ip"] = ip
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record login")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoRowsAffected
	}

	return nil
}

// RecordRegistration stamps first-contact metadata right after signup.
func (repo *userRepository) RecordRegistration(ctx context.Context, id uuid.UUID, ip string) error {
	values := map[string]any{
		"last_activity_at": time.Now(),
	}
	if ip != "" {
		values["registration_ip"] = ip
		values["last_using_ip"] = ip
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record registration")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoRowsAffected
	}

	return nil
}

// profileUpdateValues flattens the allow-listed update into a column map.
// Only columns named here can ever be touched by a profile update.
func profileUpdateValues(update *repository.ProfileUpdate) map[string]any {
	values := map[string]any{}
	if update == nil {
		return values
	}

	if update.FirstName != nil {
		values["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		values["last_name"] = *update.LastName
	}
	if update.PhoneNumber != nil {
		values["phone_number"] = *update.PhoneNumber
	}
	if update.Timezone != nil {
		values["timezone"] = *update.Timezone
	}
	if update.PreferredLanguage != nil {
		values["preferred_language"] = *update.PreferredLanguage
	}
	if update.PrivacyLevel != nil {
		values["privacy_level"] = update.PrivacyLevel.String()
	}
	if update.Status != nil {
		values["status"] = update.Status.String()
	}

	return values
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
// Credential columns are deliberately not mapped here.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                 data.ID,
		Email:              data.Email,
		FirstName:          data.FirstName,
		LastName:           data.LastName,
		PhoneNumber:        data.PhoneNumber,
		Timezone:           data.Timezone,
		PreferredLanguage:  data.PreferredLanguage,
		PrivacyLevel:       entity.PrivacyLevel(data.PrivacyLevel),
		Status:             entity.UserStatus(data.Status),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
		LastLoginAt:        data.LastLoginAt,
		LastActivityAt:     data.LastActivityAt,
		LastPasswordChange: data.LastPasswordChange,
		RegistrationIP:     data.RegistrationIP,
		LastLoginIP:        data.LastLoginIP,
		LastUsingIP:        data.LastUsingIP,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                data.ID,
		Email:             data.Email,
		FirstName:         data.FirstName,
		LastName:          data.LastName,
		PhoneNumber:       data.PhoneNumber,
		Timezone:          data.Timezone,
		PreferredLanguage: data.PreferredLanguage,
		PrivacyLevel:      data.PrivacyLevel.String(),
		Status:            data.Status.String(),
		RegistrationIP:    data.RegistrationIP,
		LastLoginIP:       data.LastLoginIP,
		LastUsingIP:       data.LastUsingIP,
	}
}
