package postgres

import (
	"context"
	"time"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"
	"pulse/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// credentialRepository implements the domain.CredentialRepository interface.
// It reads and writes only the secret columns of the users table.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// credentialColumns is the projection used for credential lookups. The
// full user row never leaves this repository.
type credentialColumns struct {
	ID             uuid.UUID
	HashedPassword string
	SecretWord     string
}

// FindByUserID retrieves the credential for a user.
func (repo *credentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	var row credentialColumns
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select("id", "hashed_password", "secret_word").
		Where("id = ?", userID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by user id")
	}

	return toCredentialDomain(&row), nil
}

// FindByEmail retrieves the credential for the account registered under the given email.
func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var row credentialColumns
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Select("id", "hashed_password", "secret_word").
		Where("email = ?", email).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by email")
	}

	return toCredentialDomain(&row), nil
}

// UpdatePassword replaces the stored hash. The rehash-on-verify path
// passes touchLastChange=false so a silent cost upgrade does not move
// the last_password_change timestamp.
func (repo *credentialRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string, touchLastChange bool) error {
	values := map[string]any{
		"hashed_password": hash,
	}
	if touchLastChange {
		values["last_password_change"] = time.Now()
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoRowsAffected
	}

	return nil
}

// toCredentialDomain converts the credential projection to a domain entity.
func toCredentialDomain(row *credentialColumns) *entity.Credential {
	return &entity.Credential{
		UserID:       row.ID,
		PasswordHash: row.HashedPassword,
		SecretWord:   row.SecretWord,
	}
}
