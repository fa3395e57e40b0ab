package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when no credential exists for the lookup key.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository is the narrow gateway to an account's secret
// material. Password hashes and secret words cross this boundary and no
// other; entity.User never carries them.
type CredentialRepository interface {
	// FindByUserID retrieves the credential for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error)

	// FindByEmail retrieves the credential for the account registered
	// under the given email address.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// UpdatePassword replaces the stored hash. When touchLastChange is
	// true the last_password_change timestamp is stamped as well; the
	// rehash-on-verify path passes false so a silent cost upgrade leaves
	// the timestamp alone. Returns ErrNoRowsAffected when the user does
	// not exist.
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string, touchLastChange bool) error
}
