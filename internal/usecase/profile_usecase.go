package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput is the allow-listed set of profile fields a user
// may change about themselves. A nil field is left unchanged. Fields
// absent from this struct (password hash, secret word, timestamps, id)
// cannot be updated through the profile surface at all.
type UpdateProfileInput struct {
	FirstName         *string
	LastName          *string
	PhoneNumber       *string
	Timezone          *string
	PreferredLanguage *string
	PrivacyLevel      *entity.PrivacyLevel
	Status            *entity.UserStatus
}

// ProfileUsecase defines the interface for reading and updating the
// authenticated user's own profile.
type ProfileUsecase interface {
	// GetProfile returns the public view of an account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the non-nil fields and returns the stored
	// profile. An input with no fields set is rejected as user error.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// RecordActivity stamps the account's last_activity_at with now.
	RecordActivity(ctx context.Context, userID uuid.UUID) error
}
