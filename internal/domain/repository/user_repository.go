// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrNoRowsAffected is returned when an update statement matched no rows.
// Callers treat this as a persistence failure rather than user input error.
var ErrNoRowsAffected = errors.New("no rows affected")

// ProfileUpdate is the allow-listed set of profile attributes a user may
// change. A nil field means "leave unchanged". Sensitive columns (password
// hash, secret word, timestamps, id) simply have no field here, so they
// cannot be smuggled through a profile update.
type ProfileUpdate struct {
	FirstName         *string
	LastName          *string
	PhoneNumber       *string
	Timezone          *string
	PreferredLanguage *string
	PrivacyLevel      *entity.PrivacyLevel
	Status            *entity.UserStatus
}

// IsEmpty reports whether no field was supplied.
func (u *ProfileUpdate) IsEmpty() bool {
	return u == nil || (u.FirstName == nil &&
		u.LastName == nil &&
		u.PhoneNumber == nil &&
		u.Timezone == nil &&
		u.PreferredLanguage == nil &&
		u.PrivacyLevel == nil &&
		u.Status == nil)
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user together with its credential material.
	// The credential is only writable at creation time; afterwards it is
	// managed through CredentialRepository.
	Create(ctx context.Context, user *entity.User, cred *entity.Credential) error

	// UpdateProfile applies the non-nil fields of the allow-listed update
	// in one statement. Returns ErrNoRowsAffected when the user does not exist.
	UpdateProfile(ctx context.Context, id uuid.UUID, update *ProfileUpdate) error

	// TouchActivity stamps last_activity_at with the current time.
	TouchActivity(ctx context.Context, id uuid.UUID) error

	// RecordLogin stamps last_login_at and last_activity_at; when ip is
	// non-empty it also records last_login_ip and last_using_ip.
	RecordLogin(ctx context.Context, id uuid.UUID, ip string) error

	// RecordRegistration stamps last_activity_at; when ip is non-empty it
	// also records registration_ip and last_using_ip.
	RecordRegistration(ctx context.Context, id uuid.UUID, ip string) error
}
