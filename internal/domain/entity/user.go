// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the moderation state of an account.
type UserStatus string

const (
	// StatusActive indicates a normal, usable account.
	StatusActive UserStatus = "active"
	// StatusInactive indicates an account that has been deactivated by its owner.
	StatusInactive UserStatus = "inactive"
	// StatusSuspended indicates a temporarily restricted account.
	StatusSuspended UserStatus = "suspended"
	// StatusBanned indicates a permanently restricted account.
	StatusBanned UserStatus = "banned"
)

// String returns the string representation of the UserStatus.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid checks if the UserStatus is a valid value.
func (s UserStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusBanned:
		return true
	default:
		return false
	}
}

// PrivacyLevel represents who may view a user's profile and posts.
type PrivacyLevel string

const (
	// PrivacyPublic makes the profile visible to everyone.
	PrivacyPublic PrivacyLevel = "public"
	// PrivacyPrivate hides the profile from everyone but the owner.
	PrivacyPrivate PrivacyLevel = "private"
	// PrivacyFriendsOnly restricts visibility to confirmed friends.
	PrivacyFriendsOnly PrivacyLevel = "friends_only"
)

// String returns the string representation of the PrivacyLevel.
func (p PrivacyLevel) String() string {
	return string(p)
}

// IsValid checks if the PrivacyLevel is a valid value.
func (p PrivacyLevel) IsValid() bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyFriendsOnly:
		return true
	default:
		return false
	}
}

// User is the core entity in the system, representing a unique account.
// It deliberately carries no password hash or secret word; those stay
// behind the Credential boundary so they can never leak through a
// serialized User.
type User struct {
	ID                 uuid.UUID    `json:"id"`
	Email              string       `json:"email"`
	FirstName          string       `json:"first_name,omitempty"`
	LastName           string       `json:"last_name,omitempty"`
	PhoneNumber        string       `json:"phone_number,omitempty"`
	Timezone           string       `json:"timezone"`
	PreferredLanguage  string       `json:"preferred_language"`
	PrivacyLevel       PrivacyLevel `json:"privacy_level"`
	Status             UserStatus   `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	LastLoginAt        *time.Time   `json:"last_login_at,omitempty"`
	LastActivityAt     *time.Time   `json:"last_activity_at,omitempty"`
	LastPasswordChange *time.Time   `json:"last_password_change,omitempty"`
	RegistrationIP     string       `json:"-"`
	LastLoginIP        string       `json:"-"`
	LastUsingIP        string       `json:"-"`
}

// IsActive reports whether the account may authenticate and act.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Credential holds the secret material for a single account. It is only
// handed out by the credential store to the account service and must not
// cross the delivery boundary.
type Credential struct {
	UserID       uuid.UUID
	PasswordHash string
	SecretWord   string
}

// HasSecretWord reports whether a secret word was set at registration.
// Once set, privileged operations must present it verbatim.
func (c *Credential) HasSecretWord() bool {
	return c.SecretWord != ""
}
