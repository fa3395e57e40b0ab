package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// HashedPassword and SecretWord live here but are never copied onto the
// domain User; the repositories map them into entity.Credential instead.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email              string    `gorm:"type:varchar(255);unique;not null"`
	HashedPassword     string    `gorm:"type:varchar(255);not null"`
	SecretWord         string    `gorm:"type:varchar(255)"`
	FirstName          string    `gorm:"type:varchar(100)"`
	LastName           string    `gorm:"type:varchar(100)"`
	PhoneNumber        string    `gorm:"type:varchar(32)"`
	Timezone           string    `gorm:"type:varchar(64);not null;default:UTC"`
	PreferredLanguage  string    `gorm:"type:varchar(16);not null;default:en"`
	PrivacyLevel       string    `gorm:"type:varchar(16);not null;default:public"`
	Status             string    `gorm:"type:varchar(16);not null;default:active;index"`
	RegistrationIP     string    `gorm:"type:varchar(45)"`
	LastLoginIP        string    `gorm:"type:varchar(45)"`
	LastUsingIP        string    `gorm:"type:varchar(45)"`
	LastLoginAt        *time.Time
	LastActivityAt     *time.Time
	LastPasswordChange *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Posts         []PostModel         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
