package model

import (
	"time"

	"github.com/google/uuid"
)

// PostModel mirrors the 'posts' table. IDs are bigint sequences rather
// than UUIDs; posts are ordered and paginated by them.
type PostModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"type:varchar(255);not null;index"`
	Content   string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
