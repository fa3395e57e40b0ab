package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is a single piece of user-authored content.
// The identifier is assigned by the store and is monotonically
// increasing. AuthorID is set once at creation and never changes;
// ownership checks compare against it.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the given user authored this post.
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.AuthorID == userID
}
