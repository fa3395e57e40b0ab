package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"
)

// ErrPostNotFound is returned when a post does not exist. All post
// lookups report absence the same way, including delete and update.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the standard operations for post persistence.
// Ownership checks are not done here; the post service is the
// authorization layer and calls FindByID first.
type PostRepository interface {
	// Create persists a new post and fills in the store-assigned ID and
	// timestamps on the passed entity.
	Create(ctx context.Context, post *entity.Post) error

	// List returns posts in store-native order with limit/offset
	// pagination. No relevance ranking is applied.
	List(ctx context.Context, limit, offset int) ([]*entity.Post, error)

	// FilterByTitle returns posts whose title matches exactly; an empty
	// title returns all posts.
	FilterByTitle(ctx context.Context, title string) ([]*entity.Post, error)

	// FindByID retrieves a single post by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// UpdateFields applies each non-empty field as an independent update
	// statement and returns the re-fetched post. An empty string means
	// "leave unchanged", not "clear". The two statements are not atomic.
	UpdateFields(ctx context.Context, id int64, title, content string) (*entity.Post, error)

	// Delete removes a post. Returns ErrPostNotFound when no row was deleted.
	Delete(ctx context.Context, id int64) error
}
