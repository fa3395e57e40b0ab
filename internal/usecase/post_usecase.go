package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// Pagination bounds for post listing.
const (
	DefaultPostPageSize = 10
	MaxPostPageSize     = 50
)

// CreatePostInput defines the data required to create a post. The owner
// is always the authenticated caller.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput carries the mutable fields of a post. An empty string
// leaves the field unchanged; there is no way to clear a field through
// an update.
type UpdatePostInput struct {
	Title   string
	Content string
}

// PostUsecase defines the interface for post CRUD. It is the
// authorization layer: ownership is checked here, not in the repository.
type PostUsecase interface {
	CreatePost(ctx context.Context, userID uuid.UUID, input *CreatePostInput) (*entity.Post, error)

	// ListPosts returns posts in store-native order. A non-positive limit
	// falls back to DefaultPostPageSize; limits above MaxPostPageSize are
	// clamped.
	ListPosts(ctx context.Context, limit, offset int) ([]*entity.Post, error)

	// FilterByTitle returns posts matching the exact title, or all posts
	// when title is empty.
	FilterByTitle(ctx context.Context, title string) ([]*entity.Post, error)

	GetPost(ctx context.Context, id int64) (*entity.Post, error)

	// UpdatePost mutates a post owned by userID. A missing post and a
	// post owned by someone else are reported as distinct errors; the
	// ownership check happens before any write.
	UpdatePost(ctx context.Context, userID uuid.UUID, postID int64, input *UpdatePostInput) (*entity.Post, error)

	// DeletePost removes a post owned by userID. Deleting an already
	// deleted post reports not found.
	DeletePost(ctx context.Context, userID uuid.UUID, postID int64) error
}
